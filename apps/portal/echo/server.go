package echoportal

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/darasa-lms/portal/core"
	"github.com/darasa-lms/portal/core/session"
	"github.com/darasa-lms/portal/services/lmsapi"
)

type (
	Options struct {
		Addr           string
		DisableReqLogs bool
		BackTrap       bool
		Logger         core.Logger
		Sessions       *session.Service
		API            *lmsapi.APIs
		// SignalShutdown is called when an unrecoverable error asks for a
		// graceful stop.
		SignalShutdown func()
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	if opts.SignalShutdown == nil {
		opts.SignalShutdown = func() {}
	}
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	debug := core.Conf.Debug

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(debug || core.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.SignalShutdown)
	s.app.Renderer = newRenderer()
	s.app.Debug = debug

	s.app.StaticFS("/static", echo.MustSubFS(staticFS, "static"))

	s.app.Use(sessionMiddleware(s.opts.Sessions))

	s.registerPublicPages()
	s.registerAdminPages()
	s.registerMenteePages()
	s.registerTutorPages()
}

func (s *server) Start() error {
	return s.app.Start(s.opts.Addr)
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}
