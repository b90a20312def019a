package echoportal

import (
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasa-lms/portal/core"
	"github.com/darasa-lms/portal/core/session"
	"github.com/darasa-lms/portal/services/lmsapi"
)

func (s *server) registerPublicPages() {
	s.app.GET("/", s.homePage)
	s.app.GET("/loading", s.loadingPage)

	s.app.GET("/register", s.registerPage)
	s.app.POST("/register", s.registerSubmit)

	// the LMS login doubles for all non-admin entries
	for _, path := range []string{"/login", "/login-lms", "/login-mentee", "/login-tutor"} {
		s.app.GET(path, s.loginPage("lms"))
		s.app.POST(path, s.loginSubmit("lms"))
	}
	s.app.GET("/login-admin", s.loginPage("admin"))
	s.app.POST("/login-admin", s.loginSubmit("admin"))

	s.app.GET("/logout", s.logout)
	s.app.POST("/logout", s.logout)
}

// viewData assembles the keys every page template expects. The back-trap
// script stays off by default; only the shell root views switch it on, so
// browser back keeps working between sub-pages.
func (s *server) viewData(ctx echo.Context, title string, extra echo.Map) echo.Map {
	data := echo.Map{
		"Title":    title,
		"Path":     ctx.Request().URL.Path,
		"BackTrap": false,
		"Query":    template.URL(""),
	}
	if rec := contextSession(ctx); rec != nil {
		data["User"] = rec.User
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}

func (s *server) homePage(ctx echo.Context) error {
	rec := contextSession(ctx)
	if rec.Resolved && rec.IsAuthenticated() {
		return ctx.Redirect(http.StatusFound, session.HomePath(rec.User.Role))
	}
	return ctx.Render(http.StatusOK, "home", s.viewData(ctx, core.Conf.AppName, nil))
}

func (s *server) loadingPage(ctx echo.Context) error {
	return ctx.Render(http.StatusOK, "loading", s.viewData(ctx, "Loading", nil))
}

func (s *server) loginPage(variant string) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		rec := contextSession(ctx)
		// best effort: a user with a live backend session skips the form
		if !rec.Resolved {
			_ = s.opts.Sessions.Resolve(apiContext(ctx), rec)
		}
		if rec.IsAuthenticated() {
			return ctx.Redirect(http.StatusFound, session.HomePath(rec.User.Role))
		}
		return ctx.Render(http.StatusOK, "login", s.viewData(ctx, "Sign in", echo.Map{
			"Variant": variant,
			"Email":   "",
		}))
	}
}

func (s *server) loginSubmit(variant string) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		var form LoginForm
		if err := ctx.Bind(&form); err != nil {
			return err
		}
		if err := form.Validate(); err != nil {
			return ctx.Render(http.StatusBadRequest, "login", s.viewData(ctx, "Sign in", echo.Map{
				"Variant": variant,
				"Error":   "please correct the errors below",
				"Email":   form.Email,
			}))
		}

		usr, backendCookie, err := s.opts.API.Auth.Login(ctx.Request().Context(), form.Email, form.Password)
		if err != nil {
			if apiErr, ok := errors.Cause(err).(*lmsapi.APIError); ok {
				return ctx.Render(http.StatusUnauthorized, "login", s.viewData(ctx, "Sign in", echo.Map{
					"Variant": variant,
					"Error":   apiErr.Message,
					"Email":   form.Email,
				}))
			}
			return err
		}

		rec := contextSession(ctx)
		if err = s.opts.Sessions.Login(ctx.Request().Context(), rec, usr, backendCookie); err != nil {
			return err
		}
		return ctx.Redirect(http.StatusFound, session.HomePath(usr.Role))
	}
}

func (s *server) registerPage(ctx echo.Context) error {
	rec := contextSession(ctx)
	if rec.Resolved && rec.IsAuthenticated() {
		return ctx.Redirect(http.StatusFound, session.HomePath(rec.User.Role))
	}
	return ctx.Render(http.StatusOK, "register", s.viewData(ctx, "Create account", echo.Map{
		"Name":  "",
		"Email": "",
	}))
}

func (s *server) registerSubmit(ctx echo.Context) error {
	var form RegisterForm
	if err := ctx.Bind(&form); err != nil {
		return err
	}
	if err := form.Validate(); err != nil {
		return ctx.Render(http.StatusBadRequest, "register", s.viewData(ctx, "Create account", echo.Map{
			"Error": "please correct the errors below",
			"Name":  form.Name,
			"Email": form.Email,
		}))
	}

	usr, backendCookie, err := s.opts.API.Auth.Register(ctx.Request().Context(), form.Name, form.Email, form.Password, form.Role)
	if err != nil {
		if apiErr, ok := errors.Cause(err).(*lmsapi.APIError); ok {
			return ctx.Render(http.StatusBadRequest, "register", s.viewData(ctx, "Create account", echo.Map{
				"Error": apiErr.Message,
				"Name":  form.Name,
				"Email": form.Email,
			}))
		}
		return err
	}

	rec := contextSession(ctx)
	if err = s.opts.Sessions.Register(ctx.Request().Context(), rec, usr, backendCookie); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusFound, session.HomePath(usr.Role))
}

func (s *server) logout(ctx echo.Context) error {
	rec := contextSession(ctx)
	if rec.BackendCookie != "" {
		// local state is cleared regardless of what the backend says
		if err := s.opts.API.Auth.Logout(apiContext(ctx)); err != nil {
			s.opts.Logger.Debug("backend logout failed", err)
		}
	}
	if err := s.opts.Sessions.Logout(ctx.Request().Context(), rec); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusFound, "/login-lms")
}
