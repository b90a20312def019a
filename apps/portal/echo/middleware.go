package echoportal

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/darasa-lms/portal/core"
	"github.com/darasa-lms/portal/core/session"
	"github.com/darasa-lms/portal/services/lmsapi"
)

const contextSessionKey = "portalSession"

// sessionMiddleware attaches the caller's session record to the echo context,
// minting a fresh anonymous session (and cookie) when none is presented.
func sessionMiddleware(svc *session.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			rec := loadSession(ctx, svc)
			if rec == nil {
				rec = svc.Begin()
				if err := svc.Save(ctx.Request().Context(), rec); err != nil {
					return err
				}
				if err := setSessionCookie(ctx, rec.ID); err != nil {
					return err
				}
			}
			ctx.Set(contextSessionKey, rec)
			return next(ctx)
		}
	}
}

func loadSession(ctx echo.Context, svc *session.Service) *session.Record {
	cookie, err := ctx.Cookie(core.Conf.Session.CookieName)
	if err != nil {
		return nil
	}
	sid, err := session.ParseToken(cookie.Value)
	if err != nil {
		return nil
	}
	rec, err := svc.Get(ctx.Request().Context(), sid)
	if err != nil {
		return nil
	}
	return rec
}

func setSessionCookie(ctx echo.Context, sid string) error {
	token, err := session.GenerateToken(sid)
	if err != nil {
		return err
	}
	ctx.SetCookie(&http.Cookie{
		Name:     core.Conf.Session.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(core.Conf.Session.TTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func contextSession(ctx echo.Context) *session.Record {
	rec, _ := ctx.Get(contextSessionKey).(*session.Record)
	return rec
}

// apiContext returns the request context carrying the session's backend
// credentials; cancelling the inbound request cancels any backend call.
func apiContext(ctx echo.Context) context.Context {
	reqCtx := ctx.Request().Context()
	if rec := contextSession(ctx); rec != nil && rec.BackendCookie != "" {
		return lmsapi.WithCredentials(reqCtx, rec.BackendCookie)
	}
	return reqCtx
}

// guard gates a subtree by role and URL prefix. Decision order matters:
// an unresolved session never redirects (the bootstrap may simply not have
// run yet), then missing user, then role, then prefix.
func (s *server) guard(allowedPrefix string, allowedRoles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			rec := contextSession(ctx)

			if !rec.Resolved {
				if err := s.opts.Sessions.Resolve(apiContext(ctx), rec); err != nil {
					// backend unreachable: auth state is unknown, show the
					// neutral loading view instead of bouncing to login
					return ctx.Render(http.StatusServiceUnavailable, "loading", echo.Map{
						"Title": "Loading",
						"Path":  ctx.Request().RequestURI,
					})
				}
			}

			if !rec.IsAuthenticated() {
				return ctx.Redirect(http.StatusFound, "/login-lms")
			}
			if !rec.HasRole(allowedRoles...) {
				return ctx.Redirect(http.StatusFound, session.HomePath(rec.User.Role))
			}
			if allowedPrefix != "" && !strings.HasPrefix(ctx.Request().URL.Path, allowedPrefix) {
				return ctx.Redirect(http.StatusFound, session.HomePath(rec.User.Role))
			}
			return next(ctx)
		}
	}
}
