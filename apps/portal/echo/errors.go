package echoportal

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasa-lms/portal/core"
	"github.com/darasa-lms/portal/services/lmsapi"
)

var errHTTPNotFound = echo.NewHTTPError(http.StatusNotFound, "not found")

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that renders
// error pages for our error kinds. Backend API errors surface their message
// verbatim; anything unexpected becomes a logged 500.
// signalShutdown is called whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message string
		fieldErrs := make(map[string]string)

		switch origErr := errors.Cause(err).(type) {
		case *lmsapi.APIError:
			// pages catch API errors into their own banner; anything that
			// reaches here mirrors the backend status and message as-is
			code = origErr.StatusCode
			if code < 400 || code > 599 {
				code = http.StatusBadGateway
			}
			message = origErr.Message
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			if msg, ok := origErr.Message.(string); ok {
				message = msg
			} else {
				message = http.StatusText(code)
			}
		case validator.ValidationErrors:
			for _, vErr := range origErr {
				fieldErrs[vErr.Field()] = vErr.Translate(core.Translator)
			}
			code = http.StatusBadRequest
			message = "please correct the errors below"
		case *core.ValidationError:
			for _, fErr := range origErr.Fields {
				fieldErrs[fErr.Field] = fErr.Error
			}
			code = http.StatusBadRequest
			message = origErr.Error()
			if message == "" {
				message = "please correct the errors below"
			}
		default: // any other error is a server error
			code = http.StatusInternalServerError
			message = http.StatusText(code)

			args := []interface{}{errors.Wrap(err, message)}
			if rec := contextSession(ctx); rec != nil && rec.User != nil {
				args = append(args, *rec.User)
			}
			logger.Error(message, args...)

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		if ctx.Echo().Debug {
			message = err.Error()
		}

		if ctx.Response().Committed {
			return
		}
		if ctx.Request().Method == http.MethodHead {
			_ = ctx.NoContent(code)
			return
		}
		renderErr := ctx.Render(code, "error", echo.Map{
			"Title":       "Error",
			"Code":        code,
			"Message":     message,
			"FieldErrors": fieldErrs,
		})
		if renderErr != nil {
			_ = ctx.String(code, message)
		}
	}
}
