package server

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/ipadmin/internal/handlers"
	"github.com/nfrund/ipadmin/internal/middleware"
	"github.com/nfrund/ipadmin/internal/view"
	"github.com/nfrund/ipadmin/web/src/templates/pages"
)

// setupErrorHandling installs the HTTP error handler. Errors that are not
// echo.HTTPErrors are logged with a stack trace. htmx requests get a toast,
// browsers get the error page when layout is set.
func setupErrorHandling(e *echo.Echo, layout *handlers.Layout) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		logger := middleware.FromContext(c.Request().Context())

		code := http.StatusInternalServerError
		message := http.StatusText(code)

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			message = fmt.Sprint(he.Message)
			if he.Internal != nil {
				logger.Warn("Request failed", "status", code, "error", he.Internal)
			}
		} else {
			logger.Error("Internal Server Error (Unhandled)",
				"error", err,
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"stack_trace", string(debug.Stack()),
			)
		}

		var respErr error
		switch {
		case c.Request().Method == http.MethodHead:
			respErr = c.NoContent(code)
		case view.IsHTMX(c):
			view.TriggerToast(c, view.ErrorToast(message))
			respErr = c.String(code, message)
		case layout != nil:
			respErr = layout.Page(c, code, http.StatusText(code), "", pages.Error(code, message))
		default:
			respErr = c.String(code, message)
		}
		if respErr != nil {
			logger.Error("Failed to write error response", "error", respErr)
		}
	}
}
