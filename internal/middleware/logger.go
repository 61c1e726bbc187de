package middleware

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
)

type loggerCtxKey struct{}

// Logger attaches a request-scoped child of base to the request context,
// tagged with the request ID and, once signed in, the staff user. It must
// run after the RequestID and session middleware.
func Logger(base *slog.Logger) echo.MiddlewareFunc {
	if base == nil {
		base = slog.Default()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			attrs := []any{"request_id", c.Response().Header().Get(echo.HeaderXRequestID)}
			if u := SessionUser(c); u != nil {
				attrs = append(attrs, "user", u.UserName)
			}
			req := c.Request()
			c.SetRequest(req.WithContext(WithLogger(req.Context(), base.With(attrs...))))
			return next(c)
		}
	}
}

// WithLogger returns a copy of ctx carrying l.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey{}, l)
}

// FromContext returns the request logger, or the default logger outside a
// request.
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerCtxKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}
