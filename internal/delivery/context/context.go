// Package context carries request-scoped values (request ID, logger) across
// the delivery/usecase boundary.
package context

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
)

// HeaderXRequestID is the header a caller may use to supply its own request ID.
const HeaderXRequestID = "X-Request-Id"

// echoKeyRequestID keys the request ID inside echo.Context.
const echoKeyRequestID = "request_id"

// loggerKey keys the request-scoped logger; an unexported type keeps context
// values collision-free.
type loggerKey struct{}

// SetRequestID stores the request ID in echo.Context for handler access.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(echoKeyRequestID, requestID)
}

// GetRequestID returns the request ID stored in echo.Context, or "" when the
// middleware has not run.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(echoKeyRequestID).(string); ok {
		return id
	}

	return ""
}

// WithLogger returns a context carrying the request-scoped logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLoggerOrDefault returns the request-scoped logger, or fallback when the
// context carries none. Services call this so log lines keep their request ID
// without the transport leaking into usecase signatures.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return logger
	}

	return fallback
}
