package logger

import (
	"context"
	"log/slog"
)

// contextKey is a private type for context keys defined in this package.
type contextKey struct{}

// loggerKey is the context key under which a request-scoped logger travels.
var loggerKey = contextKey{}

// WithLogger returns a copy of ctx carrying the given logger.
// Middleware uses this to attach a trace-ID-tagged logger to each request.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext retrieves the logger from the context, or slog.Default()
// when none was attached.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// FromContextOrDefault retrieves the logger from the context, falling back
// to the provided default when none was attached. Components use this so
// request-scoped attributes win over the component's own logger.
func FromContextOrDefault(ctx context.Context, def *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	if def != nil {
		return def
	}
	return slog.Default()
}
