package logger

import (
	"context"
	"log/slog"
)

// loggerContextKey is the context key under which request-scoped loggers
// are stored. An unexported struct type keeps the key private to this
// package.
type loggerContextKey struct{}

// requestIDContextKey is the context key for the request correlation ID.
type requestIDContextKey struct{}

// WithLogger returns a copy of ctx carrying the given logger. Handlers and
// middleware use it to attach a request-scoped logger that downstream code
// retrieves with FromContext. It panics if logger is nil.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	if logger == nil {
		panic("logger: WithLogger called with a nil logger")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerContextKey{}, logger)
}

// FromContext returns the logger stored in ctx, or slog.Default() when the
// context carries none. It never returns nil and accepts a nil context.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.Default()
	}
	if l, ok := ctx.Value(loggerContextKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return slog.Default()
}

// FromContextOrDefault returns the logger stored in ctx, falling back to
// defaultLogger when the context carries none. Components hold their own
// configured logger and pass it as the fallback so background work keeps
// its component attributes when no request logger is present. A nil
// defaultLogger falls back to slog.Default().
func FromContextOrDefault(ctx context.Context, defaultLogger *slog.Logger) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerContextKey{}).(*slog.Logger); ok && l != nil {
			return l
		}
	}
	if defaultLogger != nil {
		return defaultLogger
	}
	return slog.Default()
}

// WithRequestID returns a copy of ctx carrying the request correlation ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, requestIDContextKey{}, requestID)
}

// GetRequestID returns the request correlation ID stored in ctx, or the
// empty string when the context carries none.
func GetRequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(requestIDContextKey{}).(string); ok {
		return id
	}
	return ""
}
