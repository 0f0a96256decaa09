package middleware

import (
	"log/slog"
	"net/http"

	"github.com/verdanthq/verdant-api/internal/api/shared"
)

// TraceMiddleware stamps each request with a trace ID before anything
// else runs, so every response body and log line downstream can carry
// it. Mount it ahead of authentication.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())

		slog.With(slog.String("trace_id", shared.GetTraceID(ctx))).Debug("request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
