package shared

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"log/slog"
	"time"
)

// ContextKey is the type used for values this package stores in request
// contexts. A named type keeps the keys from colliding with other packages.
type ContextKey string

const (
	// UserIDContextKey holds the authenticated user's uuid.UUID, placed
	// there by the authentication middleware.
	UserIDContextKey ContextKey = "userID"

	// TraceIDKey holds the per-request trace ID string.
	TraceIDKey ContextKey = "traceID"

	// TraceIDLength is the trace ID size in bytes; hex encoding doubles it
	// on the wire.
	TraceIDLength = 16
)

// SetTraceID stamps the context with a fresh trace ID. The trace middleware
// calls this once per request; error responses and log lines both carry the
// ID so a client report can be matched to its server-side records.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, generateTraceID())
}

// GetTraceID returns the trace ID from the context, or "" when the context
// never passed through the trace middleware.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// generateTraceID creates a random trace ID for request tracking.
// If crypto/rand fails it falls back to a time-derived ID; the fallback is
// weaker but never a static value, so correlation still works.
func generateTraceID() string {
	b := make([]byte, TraceIDLength)
	n, err := rand.Read(b)

	if err != nil || n != TraceIDLength {
		slog.Error("failed to generate secure random trace ID",
			"error", err,
			"bytes_read", n,
			"bytes_requested", TraceIDLength,
			"fallback", "time-based generation")
		return generateFallbackTraceID()
	}

	return hex.EncodeToString(b)
}

// generateFallbackTraceID derives a trace ID from the clock when the
// crypto/rand source fails. Nanosecond precision in the middle bytes keeps
// concurrent requests in the same instant distinguishable.
func generateFallbackTraceID() string {
	fallbackID := make([]byte, TraceIDLength)

	now := time.Now().UnixNano()
	binary.BigEndian.PutUint64(fallbackID[:8], uint64(now))
	binary.BigEndian.PutUint32(fallbackID[8:12], uint32(time.Now().Nanosecond()))
	binary.BigEndian.PutUint32(fallbackID[12:16], uint32(time.Now().Unix()))

	return hex.EncodeToString(fallbackID)
}
