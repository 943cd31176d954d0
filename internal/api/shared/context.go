package shared

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"log/slog"
	"time"
)

// ContextKey is the key type for context values set by this package.
type ContextKey string

const (
	// TraceIDKey is the key for the trace ID in the request context.
	TraceIDKey ContextKey = "traceID"

	// traceIDLength is the number of random bytes in a trace ID.
	traceIDLength = 16
)

// SetTraceID adds a fresh trace ID to the context for correlating logs
// and error responses.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, generateTraceID())
}

// GetTraceID retrieves the trace ID from the context, or "" if unset.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// generateTraceID returns a 32-character hex trace ID. If crypto/rand
// fails it falls back to a time-derived ID rather than a static value.
func generateTraceID() string {
	b := make([]byte, traceIDLength)
	n, err := rand.Read(b)
	if err != nil || n != traceIDLength {
		slog.Error("failed to generate random trace ID",
			"error", err,
			"bytes_read", n)
		return fallbackTraceID()
	}
	return hex.EncodeToString(b)
}

func fallbackTraceID() string {
	b := make([]byte, traceIDLength)
	binary.BigEndian.PutUint64(b[:8], uint64(time.Now().UnixNano()))
	binary.BigEndian.PutUint32(b[8:12], uint32(time.Now().Nanosecond()))
	binary.BigEndian.PutUint32(b[12:16], uint32(time.Now().Unix()))
	return hex.EncodeToString(b)
}
