// Package contextkeys defines the context keys shared across packages.
package contextkeys

import "context"

// Key is the type for context keys to prevent collisions.
type Key string

const (
	// RequestIDKey holds the request id string (UUID).
	// Set by middleware.RequestID, forwarded to the ERP API as X-Request-ID.
	RequestIDKey Key = "request_id"
)

// WithRequestID adds the request id to ctx.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID retrieves the request id from ctx, or "".
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}
