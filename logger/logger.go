package logger

import "context"

// Logger is the structured logger used by the client, the operations layer
// and the development API server.
type Logger interface {
	// Debug logs a debug-level message with optional fields
	Debug(ctx context.Context, msg string, fields map[string]interface{})

	// Info logs an info-level message with optional fields
	Info(ctx context.Context, msg string, fields map[string]interface{})

	// Warn logs a warning-level message with optional fields
	Warn(ctx context.Context, msg string, fields map[string]interface{})

	// Error logs an error-level message with optional fields
	Error(ctx context.Context, msg string, fields map[string]interface{})

	// WithField returns a logger that adds key to every entry
	WithField(key string, value interface{}) Logger

	// WithFields returns a logger that adds fields to every entry
	WithFields(fields map[string]interface{}) Logger
}

// requestIDKey is the context key under which the request ID is stored.
type requestIDKey struct{}

// WithRequestID returns a context carrying the given request ID. Loggers add
// it to every entry logged with that context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request ID stored in ctx, if any.
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
