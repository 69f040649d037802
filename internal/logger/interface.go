package logger

import "context"

// Logger defines the printf-style logging surface used across the service.
// The context carries request-scoped fields such as the session id.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...interface{})
	Info(ctx context.Context, msg string, args ...interface{})
	Warn(ctx context.Context, msg string, args ...interface{})
	Error(ctx context.Context, msg string, args ...interface{})
	With(component string) Logger
}
