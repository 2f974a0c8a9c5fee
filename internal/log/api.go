package log

import (
	"context"
	"os"
)

// Sink receives every entry a Logger emits at or above its level.
type Sink interface {
	Log(entry Entry) error
}

// Level is the log level.
type Level int

// Log levels.
const (
	// Default resolves to Info in Configure.
	Default Level = 0
	Trace   Level = 1
	Debug   Level = 5
	Info    Level = 9
	Warn    Level = 13
	Error   Level = 17
)

type contextKey struct{}

// FromContext retrieves the current logger from the context or panics.
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if ok {
		return logger
	}
	panic("no logger in context")
}

// ContextWithLogger returns a new context carrying logger.
func ContextWithLogger(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// ContextWithNewDefaultLogger attaches a debug-level stderr logger, for tests and tools.
func ContextWithNewDefaultLogger(ctx context.Context) context.Context {
	return ContextWithLogger(ctx, Configure(os.Stderr, Config{Level: Debug}))
}
