package logger

import (
	"context"

	"go.uber.org/zap"
)

// loggerKey keys the request-scoped logger; an unexported struct type so no
// other package can collide with it.
type loggerKey struct{}

// ContextWithLogger returns a child context carrying the logger. The HTTP
// middleware stores a logger annotated with the request id here.
func ContextWithLogger(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// FromContext returns the logger stored in ctx. When none is present it
// returns a no-op logger, so call sites never need a nil check.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}
