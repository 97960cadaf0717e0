package logger

import "context"

// contextKey namespaces values this package stores on a context.Context so
// they can't collide with keys set by other packages.
type contextKey string

const traceIDKey contextKey = "trace_id"

// WithTraceID returns a context carrying the given trace id, picked up by
// Info/Warn/Error/Debug to correlate log lines for one judging run.
func WithTraceID(parent context.Context, traceID string) context.Context {
	return context.WithValue(parent, traceIDKey, traceID)
}

func traceIDFrom(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(traceIDKey).(string)
	return v, ok
}
