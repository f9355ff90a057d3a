package slogx

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

type reqIDKey struct{}

func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

func FromContext(ctx context.Context) *slog.Logger {
	l, ok := ctx.Value(ctxKey{}).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return l
}

// WithRequestID stores the request correlation ID and attaches it to the
// contextual logger.
func WithRequestID(ctx context.Context, reqID string) context.Context {
	l := FromContext(ctx)
	ctx = context.WithValue(ctx, reqIDKey{}, reqID)
	return WithContext(ctx, l.With("req_id", reqID))
}

// RequestIDFromContext returns the correlation ID set by the HTTP
// middleware, or "" outside a request.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(reqIDKey{}).(string)
	return id
}
