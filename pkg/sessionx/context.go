package sessionx

import "context"

type ctxKey struct{}

// ContextWithSession stores a verified session in ctx.
func ContextWithSession(ctx context.Context, data SessionData) context.Context {
	return context.WithValue(ctx, ctxKey{}, data)
}

// FromContext returns the session stored by ContextWithSession.
func FromContext(ctx context.Context) (SessionData, bool) {
	data, ok := ctx.Value(ctxKey{}).(SessionData)
	return data, ok
}
