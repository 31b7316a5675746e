package users

import (
	"context"
)

var callerCtxKey = &contextKey{"caller"}

type contextKey struct {
	name string
}

// WithCaller sets the Caller in the given context
func WithCaller(ctx context.Context, caller Caller) context.Context {
	return context.WithValue(ctx, callerCtxKey, caller)
}

// CallerFromContext finds the caller from the context.
func CallerFromContext(ctx context.Context) (Caller, bool) {
	raw, ok := ctx.Value(callerCtxKey).(Caller)
	return raw, ok
}
