package auth

import "context"

type ctxKey struct{}

// WithPayload returns a copy of ctx carrying the authenticated payload.
func WithPayload(ctx context.Context, p Payload) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// PayloadFromContext returns the payload attached by WithPayload.
func PayloadFromContext(ctx context.Context) (Payload, bool) {
	p, ok := ctx.Value(ctxKey{}).(Payload)
	return p, ok
}
