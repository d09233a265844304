package auth

import "context"

type ctxKey struct{}

// Identity is the authenticated caller attached to the request context by
// the API middleware. Threaded explicitly so handlers never reach for
// ambient session state.
type Identity struct {
	UserID   string
	Username string
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// IdentityFromContext returns the authenticated identity, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}
