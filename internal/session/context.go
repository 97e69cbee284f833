package session

import "context"

type ctxKey struct{}

func WithUser(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, claims)
}

// UserFromContext returns the authenticated caller, or false for anonymous requests.
func UserFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ctxKey{}).(*Claims)
	return claims, ok && claims != nil
}
