package auth

import "context"

// claimsContextKey is unexported so only the token gate can install
// claims on a request context.
type claimsContextKey struct{}

// WithClaims stores verified claims on ctx for downstream handlers.
func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey{}, c)
}

// ClaimsFromContext extracts the claims the token gate attached, or nil
// on an unauthenticated request.
func ClaimsFromContext(ctx context.Context) *Claims {
	c, _ := ctx.Value(claimsContextKey{}).(*Claims)
	return c
}
