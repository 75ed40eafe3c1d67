package jwt

import "context"

type contextKey struct{}

type tokenContext struct {
	token  string
	claims Claims
}

// WithContext stores a verified token and its claims.
func WithContext(ctx context.Context, token string, claims Claims) context.Context {
	return context.WithValue(ctx, contextKey{}, tokenContext{token: token, claims: claims})
}

// ClaimsFromContext returns the claims stored by the middleware.
func ClaimsFromContext(ctx context.Context) (Claims, bool) {
	tc, ok := ctx.Value(contextKey{}).(tokenContext)
	return tc.claims, ok
}

// TokenFromContext returns the raw token stored by the middleware.
func TokenFromContext(ctx context.Context) (string, bool) {
	tc, ok := ctx.Value(contextKey{}).(tokenContext)
	return tc.token, ok
}
