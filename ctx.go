package directory

import (
	"context"

	"github.com/goliatone/go-router"
)

var identityCtxKey = &contextKey{"identity"}

type contextKey struct {
	name string
}

// WithIdentityContext sets the AuthClaims in the given context
func WithIdentityContext(r context.Context, claims AuthClaims) context.Context {
	return context.WithValue(r, identityCtxKey, claims)
}

// IdentityFromContext extracts the AuthClaims from the standard context
func IdentityFromContext(ctx context.Context) (AuthClaims, bool) {
	raw, ok := ctx.Value(identityCtxKey).(AuthClaims)
	return raw, ok
}

// GetRouterClaims extracts the AuthClaims from the router context
func GetRouterClaims(ctx router.Context, key string) (AuthClaims, bool) {
	if key == "" {
		key = "user" // Default key used by JWT middleware
	}
	raw := ctx.Locals(key)
	if raw == nil {
		return nil, false
	}
	claims, ok := raw.(AuthClaims)
	return claims, ok
}
