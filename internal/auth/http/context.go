// Package http provides the bearer token gate and per-caller rate limiting.
package http

import (
	"context"

	authDomain "github.com/allisson/accessvault/internal/auth/domain"
)

// claimsKey is a context key type for storing verified claims.
type claimsKey struct{}

// WithClaims stores verified claims in the context.
func WithClaims(ctx context.Context, claims *authDomain.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// GetClaims retrieves verified claims from the context.
// Returns (nil, false) when the request did not pass BearerAuthMiddleware.
func GetClaims(ctx context.Context) (*authDomain.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*authDomain.Claims)
	return claims, ok && claims != nil
}
