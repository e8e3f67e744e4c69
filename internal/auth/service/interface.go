// Package service verifies and signs bearer tokens.
package service

import (
	"time"

	authDomain "github.com/allisson/accessvault/internal/auth/domain"
)

// TokenVerifier checks a presented bearer token.
type TokenVerifier interface {
	// Verify validates signature, expiry and claim structure against now. It never
	// mutates state and never retries. Every failure wraps ErrUnauthorized; the
	// concrete reason is one of ErrTokenMissing, ErrTokenMalformed,
	// ErrTokenSignature or ErrTokenExpired.
	Verify(token string, now time.Time) (*authDomain.Claims, error)
}

// TokenSigner mints bearer tokens the verifier accepts.
type TokenSigner interface {
	Sign(request authDomain.TokenRequest, now time.Time) (string, error)
}
