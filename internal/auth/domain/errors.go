package domain

import (
	"github.com/allisson/accessvault/internal/errors"
)

// Bearer token rejection reasons. Each one wraps ErrUnauthorized so callers see a
// single outcome. The distinct values exist for logs only.
var (
	// ErrTokenMissing indicates no bearer token was presented.
	ErrTokenMissing = errors.Wrap(errors.ErrUnauthorized, "bearer token missing")

	// ErrTokenMalformed indicates the token or its claims could not be parsed.
	ErrTokenMalformed = errors.Wrap(errors.ErrUnauthorized, "bearer token malformed")

	// ErrTokenSignature indicates the signature did not verify against the signing secret.
	ErrTokenSignature = errors.Wrap(errors.ErrUnauthorized, "bearer token signature invalid")

	// ErrTokenExpired indicates the token is past its expiry time.
	ErrTokenExpired = errors.Wrap(errors.ErrUnauthorized, "bearer token expired")
)

// ErrInvalidTokenRequest indicates a token cannot be signed for the given input.
var ErrInvalidTokenRequest = errors.Wrap(errors.ErrInvalidInput, "invalid token request")
