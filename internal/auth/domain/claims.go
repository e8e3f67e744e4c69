// Package domain defines bearer token claims and the reasons a token is rejected.
package domain

import (
	"time"

	accessDomain "github.com/allisson/accessvault/internal/access/domain"
)

// Claims is the verified content of a bearer token. It lives for one request and
// is never persisted.
type Claims struct {
	AccountID   string
	Environment accessDomain.Environment
	IssuedAt    time.Time
	ExpiresAt   time.Time
}

// TokenRequest describes a bearer token to sign.
type TokenRequest struct {
	AccountID   string
	Environment accessDomain.Environment
	TTL         time.Duration
}
