// Package service provides generation of access credential secrets and identifiers.
package service

import (
	accessDomain "github.com/allisson/accessvault/internal/access/domain"
)

// SecretService generates and compares credential secrets.
type SecretService interface {
	// GenerateSecret returns a new "sk_<environment>_<base64url>" secret carrying
	// SecretEntropyBytes of randomness. The caller owns the returned buffer.
	GenerateSecret(env accessDomain.Environment) ([]byte, error)

	// CompareSecret compares two secrets in constant time.
	CompareSecret(presented, expected []byte) bool
}

// IDService generates prefixed, time-ordered public identifiers.
type IDService interface {
	// NewID returns "<prefix>::<uuidv7>".
	NewID(prefix accessDomain.IDPrefix) (string, error)
}
