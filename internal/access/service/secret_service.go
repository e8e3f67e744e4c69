package service

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"

	accessDomain "github.com/allisson/accessvault/internal/access/domain"
	apperrors "github.com/allisson/accessvault/internal/errors"
)

type secretService struct{}

// GenerateSecret reads SecretEntropyBytes from crypto/rand and encodes them
// after the environment tag.
func (s *secretService) GenerateSecret(env accessDomain.Environment) ([]byte, error) {
	if !env.Valid() {
		return nil, accessDomain.ErrInvalidEnvironment
	}

	randomBytes := make([]byte, accessDomain.SecretEntropyBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to generate random secret")
	}

	prefix := "sk_" + env.String() + "_"
	secret := make([]byte, len(prefix)+base64.RawURLEncoding.EncodedLen(len(randomBytes)))
	copy(secret, prefix)
	base64.RawURLEncoding.Encode(secret[len(prefix):], randomBytes)

	return secret, nil
}

// CompareSecret compares two secrets in constant time.
func (s *secretService) CompareSecret(presented, expected []byte) bool {
	return subtle.ConstantTimeCompare(presented, expected) == 1
}

// NewSecretService creates a new SecretService.
func NewSecretService() SecretService {
	return &secretService{}
}
