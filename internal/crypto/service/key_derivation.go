package service

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	cryptoDomain "github.com/allisson/accessvault/internal/crypto/domain"
)

// HKDF info labels. The key and the fingerprint come from independent expansions,
// so a published fingerprint reveals nothing about the key.
const (
	staticKeyInfo         = "accessvault static-secret key v1"
	staticFingerprintInfo = "accessvault static-secret fingerprint v1"
	fingerprintSize       = 8
)

// DeriveStaticKey derives a KeySize cipher key from an arbitrary-length secret
// using HKDF-SHA256. The secret itself is never used as a key.
func DeriveStaticKey(secret []byte) ([]byte, error) {
	return expand(secret, staticKeyInfo, cryptoDomain.KeySize)
}

// StaticKeyFingerprint returns the hex-encoded key reference of a secret.
func StaticKeyFingerprint(secret []byte) (string, error) {
	fp, err := expand(secret, staticFingerprintInfo, fingerprintSize)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(fp), nil
}

func expand(secret []byte, info string, size int) ([]byte, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("%w: empty secret", cryptoDomain.ErrInvalidKeySize)
	}

	out := make([]byte, size)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(info)), out); err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	return out, nil
}
