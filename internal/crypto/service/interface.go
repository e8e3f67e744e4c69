// Package service implements the key-protection providers of the envelope-encryption layer.
//
// CloudKMSProvider delegates to an external key-management service through a
// gocloud.dev secrets keeper. StaticSecretProvider encrypts locally with AEAD
// ciphers keyed from a configured pre-shared secret.
package service

import (
	"context"

	cryptoDomain "github.com/allisson/accessvault/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	// The nonce is always generated internally.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)

	// NonceSize returns the size of the nonces produced by Encrypt.
	NonceSize() int
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// Provider is the encrypt/decrypt capability of one key-protection backend.
//
// Decrypt must fail with ErrDecryptIntegrity for payloads it did not produce,
// including payloads recorded under another provider identity.
type Provider interface {
	// Identity returns the provider identity recorded on produced payloads.
	Identity() cryptoDomain.ProviderIdentity

	// KeyRef returns the key reference recorded on payloads produced now.
	KeyRef() string

	// Encrypt protects plaintext and returns the resulting payload.
	Encrypt(ctx context.Context, plaintext []byte) (cryptoDomain.ProtectedPayload, error)

	// Decrypt recovers the plaintext of a payload produced by Encrypt.
	Decrypt(ctx context.Context, payload cryptoDomain.ProtectedPayload) ([]byte, error)
}

// KMSKeeper is the subset of *secrets.Keeper used by CloudKMSProvider.
type KMSKeeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// KMSService opens keepers for gocloud.dev secrets URLs.
type KMSService interface {
	// OpenKeeper opens a keeper for keyURI.
	// Returns an error if the URI is invalid or the driver cannot be initialized.
	OpenKeeper(ctx context.Context, keyURI string) (KMSKeeper, error)
}
