// Package usecase implements the credential vault on top of the key-protection providers.
//
// The vault is the only component that handles plaintext secret material outside a
// provider call. It holds no state besides its providers: callers store and load
// the ProtectedPayload themselves.
package usecase

import (
	"context"

	cryptoDomain "github.com/allisson/accessvault/internal/crypto/domain"
)

// VaultUseCase protects and reveals sensitive byte payloads.
//
// Provider errors are returned unchanged, so callers can tell ErrProviderUnavailable
// (retry-worthy) from ErrDecryptIntegrity (tampering or wrong key, never retried).
type VaultUseCase interface {
	// Protect encrypts plaintext with the active provider. The returned payload
	// always records the active provider identity.
	Protect(ctx context.Context, plaintext []byte) (cryptoDomain.ProtectedPayload, error)

	// Reveal decrypts payload with the provider recorded on it, which is not
	// necessarily the active one.
	Reveal(ctx context.Context, payload cryptoDomain.ProtectedPayload) ([]byte, error)

	// Reencrypt reveals payload and protects the plaintext under target. The input
	// payload is never modified; on failure the caller keeps the original.
	Reencrypt(
		ctx context.Context,
		payload cryptoDomain.ProtectedPayload,
		target cryptoDomain.ProviderIdentity,
	) (cryptoDomain.ProtectedPayload, error)

	// KeyRef returns the key reference target currently protects with.
	// Returns ErrUnsupportedProvider if target is not configured.
	KeyRef(target cryptoDomain.ProviderIdentity) (string, error)

	// ActiveProvider returns the identity new payloads are protected with.
	ActiveProvider() cryptoDomain.ProviderIdentity
}
