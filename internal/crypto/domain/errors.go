package domain

import (
	"github.com/allisson/accessvault/internal/errors"
)

// Envelope-encryption error definitions.
//
// Providers return these errors unchanged through the vault so callers can tell a
// retry-worthy failure from a tampering or wrong-key failure.
var (
	// ErrProviderUnavailable indicates the key-protection backend could not be reached
	// or refused the caller (network failure, timeout, missing permission).
	//
	// This error is transient: callers may retry with backoff.
	//
	// HTTP Status: 503 Service Unavailable
	ErrProviderUnavailable = errors.Wrap(errors.ErrUnavailable, "key provider unavailable")

	// ErrDecryptIntegrity indicates a protected payload could not be authenticated.
	//
	// This error can occur due to:
	//   - Payload produced by a different provider or key
	//   - Ciphertext has been tampered with (authentication failure)
	//   - Malformed or truncated payload encoding
	//
	// The specific cause is never disclosed. Never retried.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrDecryptIntegrity = errors.Wrap(errors.ErrInvalidInput, "decrypt integrity failure")

	// ErrUnsupportedProvider indicates an unknown provider identity.
	ErrUnsupportedProvider = errors.Wrap(errors.ErrInvalidInput, "unsupported key provider")

	// ErrUnsupportedAlgorithm indicates the requested encryption algorithm is not supported.
	//
	// Supported algorithms: AESGCM (AES-256-GCM), ChaCha20 (ChaCha20-Poly1305)
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates a cipher key is not exactly KeySize bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")
)
