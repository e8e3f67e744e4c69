package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// payloadFormatVersion prefixes every encoded payload.
const payloadFormatVersion = "v1"

// ProtectedPayload is a ciphertext together with what is needed to decrypt it later.
//
// Fields:
//   - Provider: identity of the backend that produced the ciphertext
//   - KeyRef: provider-specific key reference (KMS key name or static key fingerprint),
//     never key material
//   - Ciphertext: opaque bytes produced by the provider
type ProtectedPayload struct {
	Provider   ProviderIdentity
	KeyRef     string
	Ciphertext []byte
}

// String serializes the payload to "v1:provider:base64url(keyRef):base64(ciphertext)".
// The key reference is encoded because KMS URIs may contain the separator.
func (p ProtectedPayload) String() string {
	return fmt.Sprintf(
		"%s:%s:%s:%s",
		payloadFormatVersion,
		p.Provider,
		base64.RawURLEncoding.EncodeToString([]byte(p.KeyRef)),
		base64.StdEncoding.EncodeToString(p.Ciphertext),
	)
}

// ParseProtectedPayload parses the output of ProtectedPayload.String.
// Any malformed input is reported as ErrDecryptIntegrity.
func ParseProtectedPayload(content string) (ProtectedPayload, error) {
	parts := strings.Split(content, ":")
	if len(parts) != 4 {
		return ProtectedPayload{}, fmt.Errorf(
			"%w: expected 4 payload fields, got %d",
			ErrDecryptIntegrity,
			len(parts),
		)
	}

	if parts[0] != payloadFormatVersion {
		return ProtectedPayload{}, fmt.Errorf("%w: unknown payload version", ErrDecryptIntegrity)
	}

	provider := ProviderIdentity(parts[1])
	if !provider.Valid() {
		return ProtectedPayload{}, fmt.Errorf("%w: unknown payload provider", ErrDecryptIntegrity)
	}

	keyRef, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil || len(keyRef) == 0 {
		return ProtectedPayload{}, fmt.Errorf("%w: invalid key reference", ErrDecryptIntegrity)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(parts[3])
	if err != nil {
		return ProtectedPayload{}, fmt.Errorf("%w: invalid ciphertext encoding", ErrDecryptIntegrity)
	}

	return ProtectedPayload{
		Provider:   provider,
		KeyRef:     string(keyRef),
		Ciphertext: ciphertext,
	}, nil
}
