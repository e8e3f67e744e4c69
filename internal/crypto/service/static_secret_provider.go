package service

import (
	"context"
	"fmt"

	cryptoDomain "github.com/allisson/accessvault/internal/crypto/domain"
)

// StaticSecretProvider encrypts locally with a key derived from a pre-shared secret.
//
// The ring holds the active secret plus retired secrets kept for decrypt only.
// Payloads carry the fingerprint of the secret that produced them, so a payload
// stays readable after rotation as long as its secret is still in the ring.
// Ciphertext layout is nonce || sealed data.
type StaticSecretProvider struct {
	activeRef string
	ciphers   map[string]AEAD
}

// NewStaticSecretProvider builds a provider from the active secret and any retired
// secrets. All secrets share alg.
func NewStaticSecretProvider(
	aeadManager AEADManager,
	alg cryptoDomain.Algorithm,
	secret string,
	retired ...string,
) (*StaticSecretProvider, error) {
	p := &StaticSecretProvider{ciphers: make(map[string]AEAD, len(retired)+1)}

	activeRef, err := p.add(aeadManager, alg, secret)
	if err != nil {
		return nil, err
	}
	p.activeRef = activeRef

	for _, s := range retired {
		if _, err := p.add(aeadManager, alg, s); err != nil {
			return nil, err
		}
	}

	return p, nil
}

func (p *StaticSecretProvider) add(
	aeadManager AEADManager,
	alg cryptoDomain.Algorithm,
	secret string,
) (string, error) {
	key, err := DeriveStaticKey([]byte(secret))
	if err != nil {
		return "", err
	}
	defer cryptoDomain.Zero(key)

	ref, err := StaticKeyFingerprint([]byte(secret))
	if err != nil {
		return "", err
	}

	cipher, err := aeadManager.CreateCipher(key, alg)
	if err != nil {
		return "", err
	}

	p.ciphers[ref] = cipher
	return ref, nil
}

// Identity returns StaticSecret.
func (p *StaticSecretProvider) Identity() cryptoDomain.ProviderIdentity {
	return cryptoDomain.StaticSecret
}

// KeyRef returns the fingerprint of the active secret.
func (p *StaticSecretProvider) KeyRef() string {
	return p.activeRef
}

// Encrypt seals plaintext under the active secret with a fresh nonce.
func (p *StaticSecretProvider) Encrypt(
	_ context.Context,
	plaintext []byte,
) (cryptoDomain.ProtectedPayload, error) {
	cipher := p.ciphers[p.activeRef]

	sealed, nonce, err := cipher.Encrypt(plaintext, staticAAD(p.activeRef))
	if err != nil {
		return cryptoDomain.ProtectedPayload{}, fmt.Errorf("failed to encrypt: %w", err)
	}

	return cryptoDomain.ProtectedPayload{
		Provider:   cryptoDomain.StaticSecret,
		KeyRef:     p.activeRef,
		Ciphertext: append(nonce, sealed...),
	}, nil
}

// Decrypt opens a payload produced under any secret in the ring.
// Every failure is reported as ErrDecryptIntegrity without further detail.
func (p *StaticSecretProvider) Decrypt(
	_ context.Context,
	payload cryptoDomain.ProtectedPayload,
) ([]byte, error) {
	if payload.Provider != cryptoDomain.StaticSecret {
		return nil, cryptoDomain.ErrDecryptIntegrity
	}

	cipher, ok := p.ciphers[payload.KeyRef]
	if !ok {
		return nil, cryptoDomain.ErrDecryptIntegrity
	}

	nonceSize := cipher.NonceSize()
	if len(payload.Ciphertext) < nonceSize {
		return nil, cryptoDomain.ErrDecryptIntegrity
	}

	nonce, sealed := payload.Ciphertext[:nonceSize], payload.Ciphertext[nonceSize:]
	plaintext, err := cipher.Decrypt(sealed, nonce, staticAAD(payload.KeyRef))
	if err != nil {
		return nil, cryptoDomain.ErrDecryptIntegrity
	}
	return plaintext, nil
}

// staticAAD binds ciphertext to the provider identity and key reference.
func staticAAD(keyRef string) []byte {
	return []byte(cryptoDomain.StaticSecret.String() + ":" + keyRef)
}
