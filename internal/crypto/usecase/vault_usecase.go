package usecase

import (
	"context"
	"fmt"

	cryptoDomain "github.com/allisson/accessvault/internal/crypto/domain"
	cryptoService "github.com/allisson/accessvault/internal/crypto/service"
)

// vaultUseCase dispatches to providers by identity. The provider map is built once
// and only read afterwards.
type vaultUseCase struct {
	active    cryptoDomain.ProviderIdentity
	providers map[cryptoDomain.ProviderIdentity]cryptoService.Provider
}

// NewVaultUseCase creates a vault that protects with active and reveals with any
// of providers. Returns ErrUnsupportedProvider if active is not among providers.
func NewVaultUseCase(
	active cryptoDomain.ProviderIdentity,
	providers ...cryptoService.Provider,
) (VaultUseCase, error) {
	byIdentity := make(map[cryptoDomain.ProviderIdentity]cryptoService.Provider, len(providers))
	for _, p := range providers {
		byIdentity[p.Identity()] = p
	}

	if _, ok := byIdentity[active]; !ok {
		return nil, fmt.Errorf("%w: %q is not configured", cryptoDomain.ErrUnsupportedProvider, active)
	}

	return &vaultUseCase{
		active:    active,
		providers: byIdentity,
	}, nil
}

// Protect encrypts plaintext with the active provider.
func (v *vaultUseCase) Protect(ctx context.Context, plaintext []byte) (cryptoDomain.ProtectedPayload, error) {
	return v.providers[v.active].Encrypt(ctx, plaintext)
}

// Reveal decrypts payload with the provider recorded on it. A payload whose
// provider is not configured in this process cannot be authenticated and is
// reported as ErrDecryptIntegrity.
func (v *vaultUseCase) Reveal(
	ctx context.Context,
	payload cryptoDomain.ProtectedPayload,
) ([]byte, error) {
	provider, ok := v.providers[payload.Provider]
	if !ok {
		return nil, cryptoDomain.ErrDecryptIntegrity
	}
	return provider.Decrypt(ctx, payload)
}

// Reencrypt reveals under the recorded provider and protects under target.
func (v *vaultUseCase) Reencrypt(
	ctx context.Context,
	payload cryptoDomain.ProtectedPayload,
	target cryptoDomain.ProviderIdentity,
) (cryptoDomain.ProtectedPayload, error) {
	targetProvider, ok := v.providers[target]
	if !ok {
		return cryptoDomain.ProtectedPayload{}, fmt.Errorf(
			"%w: %q is not configured",
			cryptoDomain.ErrUnsupportedProvider,
			target,
		)
	}

	plaintext, err := v.Reveal(ctx, payload)
	if err != nil {
		return cryptoDomain.ProtectedPayload{}, err
	}
	defer cryptoDomain.Zero(plaintext)

	return targetProvider.Encrypt(ctx, plaintext)
}

// KeyRef returns the key reference target currently protects with.
func (v *vaultUseCase) KeyRef(target cryptoDomain.ProviderIdentity) (string, error) {
	provider, ok := v.providers[target]
	if !ok {
		return "", fmt.Errorf("%w: %q is not configured", cryptoDomain.ErrUnsupportedProvider, target)
	}
	return provider.KeyRef(), nil
}

// ActiveProvider returns the identity new payloads are protected with.
func (v *vaultUseCase) ActiveProvider() cryptoDomain.ProviderIdentity {
	return v.active
}
