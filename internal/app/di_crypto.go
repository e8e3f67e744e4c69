package app

import (
	"context"
	"fmt"
	"sync"

	cryptoService "github.com/allisson/accessvault/internal/crypto/service"
	cryptoUseCase "github.com/allisson/accessvault/internal/crypto/usecase"
)

type cryptoComponents struct {
	aeadManager  cryptoService.AEADManager
	kmsService   cryptoService.KMSService
	providers    []cryptoService.Provider
	vaultUseCase cryptoUseCase.VaultUseCase

	aeadManagerInit  sync.Once
	kmsServiceInit   sync.Once
	providersInit    sync.Once
	vaultUseCaseInit sync.Once
}

// AEADManager returns the AEAD manager service.
func (c *Container) AEADManager() cryptoService.AEADManager {
	c.aeadManagerInit.Do(func() {
		c.aeadManager = cryptoService.NewAEADManager()
	})
	return c.aeadManager
}

// KMSService returns the KMS service.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// Providers returns every key-protection provider configured in this process.
func (c *Container) Providers(ctx context.Context) ([]cryptoService.Provider, error) {
	c.providersInit.Do(func() {
		providers, err := cryptoService.NewProviders(ctx, c.config.Secrets, c.KMSService(), c.AEADManager())
		c.setResult("providers", err)
		c.providers = providers
	})
	if err := c.storedError("providers"); err != nil {
		return nil, err
	}
	return c.providers, nil
}

// VaultUseCase returns the credential vault, wrapped with metrics.
func (c *Container) VaultUseCase(ctx context.Context) (cryptoUseCase.VaultUseCase, error) {
	c.vaultUseCaseInit.Do(func() {
		vault, err := c.initVaultUseCase(ctx)
		c.setResult("vaultUseCase", err)
		c.vaultUseCase = vault
	})
	if err := c.storedError("vaultUseCase"); err != nil {
		return nil, err
	}
	return c.vaultUseCase, nil
}

func (c *Container) initVaultUseCase(ctx context.Context) (cryptoUseCase.VaultUseCase, error) {
	providers, err := c.Providers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create key providers: %w", err)
	}

	vault, err := cryptoUseCase.NewVaultUseCase(c.config.Secrets.Provider, providers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}

	return cryptoUseCase.NewVaultUseCaseWithMetrics(vault, businessMetrics), nil
}

// closeProviders releases provider resources. The caller holds c.mu.
func (c *Container) closeProviders() error {
	if len(c.providers) == 0 {
		return nil
	}
	err := cryptoService.CloseProviders(c.providers)
	c.providers = nil
	return err
}
