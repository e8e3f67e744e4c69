package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/allisson/accessvault/internal/config"
	cryptoDomain "github.com/allisson/accessvault/internal/crypto/domain"
)

// NewProviders builds the providers described by cfg.
//
// The active provider is always built. The inactive one is built only when its
// fields are present, which keeps payloads written before a provider switch
// readable until they are reencrypted.
func NewProviders(
	ctx context.Context,
	cfg config.SecretsConfig,
	kmsService KMSService,
	aeadManager AEADManager,
) ([]Provider, error) {
	var providers []Provider

	if cfg.Provider == cryptoDomain.StaticSecret || cfg.StaticSecret != "" {
		static, err := NewStaticSecretProvider(
			aeadManager,
			cfg.StaticSecretAlgorithm,
			cfg.StaticSecret,
			cfg.StaticSecretRetired...,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create static secret provider: %w", err)
		}
		providers = append(providers, static)
	}

	if cfg.Provider == cryptoDomain.CloudKMS || hasCloudKMSConfig(cfg) {
		keeper, err := kmsService.OpenKeeper(ctx, cfg.KMSKeeperURL())
		if err != nil {
			_ = CloseProviders(providers)
			return nil, fmt.Errorf("failed to create cloud kms provider: %w", err)
		}
		providers = append(providers, NewCloudKMSProvider(keeper, CloudKMSKeyRef(cfg), cfg.CloudKMSTimeout))
	}

	return providers, nil
}

// CloudKMSKeyRef returns the key reference recorded on Cloud KMS payloads.
// A URI override may embed credentials or key material, so only its digest is used.
func CloudKMSKeyRef(cfg config.SecretsConfig) string {
	if cfg.CloudKMSKeyURI == "" {
		return cfg.KMSKeyName()
	}
	sum := sha256.Sum256([]byte(cfg.CloudKMSKeyURI))
	return "uri-" + hex.EncodeToString(sum[:8])
}

func hasCloudKMSConfig(cfg config.SecretsConfig) bool {
	if cfg.CloudKMSKeyURI != "" {
		return true
	}
	return cfg.GoogleKMSProjectID != "" &&
		cfg.GoogleKMSLocationID != "" &&
		cfg.GoogleKMSKeyRingID != "" &&
		cfg.GoogleKMSKeyID != ""
}

// CloseProviders releases providers holding external resources.
func CloseProviders(providers []Provider) error {
	var firstErr error
	for _, p := range providers {
		if c, ok := p.(interface{ Close() error }); ok {
			if err := c.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
