package usecase

import (
	"context"
	"errors"
	"time"

	cryptoDomain "github.com/allisson/accessvault/internal/crypto/domain"
	"github.com/allisson/accessvault/internal/metrics"
)

// vaultUseCaseWithMetrics decorates VaultUseCase with metrics instrumentation.
type vaultUseCaseWithMetrics struct {
	next    VaultUseCase
	metrics metrics.BusinessMetrics
}

// NewVaultUseCaseWithMetrics wraps a VaultUseCase with metrics recording.
func NewVaultUseCaseWithMetrics(useCase VaultUseCase, m metrics.BusinessMetrics) VaultUseCase {
	return &vaultUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Protect records metrics for protect operations.
func (v *vaultUseCaseWithMetrics) Protect(
	ctx context.Context,
	plaintext []byte,
) (cryptoDomain.ProtectedPayload, error) {
	start := time.Now()
	payload, err := v.next.Protect(ctx, plaintext)
	v.record(ctx, "vault_protect", start, err)
	return payload, err
}

// Reveal records metrics for reveal operations.
func (v *vaultUseCaseWithMetrics) Reveal(
	ctx context.Context,
	payload cryptoDomain.ProtectedPayload,
) ([]byte, error) {
	start := time.Now()
	plaintext, err := v.next.Reveal(ctx, payload)
	v.record(ctx, "vault_reveal", start, err)
	return plaintext, err
}

// Reencrypt records metrics for reencrypt operations.
func (v *vaultUseCaseWithMetrics) Reencrypt(
	ctx context.Context,
	payload cryptoDomain.ProtectedPayload,
	target cryptoDomain.ProviderIdentity,
) (cryptoDomain.ProtectedPayload, error) {
	start := time.Now()
	out, err := v.next.Reencrypt(ctx, payload, target)
	v.record(ctx, "vault_reencrypt", start, err)
	return out, err
}

// KeyRef delegates without recording.
func (v *vaultUseCaseWithMetrics) KeyRef(target cryptoDomain.ProviderIdentity) (string, error) {
	return v.next.KeyRef(target)
}

// ActiveProvider delegates without recording.
func (v *vaultUseCaseWithMetrics) ActiveProvider() cryptoDomain.ProviderIdentity {
	return v.next.ActiveProvider()
}

func (v *vaultUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := errorStatus(err)
	v.metrics.RecordOperation(ctx, "crypto", operation, status)
	v.metrics.RecordDuration(ctx, "crypto", operation, time.Since(start), status)
}

// errorStatus separates transient provider failures from integrity failures.
func errorStatus(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, cryptoDomain.ErrProviderUnavailable):
		return "unavailable"
	case errors.Is(err, cryptoDomain.ErrDecryptIntegrity):
		return "integrity_failure"
	default:
		return "error"
	}
}
