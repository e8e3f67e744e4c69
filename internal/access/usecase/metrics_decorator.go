package usecase

import (
	"context"
	"errors"
	"time"

	accessDomain "github.com/allisson/accessvault/internal/access/domain"
	cryptoDomain "github.com/allisson/accessvault/internal/crypto/domain"
	"github.com/allisson/accessvault/internal/metrics"
)

// accessCredentialUseCaseWithMetrics decorates AccessCredentialUseCase with metrics instrumentation.
type accessCredentialUseCaseWithMetrics struct {
	next    AccessCredentialUseCase
	metrics metrics.BusinessMetrics
}

// NewAccessCredentialUseCaseWithMetrics wraps an AccessCredentialUseCase with metrics recording.
func NewAccessCredentialUseCaseWithMetrics(
	useCase AccessCredentialUseCase,
	m metrics.BusinessMetrics,
) AccessCredentialUseCase {
	return &accessCredentialUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (a *accessCredentialUseCaseWithMetrics) Issue(
	ctx context.Context,
	input *accessDomain.IssueInput,
) (*accessDomain.IssueOutput, error) {
	start := time.Now()
	output, err := a.next.Issue(ctx, input)
	a.record(ctx, "credential_issue", start, err)
	return output, err
}

func (a *accessCredentialUseCaseWithMetrics) Get(
	ctx context.Context,
	accountID, publicID string,
) (*accessDomain.AccessCredential, error) {
	start := time.Now()
	credential, err := a.next.Get(ctx, accountID, publicID)
	a.record(ctx, "credential_get", start, err)
	return credential, err
}

func (a *accessCredentialUseCaseWithMetrics) List(
	ctx context.Context,
	accountID string,
	offset, limit int,
) ([]*accessDomain.AccessCredential, error) {
	start := time.Now()
	credentials, err := a.next.List(ctx, accountID, offset, limit)
	a.record(ctx, "credential_list", start, err)
	return credentials, err
}

func (a *accessCredentialUseCaseWithMetrics) Revoke(ctx context.Context, accountID, publicID string) error {
	start := time.Now()
	err := a.next.Revoke(ctx, accountID, publicID)
	a.record(ctx, "credential_revoke", start, err)
	return err
}

func (a *accessCredentialUseCaseWithMetrics) VerifySecret(
	ctx context.Context,
	publicID, presentedSecret string,
) (*accessDomain.AccessCredential, error) {
	start := time.Now()
	credential, err := a.next.VerifySecret(ctx, publicID, presentedSecret)
	a.record(ctx, "credential_verify", start, err)
	return credential, err
}

func (a *accessCredentialUseCaseWithMetrics) RewrapBatch(
	ctx context.Context,
	target cryptoDomain.ProviderIdentity,
	after string,
	batchSize int,
) (accessDomain.RewrapResult, error) {
	start := time.Now()
	result, err := a.next.RewrapBatch(ctx, target, after, batchSize)
	a.record(ctx, "credential_rewrap", start, err)
	return result, err
}

func (a *accessCredentialUseCaseWithMetrics) record(
	ctx context.Context,
	operation string,
	start time.Time,
	err error,
) {
	status := "success"
	switch {
	case err == nil:
	case errors.Is(err, accessDomain.ErrInvalidSecret):
		status = "rejected"
	case errors.Is(err, cryptoDomain.ErrProviderUnavailable):
		status = "unavailable"
	default:
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "access", operation, status)
	a.metrics.RecordDuration(ctx, "access", operation, time.Since(start), status)
}
