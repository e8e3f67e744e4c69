package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	accessDomain "github.com/allisson/accessvault/internal/access/domain"
	accessService "github.com/allisson/accessvault/internal/access/service"
	cryptoDomain "github.com/allisson/accessvault/internal/crypto/domain"
	cryptoUseCase "github.com/allisson/accessvault/internal/crypto/usecase"
	"github.com/allisson/accessvault/internal/database"
)

// accessCredentialUseCase implements AccessCredentialUseCase.
type accessCredentialUseCase struct {
	repo          AccessCredentialRepository
	txManager     database.TxManager
	vault         cryptoUseCase.VaultUseCase
	secretService accessService.SecretService
	idService     accessService.IDService
	retry         RetryPolicy
	logger        *slog.Logger
}

// Issue generates a secret and a public id, protects the secret and stores the record.
func (a *accessCredentialUseCase) Issue(
	ctx context.Context,
	input *accessDomain.IssueInput,
) (*accessDomain.IssueOutput, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	secret, err := a.secretService.GenerateSecret(input.Environment)
	if err != nil {
		return nil, err
	}
	oneTime := accessDomain.NewOneTimeSecret(secret)

	publicID, err := a.idService.NewID(accessDomain.PrefixAccessCredential)
	if err != nil {
		oneTime.Discard()
		return nil, err
	}

	payload, err := retryUnavailable(ctx, a.retry, func() (cryptoDomain.ProtectedPayload, error) {
		return a.vault.Protect(ctx, secret)
	})
	if err != nil {
		oneTime.Discard()
		a.logger.WarnContext(ctx, "failed to protect access credential secret",
			slog.String("public_id", publicID),
			slog.Any("error", err),
		)
		return nil, err
	}

	credential := &accessDomain.AccessCredential{
		PublicID:      publicID,
		AccountID:     input.AccountID,
		Environment:   input.Environment,
		SecretPayload: payload,
		CreatedAt:     time.Now().UTC(),
	}

	if err := a.repo.Create(ctx, credential); err != nil {
		oneTime.Discard()
		return nil, err
	}

	a.logger.InfoContext(ctx, "access credential issued",
		slog.String("public_id", publicID),
		slog.String("account_id", input.AccountID),
		slog.String("environment", input.Environment.String()),
		slog.String("provider", payload.Provider.String()),
	)

	return &accessDomain.IssueOutput{
		PublicID:    publicID,
		Environment: input.Environment,
		CreatedAt:   credential.CreatedAt,
		Secret:      oneTime,
	}, nil
}

// Get returns the credential if accountID owns it.
func (a *accessCredentialUseCase) Get(
	ctx context.Context,
	accountID, publicID string,
) (*accessDomain.AccessCredential, error) {
	if _, _, err := accessDomain.ParsePublicID(publicID); err != nil {
		return nil, accessDomain.ErrCredentialNotFound
	}

	credential, err := a.repo.Get(ctx, publicID)
	if err != nil {
		return nil, err
	}

	if credential.AccountID != accountID {
		return nil, accessDomain.ErrCredentialNotFound
	}

	return credential, nil
}

// List returns a page of the account's credentials.
func (a *accessCredentialUseCase) List(
	ctx context.Context,
	accountID string,
	offset, limit int,
) ([]*accessDomain.AccessCredential, error) {
	if accountID == "" {
		return nil, accessDomain.ErrInvalidAccountID
	}
	return a.repo.ListByAccount(ctx, accountID, offset, limit)
}

// Revoke marks the credential revoked. Already revoked credentials are left as they are.
func (a *accessCredentialUseCase) Revoke(ctx context.Context, accountID, publicID string) error {
	revoked := false
	err := a.txManager.WithTx(ctx, func(ctx context.Context) error {
		credential, err := a.Get(ctx, accountID, publicID)
		if err != nil {
			return err
		}

		if credential.IsRevoked() {
			return nil
		}

		revoked = true
		return a.repo.Revoke(ctx, publicID, time.Now().UTC())
	})
	if err != nil {
		return err
	}

	if revoked {
		a.logger.InfoContext(ctx, "access credential revoked",
			slog.String("public_id", publicID),
			slog.String("account_id", accountID),
		)
	}
	return nil
}

// VerifySecret reveals the stored secret and compares it in constant time.
func (a *accessCredentialUseCase) VerifySecret(
	ctx context.Context,
	publicID, presentedSecret string,
) (*accessDomain.AccessCredential, error) {
	if _, _, err := accessDomain.ParsePublicID(publicID); err != nil {
		return nil, accessDomain.ErrInvalidSecret
	}

	credential, err := a.repo.Get(ctx, publicID)
	if err != nil {
		if errors.Is(err, accessDomain.ErrCredentialNotFound) {
			return nil, accessDomain.ErrInvalidSecret
		}
		return nil, err
	}

	if credential.IsRevoked() {
		return nil, accessDomain.ErrInvalidSecret
	}

	stored, err := retryUnavailable(ctx, a.retry, func() ([]byte, error) {
		return a.vault.Reveal(ctx, credential.SecretPayload)
	})
	if errors.Is(err, cryptoDomain.ErrProviderUnavailable) {
		return nil, err
	}
	if err != nil {
		a.logger.ErrorContext(ctx, "stored access credential could not be revealed",
			slog.String("public_id", credential.PublicID),
			slog.String("provider", credential.SecretPayload.Provider.String()),
			slog.Any("error", err),
		)
		return nil, accessDomain.ErrInvalidSecret
	}
	defer cryptoDomain.Zero(stored)

	if !a.secretService.CompareSecret([]byte(presentedSecret), stored) {
		return nil, accessDomain.ErrInvalidSecret
	}

	return credential, nil
}

// RewrapBatch moves up to batchSize credentials after the cursor to the current
// key of target. This covers a provider switch as well as a static secret
// rotation. A record is written only after its reencrypt succeeded, and only if
// nobody changed it meanwhile.
func (a *accessCredentialUseCase) RewrapBatch(
	ctx context.Context,
	target cryptoDomain.ProviderIdentity,
	after string,
	batchSize int,
) (accessDomain.RewrapResult, error) {
	var result accessDomain.RewrapResult

	keyRef, err := a.vault.KeyRef(target)
	if err != nil {
		return result, err
	}

	credentials, err := a.repo.ListStale(ctx, target, keyRef, after, batchSize)
	if err != nil {
		return result, err
	}

	for _, credential := range credentials {
		replacement, err := retryUnavailable(ctx, a.retry, func() (cryptoDomain.ProtectedPayload, error) {
			return a.vault.Reencrypt(ctx, credential.SecretPayload, target)
		})
		if errors.Is(err, cryptoDomain.ErrDecryptIntegrity) {
			a.logger.ErrorContext(ctx, "skipping access credential that failed its integrity check",
				slog.String("public_id", credential.PublicID),
				slog.String("provider", credential.SecretPayload.Provider.String()),
			)
			result.Skipped++
			result.Next = credential.PublicID
			continue
		}
		if err != nil {
			a.logger.ErrorContext(ctx, "failed to reencrypt access credential",
				slog.String("public_id", credential.PublicID),
				slog.String("provider", credential.SecretPayload.Provider.String()),
				slog.Any("error", err),
			)
			return result, err
		}

		err = a.repo.UpdatePayload(ctx, credential.PublicID, credential.SecretPayload, replacement)
		switch {
		case errors.Is(err, accessDomain.ErrCredentialConflict):
			a.logger.WarnContext(ctx, "access credential changed during rewrap",
				slog.String("public_id", credential.PublicID),
			)
			result.Conflicts++
		case err != nil:
			return result, err
		default:
			result.Rewrapped++
		}
		result.Next = credential.PublicID
	}

	return result, nil
}

// NewAccessCredentialUseCase creates a new AccessCredentialUseCase.
func NewAccessCredentialUseCase(
	repo AccessCredentialRepository,
	txManager database.TxManager,
	vault cryptoUseCase.VaultUseCase,
	secretService accessService.SecretService,
	idService accessService.IDService,
	retry RetryPolicy,
	logger *slog.Logger,
) AccessCredentialUseCase {
	return &accessCredentialUseCase{
		repo:          repo,
		txManager:     txManager,
		vault:         vault,
		secretService: secretService,
		idService:     idService,
		retry:         retry,
		logger:        logger,
	}
}
