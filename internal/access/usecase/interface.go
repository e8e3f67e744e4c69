// Package usecase implements the access credential issuer.
//
// Issue is the only point where a plaintext credential secret leaves the vault
// boundary. After the mint response the secret exists only as a ProtectedPayload.
package usecase

import (
	"context"
	"time"

	accessDomain "github.com/allisson/accessvault/internal/access/domain"
	cryptoDomain "github.com/allisson/accessvault/internal/crypto/domain"
)

// AccessCredentialRepository defines the persistence operations the issuer needs.
// Implementations treat the secret payload as an opaque value and never log it.
type AccessCredentialRepository interface {
	// Create stores a new credential. Returns ErrCredentialConflict on a duplicate public id.
	Create(ctx context.Context, credential *accessDomain.AccessCredential) error

	// Get returns a credential by public id or ErrCredentialNotFound.
	Get(ctx context.Context, publicID string) (*accessDomain.AccessCredential, error)

	// ListByAccount returns a page of credentials owned by accountID, newest first.
	ListByAccount(
		ctx context.Context,
		accountID string,
		offset, limit int,
	) ([]*accessDomain.AccessCredential, error)

	// Revoke sets revoked_at if it is not already set.
	Revoke(ctx context.Context, publicID string, revokedAt time.Time) error

	// UpdatePayload replaces the secret payload only if the stored payload still
	// equals current. Returns ErrCredentialConflict when it does not.
	UpdatePayload(
		ctx context.Context,
		publicID string,
		current, replacement cryptoDomain.ProtectedPayload,
	) error

	// ListStale returns up to limit credentials whose payload was not produced by
	// provider under keyRef and whose public id sorts after the cursor, ordered
	// by public id. An empty cursor starts from the beginning.
	ListStale(
		ctx context.Context,
		provider cryptoDomain.ProviderIdentity,
		keyRef string,
		after string,
		limit int,
	) ([]*accessDomain.AccessCredential, error)
}

// AccessCredentialUseCase defines the access credential operations.
type AccessCredentialUseCase interface {
	// Issue mints a credential for input.AccountID and input.Environment. If the
	// secret cannot be protected nothing is stored and no secret is returned.
	Issue(ctx context.Context, input *accessDomain.IssueInput) (*accessDomain.IssueOutput, error)

	// Get returns a credential owned by accountID.
	Get(ctx context.Context, accountID, publicID string) (*accessDomain.AccessCredential, error)

	// List returns a page of credentials owned by accountID. Secrets are never included.
	List(ctx context.Context, accountID string, offset, limit int) ([]*accessDomain.AccessCredential, error)

	// Revoke revokes a credential owned by accountID. Revoking twice is not an error.
	Revoke(ctx context.Context, accountID, publicID string) error

	// VerifySecret checks a presented secret against the stored credential.
	// Mismatches and revoked credentials return ErrInvalidSecret.
	VerifySecret(ctx context.Context, publicID, presentedSecret string) (*accessDomain.AccessCredential, error)

	// RewrapBatch reencrypts up to batchSize credentials after the cursor that are
	// not yet protected by the current key of target. Records that fail their
	// integrity check are counted as skipped; the batch goes on without them.
	RewrapBatch(
		ctx context.Context,
		target cryptoDomain.ProviderIdentity,
		after string,
		batchSize int,
	) (accessDomain.RewrapResult, error)
}
