package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	accessDomain "github.com/allisson/accessvault/internal/access/domain"
	cryptoDomain "github.com/allisson/accessvault/internal/crypto/domain"
	"github.com/allisson/accessvault/internal/database"
	apperrors "github.com/allisson/accessvault/internal/errors"
)

const postgresqlCredentialColumns = `public_id, account_id, environment, secret_payload, created_at, revoked_at`

// PostgreSQLAccessCredentialRepository implements AccessCredential persistence for PostgreSQL.
type PostgreSQLAccessCredentialRepository struct {
	db *sql.DB
}

// Create inserts a new access credential.
func (p *PostgreSQLAccessCredentialRepository) Create(
	ctx context.Context,
	credential *accessDomain.AccessCredential,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO access_credentials
			  (public_id, account_id, environment, secret_payload, secret_provider, secret_key_ref, created_at, revoked_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := querier.ExecContext(
		ctx,
		query,
		credential.PublicID,
		credential.AccountID,
		credential.Environment.String(),
		credential.SecretPayload.String(),
		credential.SecretPayload.Provider.String(),
		credential.SecretPayload.KeyRef,
		credential.CreatedAt,
		nullableTime(credential.RevokedAt),
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return accessDomain.ErrCredentialConflict
		}
		return apperrors.Wrap(err, "failed to create access credential")
	}
	return nil
}

// Get retrieves an access credential by public id.
func (p *PostgreSQLAccessCredentialRepository) Get(
	ctx context.Context,
	publicID string,
) (*accessDomain.AccessCredential, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + postgresqlCredentialColumns + `
			  FROM access_credentials
			  WHERE public_id = $1`

	credential, err := scanCredential(querier.QueryRowContext(ctx, query, publicID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, accessDomain.ErrCredentialNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get access credential")
	}
	return credential, nil
}

// ListByAccount returns a page of credentials owned by accountID, newest first.
func (p *PostgreSQLAccessCredentialRepository) ListByAccount(
	ctx context.Context,
	accountID string,
	offset, limit int,
) ([]*accessDomain.AccessCredential, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + postgresqlCredentialColumns + `
			  FROM access_credentials
			  WHERE account_id = $1
			  ORDER BY created_at DESC, public_id DESC
			  LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list access credentials")
	}

	credentials, err := scanCredentials(rows)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list access credentials")
	}
	return credentials, nil
}

// Revoke sets revoked_at on a credential that is not revoked yet.
func (p *PostgreSQLAccessCredentialRepository) Revoke(
	ctx context.Context,
	publicID string,
	revokedAt time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE access_credentials
			  SET revoked_at = $1
			  WHERE public_id = $2 AND revoked_at IS NULL`

	if _, err := querier.ExecContext(ctx, query, revokedAt, publicID); err != nil {
		return apperrors.Wrap(err, "failed to revoke access credential")
	}
	return nil
}

// UpdatePayload swaps the secret payload when the stored one still equals current.
func (p *PostgreSQLAccessCredentialRepository) UpdatePayload(
	ctx context.Context,
	publicID string,
	current, replacement cryptoDomain.ProtectedPayload,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE access_credentials
			  SET secret_payload = $1, secret_provider = $2, secret_key_ref = $3
			  WHERE public_id = $4 AND secret_payload = $5`

	result, err := querier.ExecContext(
		ctx,
		query,
		replacement.String(),
		replacement.Provider.String(),
		replacement.KeyRef,
		publicID,
		current.String(),
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update access credential payload")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to update access credential payload")
	}
	if rows == 0 {
		return accessDomain.ErrCredentialConflict
	}
	return nil
}

// ListStale returns credentials not protected by provider under keyRef whose
// public id sorts after the given cursor.
func (p *PostgreSQLAccessCredentialRepository) ListStale(
	ctx context.Context,
	provider cryptoDomain.ProviderIdentity,
	keyRef string,
	after string,
	limit int,
) ([]*accessDomain.AccessCredential, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + postgresqlCredentialColumns + `
			  FROM access_credentials
			  WHERE (secret_provider <> $1 OR secret_key_ref <> $2) AND public_id > $3
			  ORDER BY public_id
			  LIMIT $4`

	rows, err := querier.QueryContext(ctx, query, provider.String(), keyRef, after, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list stale access credentials")
	}

	credentials, err := scanCredentials(rows)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list stale access credentials")
	}
	return credentials, nil
}

// NewPostgreSQLAccessCredentialRepository creates a new PostgreSQL access credential repository.
func NewPostgreSQLAccessCredentialRepository(db *sql.DB) *PostgreSQLAccessCredentialRepository {
	return &PostgreSQLAccessCredentialRepository{db: db}
}
