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

const mysqlCredentialColumns = `public_id, account_id, environment, secret_payload, created_at, revoked_at`

// MySQLAccessCredentialRepository implements AccessCredential persistence for MySQL.
type MySQLAccessCredentialRepository struct {
	db *sql.DB
}

// Create inserts a new access credential.
func (m *MySQLAccessCredentialRepository) Create(
	ctx context.Context,
	credential *accessDomain.AccessCredential,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO access_credentials
			  (public_id, account_id, environment, secret_payload, secret_provider, secret_key_ref, created_at, revoked_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

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
func (m *MySQLAccessCredentialRepository) Get(
	ctx context.Context,
	publicID string,
) (*accessDomain.AccessCredential, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + mysqlCredentialColumns + `
			  FROM access_credentials
			  WHERE public_id = ?`

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
func (m *MySQLAccessCredentialRepository) ListByAccount(
	ctx context.Context,
	accountID string,
	offset, limit int,
) ([]*accessDomain.AccessCredential, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + mysqlCredentialColumns + `
			  FROM access_credentials
			  WHERE account_id = ?
			  ORDER BY created_at DESC, public_id DESC
			  LIMIT ? OFFSET ?`

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
func (m *MySQLAccessCredentialRepository) Revoke(
	ctx context.Context,
	publicID string,
	revokedAt time.Time,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE access_credentials
			  SET revoked_at = ?
			  WHERE public_id = ? AND revoked_at IS NULL`

	if _, err := querier.ExecContext(ctx, query, revokedAt, publicID); err != nil {
		return apperrors.Wrap(err, "failed to revoke access credential")
	}
	return nil
}

// UpdatePayload swaps the secret payload when the stored one still equals current.
func (m *MySQLAccessCredentialRepository) UpdatePayload(
	ctx context.Context,
	publicID string,
	current, replacement cryptoDomain.ProtectedPayload,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE access_credentials
			  SET secret_payload = ?, secret_provider = ?, secret_key_ref = ?
			  WHERE public_id = ? AND secret_payload = ?`

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
func (m *MySQLAccessCredentialRepository) ListStale(
	ctx context.Context,
	provider cryptoDomain.ProviderIdentity,
	keyRef string,
	after string,
	limit int,
) ([]*accessDomain.AccessCredential, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + mysqlCredentialColumns + `
			  FROM access_credentials
			  WHERE (secret_provider <> ? OR secret_key_ref <> ?) AND public_id > ?
			  ORDER BY public_id
			  LIMIT ?`

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

// NewMySQLAccessCredentialRepository creates a new MySQL access credential repository.
func NewMySQLAccessCredentialRepository(db *sql.DB) *MySQLAccessCredentialRepository {
	return &MySQLAccessCredentialRepository{db: db}
}
