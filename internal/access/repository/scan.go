// Package repository implements access credential persistence for PostgreSQL and MySQL.
// The secret payload is stored as its serialized text form. Provider and key reference
// are copied into their own columns so stale records can be found without parsing.
package repository

import (
	"database/sql"
	"time"

	accessDomain "github.com/allisson/accessvault/internal/access/domain"
	cryptoDomain "github.com/allisson/accessvault/internal/crypto/domain"
	apperrors "github.com/allisson/accessvault/internal/errors"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCredential(row rowScanner) (*accessDomain.AccessCredential, error) {
	var (
		credential  accessDomain.AccessCredential
		environment string
		payload     string
		revokedAt   sql.NullTime
	)

	err := row.Scan(
		&credential.PublicID,
		&credential.AccountID,
		&environment,
		&payload,
		&credential.CreatedAt,
		&revokedAt,
	)
	if err != nil {
		return nil, err
	}

	credential.Environment, err = accessDomain.ParseEnvironment(environment)
	if err != nil {
		return nil, apperrors.Wrapf(err, "stored credential %s", credential.PublicID)
	}

	credential.SecretPayload, err = cryptoDomain.ParseProtectedPayload(payload)
	if err != nil {
		return nil, apperrors.Wrapf(err, "stored credential %s", credential.PublicID)
	}

	if revokedAt.Valid {
		t := revokedAt.Time.UTC()
		credential.RevokedAt = &t
	}
	credential.CreatedAt = credential.CreatedAt.UTC()

	return &credential, nil
}

func scanCredentials(rows *sql.Rows) ([]*accessDomain.AccessCredential, error) {
	defer func() {
		_ = rows.Close()
	}()

	credentials := make([]*accessDomain.AccessCredential, 0)
	for rows.Next() {
		credential, err := scanCredential(rows)
		if err != nil {
			return nil, err
		}
		credentials = append(credentials, credential)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return credentials, nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
