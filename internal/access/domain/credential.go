package domain

import (
	"time"

	cryptoDomain "github.com/allisson/accessvault/internal/crypto/domain"
)

// AccessCredential is a platform credential as stored. The plaintext secret is
// never part of it: only its protected form is kept.
type AccessCredential struct {
	PublicID      string
	AccountID     string
	Environment   Environment
	SecretPayload cryptoDomain.ProtectedPayload
	CreatedAt     time.Time
	RevokedAt     *time.Time
}

// IsRevoked reports whether the credential has been revoked.
func (c *AccessCredential) IsRevoked() bool {
	return c.RevokedAt != nil
}

// IssueOutput is the result of minting a credential. The secret can be read
// once through Secret.Take.
type IssueOutput struct {
	PublicID    string
	Environment Environment
	CreatedAt   time.Time
	Secret      *OneTimeSecret
}
