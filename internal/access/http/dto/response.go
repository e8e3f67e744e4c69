package dto

import (
	"time"

	accessDomain "github.com/allisson/accessvault/internal/access/domain"
)

// CreateAccessCredentialResponse contains a freshly minted credential.
// SECURITY: The secret is only returned once and must be saved securely.
type CreateAccessCredentialResponse struct {
	ID          string    `json:"id"`
	Secret      string    `json:"secret"` //nolint:gosec // returned once on creation
	Environment string    `json:"environment"`
	CreatedAt   time.Time `json:"created_at"`
}

// AccessCredentialResponse represents a credential in API responses (excludes the secret).
type AccessCredentialResponse struct {
	ID          string     `json:"id"`
	AccountID   string     `json:"account_id"`
	Environment string     `json:"environment"`
	Provider    string     `json:"provider"`
	CreatedAt   time.Time  `json:"created_at"`
	RevokedAt   *time.Time `json:"revoked_at,omitempty"`
}

// MapAccessCredentialToResponse converts a domain credential to an API response.
func MapAccessCredentialToResponse(credential *accessDomain.AccessCredential) AccessCredentialResponse {
	return AccessCredentialResponse{
		ID:          credential.PublicID,
		AccountID:   credential.AccountID,
		Environment: credential.Environment.String(),
		Provider:    credential.SecretPayload.Provider.String(),
		CreatedAt:   credential.CreatedAt,
		RevokedAt:   credential.RevokedAt,
	}
}

// ListAccessCredentialsResponse represents a page of credentials.
type ListAccessCredentialsResponse struct {
	Data []AccessCredentialResponse `json:"data"`
}

// MapAccessCredentialsToListResponse converts domain credentials to a list response.
func MapAccessCredentialsToListResponse(
	credentials []*accessDomain.AccessCredential,
) ListAccessCredentialsResponse {
	data := make([]AccessCredentialResponse, 0, len(credentials))
	for _, credential := range credentials {
		data = append(data, MapAccessCredentialToResponse(credential))
	}
	return ListAccessCredentialsResponse{Data: data}
}

// GenerateIDResponse contains a freshly generated public identifier.
type GenerateIDResponse struct {
	ID string `json:"id"`
}
