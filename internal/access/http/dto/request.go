// Package dto provides data transfer objects for the access credential endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	accessDomain "github.com/allisson/accessvault/internal/access/domain"
	customValidation "github.com/allisson/accessvault/internal/validation"
)

// CreateAccessCredentialRequest contains the optional parameters for minting a credential.
// The owning account always comes from the bearer token claims.
type CreateAccessCredentialRequest struct {
	Environment string `json:"environment"`
}

// Validate checks if the create request is valid.
func (r *CreateAccessCredentialRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Environment,
			validation.In(accessDomain.EnvironmentTest.String(), accessDomain.EnvironmentLive.String()),
		),
	)
}

// VerifyAccessCredentialRequest contains a presented public id and secret pair.
type VerifyAccessCredentialRequest struct {
	ID     string `json:"id"`
	Secret string `json:"secret"`
}

// Validate checks if the verify request is valid.
func (r *VerifyAccessCredentialRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ID,
			validation.Required,
			customValidation.Identifier,
		),
		validation.Field(&r.Secret,
			validation.Required,
			customValidation.Identifier,
		),
	)
}
