package domain

import (
	validation "github.com/jellydator/validation"

	appValidation "github.com/allisson/accessvault/internal/validation"
)

// IssueInput holds the owner of a new credential. AccountID comes from verified
// bearer token claims, never from the request body.
type IssueInput struct {
	AccountID   string
	Environment Environment
}

// Validate checks the issue input.
func (i *IssueInput) Validate() error {
	err := validation.ValidateStruct(i,
		validation.Field(&i.AccountID, validation.Required, appValidation.Identifier),
		validation.Field(&i.Environment, validation.Required, validation.In(EnvironmentTest, EnvironmentLive)),
	)
	return appValidation.WrapValidationError(err)
}

// RewrapResult summarizes one rewrap batch.
type RewrapResult struct {
	// Rewrapped counts records moved to the target key.
	Rewrapped int
	// Conflicts counts records changed by another writer meanwhile. They are
	// left as they are and picked up by the next run if still stale.
	Conflicts int
	// Skipped counts records whose payload failed its integrity check.
	Skipped int
	// Next is the public id of the last record examined, or empty when the
	// batch found nothing after the cursor.
	Next string
}
