package domain

import (
	"github.com/allisson/accessvault/internal/errors"
)

// Access credential error definitions.
var (
	// ErrCredentialNotFound indicates the credential does not exist or belongs to
	// another account. Both cases share one error so ownership is not disclosed.
	ErrCredentialNotFound = errors.Wrap(errors.ErrNotFound, "access credential not found")

	// ErrInvalidEnvironment indicates an unknown environment tag.
	ErrInvalidEnvironment = errors.Wrap(errors.ErrInvalidInput, "invalid environment")

	// ErrInvalidIDPrefix indicates an unknown public identifier prefix.
	ErrInvalidIDPrefix = errors.Wrap(errors.ErrInvalidInput, "invalid id prefix")

	// ErrInvalidPublicID indicates a malformed public identifier.
	ErrInvalidPublicID = errors.Wrap(errors.ErrInvalidInput, "invalid public id")

	// ErrInvalidAccountID indicates a missing account identifier.
	ErrInvalidAccountID = errors.Wrap(errors.ErrInvalidInput, "invalid account id")

	// ErrEnvironmentOutOfScope indicates a request for an environment other than
	// the one the bearer token was issued for.
	ErrEnvironmentOutOfScope = errors.Wrap(errors.ErrForbidden, "environment outside token scope")

	// ErrCredentialConflict indicates a public identifier collision on insert.
	ErrCredentialConflict = errors.Wrap(errors.ErrConflict, "access credential already exists")
)

// ErrInvalidSecret indicates a presented secret does not match, or the credential
// is revoked. Callers cannot tell the two apart.
var ErrInvalidSecret = errors.Wrap(errors.ErrUnauthorized, "invalid access credential")
