// Package validation holds the string rules shared by request DTOs, domain inputs
// and configuration.
package validation

import (
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/accessvault/internal/errors"
)

// WrapValidationError maps a validation failure to ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NoWhitespace rejects leading or trailing whitespace.
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank rejects strings made only of whitespace.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// NoComma validates that a string can be stored in a comma separated list.
var NoComma = validation.NewStringRuleWithError(
	func(s string) bool {
		return !strings.Contains(s, ",")
	},
	validation.NewError("validation_no_comma", "must not contain commas"),
)

// maxIdentifierLength bounds account ids and public ids.
const maxIdentifierLength = 128

// Identifier accepts 1 to 128 visible ASCII characters. Account ids taken from
// bearer claims and presented public ids both go through it.
var Identifier = validation.NewStringRuleWithError(
	func(s string) bool {
		if len(s) == 0 || len(s) > maxIdentifierLength {
			return false
		}
		for i := 0; i < len(s); i++ {
			if s[i] <= ' ' || s[i] > '~' {
				return false
			}
		}
		return true
	},
	validation.NewError("validation_identifier", "must be 1 to 128 visible ASCII characters"),
)
