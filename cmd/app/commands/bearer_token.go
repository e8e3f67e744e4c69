package commands

import (
	"fmt"
	"io"
	"time"

	accessDomain "github.com/allisson/accessvault/internal/access/domain"
	authDomain "github.com/allisson/accessvault/internal/auth/domain"
	authService "github.com/allisson/accessvault/internal/auth/service"
)

// RunCreateBearerToken signs a bearer token for accountID. It is meant for operators
// and local testing; production tokens come from the identity service sharing JWT_SECRET.
func RunCreateBearerToken(
	signer authService.TokenSigner,
	writer io.Writer,
	accountID string,
	environmentStr string,
	ttl time.Duration,
	format string,
	now time.Time,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	environment, err := accessDomain.ParseEnvironment(environmentStr)
	if err != nil {
		return fmt.Errorf("invalid environment: %w", err)
	}

	token, err := signer.Sign(authDomain.TokenRequest{
		AccountID:   accountID,
		Environment: environment,
		TTL:         ttl,
	}, now)
	if err != nil {
		return fmt.Errorf("failed to sign bearer token: %w", err)
	}

	expiresAt := now.Add(ttl).UTC()

	if format == "json" {
		return writeJSON(writer, map[string]any{
			"token":       token,
			"account_id":  accountID,
			"environment": environment.String(),
			"expires_at":  expiresAt.Format(time.RFC3339),
		})
	}

	_, err = fmt.Fprintf(writer, "# Expires at %s\nAuthorization: Bearer %s\n", expiresAt.Format(time.RFC3339), token)
	return err
}
