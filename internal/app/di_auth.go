package app

import (
	"sync"

	authService "github.com/allisson/accessvault/internal/auth/service"
)

type authComponents struct {
	tokenVerifier authService.TokenVerifier
	tokenSigner   authService.TokenSigner

	tokenVerifierInit sync.Once
	tokenSignerInit   sync.Once
}

// TokenVerifier returns the bearer token verifier.
func (c *Container) TokenVerifier() authService.TokenVerifier {
	c.tokenVerifierInit.Do(func() {
		c.tokenVerifier = authService.NewTokenVerifier(
			[]byte(c.config.JWTSecret),
			c.config.JWTIssuer,
			c.config.JWTLeeway,
		)
	})
	return c.tokenVerifier
}

// TokenSigner returns the bearer token signer used by the CLI.
func (c *Container) TokenSigner() authService.TokenSigner {
	c.tokenSignerInit.Do(func() {
		c.tokenSigner = authService.NewTokenSigner([]byte(c.config.JWTSecret), c.config.JWTIssuer)
	})
	return c.tokenSigner
}
