package http

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/accessvault/internal/auth/domain"
	authService "github.com/allisson/accessvault/internal/auth/service"
	"github.com/allisson/accessvault/internal/httputil"
)

const bearerPrefix = "bearer "

// BearerAuthMiddleware verifies the Authorization bearer token before the handler runs.
//
// The "Bearer" scheme is matched case-insensitively. On success the claims are stored
// in the request context (see GetClaims). Every failure aborts the chain with the same
// 401 body; the reason is logged at debug level only.
func BearerAuthMiddleware(
	verifier authService.TokenVerifier,
	clock func() time.Time,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := verifier.Verify(bearerToken(c.GetHeader("Authorization")), clock())
		if err != nil {
			logger.DebugContext(c.Request.Context(), "bearer token rejected",
				slog.String("reason", err.Error()),
				slog.String("path", c.FullPath()),
			)
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithClaims(c.Request.Context(), claims))
		c.Next()
	}
}

// bearerToken returns the token of a "Bearer <token>" header, or "" so that
// the verifier reports it missing.
func bearerToken(header string) string {
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(header[len(bearerPrefix):])
}

// RequireClaims returns the claims stored by BearerAuthMiddleware. Handlers mounted
// without the middleware get ErrTokenMissing.
func RequireClaims(c *gin.Context) (*authDomain.Claims, error) {
	claims, ok := GetClaims(c.Request.Context())
	if !ok {
		return nil, authDomain.ErrTokenMissing
	}
	return claims, nil
}
