package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	accessDomain "github.com/allisson/accessvault/internal/access/domain"
	authDomain "github.com/allisson/accessvault/internal/auth/domain"
)

// tokenClaims is the wire form of Claims. The account id travels as sub.
type tokenClaims struct {
	Environment string `json:"env"`
	jwt.RegisteredClaims
}

// jwtTokenVerifier implements TokenVerifier for HS256 tokens.
type jwtTokenVerifier struct {
	secret []byte
	issuer string
	leeway time.Duration
}

// NewTokenVerifier creates a verifier for tokens signed with secret. When issuer
// is not empty the iss claim must match it.
func NewTokenVerifier(secret []byte, issuer string, leeway time.Duration) TokenVerifier {
	return &jwtTokenVerifier{
		secret: append([]byte(nil), secret...),
		issuer: issuer,
		leeway: leeway,
	}
}

func (v *jwtTokenVerifier) Verify(token string, now time.Time) (*authDomain.Claims, error) {
	if token == "" {
		return nil, authDomain.ErrTokenMissing
	}

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(v.leeway),
	}
	if v.issuer != "" {
		options = append(options, jwt.WithIssuer(v.issuer))
	}

	var claims tokenClaims
	_, err := jwt.NewParser(options...).ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return nil, classifyParseError(err)
	}

	if claims.Subject == "" || claims.IssuedAt == nil {
		return nil, fmt.Errorf("%w: missing sub or iat", authDomain.ErrTokenMalformed)
	}

	environment, err := accessDomain.ParseEnvironment(claims.Environment)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid env claim", authDomain.ErrTokenMalformed)
	}

	return &authDomain.Claims{
		AccountID:   claims.Subject,
		Environment: environment,
		IssuedAt:    claims.IssuedAt.UTC(),
		ExpiresAt:   claims.ExpiresAt.UTC(),
	}, nil
}

// classifyParseError reduces jwt errors to the four rejection reasons. Signature
// is checked before the time claims, so an expired token with a bad signature is
// reported as a signature failure.
func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return authDomain.ErrTokenSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return authDomain.ErrTokenExpired
	default:
		return fmt.Errorf("%w: %s", authDomain.ErrTokenMalformed, reason(err))
	}
}

// reason keeps log output to jwt's sentinel names, never token content.
func reason(err error) string {
	for _, sentinel := range []error{
		jwt.ErrTokenMalformed,
		jwt.ErrTokenUnverifiable,
		jwt.ErrTokenRequiredClaimMissing,
		jwt.ErrTokenInvalidIssuer,
		jwt.ErrTokenNotValidYet,
		jwt.ErrTokenUsedBeforeIssued,
		jwt.ErrTokenInvalidClaims,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return "unparseable token"
}

// jwtTokenSigner implements TokenSigner with HS256.
type jwtTokenSigner struct {
	secret []byte
	issuer string
}

// NewTokenSigner creates a signer using secret. issuer is written to iss when not empty.
func NewTokenSigner(secret []byte, issuer string) TokenSigner {
	return &jwtTokenSigner{
		secret: append([]byte(nil), secret...),
		issuer: issuer,
	}
}

func (s *jwtTokenSigner) Sign(request authDomain.TokenRequest, now time.Time) (string, error) {
	if request.AccountID == "" {
		return "", fmt.Errorf("%w: account id is required", authDomain.ErrInvalidTokenRequest)
	}
	if !request.Environment.Valid() {
		return "", fmt.Errorf("%w: invalid environment", authDomain.ErrInvalidTokenRequest)
	}
	if request.TTL <= 0 {
		return "", fmt.Errorf("%w: ttl must be positive", authDomain.ErrInvalidTokenRequest)
	}

	claims := tokenClaims{
		Environment: request.Environment.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   request.AccountID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(request.TTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign bearer token: %w", err)
	}
	return signed, nil
}
