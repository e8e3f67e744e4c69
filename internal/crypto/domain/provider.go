// Package domain defines the core models of the envelope-encryption layer.
//
// A ProviderIdentity selects which key-protection backend encrypts new data. Every
// ProtectedPayload records the identity and key reference that produced it, so data
// written under one provider stays readable after the deployment switches to another.
package domain

import (
	"fmt"
	"strings"
)

// ProviderIdentity is the closed set of key-protection backends.
type ProviderIdentity string

const (
	// CloudKMS delegates encryption to an external key-management service addressed
	// by project, location, key ring and key.
	CloudKMS ProviderIdentity = "cloud-kms"

	// StaticSecret encrypts locally with a key derived from a configured pre-shared secret.
	StaticSecret ProviderIdentity = "static-secret"
)

// legacyProviderTokens maps identity tokens used by older deployments.
var legacyProviderTokens = map[string]ProviderIdentity{
	"google-kms": CloudKMS,
	"ios-kms":    StaticSecret,
}

// ParseProviderIdentity converts a configuration token into a ProviderIdentity.
// Matching is case-insensitive and tolerates underscores in place of dashes.
func ParseProviderIdentity(s string) (ProviderIdentity, error) {
	token := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")

	switch ProviderIdentity(token) {
	case CloudKMS, StaticSecret:
		return ProviderIdentity(token), nil
	}

	if id, ok := legacyProviderTokens[token]; ok {
		return id, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnsupportedProvider, s)
}

// String returns the kebab-case token of the identity.
func (p ProviderIdentity) String() string {
	return string(p)
}

// Valid reports whether p is one of the known identities.
func (p ProviderIdentity) Valid() bool {
	return p == CloudKMS || p == StaticSecret
}
