// Package domain defines access credentials: platform-issued public/secret pairs
// that let a tenant's code call the platform API.
package domain

import (
	"fmt"
	"strings"
)

// Environment scopes a credential to test or live traffic.
type Environment string

const (
	// EnvironmentTest is used for sandbox traffic.
	EnvironmentTest Environment = "test"
	// EnvironmentLive is used for production traffic.
	EnvironmentLive Environment = "live"
)

// ParseEnvironment converts a case-insensitive token into an Environment.
func ParseEnvironment(s string) (Environment, error) {
	env := Environment(strings.ToLower(strings.TrimSpace(s)))
	if !env.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidEnvironment, s)
	}
	return env, nil
}

// Valid reports whether e is a known environment.
func (e Environment) Valid() bool {
	return e == EnvironmentTest || e == EnvironmentLive
}

// String returns the environment token.
func (e Environment) String() string {
	return string(e)
}

// IDPrefix tags a public identifier with the type of entity it names.
type IDPrefix string

const (
	// PrefixAccessCredential names access credentials.
	PrefixAccessCredential IDPrefix = "evt_ac"
	// PrefixConnection names connections.
	PrefixConnection IDPrefix = "conn"
	// PrefixConnectionDefinition names connection definitions.
	PrefixConnectionDefinition IDPrefix = "conn_def"
	// PrefixEvent names events.
	PrefixEvent IDPrefix = "evt"
)

// ParseIDPrefix converts a token into a known IDPrefix.
func ParseIDPrefix(s string) (IDPrefix, error) {
	prefix := IDPrefix(strings.ToLower(strings.TrimSpace(s)))
	switch prefix {
	case PrefixAccessCredential, PrefixConnection, PrefixConnectionDefinition, PrefixEvent:
		return prefix, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidIDPrefix, s)
}

// SecretEntropyBytes is the number of random bytes in every generated secret.
const SecretEntropyBytes = 32
