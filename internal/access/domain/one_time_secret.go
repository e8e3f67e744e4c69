package domain

import (
	"sync"

	cryptoDomain "github.com/allisson/accessvault/internal/crypto/domain"
)

const maskedSecret = "****"

// OneTimeSecret holds a freshly generated plaintext secret until it is consumed.
//
// Take returns the value exactly once and wipes the buffer. Formatting,
// logging and JSON encoding only ever show a mask.
type OneTimeSecret struct {
	mu    sync.Mutex
	value []byte
	taken bool
}

// NewOneTimeSecret takes ownership of value.
func NewOneTimeSecret(value []byte) *OneTimeSecret {
	return &OneTimeSecret{value: value}
}

// Take returns the secret and wipes it. Later calls return false.
func (s *OneTimeSecret) Take() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.taken {
		return "", false
	}
	s.taken = true

	out := string(s.value)
	cryptoDomain.Zero(s.value)
	s.value = nil
	return out, true
}

// Discard wipes the secret without reading it.
func (s *OneTimeSecret) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.taken = true
	cryptoDomain.Zero(s.value)
	s.value = nil
}

// String implements fmt.Stringer.
func (s *OneTimeSecret) String() string {
	return maskedSecret
}

// GoString implements fmt.GoStringer.
func (s *OneTimeSecret) GoString() string {
	return maskedSecret
}

// MarshalJSON implements json.Marshaler.
func (s *OneTimeSecret) MarshalJSON() ([]byte, error) {
	return []byte(`"` + maskedSecret + `"`), nil
}
