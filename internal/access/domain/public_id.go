package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// publicIDSeparator joins the prefix and the time-ordered suffix.
const publicIDSeparator = "::"

// NewPublicID returns "<prefix>::<uuidv7>". UUIDv7 values sort by creation time,
// so identifiers can be listed chronologically without a separate sort key.
func NewPublicID(prefix IDPrefix) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate uuid: %w", err)
	}
	return string(prefix) + publicIDSeparator + id.String(), nil
}

// ParsePublicID splits a public identifier and checks both halves.
func ParsePublicID(s string) (IDPrefix, uuid.UUID, error) {
	rawPrefix, rawID, ok := strings.Cut(s, publicIDSeparator)
	if !ok {
		return "", uuid.Nil, ErrInvalidPublicID
	}

	prefix, err := ParseIDPrefix(rawPrefix)
	if err != nil || string(prefix) != rawPrefix {
		return "", uuid.Nil, ErrInvalidPublicID
	}

	id, err := uuid.Parse(rawID)
	if err != nil || id.Version() != 7 {
		return "", uuid.Nil, ErrInvalidPublicID
	}

	return prefix, id, nil
}
