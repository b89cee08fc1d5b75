package core

import (
	"fmt"

	"github.com/google/uuid"
)

// Identifier uniquely names an object for its whole lifetime, e.g. an
// actor that survives scene reloads.
type Identifier = uuid.UUID

// NilIdentifier is the zero identifier, never handed out by NewIdentifier.
var NilIdentifier = uuid.Nil

// NewIdentifier returns a fresh random identifier.
func NewIdentifier() Identifier {
	return uuid.New()
}

// ParseIdentifier parses the textual form of an identifier. Used when a
// scene file pins actor ids.
func ParseIdentifier(s string) (Identifier, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return NilIdentifier, fmt.Errorf("identifier %q: %w", s, err)
	}
	return id, nil
}
