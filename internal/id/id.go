package id

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateID returns a random UUID used for decks and session logs.
func GenerateID() string {
	return uuid.NewString()
}

// CardID returns a compact 16-character id. Card ids only need to be unique
// within their deck.
func CardID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}

// Valid reports whether s parses as a UUID.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
