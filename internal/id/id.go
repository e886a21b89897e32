// Package id generates identifiers.
//
// Stored entities (users, items, tags) use UUIDv4 so clients can validate ids
// before a lookup. Short-lived opaque values such as session token ids use
// prefixed NanoIDs.
package id

import (
	"fmt"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// New returns a random UUIDv4 string for a stored entity.
func New() string {
	return uuid.NewString()
}

// Valid reports whether s is a well-formed UUID.
func Valid(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// Generate creates a prefixed unique ID using NanoID.
// Format: prefix-nanoid (e.g., "sess-V1StGXR8_Z5jdHi6B-myT").
func Generate(prefix string) (string, error) {
	nano, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + nano, nil
}
