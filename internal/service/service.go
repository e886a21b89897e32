// Package service implements the reading tracker's use cases on top of the store.
//
// Services validate and normalize input, translate store errors into domain
// errors from internal/errors, and log domain events. Handlers pass their
// errors through untouched.
package service

import (
	"errors"
	"fmt"

	domainerrors "github.com/readingtracker/readingtracker-server/internal/errors"
	"github.com/readingtracker/readingtracker-server/internal/id"
	"github.com/readingtracker/readingtracker-server/internal/store"
)

// invalidID is returned for path IDs that are not UUIDs.
var invalidID = domainerrors.ValidationWithDetails("id: Invalid ID format", map[string]string{"id": "Invalid ID format"})

// checkID rejects malformed IDs before they reach the store.
func checkID(raw string) error {
	if !id.Valid(raw) {
		return invalidID
	}
	return nil
}

// storeError maps store sentinels that every service treats the same way.
// notFound is the message used for store.ErrNotFound.
func storeError(err error, notFound string, op string) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return domainerrors.NotFound(notFound)
	case errors.Is(err, store.ErrInvalidReference):
		return domainerrors.ValidationWithDetails("tagIds: Unknown tag", map[string]string{"tagIds": "Unknown tag"}).WithCause(err)
	default:
		return domainerrors.Internal(fmt.Errorf("%s: %w", op, err))
	}
}
