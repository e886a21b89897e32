package store_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/readingtracker/readingtracker-server/internal/store"
)

func TestError_Error(t *testing.T) {
	err := &store.Error{
		Code:    http.StatusNotFound,
		Message: "not found",
	}

	assert.Equal(t, "not found", err.Error())
}

func TestError_ErrorWithCause(t *testing.T) {
	cause := errors.New("underlying error")
	err := &store.Error{
		Code:    http.StatusNotFound,
		Message: "not found",
		Err:     cause,
	}

	assert.Contains(t, err.Error(), "not found")
	assert.Contains(t, err.Error(), "underlying error")
	assert.Equal(t, cause, err.Unwrap())
}

func TestError_HTTPCode(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, store.ErrInvalidReference.HTTPCode())
	assert.Equal(t, http.StatusConflict, store.ErrAlreadyExists.HTTPCode())
}

func TestError_IsThroughWrapping(t *testing.T) {
	err := store.ErrInvalidReference.WithCause(errors.New("FOREIGN KEY constraint failed"))
	assert.ErrorIs(t, err, store.ErrInvalidReference)
	assert.NotErrorIs(t, err, store.ErrNotFound)

	wrapped := fmt.Errorf("create item: %w", store.ErrNotFound)
	assert.ErrorIs(t, wrapped, store.ErrNotFound)
}

func TestError_WithMessage(t *testing.T) {
	err := store.ErrNotFound.WithMessage("item not found")
	assert.Equal(t, "item not found", err.Error())
	assert.Equal(t, http.StatusNotFound, err.HTTPCode())

	// Sentinel is untouched.
	assert.Equal(t, "resource not found", store.ErrNotFound.Message)
}
