// Package errors provides the domain errors returned by services and rendered by the API.
//
// Every error carries a machine-readable Code that maps to exactly one HTTP status.
// Services return typed errors, handlers pass them through untouched:
//
//	if errors.Is(err, store.ErrNotFound) {
//	    return errors.NotFound("Item not found")
//	}
//
// The API layer turns them into {"error": {"message": ..., "code": ...}}.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// Code represents a machine-readable error code.
type Code string

// Error codes returned by the API.
const (
	CodeValidation         Code = "VALIDATION_ERROR"
	CodeMissingHeader      Code = "MISSING_HEADER"
	CodeDuplicateTag       Code = "DUPLICATE_TAG"
	CodeAuthRequired       Code = "AUTH_REQUIRED"
	CodeInvalidToken       Code = "INVALID_TOKEN"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeNotFound           Code = "NOT_FOUND"
	CodeRateLimited        Code = "RATE_LIMITED"
	CodeInternal           Code = "SERVER_ERROR"
)

// HTTPStatus returns the HTTP status code for an error code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeValidation, CodeMissingHeader, CodeDuplicateTag:
		return http.StatusBadRequest
	case CodeAuthRequired, CodeInvalidToken, CodeInvalidCredentials:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain error with a code, message, and optional details.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus returns the HTTP status code for this error.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// WithDetails returns a copy of the error carrying details.
func (e *Error) WithDetails(details any) *Error {
	return &Error{Code: e.Code, Message: e.Message, Details: details, cause: e.cause}
}

// WithCause returns a copy of the error wrapping err.
func (e *Error) WithCause(err error) *Error {
	return &Error{Code: e.Code, Message: e.Message, Details: e.Details, cause: err}
}

// Sentinel errors for use with errors.Is().
var (
	ErrValidation         = &Error{Code: CodeValidation, Message: "Validation failed"}
	ErrMissingHeader      = &Error{Code: CodeMissingHeader, Message: "Missing required header: X-Requested-With"}
	ErrDuplicateTag       = &Error{Code: CodeDuplicateTag, Message: "Tag already exists"}
	ErrAuthRequired       = &Error{Code: CodeAuthRequired, Message: "Authentication required"}
	ErrInvalidToken       = &Error{Code: CodeInvalidToken, Message: "Invalid or expired token"}
	ErrInvalidCredentials = &Error{Code: CodeInvalidCredentials, Message: "Invalid email or password"}
	ErrNotFound           = &Error{Code: CodeNotFound, Message: "Not found"}
	ErrRateLimited        = &Error{Code: CodeRateLimited, Message: "Too many login attempts, please try again later"}
	ErrInternal           = &Error{Code: CodeInternal, Message: "Internal server error"}
)

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// Validationf creates a validation error with a formatted message.
func Validationf(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// ValidationWithDetails creates a validation error with field details.
func ValidationWithDetails(msg string, details any) *Error {
	return &Error{Code: CodeValidation, Message: msg, Details: details}
}

// DuplicateTag creates a duplicate tag error.
func DuplicateTag(msg string) *Error {
	return &Error{Code: CodeDuplicateTag, Message: msg}
}

// NotFound creates a not found error.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// Internal wraps err as an internal error. The message shown to clients stays generic.
func Internal(err error) *Error {
	return &Error{Code: CodeInternal, Message: ErrInternal.Message, cause: err}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}
