package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5/middleware"

	domainerrors "github.com/readingtracker/readingtracker-server/internal/errors"
	"github.com/readingtracker/readingtracker-server/internal/http/response"
)

// APIError is a custom error type that implements huma.StatusError.
// It renders as {"error": {"message": ..., "code": ..., "details": ...}}.
type APIError struct { //nolint:revive // API prefix is intentional for clarity
	status int
	Body   response.ErrorBody `json:"error"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Body.Message
}

// GetStatus implements huma.StatusError.
func (e *APIError) GetStatus() int {
	return e.status
}

// ContentType returns the content type for the error response.
func (e *APIError) ContentType(_ string) string {
	return "application/json"
}

// fromDomain converts a domain error to its HTTP form.
func fromDomain(err *domainerrors.Error) *APIError {
	return &APIError{status: err.HTTPStatus(), Body: response.Body(err)}
}

// RegisterErrorHandler configures huma to render its own errors (malformed
// JSON, schema violations) in the same shape as domain errors.
// Call this after creating the huma.API but before registering routes.
func RegisterErrorHandler() {
	huma.NewError = func(status int, message string, errs ...error) huma.StatusError {
		for _, err := range errs {
			var domainErr *domainerrors.Error
			if errors.As(err, &domainErr) {
				return fromDomain(domainErr)
			}
		}

		if status == http.StatusBadRequest || status == http.StatusUnprocessableEntity {
			return fromDomain(validationFromHuma(message, errs))
		}

		return &APIError{
			status: status,
			Body:   response.ErrorBody{Message: message, Code: string(statusToCode(status))},
		}
	}
}

// validationFromHuma folds huma's per-location errors into one VALIDATION_ERROR.
func validationFromHuma(message string, errs []error) *domainerrors.Error {
	details := make(map[string]string)
	var parts []string
	for _, err := range errs {
		var detail *huma.ErrorDetail
		if !errors.As(err, &detail) {
			parts = append(parts, err.Error())
			continue
		}
		loc := trimLocation(detail.Location)
		if _, seen := details[loc]; !seen {
			details[loc] = detail.Message
		}
		parts = append(parts, loc+": "+detail.Message)
	}

	if len(parts) == 0 {
		return domainerrors.Validation(message)
	}
	return domainerrors.ValidationWithDetails(strings.Join(parts, ", "), details)
}

// trimLocation turns "body.tagIds[0]" into "tagIds[0]".
func trimLocation(loc string) string {
	for _, prefix := range []string{"body.", "query.", "path.", "header."} {
		if rest, ok := strings.CutPrefix(loc, prefix); ok {
			return rest
		}
	}
	return loc
}

// statusToCode maps HTTP status codes to our domain error codes.
func statusToCode(status int) domainerrors.Code {
	switch {
	case status == http.StatusUnauthorized:
		return domainerrors.CodeAuthRequired
	case status == http.StatusNotFound:
		return domainerrors.CodeNotFound
	case status == http.StatusTooManyRequests:
		return domainerrors.CodeRateLimited
	case status >= http.StatusInternalServerError:
		return domainerrors.CodeInternal
	default:
		return domainerrors.CodeValidation
	}
}

// toAPIError converts a handler error into an *APIError so huma writes the
// right status. Internal errors are logged with the request id and their
// cause is never sent to the client.
func (s *Server) toAPIError(ctx context.Context, err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var domainErr *domainerrors.Error
	if !errors.As(err, &domainErr) {
		domainErr = domainerrors.Internal(err)
	}

	if domainErr.HTTPStatus() >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"request_id", middleware.GetReqID(ctx),
			"error", err,
		)
	}
	return fromDomain(domainErr)
}
