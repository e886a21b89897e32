// Package response writes JSON responses outside of huma operations,
// mainly from middleware that rejects a request before it reaches a handler.
package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	domainerrors "github.com/readingtracker/readingtracker-server/internal/errors"
)

// ErrorBody is the content of the "error" member of every error response.
type ErrorBody struct {
	Message string `json:"message" doc:"Human-readable error message"`
	Code    string `json:"code" doc:"Machine-readable error code"`
	Details any    `json:"details,omitempty" doc:"Per-field validation messages"`
}

// ErrorEnvelope is the shape of every error response: {"error": {...}}.
type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}

// JSON writes data as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		if logger != nil {
			logger.Error("Failed to encode JSON response", "error", err)
		}
	}
}

// Error writes an error response with the given status, code and message.
func Error(w http.ResponseWriter, status int, code domainerrors.Code, message string, logger *slog.Logger) {
	JSON(w, status, ErrorEnvelope{Error: ErrorBody{Message: message, Code: string(code)}}, logger)
}

// DomainError writes a domain error using its own status and code.
func DomainError(w http.ResponseWriter, err *domainerrors.Error, logger *slog.Logger) {
	JSON(w, err.HTTPStatus(), ErrorEnvelope{Error: Body(err)}, logger)
}

// Body converts a domain error to its wire form.
func Body(err *domainerrors.Error) ErrorBody {
	return ErrorBody{Message: err.Message, Code: string(err.Code), Details: err.Details}
}

// HandleError writes err as a response. Domain errors keep their status,
// anything else is logged and becomes a generic 500.
func HandleError(w http.ResponseWriter, err error, logger *slog.Logger) {
	var domainErr *domainerrors.Error
	if errors.As(err, &domainErr) {
		if domainErr.HTTPStatus() >= http.StatusInternalServerError && logger != nil {
			logger.Error("Unhandled error", "error", err)
		}
		DomainError(w, domainErr, logger)
		return
	}

	if logger != nil {
		logger.Error("Unhandled error", "error", err)
	}
	DomainError(w, domainerrors.ErrInternal, logger)
}
