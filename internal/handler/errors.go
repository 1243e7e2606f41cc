package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mnapio/tripbook/backend/internal/domain"
)

// ErrorDetail is the machine-readable half of every error response.
// Code is one of: validation_error, not_found, capacity_exceeded,
// invalid_request, internal_error. Field is set for validation errors tied to
// a single input field.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// ErrorResponse is the envelope for all non-2xx bodies.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// writeError maps a service error onto the HTTP status and error envelope the
// API contract defines. Unknown errors become an opaque 500 so internal
// details never leak to clients.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var fieldErr *domain.FieldError

	switch {
	case errors.As(err, &fieldErr):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: ErrorDetail{
			Code:    "validation_error",
			Message: fieldErr.Message,
			Field:   fieldErr.Field,
		}})
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: ErrorDetail{
			Code:    "validation_error",
			Message: unwrapMessage(err),
		}})
	case errors.Is(err, domain.ErrCapacityExceeded):
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: ErrorDetail{
			Code:    "capacity_exceeded",
			Message: domain.ErrCapacityExceeded.Error(),
		}})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: ErrorDetail{
			Code:    "not_found",
			Message: "trip not found",
		}})
	default:
		slog.ErrorContext(r.Context(), "internal error", "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: ErrorDetail{
			Code:    "internal_error",
			Message: "internal error",
		}})
	}
}

// badRequest returns an ErrorResponse for a request rejected before reaching
// the service layer (e.g. malformed body or path parameter).
func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: ErrorDetail{
		Code:    "invalid_request",
		Message: message,
	}})
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.TripService.Create: validation error: name is required" → "name is required"
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, prefix := range []string{
		"service.BookingService.Book: validation error: ",
		"service.TripService.Create: validation error: ",
		"validation error: ",
	} {
		if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
			return msg[len(prefix):]
		}
	}
	return msg
}
