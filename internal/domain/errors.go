package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrCapacityExceeded is returned when a booking asks for more slots than the
// trip has left. The whole transaction is rolled back before this surfaces —
// no reservation row and no slot decrement survive a rejected booking.
// Handlers should map this to HTTP 409 Conflict.
var ErrCapacityExceeded = errors.New("requested participant count exceeds available slots")

// FieldError is a validation failure tied to a single input field.
// It unwraps to ErrValidation, so errors.Is(err, ErrValidation) keeps working
// while handlers can pull out the field name via errors.As.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *FieldError) Unwrap() error {
	return ErrValidation
}
