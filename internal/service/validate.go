// Package service contains the business logic for the trip booking service.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mnapio/tripbook/backend/internal/domain"
)

// validate is the shared validator instance. validator.Validate is safe for
// concurrent use and caches struct metadata, so one instance serves the whole
// package.
var validate = validator.New()

// validateBooking checks a booking request against the validate tags on
// domain.BookingRequest. It is pure: no storage is touched, and it runs before
// the booking transaction is even opened. The first failing field is returned
// as a domain.FieldError so handlers can tell the user which field to fix.
func validateBooking(req domain.BookingRequest) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %s", domain.ErrValidation, err)
	}

	return fieldError(verrs[0])
}

// fieldError translates a single validator failure into a domain.FieldError
// with the fixed message set the presentation layer maps to user-visible text.
func fieldError(fe validator.FieldError) *domain.FieldError {
	field := strings.ToLower(fe.Field())

	switch fe.Tag() {
	case "required":
		return &domain.FieldError{Field: field, Message: "must not be empty"}
	case "email":
		return &domain.FieldError{Field: field, Message: "must be a valid e-mail address"}
	case "gte":
		return &domain.FieldError{Field: field, Message: "must be at least " + fe.Param()}
	default:
		return &domain.FieldError{Field: field, Message: "is invalid"}
	}
}

// validateTrip enforces business rules on trip creation.
//   - Name must be non-empty (whitespace-only names are rejected).
//   - Price must not be negative.
//   - SlotsAvailable must not be negative.
//   - StartDate must be strictly before EndDate, compared chronologically.
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.Name) == "" {
		return &domain.FieldError{Field: "name", Message: "must not be empty"}
	}
	if trip.Price < 0 {
		return &domain.FieldError{Field: "price", Message: "must not be negative"}
	}
	if trip.SlotsAvailable < 0 {
		return &domain.FieldError{Field: "slots_available", Message: "must not be negative"}
	}
	if trip.StartDate.IsZero() || trip.EndDate.IsZero() {
		return &domain.FieldError{Field: "start_date", Message: "start and end dates are required"}
	}
	if !trip.EndDate.After(trip.StartDate) {
		return &domain.FieldError{Field: "end_date", Message: "must be after the start date"}
	}
	return nil
}
