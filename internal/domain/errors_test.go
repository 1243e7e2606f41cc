package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnapio/tripbook/backend/internal/domain"
)

func TestFieldError_UnwrapsToValidation(t *testing.T) {
	err := &domain.FieldError{Field: "email", Message: "must be a valid e-mail address"}

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "email")
	assert.Contains(t, err.Error(), "must be a valid e-mail address")
}

func TestFieldError_SurvivesWrapping(t *testing.T) {
	inner := &domain.FieldError{Field: "participants", Message: "must be at least 1"}
	wrapped := fmt.Errorf("service.BookingService.Book: %w", inner)

	assert.ErrorIs(t, wrapped, domain.ErrValidation)

	var fieldErr *domain.FieldError
	require.True(t, errors.As(wrapped, &fieldErr))
	assert.Equal(t, "participants", fieldErr.Field)
}
