package service

import (
	"context"
	"fmt"

	"github.com/mnapio/tripbook/backend/internal/domain"
	"github.com/mnapio/tripbook/backend/internal/repo"
)

// TripService implements the administrative side of the trip catalog: creating
// trips at seed time. The booking path never goes through here — the only
// mutation of slots_available is the decrement inside BookingService.Book.
type TripService struct {
	trips repo.TripRepo
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(trips repo.TripRepo) *TripService {
	return &TripService{trips: trips}
}

// Create validates and persists a new trip.
// Returns domain.ErrValidation (as a FieldError) if the trip violates a
// business rule: empty name, negative price or capacity, or a start date that
// is not strictly before the end date.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	created, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return created, nil
}
