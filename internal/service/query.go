package service

import (
	"context"
	"fmt"

	"github.com/mnapio/tripbook/backend/internal/clock"
	"github.com/mnapio/tripbook/backend/internal/domain"
	"github.com/mnapio/tripbook/backend/internal/repo"
)

// QueryService implements the read-only accessors used by the presentation
// layer. It is a thin pass-through over the repos — no invariants beyond
// theirs — plus nil-slice normalization so callers can always range safely.
type QueryService struct {
	trips        repo.TripRepo
	reservations repo.ReservationRepo
	clock        clock.Clock
}

// NewQueryService constructs a QueryService backed by the provided repos.
func NewQueryService(trips repo.TripRepo, reservations repo.ReservationRepo, clk clock.Clock) *QueryService {
	return &QueryService{trips: trips, reservations: reservations, clock: clk}
}

// ListUpcoming returns trips whose start date is strictly after the current
// time, ordered ascending by start date.
func (s *QueryService) ListUpcoming(ctx context.Context) ([]domain.Trip, error) {
	trips, err := s.trips.ListUpcoming(ctx, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("service.QueryService.ListUpcoming: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// GetTrip returns a single trip by ID.
// Returns domain.ErrNotFound if no trip with that ID exists.
func (s *QueryService) GetTrip(ctx context.Context, id int64) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.QueryService.GetTrip: %w", err)
	}
	return trip, nil
}

// ListReservations returns all reservations for a trip, oldest first.
// Returns domain.ErrNotFound if the trip itself does not exist.
func (s *QueryService) ListReservations(ctx context.Context, tripID int64) ([]domain.Reservation, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.QueryService.ListReservations: %w", err)
	}
	reservations, err := s.reservations.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.QueryService.ListReservations: %w", err)
	}
	if reservations == nil {
		return []domain.Reservation{}, nil
	}
	return reservations, nil
}
