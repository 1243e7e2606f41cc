package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mnapio/tripbook/backend/internal/domain"
	"github.com/mnapio/tripbook/backend/internal/repo"
)

// ReservationNotifier publishes a notification after a booking has committed.
// Publishing is best-effort: a failure is logged and never affects the result
// of the booking. The Kafka implementation lives in internal/notify; tests and
// brokerless deployments use notify.Noop.
type ReservationNotifier interface {
	ReservationConfirmed(ctx context.Context, res domain.Reservation, trip domain.Trip) error
}

// BookingService implements the slot-reservation transaction. It holds no
// state of its own — all shared state lives in the database, and the FOR
// UPDATE row lock on the trip is what serializes concurrent bookings on the
// same trip, even across multiple server processes.
type BookingService struct {
	trips        repo.TripRepo
	reservations repo.ReservationRepo
	tx           repo.TxRunner
	notifier     ReservationNotifier
}

// NewBookingService constructs a BookingService backed by the provided repos
// and transaction runner.
func NewBookingService(trips repo.TripRepo, reservations repo.ReservationRepo, tx repo.TxRunner, notifier ReservationNotifier) *BookingService {
	return &BookingService{trips: trips, reservations: reservations, tx: tx, notifier: notifier}
}

// Book atomically reserves req.Participants slots on the requested trip.
//
// Input validation runs first and returns domain.ErrValidation (as a
// FieldError) without touching storage. The transactional body then:
//
//  1. locks the trip row FOR UPDATE — domain.ErrNotFound if the trip is absent;
//  2. decrements slots_available — domain.ErrCapacityExceeded if the trip has
//     fewer slots left than requested;
//  3. inserts the reservation with slots_taken = req.Participants and a fresh
//     confirmation code, linked to the trip by foreign key.
//
// Any error aborts the whole transaction: a rejected booking leaves no
// reservation row and no slot decrement behind. On commit the updated trip
// and the new reservation are returned, and the confirmation notification is
// published outside the transaction.
func (s *BookingService) Book(ctx context.Context, req domain.BookingRequest) (domain.Trip, domain.Reservation, error) {
	if err := validateBooking(req); err != nil {
		return domain.Trip{}, domain.Reservation{}, fmt.Errorf("service.BookingService.Book: %w", err)
	}

	var (
		booked domain.Trip
		res    domain.Reservation
	)

	err := s.tx.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := s.trips.GetByIDForUpdate(txCtx, req.TripID); err != nil {
			return err
		}

		updated, err := s.trips.DecrementSlots(txCtx, req.TripID, req.Participants)
		if err != nil {
			return err
		}

		created, err := s.reservations.Create(txCtx, domain.Reservation{
			TripID:           req.TripID,
			Name:             req.Name,
			Surname:          req.Surname,
			Email:            req.Email,
			SlotsTaken:       req.Participants,
			ConfirmationCode: uuid.New(),
		})
		if err != nil {
			return err
		}

		booked, res = updated, created
		return nil
	})
	if err != nil {
		return domain.Trip{}, domain.Reservation{}, fmt.Errorf("service.BookingService.Book: %w", err)
	}

	// The booking is committed at this point; a notification failure must not
	// turn a successful booking into an error.
	if s.notifier != nil {
		if err := s.notifier.ReservationConfirmed(ctx, res, booked); err != nil {
			slog.WarnContext(ctx, "reservation notification failed",
				"trip_id", booked.ID,
				"reservation_id", res.ID,
				"error", err,
			)
		}
	}

	return booked, res, nil
}
