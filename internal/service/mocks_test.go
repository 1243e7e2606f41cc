package service_test

import (
	"context"
	"time"

	"github.com/mnapio/tripbook/backend/internal/domain"
	"github.com/mnapio/tripbook/backend/internal/repo"
	"github.com/mnapio/tripbook/backend/internal/service"
)

// mockTripRepo is a function-field mock for repo.TripRepo. Tests set only the
// functions they expect to be called; an unexpected call panics on the nil
// field, which is exactly the failure we want.
type mockTripRepo struct {
	createFn           func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByIDFn          func(ctx context.Context, id int64) (domain.Trip, error)
	getByIDForUpdateFn func(ctx context.Context, id int64) (domain.Trip, error)
	listUpcomingFn     func(ctx context.Context, now time.Time) ([]domain.Trip, error)
	decrementSlotsFn   func(ctx context.Context, id int64, amount int) (domain.Trip, error)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.createFn(ctx, trip)
}

func (m *mockTripRepo) GetByID(ctx context.Context, id int64) (domain.Trip, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockTripRepo) GetByIDForUpdate(ctx context.Context, id int64) (domain.Trip, error) {
	return m.getByIDForUpdateFn(ctx, id)
}

func (m *mockTripRepo) ListUpcoming(ctx context.Context, now time.Time) ([]domain.Trip, error) {
	return m.listUpcomingFn(ctx, now)
}

func (m *mockTripRepo) DecrementSlots(ctx context.Context, id int64, amount int) (domain.Trip, error) {
	return m.decrementSlotsFn(ctx, id, amount)
}

// mockReservationRepo is a function-field mock for repo.ReservationRepo.
type mockReservationRepo struct {
	createFn       func(ctx context.Context, res domain.Reservation) (domain.Reservation, error)
	listByTripIDFn func(ctx context.Context, tripID int64) ([]domain.Reservation, error)
}

var _ repo.ReservationRepo = (*mockReservationRepo)(nil)

func (m *mockReservationRepo) Create(ctx context.Context, res domain.Reservation) (domain.Reservation, error) {
	return m.createFn(ctx, res)
}

func (m *mockReservationRepo) ListByTripID(ctx context.Context, tripID int64) ([]domain.Reservation, error) {
	return m.listByTripIDFn(ctx, tripID)
}

// mockTxRunner runs the transactional body directly without a database.
// The rollback semantics under test belong to the real pgTxRunner; here we
// only care that the service composes the body correctly and stops at the
// first error.
type mockTxRunner struct {
	calls int
}

var _ repo.TxRunner = (*mockTxRunner)(nil)

func (m *mockTxRunner) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

// mockNotifier records confirmation notifications and can be set to fail.
type mockNotifier struct {
	calls []domain.Reservation
	err   error
}

var _ service.ReservationNotifier = (*mockNotifier)(nil)

func (m *mockNotifier) ReservationConfirmed(_ context.Context, res domain.Reservation, _ domain.Trip) error {
	m.calls = append(m.calls, res)
	return m.err
}
