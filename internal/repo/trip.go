// Package repo contains all database access logic for the trip booking service.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mnapio/tripbook/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	// Returns domain.ErrValidation wrapped if the name is already taken.
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by its primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists; a well-formed
	// but non-matching ID is not an error beyond that.
	GetByID(ctx context.Context, id int64) (domain.Trip, error)

	// GetByIDForUpdate retrieves a trip with a FOR UPDATE row lock. It must be
	// called inside a transaction started by TxRunner.WithTx; the lock is held
	// until that transaction commits or rolls back, serializing concurrent
	// bookings on the same trip. Returns domain.ErrNotFound if absent.
	GetByIDForUpdate(ctx context.Context, id int64) (domain.Trip, error)

	// ListUpcoming returns trips whose start date is strictly after now,
	// ordered ascending by start date.
	ListUpcoming(ctx context.Context, now time.Time) ([]domain.Trip, error)

	// DecrementSlots subtracts amount from slots_available and returns the
	// updated trip. Must be called inside a transaction, after the row has
	// been locked with GetByIDForUpdate. Returns domain.ErrCapacityExceeded
	// (and writes nothing) if the decrement would drive the value negative,
	// or domain.ErrNotFound if the trip does not exist.
	DecrementSlots(ctx context.Context, id int64, amount int) (domain.Trip, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

// q returns the query target for ctx: the transaction carried in the context
// if there is one, otherwise the repo's own connection. This is what makes
// every repo call inside TxRunner.WithTx transactional without the call sites
// passing a transaction handle around.
func (r *pgTripRepo) q(ctx context.Context) db {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return r.db
}

const tripColumns = `id, name, descr, short_descr, image, price, start_date, end_date, slots_available, created_at, updated_at`

// Create inserts a new trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (name, descr, short_descr, image, price, start_date, end_date, slots_available)
		VALUES (@name, @descr, @short_descr, @image, @price, @start_date, @end_date, @slots_available)
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"name":            trip.Name,
		"descr":           trip.Description,
		"short_descr":     trip.ShortDescription,
		"image":           trip.Image,
		"price":           trip.Price,
		"start_date":      trip.StartDate,
		"end_date":        trip.EndDate,
		"slots_available": trip.SlotsAvailable,
	}

	row := r.q(ctx).QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w: trip name already exists", domain.ErrValidation)
		}
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id int64) (domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE id = @id`

	row := r.q(ctx).QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// GetByIDForUpdate retrieves a trip by primary key under an exclusive row lock.
func (r *pgTripRepo) GetByIDForUpdate(ctx context.Context, id int64) (domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE id = @id
		FOR UPDATE`

	row := r.q(ctx).QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByIDForUpdate: %w", err)
	}
	return result, nil
}

// ListUpcoming returns trips starting strictly after now, soonest first.
func (r *pgTripRepo) ListUpcoming(ctx context.Context, now time.Time) ([]domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE start_date > @now
		ORDER BY start_date ASC`

	rows, err := r.q(ctx).Query(ctx, q, pgx.NamedArgs{"now": now})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListUpcoming: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.ListUpcoming: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListUpcoming: rows: %w", err)
	}

	return trips, nil
}

// DecrementSlots subtracts amount from slots_available with a capacity guard
// in the WHERE clause. The guard means the UPDATE simply matches no row when
// the trip lacks capacity; the CHECK (slots_available >= 0) constraint on the
// column is the backstop should the guard ever be bypassed.
func (r *pgTripRepo) DecrementSlots(ctx context.Context, id int64, amount int) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET slots_available = slots_available - @amount,
		    updated_at      = now()
		WHERE id = @id
		  AND slots_available >= @amount
		RETURNING ` + tripColumns

	row := r.q(ctx).QueryRow(ctx, q, pgx.NamedArgs{"id": id, "amount": amount})
	result, err := scanTrip(row)
	if err != nil {
		if isCheckViolation(err) {
			return domain.Trip{}, fmt.Errorf("repo.TripRepo.DecrementSlots: %w", domain.ErrCapacityExceeded)
		}
		if errors.Is(err, domain.ErrNotFound) {
			// No row matched: either the trip is missing or the guard failed.
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return domain.Trip{}, fmt.Errorf("repo.TripRepo.DecrementSlots: %w", domain.ErrNotFound)
			}
			return domain.Trip{}, fmt.Errorf("repo.TripRepo.DecrementSlots: %w", domain.ErrCapacityExceeded)
		}
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.DecrementSlots: %w", err)
	}
	return result, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanTrip to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var t domain.Trip

	err := s.Scan(
		&t.ID,
		&t.Name,
		&t.Description,
		&t.ShortDescription,
		&t.Image,
		&t.Price,
		&t.StartDate,
		&t.EndDate,
		&t.SlotsAvailable,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	return t, nil
}
