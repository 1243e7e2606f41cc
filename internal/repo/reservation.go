package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mnapio/tripbook/backend/internal/domain"
)

// ReservationRepo defines the persistence operations for Reservations.
// Reservations are append-only: there is no update or delete.
type ReservationRepo interface {
	// Create inserts a new reservation linked to its trip and returns the
	// persisted record. The trip_id foreign key is set in the same INSERT, so
	// creating and linking are one atomic statement. Returns domain.ErrNotFound
	// wrapped if the referenced trip does not exist.
	Create(ctx context.Context, res domain.Reservation) (domain.Reservation, error)

	// ListByTripID returns all reservations for a trip, oldest first.
	ListByTripID(ctx context.Context, tripID int64) ([]domain.Reservation, error)
}

// pgReservationRepo is the Postgres implementation of ReservationRepo.
type pgReservationRepo struct {
	db db
}

// NewReservationRepo constructs a ReservationRepo backed by the provided db
// connection. In production pass *pgxpool.Pool; in tests pass a pgx.Tx for
// rollback isolation.
func NewReservationRepo(db db) ReservationRepo {
	return &pgReservationRepo{db: db}
}

func (r *pgReservationRepo) q(ctx context.Context) db {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return r.db
}

const reservationColumns = `id, trip_id, name, surname, email, slots_taken, confirmation_code, created_at`

// Create inserts a new reservation row and returns the full persisted record.
func (r *pgReservationRepo) Create(ctx context.Context, res domain.Reservation) (domain.Reservation, error) {
	const q = `
		INSERT INTO reservations (trip_id, name, surname, email, slots_taken, confirmation_code)
		VALUES (@trip_id, @name, @surname, @email, @slots_taken, @confirmation_code)
		RETURNING ` + reservationColumns

	args := pgx.NamedArgs{
		"trip_id":           res.TripID,
		"name":              res.Name,
		"surname":           res.Surname,
		"email":             res.Email,
		"slots_taken":       res.SlotsTaken,
		"confirmation_code": res.ConfirmationCode,
	}

	row := r.q(ctx).QueryRow(ctx, q, args)
	result, err := scanReservation(row)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Reservation{}, fmt.Errorf("repo.ReservationRepo.Create: %w", domain.ErrNotFound)
		}
		return domain.Reservation{}, fmt.Errorf("repo.ReservationRepo.Create: %w", err)
	}
	return result, nil
}

// ListByTripID returns all reservations whose trip id matches, oldest first.
func (r *pgReservationRepo) ListByTripID(ctx context.Context, tripID int64) ([]domain.Reservation, error) {
	const q = `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE trip_id = @trip_id
		ORDER BY id ASC`

	rows, err := r.q(ctx).Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ReservationRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var reservations []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ReservationRepo.ListByTripID: scan: %w", err)
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ReservationRepo.ListByTripID: rows: %w", err)
	}

	return reservations, nil
}

// scanReservation maps a single database row into a domain.Reservation.
func scanReservation(s scanner) (domain.Reservation, error) {
	var res domain.Reservation

	err := s.Scan(
		&res.ID,
		&res.TripID,
		&res.Name,
		&res.Surname,
		&res.Email,
		&res.SlotsTaken,
		&res.ConfirmationCode,
		&res.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Reservation{}, domain.ErrNotFound
		}
		return domain.Reservation{}, err
	}

	return res, nil
}
