package domain

import (
	"time"

	"github.com/google/uuid"
)

// Reservation is a confirmed booking of one or more slots on a trip.
// Reservations are append-only: they are created inside a successful booking
// transaction and never updated or deleted by the core.
type Reservation struct {
	ID               int64     `json:"id"`
	TripID           int64     `json:"trip_id"`
	Name             string    `json:"name"`
	Surname          string    `json:"surname"`
	Email            string    `json:"email"`
	SlotsTaken       int       `json:"slots_taken"`
	ConfirmationCode uuid.UUID `json:"confirmation_code"`
	CreatedAt        time.Time `json:"created_at"`
}

// BookingRequest carries the input of a single booking attempt from the HTTP
// layer into the booking service. The validate tags are evaluated by the
// service before any storage access; violations surface as FieldError.
type BookingRequest struct {
	TripID       int64  `validate:"-"`
	Name         string `validate:"required"`
	Surname      string `validate:"required"`
	Email        string `validate:"required,email"`
	Participants int    `validate:"gte=1"`
}
