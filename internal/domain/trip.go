// Package domain contains the core data types for the trip booking service.
// This package has no dependency on the storage or HTTP layers and is imported
// by every other internal package (repo, service, handler, notify).
package domain

import "time"

// Trip represents a bookable trip with a fixed slot capacity.
// A trip is the top-level aggregate; reservations belong to a trip.
//
// SlotsAvailable is only ever mutated by the booking transaction — there is no
// other write path in the core, and the value never goes negative after a
// committed transaction.
type Trip struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description,omitempty"`
	ShortDescription string    `json:"short_description,omitempty"`
	Image            string    `json:"image,omitempty"`
	Price            float64   `json:"price"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	SlotsAvailable   int       `json:"slots_available"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
