package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mnapio/tripbook/backend/internal/domain"
)

// bookingRequest is the JSON body of POST /trips/{tripID}/bookings.
// Email is a plain string here; syntactic validation happens in the service
// so the core enforces it regardless of transport.
type bookingRequest struct {
	Name         string `json:"name"`
	Surname      string `json:"surname"`
	Email        string `json:"email"`
	Participants int    `json:"participants"`
}

// bookingResponse is the 201 body: the updated trip (for rendering the
// success message) plus the created reservation with its confirmation code.
type bookingResponse struct {
	Trip        tripResponse        `json:"trip"`
	Reservation reservationResponse `json:"reservation"`
}

// CreateBooking handles POST /trips/{tripID}/bookings.
//
// Status mapping: 201 on success, 400 malformed body or id, 404 unknown trip,
// 409 capacity exceeded, 422 field validation failure, 413 oversized body,
// 500 storage error. A non-2xx response guarantees nothing was persisted.
func (s *Server) CreateBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(w, r)
	if !ok {
		return
	}

	var req bookingRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: ErrorDetail{
				Code:    "invalid_request",
				Message: "request body too large",
			}})
			return
		}
		badRequest(w, "invalid request body")
		return
	}

	trip, reservation, err := s.bookings.Book(r.Context(), domain.BookingRequest{
		TripID:       id,
		Name:         req.Name,
		Surname:      req.Surname,
		Email:        req.Email,
		Participants: req.Participants,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, bookingResponse{
		Trip:        tripToResponse(trip),
		Reservation: reservationToResponse(reservation),
	})
}
