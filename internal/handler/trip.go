package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/mnapio/tripbook/backend/internal/domain"
)

// ListTrips handles GET /trips.
// It returns only trips whose start date is in the future, soonest first.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.queries.ListUpcoming(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	data := make([]tripResponse, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, tripListResponse{Data: data})
}

// GetTrip handles GET /trips/{tripID}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(w, r)
	if !ok {
		return
	}

	trip, err := s.queries.GetTrip(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// ListTripReservations handles GET /trips/{tripID}/reservations.
// Administrative read: returns every reservation on the trip, oldest first.
func (s *Server) ListTripReservations(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(w, r)
	if !ok {
		return
	}

	reservations, err := s.queries.ListReservations(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	data := make([]reservationResponse, len(reservations))
	for i, res := range reservations {
		data[i] = reservationToResponse(res)
	}
	writeJSON(w, http.StatusOK, reservationListResponse{Data: data})
}

// tripIDParam parses the {tripID} path parameter. On failure it writes a 400
// response and returns ok=false.
func tripIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "tripID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		badRequest(w, "trip id must be a positive integer")
		return 0, false
	}
	return id, true
}

// --- response types ---------------------------------------------------------

type tripResponse struct {
	ID               int64              `json:"id"`
	Name             string             `json:"name"`
	Description      string             `json:"description,omitempty"`
	ShortDescription string             `json:"short_description,omitempty"`
	Image            string             `json:"image,omitempty"`
	Price            float64            `json:"price"`
	StartDate        openapi_types.Date `json:"start_date"`
	EndDate          openapi_types.Date `json:"end_date"`
	SlotsAvailable   int                `json:"slots_available"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

type tripListResponse struct {
	Data []tripResponse `json:"data"`
}

type reservationResponse struct {
	ID               int64               `json:"id"`
	TripID           int64               `json:"trip_id"`
	Name             string              `json:"name"`
	Surname          string              `json:"surname"`
	Email            openapi_types.Email `json:"email"`
	SlotsTaken       int                 `json:"slots_taken"`
	ConfirmationCode string              `json:"confirmation_code"`
	CreatedAt        time.Time           `json:"created_at"`
}

type reservationListResponse struct {
	Data []reservationResponse `json:"data"`
}

// tripToResponse converts a domain.Trip into its JSON shape.
func tripToResponse(t domain.Trip) tripResponse {
	return tripResponse{
		ID:               t.ID,
		Name:             t.Name,
		Description:      t.Description,
		ShortDescription: t.ShortDescription,
		Image:            t.Image,
		Price:            t.Price,
		StartDate:        openapi_types.Date{Time: t.StartDate},
		EndDate:          openapi_types.Date{Time: t.EndDate},
		SlotsAvailable:   t.SlotsAvailable,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

// reservationToResponse converts a domain.Reservation into its JSON shape.
func reservationToResponse(res domain.Reservation) reservationResponse {
	return reservationResponse{
		ID:               res.ID,
		TripID:           res.TripID,
		Name:             res.Name,
		Surname:          res.Surname,
		Email:            openapi_types.Email(res.Email),
		SlotsTaken:       res.SlotsTaken,
		ConfirmationCode: res.ConfirmationCode.String(),
		CreatedAt:        res.CreatedAt,
	}
}
