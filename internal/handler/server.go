// Package handler implements the JSON HTTP handlers for the trip booking API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, booking.go) but share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mnapio/tripbook/backend/internal/domain"
	"github.com/mnapio/tripbook/backend/spec"
)

// QueryServicer defines the read operations the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type QueryServicer interface {
	ListUpcoming(ctx context.Context) ([]domain.Trip, error)
	GetTrip(ctx context.Context, id int64) (domain.Trip, error)
	ListReservations(ctx context.Context, tripID int64) ([]domain.Reservation, error)
}

// BookingServicer defines the booking operation the handlers depend on.
type BookingServicer interface {
	Book(ctx context.Context, req domain.BookingRequest) (domain.Trip, domain.Reservation, error)
}

// Server holds the handler dependencies for all API endpoints.
type Server struct {
	queries  QueryServicer
	bookings BookingServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(queries QueryServicer, bookings BookingServicer) *Server {
	return &Server{queries: queries, bookings: bookings}
}

// Routes returns the chi router with every API endpoint registered.
// Cross-cutting middleware (request ID, logging, CORS, body limits) is applied
// by main.go around this router, not here.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.ListTrips)
		r.Route("/{tripID}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Get("/reservations", s.ListTripReservations)
			r.Post("/bookings", s.CreateBooking)
		})
	})

	return r
}

// GetOpenAPI serves the embedded OpenAPI document, so the spec and the running
// code are always in sync.
func (s *Server) GetOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(spec.OpenAPI)
}
