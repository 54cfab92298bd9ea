// Package handler implements the HTTP handlers for the Stay Planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, user.go, trip.go, calcs.go, rules.go) but all share the
// same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/stay-planner/internal/domain"
	"github.com/pkordes/stay-planner/spec"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, userID uuid.UUID, id int64) (domain.Trip, error)
	ListPaged(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, userID uuid.UUID, id int64) error
}

// UserServicer defines the user operations the handlers depend on.
type UserServicer interface {
	Create(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
}

// ComplianceServicer runs calculations over a stored user's trips.
type ComplianceServicer interface {
	Schengen(ctx context.Context, userID uuid.UUID, ref time.Time) (domain.ComplianceResult, error)
	Forecast(ctx context.Context, userID uuid.UUID, start, end time.Time) (domain.Forecast, error)
	Availability(ctx context.Context, userID uuid.UUID, ref time.Time) (domain.AvailabilitySummary, error)
	Residency(ctx context.Context, userID uuid.UUID, year int) (domain.ResidencyStatus, error)
	DaysInRange(ctx context.Context, userID uuid.UUID, start, end time.Time, country string) (int, error)
	Summary(ctx context.Context, userID uuid.UUID, ref time.Time) (domain.UserSummary, error)
}

// Server holds the dependencies shared by every handler.
// Wire it in main.go via Mount(r, server) or server.Routes().
type Server struct {
	trips TripServicer
	users UserServicer
	calcs ComplianceServicer
	today func() time.Time
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, users UserServicer, calcs ComplianceServicer) *Server {
	return &Server{trips: trips, users: users, calcs: calcs, today: domain.Today}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil)
}

// Routes returns a chi router with every API endpoint registered.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, notFoundBody("route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody("method_not_allowed", "method not allowed"))
	})

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", serveSpec)

	r.Route("/rules", func(r chi.Router) {
		r.Get("/schengen-countries", s.ListSchengenCountries)
		r.Get("/schengen-countries/{code}", s.CheckSchengenCountry)
		r.Post("/days-in-range", s.RulesDaysInRange)
		r.Post("/schengen-status", s.RulesSchengenStatus)
		r.Post("/residency-status", s.RulesResidencyStatus)
		r.Post("/validate-overlap", s.RulesValidateOverlap)
	})

	r.Post("/users", s.CreateUser)
	r.Route("/users/{userID}", func(r chi.Router) {
		r.Get("/", s.GetUser)

		r.Get("/trips", s.ListTrips)
		r.Post("/trips", s.CreateTrip)
		r.Get("/trips/{tripID}", s.GetTrip)
		r.Put("/trips/{tripID}", s.UpdateTrip)
		r.Delete("/trips/{tripID}", s.DeleteTrip)

		r.Route("/calcs", func(r chi.Router) {
			r.Get("/schengen", s.GetSchengen)
			r.Get("/forecast", s.GetForecast)
			r.Get("/availability", s.GetAvailability)
			r.Get("/residency", s.GetResidency)
			r.Get("/days-in-range", s.GetDaysInRange)
			r.Get("/summary", s.GetSummary)
		})
	})
	return r
}

func serveSpec(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(spec.OpenAPI)
}
