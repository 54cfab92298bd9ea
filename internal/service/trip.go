// Package service contains the business logic for the Stay Planner API.
// Services validate inputs, enforce trip and compliance rules, and orchestrate
// repo calls. No SQL lives here; services depend on repo interfaces.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/stay-planner/internal/domain"
	"github.com/pkordes/stay-planner/internal/metrics"
	"github.com/pkordes/stay-planner/internal/repo"
	"github.com/pkordes/stay-planner/internal/rules"
)

// OverlapError reports a trip rejected because it shares days with other
// trips of the same user. It wraps domain.ErrConflict.
type OverlapError struct {
	Result domain.OverlapResult
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("%s: %s", domain.ErrConflict, e.Result.Message)
}

func (e *OverlapError) Unwrap() error { return domain.ErrConflict }

// TripService implements business logic for Trip operations.
// It holds the users repo because every trip operation is scoped to an
// existing user.
type TripService struct {
	trips   repo.TripRepo
	users   repo.UserRepo
	metrics *metrics.Metrics
}

// NewTripService constructs a TripService backed by the provided repos.
// m may be nil.
func NewTripService(trips repo.TripRepo, users repo.UserRepo, m *metrics.Metrics) *TripService {
	return &TripService{trips: trips, users: users, metrics: m}
}

// Create validates the trip, rejects it if it overlaps another of the user's
// trips, then persists it.
// Returns domain.ErrValidation for bad input, domain.ErrNotFound for an
// unknown user and *OverlapError for a date conflict.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	trip = trip.Normalized()
	trip.ID = 0
	if err := s.checkTrip(ctx, trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	result, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns one of the user's trips.
func (s *TripService) GetByID(ctx context.Context, userID uuid.UUID, id int64) (domain.Trip, error) {
	result, err := s.trips.GetByID(ctx, userID, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// List returns all of the user's trips ordered by start date.
// Returns domain.ErrNotFound if the user does not exist.
func (s *TripService) List(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	trips, err := s.trips.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// ListPaged returns one page of the user's trips and the total count.
func (s *TripService) ListPaged(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, 0, fmt.Errorf("service.TripService.ListPaged: %w", err)
	}
	trips, total, err := s.trips.ListPaged(ctx, userID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.ListPaged: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// Update validates and persists new country and dates for an existing trip.
// The trip is checked for overlap against every other trip of the user.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	trip = trip.Normalized()
	if _, err := s.trips.GetByID(ctx, trip.UserID, trip.ID); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	if err := s.checkTrip(ctx, trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	result, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// Delete removes one of the user's trips.
func (s *TripService) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	if err := s.trips.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// checkTrip enforces the rules shared by Create and Update: valid fields, an
// existing owner, and no overlap with the owner's other trips.
func (s *TripService) checkTrip(ctx context.Context, trip domain.Trip) error {
	if err := trip.Validate(); err != nil {
		return err
	}
	if _, err := s.users.GetByID(ctx, trip.UserID); err != nil {
		return err
	}
	existing, err := s.trips.ListByUser(ctx, trip.UserID)
	if err != nil {
		return err
	}
	result, err := rules.ValidateNoOverlap(trip, existing, trip.ID)
	if err != nil {
		return err
	}
	if !result.IsValid {
		s.metrics.IncTripConflict()
		return &OverlapError{Result: result}
	}
	return nil
}
