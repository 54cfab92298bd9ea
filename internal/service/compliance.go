package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/stay-planner/internal/domain"
	"github.com/pkordes/stay-planner/internal/metrics"
	"github.com/pkordes/stay-planner/internal/repo"
	"github.com/pkordes/stay-planner/internal/rules"
)

// Limits on caller-supplied calculation inputs.
const (
	MaxForecastDays  = 366
	MinResidencyYear = 2000
	maxYearsAhead    = 10
)

// ComplianceService runs the rules engine over a user's stored trips.
type ComplianceService struct {
	trips   repo.TripRepo
	users   repo.UserRepo
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewComplianceService constructs a ComplianceService. m may be nil.
func NewComplianceService(trips repo.TripRepo, users repo.UserRepo, m *metrics.Metrics) *ComplianceService {
	return &ComplianceService{trips: trips, users: users, metrics: m, now: time.Now}
}

// WithClock replaces the clock used to bound residency years. Tests only.
func (s *ComplianceService) WithClock(now func() time.Time) *ComplianceService {
	s.now = now
	return s
}

// Schengen returns the user's 90/180 position as of ref.
func (s *ComplianceService) Schengen(ctx context.Context, userID uuid.UUID, ref time.Time) (domain.ComplianceResult, error) {
	defer s.observe("schengen", time.Now())

	trips, err := s.load(ctx, userID)
	if err != nil {
		return domain.ComplianceResult{}, fmt.Errorf("service.ComplianceService.Schengen: %w", err)
	}
	result := rules.Compliance(trips, ref)
	s.metrics.ObserveRemaining(result.RemainingDays)
	return result, nil
}

// Forecast projects the user's position for every day in [start, end].
// The range may span at most MaxForecastDays days.
func (s *ComplianceService) Forecast(ctx context.Context, userID uuid.UUID, start, end time.Time) (domain.Forecast, error) {
	defer s.observe("forecast", time.Now())

	if err := checkRange(start, end); err != nil {
		return domain.Forecast{}, fmt.Errorf("service.ComplianceService.Forecast: %w", err)
	}
	if n := rules.DaysBetween(start, end) + 1; n > MaxForecastDays {
		return domain.Forecast{}, fmt.Errorf("service.ComplianceService.Forecast: %w: range covers %d days, limit is %d",
			domain.ErrValidation, n, MaxForecastDays)
	}
	trips, err := s.load(ctx, userID)
	if err != nil {
		return domain.Forecast{}, fmt.Errorf("service.ComplianceService.Forecast: %w", err)
	}
	return rules.Forecast(trips, start, end), nil
}

// Availability returns the 30, 90 and 180 day forecasts from ref.
func (s *ComplianceService) Availability(ctx context.Context, userID uuid.UUID, ref time.Time) (domain.AvailabilitySummary, error) {
	defer s.observe("availability", time.Now())

	trips, err := s.load(ctx, userID)
	if err != nil {
		return domain.AvailabilitySummary{}, fmt.Errorf("service.ComplianceService.Availability: %w", err)
	}
	return rules.Availability(trips, ref), nil
}

// Residency returns per-country day totals for the calendar year.
func (s *ComplianceService) Residency(ctx context.Context, userID uuid.UUID, year int) (domain.ResidencyStatus, error) {
	defer s.observe("residency", time.Now())

	if maxYear := s.now().UTC().Year() + maxYearsAhead; year < MinResidencyYear || year > maxYear {
		return nil, fmt.Errorf("service.ComplianceService.Residency: %w: year must be between %d and %d",
			domain.ErrValidation, MinResidencyYear, maxYear)
	}
	trips, err := s.load(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.ComplianceService.Residency: %w", err)
	}
	return rules.Residency(trips, year), nil
}

// DaysInRange counts the user's days inside [start, end], optionally limited
// to one country. An empty country counts every country.
func (s *ComplianceService) DaysInRange(ctx context.Context, userID uuid.UUID, start, end time.Time, country string) (int, error) {
	defer s.observe("days_in_range", time.Now())

	if err := checkRange(start, end); err != nil {
		return 0, fmt.Errorf("service.ComplianceService.DaysInRange: %w", err)
	}
	trips, err := s.load(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("service.ComplianceService.DaysInRange: %w", err)
	}
	return rules.DaysInRange(trips, start, end, strings.ToUpper(strings.TrimSpace(country))), nil
}

// Summary aggregates the user's travel history with their Schengen position
// on ref and residency totals for ref's year.
func (s *ComplianceService) Summary(ctx context.Context, userID uuid.UUID, ref time.Time) (domain.UserSummary, error) {
	defer s.observe("summary", time.Now())

	trips, err := s.load(ctx, userID)
	if err != nil {
		return domain.UserSummary{}, fmt.Errorf("service.ComplianceService.Summary: %w", err)
	}
	ref = domain.NormalizeDate(ref)
	return domain.UserSummary{
		AsOf:      ref,
		Travel:    rules.Summarize(trips),
		Schengen:  rules.Compliance(trips, ref),
		Residency: rules.Residency(trips, ref.Year()),
	}, nil
}

// load returns the user's trips, or domain.ErrNotFound for an unknown user.
func (s *ComplianceService) load(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.trips.ListByUser(ctx, userID)
}

func (s *ComplianceService) observe(calc string, start time.Time) {
	s.metrics.ObserveCalc(calc, time.Since(start))
}

func checkRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: start and end are required", domain.ErrValidation)
	}
	if domain.NormalizeDate(start).After(domain.NormalizeDate(end)) {
		return domain.ErrInvalidRange
	}
	return nil
}
