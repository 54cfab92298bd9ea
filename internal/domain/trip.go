// Package domain contains the core data types for the Stay Planner application.
// It is imported by every other internal package (rules, repo, service, handler)
// and depends on nothing inside this module.
package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// countryCodePattern matches an upper-case ISO 3166-1 alpha-3 code.
var countryCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// Trip is a stay in one country over an inclusive range of calendar dates.
// StartDate and EndDate are always normalized to UTC midnight; a trip where
// StartDate equals EndDate covers exactly one day.
//
// ID is zero for trips that have not been persisted (ad-hoc validation).
type Trip struct {
	ID          int64     `json:"id,omitempty"`
	UserID      uuid.UUID `json:"-"`
	CountryCode string    `json:"country"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTrip builds a validated Trip from raw request values.
// Malformed dates yield ErrInvalidDateFormat, a start after the end yields
// ErrInvalidRange, and a bad country code yields ErrValidation.
func NewTrip(id int64, country, start, end string) (Trip, error) {
	startDate, err := ParseDate(start)
	if err != nil {
		return Trip{}, fmt.Errorf("start_date: %w", err)
	}
	endDate, err := ParseDate(end)
	if err != nil {
		return Trip{}, fmt.Errorf("end_date: %w", err)
	}
	t := Trip{
		ID:          id,
		CountryCode: strings.TrimSpace(country),
		StartDate:   startDate,
		EndDate:     endDate,
	}
	if err := t.Validate(); err != nil {
		return Trip{}, err
	}
	return t, nil
}

// Validate checks the invariants every stored or computed trip must hold.
func (t Trip) Validate() error {
	if !countryCodePattern.MatchString(t.CountryCode) {
		return fmt.Errorf("%w: country must be a 3-letter ISO code (e.g. FRA, USA, GBR)", ErrValidation)
	}
	if t.StartDate.IsZero() || t.EndDate.IsZero() {
		return fmt.Errorf("%w: start_date and end_date are required", ErrValidation)
	}
	if NormalizeDate(t.StartDate).After(NormalizeDate(t.EndDate)) {
		return ErrInvalidRange
	}
	return nil
}

// Normalized returns a copy of t with both dates truncated to UTC midnight.
func (t Trip) Normalized() Trip {
	t.StartDate = NormalizeDate(t.StartDate)
	t.EndDate = NormalizeDate(t.EndDate)
	return t
}

// Days returns the number of calendar days the trip covers, counting both ends.
func (t Trip) Days() int {
	n := t.Normalized()
	if n.StartDate.After(n.EndDate) {
		return 0
	}
	return int(n.EndDate.Sub(n.StartDate).Hours()/24) + 1
}
