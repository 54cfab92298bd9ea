package domain

import "time"

// DateWindow is an inclusive range of calendar dates.
type DateWindow struct {
	Start time.Time
	End   time.Time
}

// ComplianceResult is the Schengen 90/180 position as of a reference date.
// RemainingDays is never negative.
type ComplianceResult struct {
	UsedDays      int
	RemainingDays int
	WindowStart   time.Time
	WindowEnd     time.Time
}

// ForecastPoint is the Schengen position on a single future day, evaluated
// against the 180-day window ending on that day.
type ForecastPoint struct {
	Date          time.Time
	UsedDays      int
	RemainingDays int
}

// Forecast is a day-by-day projection over [Start, End]. UsedDays and
// AvailableDays describe the worst point in the range.
type Forecast struct {
	Start         time.Time
	End           time.Time
	UsedDays      int
	AvailableDays int
	Points        []ForecastPoint
}

// AvailabilitySummary holds the canned forecasts shown on the dashboard.
type AvailabilitySummary struct {
	NextMonth   Forecast
	Next3Months Forecast
	Next6Months Forecast
}

// CountryResidency is the day count for one country within a calendar year.
type CountryResidency struct {
	DaysInYear     int
	MeetsThreshold bool
}

// ResidencyStatus maps ISO alpha-3 country codes to their yearly totals.
type ResidencyStatus map[string]CountryResidency

// TravelSummary is the aggregate view over a user's whole trip history.
type TravelSummary struct {
	TotalTrips         int
	TotalDays          int
	CountriesVisited   int
	MostVisitedCountry string // empty when there are no trips
	CountryBreakdown   map[string]int
}

// UserSummary combines the travel aggregate with the user's Schengen position
// on AsOf and residency totals for the calendar year of AsOf.
type UserSummary struct {
	AsOf      time.Time
	Travel    TravelSummary
	Schengen  ComplianceResult
	Residency ResidencyStatus
}
