package rules

import (
	"time"

	"github.com/pkordes/stay-planner/internal/domain"
)

// Horizons used by Availability, in days from the reference date.
const (
	horizonMonth   = 30
	horizon3Months = 90
	horizon6Months = 180
)

// Forecast projects the Schengen position for every day in [start, end].
//
// Each day d is evaluated against the single window [d-179, d], i.e. "where
// will I stand on d if I book nothing else". The summary fields carry the
// worst day in the range. An inverted range yields no points and the full
// allowance.
func Forecast(trips []domain.Trip, start, end time.Time) domain.Forecast {
	start, end = domain.NormalizeDate(start), domain.NormalizeDate(end)
	f := domain.Forecast{
		Start:         start,
		End:           end,
		AvailableDays: AllowanceDays,
		Points:        []domain.ForecastPoint{},
	}
	if start.After(end) {
		return f
	}

	schengen := schengenTrips(trips)
	f.Points = make([]domain.ForecastPoint, 0, DaysBetween(start, end)+1)
	for d := start; !d.After(end); d = addDays(d, 1) {
		used := usedInWindow(schengen, windowStart(d), d)
		f.UsedDays = max(f.UsedDays, used)
		f.Points = append(f.Points, domain.ForecastPoint{
			Date:          d,
			UsedDays:      used,
			RemainingDays: remaining(used),
		})
	}
	f.AvailableDays = remaining(f.UsedDays)
	return f
}

// Availability returns forecasts for the next 30, 90 and 180 days from ref.
func Availability(trips []domain.Trip, ref time.Time) domain.AvailabilitySummary {
	ref = domain.NormalizeDate(ref)
	return domain.AvailabilitySummary{
		NextMonth:   Forecast(trips, ref, addDays(ref, horizonMonth)),
		Next3Months: Forecast(trips, ref, addDays(ref, horizon3Months)),
		Next6Months: Forecast(trips, ref, addDays(ref, horizon6Months)),
	}
}
