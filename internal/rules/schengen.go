package rules

import (
	"time"

	"github.com/pkordes/stay-planner/internal/domain"
)

const (
	// AllowanceDays is the number of days allowed inside Schengen per window.
	AllowanceDays = 90

	// WindowDays is the length of the rolling window, inclusive of both ends.
	WindowDays = 180

	// lookbackDays bounds the window ends scanned by Compliance: every end
	// from the reference date back to 180 days earlier, 181 windows in all.
	lookbackDays = 180
)

// Compliance returns the Schengen position as of ref.
//
// UsedDays is the largest Schengen day count found in any 180-day window
// ending between ref-180 and ref inclusive. On ties the most recent window
// wins. When no window contains a Schengen day the reported window is
// [ref, ref].
func Compliance(trips []domain.Trip, ref time.Time) domain.ComplianceResult {
	ref = domain.NormalizeDate(ref)
	result := domain.ComplianceResult{
		RemainingDays: AllowanceDays,
		WindowStart:   ref,
		WindowEnd:     ref,
	}
	if len(trips) == 0 {
		return result
	}

	schengen := schengenTrips(trips)
	for back := 0; back <= lookbackDays; back++ {
		end := addDays(ref, -back)
		start := windowStart(end)
		used := usedInWindow(schengen, start, end)
		if used > result.UsedDays {
			result.UsedDays = used
			result.WindowStart = start
			result.WindowEnd = end
		}
	}
	result.RemainingDays = remaining(result.UsedDays)
	return result
}

// WindowUsage counts Schengen days in the single window [ref-179, ref].
// This is the position on ref alone, without looking at earlier windows.
func WindowUsage(trips []domain.Trip, ref time.Time) int {
	ref = domain.NormalizeDate(ref)
	return usedInWindow(schengenTrips(trips), windowStart(ref), ref)
}

func windowStart(end time.Time) time.Time {
	return addDays(end, -(WindowDays - 1))
}

func usedInWindow(trips []domain.Trip, start, end time.Time) int {
	used := 0
	for _, t := range trips {
		used += OverlapDays(t.StartDate, t.EndDate, start, end)
	}
	return used
}

func schengenTrips(trips []domain.Trip) []domain.Trip {
	out := make([]domain.Trip, 0, len(trips))
	for _, t := range trips {
		if IsSchengen(t.CountryCode) {
			out = append(out, t)
		}
	}
	return out
}

func remaining(used int) int {
	return max(0, AllowanceDays-used)
}
