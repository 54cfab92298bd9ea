// Package rules is the travel-compliance calculation engine.
//
// Every function here is pure: it reads its arguments, allocates its result,
// and performs no I/O. Trips are never mutated. All date arithmetic runs on
// calendar dates normalized to UTC midnight, and every range is inclusive on
// both ends, so a trip that starts and ends on the same day counts as one day.
package rules

import (
	"time"

	"github.com/pkordes/stay-planner/internal/domain"
)

const secondsPerDay = 24 * 60 * 60

// DaysBetween returns the number of whole calendar days from a to b.
// The result is negative when b is before a.
func DaysBetween(a, b time.Time) int {
	a, b = domain.NormalizeDate(a), domain.NormalizeDate(b)
	return int((b.Unix() - a.Unix()) / secondsPerDay)
}

// OverlapDays returns how many calendar days [s1, e1] and [s2, e2] share,
// or 0 when they are disjoint. Ranges that touch only at adjacent days
// (one ends the day before the other starts) share nothing.
func OverlapDays(s1, e1, s2, e2 time.Time) int {
	start := laterOf(domain.NormalizeDate(s1), domain.NormalizeDate(s2))
	end := earlierOf(domain.NormalizeDate(e1), domain.NormalizeDate(e2))
	if start.After(end) {
		return 0
	}
	return DaysBetween(start, end) + 1
}

func addDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

func laterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func earlierOf(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
