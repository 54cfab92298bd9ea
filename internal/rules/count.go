package rules

import (
	"time"

	"github.com/pkordes/stay-planner/internal/domain"
)

// DaysInRange sums the days each trip spends inside [start, end].
// When country is non-empty only trips to that country are counted.
// An inverted range counts as zero days rather than an error.
func DaysInRange(trips []domain.Trip, start, end time.Time, country string) int {
	start, end = domain.NormalizeDate(start), domain.NormalizeDate(end)
	if start.After(end) {
		return 0
	}

	total := 0
	for _, t := range trips {
		if country != "" && t.CountryCode != country {
			continue
		}
		total += OverlapDays(t.StartDate, t.EndDate, start, end)
	}
	return total
}
