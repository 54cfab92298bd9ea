package rules

import (
	"fmt"
	"time"

	"github.com/pkordes/stay-planner/internal/domain"
)

// ValidateNoOverlap checks that candidate does not share a calendar day with
// any trip in existing. A trip whose ID equals excludeID is skipped, which
// lets an update compare against everything except its own prior version;
// pass 0 to compare against all trips.
//
// Ending one trip on the day the next begins is a travel day, not an
// overlap. Two trips with identical dates always conflict, whatever their
// countries.
//
// Conflicts are reported in the result, not as an error. The error return
// is reserved for a candidate whose dates are inverted.
func ValidateNoOverlap(candidate domain.Trip, existing []domain.Trip, excludeID int64) (domain.OverlapResult, error) {
	c := candidate.Normalized()
	if c.StartDate.After(c.EndDate) {
		return domain.OverlapResult{}, fmt.Errorf("rules.ValidateNoOverlap: %w", domain.ErrInvalidRange)
	}

	result := domain.OverlapResult{Conflicts: []domain.OverlapFinding{}}
	for _, e := range existing {
		if excludeID != 0 && e.ID == excludeID {
			continue
		}
		o := e.Normalized()

		finding := domain.OverlapFinding{
			ConflictingTripID: o.ID,
			CountryCode:       o.CountryCode,
			StartDate:         o.StartDate,
			EndDate:           o.EndDate,
			IsSameCountry:     o.CountryCode == c.CountryCode,
		}

		switch {
		case c.StartDate.Equal(o.StartDate) && c.EndDate.Equal(o.EndDate):
			finding.OverlapType = domain.OverlapExactMatch
			finding.IsSameDates = true
		case datesOverlap(c.StartDate, c.EndDate, o.StartDate, o.EndDate):
			finding.OverlapType = overlapType(c.StartDate, c.EndDate, o.StartDate, o.EndDate)
		default:
			continue
		}
		result.Conflicts = append(result.Conflicts, finding)
	}

	result.IsValid = len(result.Conflicts) == 0
	result.Message = overlapMessage(c, result.Conflicts)
	return result, nil
}

// datesOverlap is the standard closed-interval intersection test, except
// that sharing only a boundary day (end of one == start of the other) is
// allowed as same-day transit.
func datesOverlap(s1, e1, s2, e2 time.Time) bool {
	if e1.Equal(s2) || e2.Equal(s1) {
		return false
	}
	return !s1.After(e2) && !s2.After(e1)
}

// overlapType classifies how [s1, e1] (the candidate) relates to [s2, e2].
func overlapType(s1, e1, s2, e2 time.Time) domain.OverlapType {
	switch {
	case !s1.After(s2) && !e1.Before(e2):
		return domain.OverlapContains
	case !s2.After(s1) && !e2.Before(e1):
		return domain.OverlapContainedBy
	case s1.Before(s2) && !e1.Before(s2):
		return domain.OverlapOverlapsStart
	case !s1.After(e2) && e1.After(e2):
		return domain.OverlapOverlapsEnd
	default:
		return domain.OverlapExactMatch
	}
}

func overlapMessage(c domain.Trip, conflicts []domain.OverlapFinding) string {
	if len(conflicts) == 0 {
		return ""
	}

	var sameDates, sameCountry int
	for _, f := range conflicts {
		if f.IsSameDates {
			sameDates++
		} else if f.IsSameCountry {
			sameCountry++
		}
	}

	switch {
	case sameDates > 0:
		return fmt.Sprintf("You cannot have multiple trips on the exact same dates (%s to %s)",
			domain.FormatDate(c.StartDate), domain.FormatDate(c.EndDate))
	case sameCountry > 0:
		return fmt.Sprintf("This trip overlaps with %d existing trip(s) in %s", sameCountry, c.CountryCode)
	default:
		return fmt.Sprintf("This trip overlaps with %d existing trip(s) on overlapping dates", len(conflicts))
	}
}
