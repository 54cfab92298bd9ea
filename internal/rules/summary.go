package rules

import "github.com/pkordes/stay-planner/internal/domain"

// Summarize aggregates a trip history: trip and day totals, how many trips
// went to each country, and the most visited country. Ties for most visited
// go to the alphabetically first code so the answer is stable.
func Summarize(trips []domain.Trip) domain.TravelSummary {
	s := domain.TravelSummary{
		TotalTrips:       len(trips),
		CountryBreakdown: make(map[string]int),
	}
	for _, t := range trips {
		s.TotalDays += t.Days()
		s.CountryBreakdown[t.CountryCode]++
	}
	s.CountriesVisited = len(s.CountryBreakdown)

	best := 0
	for country, n := range s.CountryBreakdown {
		if n > best || (n == best && country < s.MostVisitedCountry) {
			best = n
			s.MostVisitedCountry = country
		}
	}
	return s
}
