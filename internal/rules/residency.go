package rules

import (
	"time"

	"github.com/pkordes/stay-planner/internal/domain"
)

// ResidencyThresholdDays is the yearly presence that commonly triggers tax residency.
const ResidencyThresholdDays = 183

// Residency totals the days spent in each country during the calendar year
// and flags countries at or above ResidencyThresholdDays. Every country is
// counted, Schengen or not. Countries with no day inside the year are absent.
func Residency(trips []domain.Trip, year int) domain.ResidencyStatus {
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	totals := make(map[string]int)
	for _, t := range trips {
		if days := OverlapDays(t.StartDate, t.EndDate, yearStart, yearEnd); days > 0 {
			totals[t.CountryCode] += days
		}
	}

	status := make(domain.ResidencyStatus, len(totals))
	for country, days := range totals {
		status[country] = domain.CountryResidency{
			DaysInYear:     days,
			MeetsThreshold: days >= ResidencyThresholdDays,
		}
	}
	return status
}
