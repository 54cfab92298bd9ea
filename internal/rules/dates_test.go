package rules_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/stay-planner/internal/rules"
)

func TestOverlapDays_SingleDayCountsAsOne(t *testing.T) {
	for _, day := range []string{"2024-01-01", "2024-02-29", "2023-12-31"} {
		x := d(day)
		assert.Equal(t, 1, rules.OverlapDays(x, x, x, x), day)
	}
}

func TestOverlapDays(t *testing.T) {
	tests := []struct {
		name           string
		s1, e1, s2, e2 string
		want           int
	}{
		{"identical", "2024-06-01", "2024-06-10", "2024-06-01", "2024-06-10", 10},
		{"partial", "2024-01-01", "2024-01-31", "2024-01-20", "2024-02-10", 12},
		{"shared boundary day", "2024-06-01", "2024-06-10", "2024-06-10", "2024-06-20", 1},
		{"adjacent days", "2024-06-01", "2024-06-10", "2024-06-11", "2024-06-20", 0},
		{"disjoint", "2024-01-01", "2024-01-05", "2024-03-01", "2024-03-05", 0},
		{"contained", "2024-01-01", "2024-12-31", "2024-03-10", "2024-03-12", 3},
		{"leap year", "2024-01-01", "2024-12-31", "2024-01-01", "2024-12-31", 366},
		{"across DST change", "2024-03-01", "2024-04-30", "2024-03-01", "2024-04-30", 61},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := rules.OverlapDays(d(tc.s1), d(tc.e1), d(tc.s2), d(tc.e2))
			assert.Equal(t, tc.want, got)

			// Overlap is symmetric.
			assert.Equal(t, tc.want, rules.OverlapDays(d(tc.s2), d(tc.e2), d(tc.s1), d(tc.e1)))
		})
	}
}

func TestOverlapDays_IgnoresTimeOfDayAndZone(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	s := time.Date(2024, 6, 1, 23, 59, 0, 0, tokyo)
	e := time.Date(2024, 6, 3, 0, 1, 0, 0, time.UTC)

	assert.Equal(t, 3, rules.OverlapDays(s, e, d("2024-05-01"), d("2024-07-01")))
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 0, rules.DaysBetween(d("2024-06-01"), d("2024-06-01")))
	assert.Equal(t, 179, rules.DaysBetween(d("2024-01-01"), d("2024-06-28")))
	assert.Equal(t, -1, rules.DaysBetween(d("2024-06-02"), d("2024-06-01")))
}
