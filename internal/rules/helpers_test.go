package rules_test

import (
	"time"

	"github.com/pkordes/stay-planner/internal/domain"
)

// d parses a YYYY-MM-DD literal; test inputs are always well-formed.
func d(s string) time.Time {
	t, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func trip(id int64, country, start, end string) domain.Trip {
	return domain.Trip{ID: id, CountryCode: country, StartDate: d(start), EndDate: d(end)}
}
