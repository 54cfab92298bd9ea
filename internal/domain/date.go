package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for every calendar date the API accepts or returns.
const DateLayout = "2006-01-02"

// NormalizeDate truncates t to midnight UTC of the calendar date t carries in
// its own location. All date arithmetic happens on normalized values so that
// a time zone offset can never move a trip by a day.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a normalized calendar date.
// Returns ErrInvalidDateFormat for anything else, including impossible dates
// such as 2024-02-30.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	return NormalizeDate(t), nil
}

// FormatDate renders a calendar date in DateLayout.
func FormatDate(t time.Time) string {
	return NormalizeDate(t).Format(DateLayout)
}

// Today returns the current calendar date in UTC.
func Today() time.Time {
	return NormalizeDate(time.Now().UTC())
}
