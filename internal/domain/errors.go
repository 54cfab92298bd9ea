package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. malformed country code, end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a write would leave the user with two trips
// on the same calendar day. Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrInvalidDateFormat is returned when a date string is not a valid
// YYYY-MM-DD calendar date. It wraps ErrValidation.
var ErrInvalidDateFormat = fmt.Errorf("%w: invalid date format", ErrValidation)

// ErrInvalidRange is returned when a start date falls after its end date.
// It wraps ErrValidation.
var ErrInvalidRange = fmt.Errorf("%w: start date after end date", ErrValidation)
