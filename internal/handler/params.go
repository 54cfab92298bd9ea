package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/stay-planner/internal/domain"
)

// userIDParam parses the {userID} path segment. A malformed ID cannot name
// an existing user, so it is reported as 404.
func userIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, notFoundBody("user not found"))
		return uuid.Nil, false
	}
	return id, true
}

func tripIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "tripID"), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusNotFound, notFoundBody("trip not found"))
		return 0, false
	}
	return id, true
}

// queryDate parses a YYYY-MM-DD query parameter. fallback is returned when
// the parameter is absent; a zero fallback makes the parameter required.
func queryDate(r *http.Request, name string, fallback time.Time) (time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		if fallback.IsZero() {
			return time.Time{}, fmt.Errorf("%s is required (YYYY-MM-DD)", name)
		}
		return fallback, nil
	}
	d, err := domain.ParseDate(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be a YYYY-MM-DD date", name)
	}
	return d, nil
}

// queryInt parses an optional positive integer query parameter.
func queryInt(r *http.Request, name string) (*int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return nil, fmt.Errorf("%s must be a positive integer", name)
	}
	return &n, nil
}
