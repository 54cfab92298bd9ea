package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Calculation endpoints default a missing date to today (UTC).

// GetSchengen handles GET /users/{userID}/calcs/schengen?date=.
func (s *Server) GetSchengen(w http.ResponseWriter, r *http.Request) {
	userID, ref, ok := s.userAndDate(w, r)
	if !ok {
		return
	}

	result, err := s.calcs.Schengen(r.Context(), userID, ref)
	if err != nil {
		writeServiceError(w, r, err, "user not found")
		return
	}

	writeJSON(w, http.StatusOK, complianceToResponse(result))
}

// GetForecast handles GET /users/{userID}/calcs/forecast?start=&end=.
// start defaults to today and end to start plus 90 days.
func (s *Server) GetForecast(w http.ResponseWriter, r *http.Request) {
	userID, start, ok := s.userAndDateParam(w, r, "start")
	if !ok {
		return
	}
	end, err := queryDate(r, "end", start.AddDate(0, 0, 90))
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	forecast, err := s.calcs.Forecast(r.Context(), userID, start, end)
	if err != nil {
		writeServiceError(w, r, err, "user not found")
		return
	}

	writeJSON(w, http.StatusOK, forecastToResponse(forecast))
}

// GetAvailability handles GET /users/{userID}/calcs/availability?date=.
func (s *Server) GetAvailability(w http.ResponseWriter, r *http.Request) {
	userID, ref, ok := s.userAndDate(w, r)
	if !ok {
		return
	}

	summary, err := s.calcs.Availability(r.Context(), userID, ref)
	if err != nil {
		writeServiceError(w, r, err, "user not found")
		return
	}

	writeJSON(w, http.StatusOK, availabilityToResponse(summary))
}

// GetResidency handles GET /users/{userID}/calcs/residency?year=.
// year defaults to the current year.
func (s *Server) GetResidency(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	year := s.today().Year()
	if raw := strings.TrimSpace(r.URL.Query().Get("year")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, requestBody("year must be in YYYY format"))
			return
		}
		year = n
	}

	status, err := s.calcs.Residency(r.Context(), userID, year)
	if err != nil {
		writeServiceError(w, r, err, "user not found")
		return
	}

	writeJSON(w, http.StatusOK, residencyToResponse(year, status))
}

// DaysInRangeJSON is the result of a days-in-range count. Country is "all"
// when no filter was applied.
type DaysInRangeJSON struct {
	Days    int    `json:"days"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Country string `json:"country"`
}

// GetDaysInRange handles GET /users/{userID}/calcs/days-in-range?start=&end=&country=.
func (s *Server) GetDaysInRange(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	start, err := queryDate(r, "start", time.Time{})
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}
	end, err := queryDate(r, "end", time.Time{})
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}
	country := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("country")))

	days, err := s.calcs.DaysInRange(r.Context(), userID, start, end, country)
	if err != nil {
		writeServiceError(w, r, err, "user not found")
		return
	}

	writeJSON(w, http.StatusOK, daysInRangeResponse(days, start, end, country))
}

// GetSummary handles GET /users/{userID}/calcs/summary?date=.
func (s *Server) GetSummary(w http.ResponseWriter, r *http.Request) {
	userID, ref, ok := s.userAndDate(w, r)
	if !ok {
		return
	}

	summary, err := s.calcs.Summary(r.Context(), userID, ref)
	if err != nil {
		writeServiceError(w, r, err, "user not found")
		return
	}

	writeJSON(w, http.StatusOK, summaryToResponse(summary))
}

func (s *Server) userAndDate(w http.ResponseWriter, r *http.Request) (uuid.UUID, time.Time, bool) {
	return s.userAndDateParam(w, r, "date")
}

// userAndDateParam reads the {userID} path segment and a date query
// parameter that defaults to today.
func (s *Server) userAndDateParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, time.Time, bool) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return uuid.Nil, time.Time{}, false
	}
	d, err := queryDate(r, name, s.today())
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return uuid.Nil, time.Time{}, false
	}
	return userID, d, true
}
