package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/stay-planner/internal/domain"
	"github.com/pkordes/stay-planner/internal/rules"
)

// The /rules endpoints run the engine over trips supplied in the request
// body. Nothing is read from or written to storage.

// SchengenCountriesJSON is the body of GET /rules/schengen-countries.
type SchengenCountriesJSON struct {
	Count     int      `json:"count"`
	Countries []string `json:"countries"`
}

// CountryCheckJSON is the body of GET /rules/schengen-countries/{code}.
type CountryCheckJSON struct {
	Country    string `json:"country"`
	IsSchengen bool   `json:"isSchengen"`
}

// DaysInRangeRequest is the body of POST /rules/days-in-range.
type DaysInRangeRequest struct {
	Trips   []TripInput `json:"trips"`
	Start   string      `json:"start"`
	End     string      `json:"end"`
	Country string      `json:"country,omitempty"`
}

// SchengenStatusRequest is the body of POST /rules/schengen-status.
// ReferenceDate defaults to today.
type SchengenStatusRequest struct {
	Trips         []TripInput `json:"trips"`
	ReferenceDate string      `json:"referenceDate,omitempty"`
}

// ResidencyStatusRequest is the body of POST /rules/residency-status.
type ResidencyStatusRequest struct {
	Trips []TripInput `json:"trips"`
	Year  int         `json:"year"`
}

// ValidateOverlapRequest is the body of POST /rules/validate-overlap.
// ExcludeID skips one of the existing trips, as an update does.
type ValidateOverlapRequest struct {
	Trip      TripInput   `json:"trip"`
	Existing  []TripInput `json:"existing"`
	ExcludeID int64       `json:"excludeId,omitempty"`
}

// ListSchengenCountries handles GET /rules/schengen-countries.
func (s *Server) ListSchengenCountries(w http.ResponseWriter, _ *http.Request) {
	countries := rules.SchengenCountries()
	writeJSON(w, http.StatusOK, SchengenCountriesJSON{Count: len(countries), Countries: countries})
}

// CheckSchengenCountry handles GET /rules/schengen-countries/{code}.
func (s *Server) CheckSchengenCountry(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "code")))
	writeJSON(w, http.StatusOK, CountryCheckJSON{Country: code, IsSchengen: rules.IsSchengen(code)})
}

// RulesDaysInRange handles POST /rules/days-in-range.
func (s *Server) RulesDaysInRange(w http.ResponseWriter, r *http.Request) {
	var body DaysInRangeRequest
	if !bind(w, r, &body) {
		return
	}
	trips, err := tripsFromInput(body.Trips)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
		return
	}
	start, end, err := parseRange(body.Start, body.End)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
		return
	}
	country := strings.ToUpper(strings.TrimSpace(body.Country))

	days := rules.DaysInRange(trips, start, end, country)
	writeJSON(w, http.StatusOK, daysInRangeResponse(days, start, end, country))
}

// RulesSchengenStatus handles POST /rules/schengen-status.
func (s *Server) RulesSchengenStatus(w http.ResponseWriter, r *http.Request) {
	var body SchengenStatusRequest
	if !bind(w, r, &body) {
		return
	}
	trips, err := tripsFromInput(body.Trips)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
		return
	}
	ref := s.today()
	if body.ReferenceDate != "" {
		if ref, err = domain.ParseDate(body.ReferenceDate); err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, requestBody("referenceDate must be a YYYY-MM-DD date"))
			return
		}
	}

	writeJSON(w, http.StatusOK, complianceToResponse(rules.Compliance(trips, ref)))
}

// RulesResidencyStatus handles POST /rules/residency-status.
func (s *Server) RulesResidencyStatus(w http.ResponseWriter, r *http.Request) {
	var body ResidencyStatusRequest
	if !bind(w, r, &body) {
		return
	}
	if body.Year < 1 || body.Year > 9999 {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("year is required (YYYY)"))
		return
	}
	trips, err := tripsFromInput(body.Trips)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
		return
	}

	writeJSON(w, http.StatusOK, residencyToResponse(body.Year, rules.Residency(trips, body.Year)))
}

// RulesValidateOverlap handles POST /rules/validate-overlap.
// An overlap is a normal 200 result with isValid false.
func (s *Server) RulesValidateOverlap(w http.ResponseWriter, r *http.Request) {
	var body ValidateOverlapRequest
	if !bind(w, r, &body) {
		return
	}
	candidate, err := body.Trip.toDomain()
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
		return
	}
	existing, err := tripsFromInput(body.Existing)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
		return
	}

	result, err := rules.ValidateNoOverlap(candidate, existing, body.ExcludeID)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
		return
	}

	writeJSON(w, http.StatusOK, OverlapResultJSON{
		IsValid:   result.IsValid,
		Conflicts: findingsToJSON(result.Conflicts),
		Message:   result.Message,
	})
}

func parseRange(rawStart, rawEnd string) (time.Time, time.Time, error) {
	if rawStart == "" || rawEnd == "" {
		return time.Time{}, time.Time{}, errors.New("start and end are required")
	}
	start, err := domain.ParseDate(rawStart)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := domain.ParseDate(rawEnd)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, domain.ErrInvalidRange
	}
	return start, end, nil
}

func daysInRangeResponse(days int, start, end time.Time, country string) DaysInRangeJSON {
	if country == "" {
		country = "all"
	}
	return DaysInRangeJSON{
		Days:    days,
		Start:   domain.FormatDate(start),
		End:     domain.FormatDate(end),
		Country: country,
	}
}
