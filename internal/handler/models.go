package handler

import (
	"sort"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/stay-planner/internal/domain"
	"github.com/pkordes/stay-planner/internal/rules"
)

// Trips and users use the snake_case field names of the REST resources.
// Calculation results keep the camelCase names existing clients read.

// TripInput is the body of POST and PUT on a trip, and one element of the
// trip lists the stateless rules endpoints accept. Dates are YYYY-MM-DD.
type TripInput struct {
	ID        int64  `json:"id,omitempty"`
	Country   string `json:"country"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// toDomain validates the input and converts it to a domain.Trip.
func (in TripInput) toDomain() (domain.Trip, error) {
	return domain.NewTrip(in.ID, in.Country, in.StartDate, in.EndDate)
}

// tripsFromInput converts a list of inputs, failing on the first invalid one.
func tripsFromInput(in []TripInput) ([]domain.Trip, error) {
	trips := make([]domain.Trip, 0, len(in))
	for _, t := range in {
		trip, err := t.toDomain()
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}
	return trips, nil
}

// TripJSON is a stored trip.
type TripJSON struct {
	ID        int64              `json:"id"`
	Country   string             `json:"country"`
	StartDate openapi_types.Date `json:"start_date"`
	EndDate   openapi_types.Date `json:"end_date"`
	Days      int                `json:"days"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func tripToResponse(t domain.Trip) TripJSON {
	return TripJSON{
		ID:        t.ID,
		Country:   t.CountryCode,
		StartDate: openapi_types.Date{Time: t.StartDate},
		EndDate:   openapi_types.Date{Time: t.EndDate},
		Days:      t.Days(),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// Pagination describes the page returned by a list endpoint.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// TripPage is the body of GET /users/{userID}/trips.
type TripPage struct {
	Data       []TripJSON `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	Email string `json:"email"`
}

// UserJSON is a stored user.
type UserJSON struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func userToResponse(u domain.User) UserJSON {
	return UserJSON{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}

// ComplianceJSON is a Schengen 90/180 position.
type ComplianceJSON struct {
	Used        int                `json:"used"`
	Remaining   int                `json:"remaining"`
	WindowStart openapi_types.Date `json:"windowStart"`
	WindowEnd   openapi_types.Date `json:"windowEnd"`
}

func complianceToResponse(c domain.ComplianceResult) ComplianceJSON {
	return ComplianceJSON{
		Used:        c.UsedDays,
		Remaining:   c.RemainingDays,
		WindowStart: openapi_types.Date{Time: c.WindowStart},
		WindowEnd:   openapi_types.Date{Time: c.WindowEnd},
	}
}

// ForecastPointJSON is the projected position on one day.
type ForecastPointJSON struct {
	Date      openapi_types.Date `json:"date"`
	Used      int                `json:"used"`
	Remaining int                `json:"remaining"`
}

// ForecastSummaryJSON is the worst point of a forecast range.
type ForecastSummaryJSON struct {
	Start     openapi_types.Date `json:"start"`
	End       openapi_types.Date `json:"end"`
	Used      int                `json:"used"`
	Available int                `json:"available"`
}

// ForecastJSON is a forecast summary plus its day-by-day points.
type ForecastJSON struct {
	ForecastSummaryJSON
	Points []ForecastPointJSON `json:"points"`
}

func forecastSummary(f domain.Forecast) ForecastSummaryJSON {
	return ForecastSummaryJSON{
		Start:     openapi_types.Date{Time: f.Start},
		End:       openapi_types.Date{Time: f.End},
		Used:      f.UsedDays,
		Available: f.AvailableDays,
	}
}

func forecastToResponse(f domain.Forecast) ForecastJSON {
	points := make([]ForecastPointJSON, len(f.Points))
	for i, p := range f.Points {
		points[i] = ForecastPointJSON{
			Date:      openapi_types.Date{Time: p.Date},
			Used:      p.UsedDays,
			Remaining: p.RemainingDays,
		}
	}
	return ForecastJSON{ForecastSummaryJSON: forecastSummary(f), Points: points}
}

// AvailabilityJSON holds the dashboard forecasts.
type AvailabilityJSON struct {
	NextMonth   ForecastSummaryJSON `json:"nextMonth"`
	Next3Months ForecastSummaryJSON `json:"next3Months"`
	Next6Months ForecastSummaryJSON `json:"next6Months"`
}

func availabilityToResponse(a domain.AvailabilitySummary) AvailabilityJSON {
	return AvailabilityJSON{
		NextMonth:   forecastSummary(a.NextMonth),
		Next3Months: forecastSummary(a.Next3Months),
		Next6Months: forecastSummary(a.Next6Months),
	}
}

// ResidencyEntryJSON is one country's total for the year.
type ResidencyEntryJSON struct {
	Days           int  `json:"days"`
	MeetsThreshold bool `json:"meetsThreshold"`
	ThresholdDays  int  `json:"thresholdDays"`
	DaysRemaining  int  `json:"daysRemaining"`
}

// ResidencyJSON is the per-country residency status for one calendar year.
type ResidencyJSON struct {
	Year      int                           `json:"year"`
	Countries map[string]ResidencyEntryJSON `json:"countries"`
}

func residencyToResponse(year int, status domain.ResidencyStatus) ResidencyJSON {
	out := ResidencyJSON{Year: year, Countries: make(map[string]ResidencyEntryJSON, len(status))}
	for code, r := range status {
		out.Countries[code] = ResidencyEntryJSON{
			Days:           r.DaysInYear,
			MeetsThreshold: r.MeetsThreshold,
			ThresholdDays:  rules.ResidencyThresholdDays,
			DaysRemaining:  max(0, rules.ResidencyThresholdDays-r.DaysInYear),
		}
	}
	return out
}

// CountryCountJSON is the number of trips to one country.
type CountryCountJSON struct {
	Country string `json:"country"`
	Trips   int    `json:"trips"`
}

// TravelJSON is the aggregate over a user's whole trip history.
type TravelJSON struct {
	TotalTrips         int                `json:"total_trips"`
	TotalDays          int                `json:"total_days"`
	CountriesVisited   int                `json:"countries_visited"`
	MostVisitedCountry *string            `json:"most_visited_country"`
	CountryBreakdown   []CountryCountJSON `json:"country_breakdown"`
}

// SummaryJSON is the body of GET /users/{userID}/calcs/summary.
type SummaryJSON struct {
	AsOf      openapi_types.Date `json:"as_of"`
	Travel    TravelJSON         `json:"travel"`
	Schengen  ComplianceJSON     `json:"schengen"`
	Residency ResidencyJSON      `json:"residency"`
}

func summaryToResponse(s domain.UserSummary) SummaryJSON {
	travel := TravelJSON{
		TotalTrips:       s.Travel.TotalTrips,
		TotalDays:        s.Travel.TotalDays,
		CountriesVisited: s.Travel.CountriesVisited,
		CountryBreakdown: make([]CountryCountJSON, 0, len(s.Travel.CountryBreakdown)),
	}
	if s.Travel.MostVisitedCountry != "" {
		most := s.Travel.MostVisitedCountry
		travel.MostVisitedCountry = &most
	}
	for code, n := range s.Travel.CountryBreakdown {
		travel.CountryBreakdown = append(travel.CountryBreakdown, CountryCountJSON{Country: code, Trips: n})
	}
	// Most trips first, then alphabetical.
	sort.Slice(travel.CountryBreakdown, func(i, j int) bool {
		a, b := travel.CountryBreakdown[i], travel.CountryBreakdown[j]
		if a.Trips != b.Trips {
			return a.Trips > b.Trips
		}
		return a.Country < b.Country
	})

	return SummaryJSON{
		AsOf:      openapi_types.Date{Time: s.AsOf},
		Travel:    travel,
		Schengen:  complianceToResponse(s.Schengen),
		Residency: residencyToResponse(s.AsOf.Year(), s.Residency),
	}
}

// OverlapFindingJSON is one existing trip that conflicts with a candidate.
type OverlapFindingJSON struct {
	ConflictingTripID int64              `json:"conflictingTripId"`
	Country           string             `json:"country"`
	StartDate         openapi_types.Date `json:"startDate"`
	EndDate           openapi_types.Date `json:"endDate"`
	OverlapType       domain.OverlapType `json:"overlapType"`
	IsSameDates       bool               `json:"isSameDates"`
	IsSameCountry     bool               `json:"isSameCountry"`
}

func findingsToJSON(findings []domain.OverlapFinding) []OverlapFindingJSON {
	out := make([]OverlapFindingJSON, len(findings))
	for i, f := range findings {
		out[i] = OverlapFindingJSON{
			ConflictingTripID: f.ConflictingTripID,
			Country:           f.CountryCode,
			StartDate:         openapi_types.Date{Time: f.StartDate},
			EndDate:           openapi_types.Date{Time: f.EndDate},
			OverlapType:       f.OverlapType,
			IsSameDates:       f.IsSameDates,
			IsSameCountry:     f.IsSameCountry,
		}
	}
	return out
}

// OverlapResultJSON is the body of POST /rules/validate-overlap.
type OverlapResultJSON struct {
	IsValid   bool                 `json:"isValid"`
	Conflicts []OverlapFindingJSON `json:"conflicts"`
	Message   string               `json:"message,omitempty"`
}
