package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/stay-planner/internal/domain"
	"github.com/pkordes/stay-planner/internal/handler"
)

// mockTripServicer is a test double for handler.TripServicer.
// Set only the method fields your test needs.
type mockTripServicer struct {
	create    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID   func(ctx context.Context, userID uuid.UUID, id int64) (domain.Trip, error)
	listPaged func(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)
	update    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete    func(ctx context.Context, userID uuid.UUID, id int64) error
}

func (m *mockTripServicer) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, t)
}
func (m *mockTripServicer) GetByID(ctx context.Context, userID uuid.UUID, id int64) (domain.Trip, error) {
	return m.getByID(ctx, userID, id)
}
func (m *mockTripServicer) ListPaged(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, userID, p)
}
func (m *mockTripServicer) Update(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.update(ctx, t)
}
func (m *mockTripServicer) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	return m.delete(ctx, userID, id)
}

type mockUserServicer struct {
	create  func(ctx context.Context, email string) (domain.User, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.User, error)
}

func (m *mockUserServicer) Create(ctx context.Context, email string) (domain.User, error) {
	return m.create(ctx, email)
}
func (m *mockUserServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}

type mockComplianceServicer struct {
	schengen     func(ctx context.Context, userID uuid.UUID, ref time.Time) (domain.ComplianceResult, error)
	forecast     func(ctx context.Context, userID uuid.UUID, start, end time.Time) (domain.Forecast, error)
	availability func(ctx context.Context, userID uuid.UUID, ref time.Time) (domain.AvailabilitySummary, error)
	residency    func(ctx context.Context, userID uuid.UUID, year int) (domain.ResidencyStatus, error)
	daysInRange  func(ctx context.Context, userID uuid.UUID, start, end time.Time, country string) (int, error)
	summary      func(ctx context.Context, userID uuid.UUID, ref time.Time) (domain.UserSummary, error)
}

func (m *mockComplianceServicer) Schengen(ctx context.Context, userID uuid.UUID, ref time.Time) (domain.ComplianceResult, error) {
	return m.schengen(ctx, userID, ref)
}
func (m *mockComplianceServicer) Forecast(ctx context.Context, userID uuid.UUID, start, end time.Time) (domain.Forecast, error) {
	return m.forecast(ctx, userID, start, end)
}
func (m *mockComplianceServicer) Availability(ctx context.Context, userID uuid.UUID, ref time.Time) (domain.AvailabilitySummary, error) {
	return m.availability(ctx, userID, ref)
}
func (m *mockComplianceServicer) Residency(ctx context.Context, userID uuid.UUID, year int) (domain.ResidencyStatus, error) {
	return m.residency(ctx, userID, year)
}
func (m *mockComplianceServicer) DaysInRange(ctx context.Context, userID uuid.UUID, start, end time.Time, country string) (int, error) {
	return m.daysInRange(ctx, userID, start, end, country)
}
func (m *mockComplianceServicer) Summary(ctx context.Context, userID uuid.UUID, ref time.Time) (domain.UserSummary, error) {
	return m.summary(ctx, userID, ref)
}

// compile-time checks: the mocks must satisfy the handler interfaces.
var (
	_ handler.TripServicer       = (*mockTripServicer)(nil)
	_ handler.UserServicer       = (*mockUserServicer)(nil)
	_ handler.ComplianceServicer = (*mockComplianceServicer)(nil)
)

// ---- helpers ---------------------------------------------------------------

var userID = uuid.MustParse("6f1c2b0e-8a4d-4d7e-9a55-0c3f1e2d4b6a")

// deps collects the mocks a test wires into the router. Nil fields stay nil.
type deps struct {
	trips *mockTripServicer
	users *mockUserServicer
	calcs *mockComplianceServicer
}

// newHTTPHandler wires a Server with the given mocks into the chi router.
// This mirrors how main.go wires it in production.
func newHTTPHandler(d deps) http.Handler {
	var (
		trips handler.TripServicer
		users handler.UserServicer
		calcs handler.ComplianceServicer
	)
	if d.trips != nil {
		trips = d.trips
	}
	if d.users != nil {
		users = d.users
	}
	if d.calcs != nil {
		calcs = d.calcs
	}
	return handler.NewServer(trips, users, calcs).Routes()
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}

func tripFixture(t *testing.T) domain.Trip {
	now := time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC)
	return domain.Trip{
		ID:          42,
		UserID:      userID,
		CountryCode: "FRA",
		StartDate:   mustDate(t, "2025-06-01"),
		EndDate:     mustDate(t, "2025-06-15"),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
