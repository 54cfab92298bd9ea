package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/stay-planner/internal/domain"
	"github.com/pkordes/stay-planner/internal/repo"
	"github.com/pkordes/stay-planner/testutil"
)

// newTestRepos returns repos sharing one rolled-back transaction plus a
// freshly inserted owner for trips.
func newTestRepos(t *testing.T) (repo.TripRepo, repo.UserRepo, domain.User) {
	t.Helper()
	tx := testutil.NewTx(t)

	users := repo.NewUserRepo(tx)
	owner, err := users.Create(context.Background(), "owner-"+uuid.NewString()+"@example.com")
	require.NoError(t, err, "create owner")

	return repo.NewTripRepo(tx), users, owner
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func tripFixture(owner uuid.UUID) domain.Trip {
	return domain.Trip{
		UserID:      owner,
		CountryCode: "FRA",
		StartDate:   date(2025, 6, 1),
		EndDate:     date(2025, 6, 15),
	}
}

func TestTripRepo_Create(t *testing.T) {
	trips, _, owner := newTestRepos(t)
	ctx := context.Background()

	input := tripFixture(owner.ID)
	got, err := trips.Create(ctx, input)

	require.NoError(t, err)
	assert.NotZero(t, got.ID, "ID should be DB-generated")
	assert.Equal(t, owner.ID, got.UserID)
	assert.Equal(t, "FRA", got.CountryCode)
	assert.Equal(t, input.StartDate, got.StartDate)
	assert.Equal(t, input.EndDate, got.EndDate)
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set by DB")
	assert.False(t, got.UpdatedAt.IsZero(), "UpdatedAt should be set by DB")
}

func TestTripRepo_Create_StoresCalendarDay(t *testing.T) {
	trips, _, owner := newTestRepos(t)

	input := tripFixture(owner.ID)
	tokyo := time.FixedZone("JST", 9*3600)
	input.StartDate = time.Date(2025, 6, 1, 23, 30, 0, 0, tokyo)

	got, err := trips.Create(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, date(2025, 6, 1), got.StartDate)
}

func TestTripRepo_Create_UnknownUser(t *testing.T) {
	trips, _, _ := newTestRepos(t)

	_, err := trips.Create(context.Background(), tripFixture(uuid.New()))

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_Create_InvertedDatesRejectedByDB(t *testing.T) {
	trips, _, owner := newTestRepos(t)

	input := tripFixture(owner.ID)
	input.StartDate, input.EndDate = input.EndDate, input.StartDate

	_, err := trips.Create(context.Background(), input)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripRepo_GetByID(t *testing.T) {
	trips, _, owner := newTestRepos(t)
	ctx := context.Background()

	created, err := trips.Create(ctx, tripFixture(owner.ID))
	require.NoError(t, err)

	got, err := trips.GetByID(ctx, owner.ID, created.ID)

	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestTripRepo_GetByID_OtherUsersTripIsNotFound(t *testing.T) {
	trips, users, owner := newTestRepos(t)
	ctx := context.Background()

	created, err := trips.Create(ctx, tripFixture(owner.ID))
	require.NoError(t, err)
	stranger, err := users.Create(ctx, "stranger-"+uuid.NewString()+"@example.com")
	require.NoError(t, err)

	_, err = trips.GetByID(ctx, stranger.ID, created.ID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_ListByUser_OrderedByStart(t *testing.T) {
	trips, _, owner := newTestRepos(t)
	ctx := context.Background()

	later := tripFixture(owner.ID)
	later.CountryCode = "ITA"
	later.StartDate, later.EndDate = date(2025, 8, 1), date(2025, 8, 5)
	_, err := trips.Create(ctx, later)
	require.NoError(t, err)
	_, err = trips.Create(ctx, tripFixture(owner.ID))
	require.NoError(t, err)

	got, err := trips.ListByUser(ctx, owner.ID)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "FRA", got[0].CountryCode)
	assert.Equal(t, "ITA", got[1].CountryCode)
}

func TestTripRepo_ListByUser_Empty(t *testing.T) {
	trips, _, owner := newTestRepos(t)

	got, err := trips.ListByUser(context.Background(), owner.ID)

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTripRepo_ListPaged(t *testing.T) {
	trips, _, owner := newTestRepos(t)
	ctx := context.Background()

	for i := range 5 {
		tr := tripFixture(owner.ID)
		tr.StartDate = date(2025, time.Month(i+1), 1)
		tr.EndDate = date(2025, time.Month(i+1), 10)
		_, err := trips.Create(ctx, tr)
		require.NoError(t, err)
	}

	page, total, err := trips.ListPaged(ctx, owner.ID, domain.PaginationParams{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page, 2)
	assert.Equal(t, date(2025, 3, 1), page[0].StartDate)
	assert.Equal(t, date(2025, 4, 1), page[1].StartDate)

	page, total, err = trips.ListPaged(ctx, owner.ID, domain.PaginationParams{Page: 9, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, page)
	assert.Equal(t, int64(5), total, "total is reported even past the last page")
}

func TestTripRepo_Update(t *testing.T) {
	trips, _, owner := newTestRepos(t)
	ctx := context.Background()

	created, err := trips.Create(ctx, tripFixture(owner.ID))
	require.NoError(t, err)

	created.CountryCode = "ESP"
	created.EndDate = date(2025, 6, 20)

	updated, err := trips.Update(ctx, created)

	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "ESP", updated.CountryCode)
	assert.Equal(t, date(2025, 6, 20), updated.EndDate)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
}

func TestTripRepo_Update_NotFound(t *testing.T) {
	trips, _, owner := newTestRepos(t)

	ghost := tripFixture(owner.ID)
	ghost.ID = 987654321

	_, err := trips.Update(context.Background(), ghost)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_Delete(t *testing.T) {
	trips, _, owner := newTestRepos(t)
	ctx := context.Background()

	created, err := trips.Create(ctx, tripFixture(owner.ID))
	require.NoError(t, err)

	require.NoError(t, trips.Delete(ctx, owner.ID, created.ID))

	_, err = trips.GetByID(ctx, owner.ID, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "trip should be gone after delete")
}

func TestTripRepo_Delete_NotFound(t *testing.T) {
	trips, _, owner := newTestRepos(t)

	err := trips.Delete(context.Background(), owner.ID, 987654321)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
