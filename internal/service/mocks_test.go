package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/stay-planner/internal/domain"
	"github.com/pkordes/stay-planner/internal/repo"
	"github.com/pkordes/stay-planner/internal/service"
)

// Hand-written test doubles. Each method is a function field; set only the
// ones a test needs. Calling an unset one panics, which flags an unexpected
// repo call.

type mockTripRepo struct {
	create     func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID    func(ctx context.Context, userID uuid.UUID, id int64) (domain.Trip, error)
	listByUser func(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)
	listPaged  func(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)
	update     func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete     func(ctx context.Context, userID uuid.UUID, id int64) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, userID uuid.UUID, id int64) (domain.Trip, error) {
	return m.getByID(ctx, userID, id)
}
func (m *mockTripRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	return m.listByUser(ctx, userID)
}
func (m *mockTripRepo) ListPaged(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, userID, p)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	return m.delete(ctx, userID, id)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

type mockUserRepo struct {
	create  func(ctx context.Context, email string) (domain.User, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.User, error)
	list    func(ctx context.Context) ([]domain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, email string) (domain.User, error) {
	return m.create(ctx, email)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}
func (m *mockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	return m.list(ctx)
}

var _ repo.UserRepo = (*mockUserRepo)(nil)

type mockLedger struct {
	claim   func(ctx context.Context, key string, ttl time.Duration) (bool, error)
	release func(ctx context.Context, key string) error
}

func (m *mockLedger) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return m.claim(ctx, key, ttl)
}
func (m *mockLedger) Release(ctx context.Context, key string) error {
	return m.release(ctx, key)
}

var _ service.AlertLedger = (*mockLedger)(nil)

type mockNotifier struct {
	notify func(ctx context.Context, alert domain.Alert) error
}

func (m *mockNotifier) Notify(ctx context.Context, alert domain.Alert) error {
	return m.notify(ctx, alert)
}

var _ service.Notifier = (*mockNotifier)(nil)

// ---- helpers ---------------------------------------------------------------

func day(s string) time.Time {
	t, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func tripFor(userID uuid.UUID, id int64, country, start, end string) domain.Trip {
	return domain.Trip{ID: id, UserID: userID, CountryCode: country, StartDate: day(start), EndDate: day(end)}
}

// knownUsers returns a UserRepo whose GetByID finds exactly the given users.
func knownUsers(users ...domain.User) *mockUserRepo {
	return &mockUserRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.User, error) {
			for _, u := range users {
				if u.ID == id {
					return u, nil
				}
			}
			return domain.User{}, domain.ErrNotFound
		},
		list: func(_ context.Context) ([]domain.User, error) { return users, nil },
	}
}

// tripsByUser returns a TripRepo whose ListByUser serves the given map.
func tripsByUser(byUser map[uuid.UUID][]domain.Trip) *mockTripRepo {
	return &mockTripRepo{
		listByUser: func(_ context.Context, userID uuid.UUID) ([]domain.Trip, error) {
			return byUser[userID], nil
		},
	}
}
