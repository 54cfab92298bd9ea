// Package repo contains all database access logic for the Stay Planner API.
// Each resource has its own file with an interface and a Postgres implementation.
// Only SQL and type mapping live here; overlap and compliance rules do not.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/stay-planner/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripRepo defines the persistence operations for Trips.
// Every read and write is scoped to the owning user; a trip that exists but
// belongs to someone else is reported as domain.ErrNotFound.
type TripRepo interface {
	// Create inserts a new trip for trip.UserID and returns the persisted record.
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves one of the user's trips.
	// Returns domain.ErrNotFound if no such trip exists for that user.
	GetByID(ctx context.Context, userID uuid.UUID, id int64) (domain.Trip, error)

	// ListByUser returns every trip of the user ordered by start_date ascending.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)

	// ListPaged returns one page of the user's trips and the total count.
	ListPaged(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)

	// Update overwrites country and dates of an existing trip.
	// Returns domain.ErrNotFound if the trip does not exist for trip.UserID.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete removes one of the user's trips. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, userID uuid.UUID, id int64) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, user_id, country, start_date, end_date, created_at, updated_at`

func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (user_id, country, start_date, end_date)
		VALUES (@user_id, @country, @start_date, @end_date)
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"user_id":    trip.UserID,
		"country":    trip.CountryCode,
		"start_date": pgDate(trip.StartDate),
		"end_date":   pgDate(trip.EndDate),
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", mapPgError(err))
	}
	return result, nil
}

func (r *pgTripRepo) GetByID(ctx context.Context, userID uuid.UUID, id int64) (domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE id = @id AND user_id = @user_id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE user_id = @user_id
		ORDER BY start_date, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByUser: %w", err)
	}
	trips, err := collectTrips(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByUser: %w", err)
	}
	return trips, nil
}

// ListPaged uses a window function so the page and the total come back in one round trip.
func (r *pgTripRepo) ListPaged(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	const q = `
		SELECT ` + tripColumns + `, COUNT(*) OVER () AS total
		FROM trips
		WHERE user_id = @user_id
		ORDER BY start_date, id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"user_id": userID,
		"limit":   p.Limit,
		"offset":  p.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	var total int64
	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: rows: %w", err)
	}

	// A page past the end has no rows to carry the window count.
	if len(trips) == 0 && p.Offset() > 0 {
		const countQ = `SELECT COUNT(*) FROM trips WHERE user_id = @user_id`
		if err := r.db.QueryRow(ctx, countQ, pgx.NamedArgs{"user_id": userID}).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: count: %w", err)
		}
	}
	return trips, total, nil
}

func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET country    = @country,
		    start_date = @start_date,
		    end_date   = @end_date,
		    updated_at = now()
		WHERE id = @id AND user_id = @user_id
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"id":         trip.ID,
		"user_id":    trip.UserID,
		"country":    trip.CountryCode,
		"start_date": pgDate(trip.StartDate),
		"end_date":   pgDate(trip.EndDate),
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", mapPgError(err))
	}
	return result, nil
}

func (r *pgTripRepo) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	const q = `DELETE FROM trips WHERE id = @id AND user_id = @user_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func collectTrips(rows pgx.Rows) ([]domain.Trip, error) {
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return trips, nil
}

// scanTrip maps a trips row into a domain.Trip. Extra destinations are
// appended after the trip columns (ListPaged's window count).
func scanTrip(s scanner, extra ...any) (domain.Trip, error) {
	var (
		t      domain.Trip
		userID pgtype.UUID
		start  pgtype.Date
		end    pgtype.Date
	)

	dest := append([]any{&t.ID, &userID, &t.CountryCode, &start, &end, &t.CreatedAt, &t.UpdatedAt}, extra...)
	if err := s.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.UserID = uuid.UUID(userID.Bytes)
	t.StartDate = domain.NormalizeDate(start.Time)
	t.EndDate = domain.NormalizeDate(end.Time)
	return t, nil
}
