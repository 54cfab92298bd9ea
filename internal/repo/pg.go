package repo

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/stay-planner/internal/domain"
)

// Postgres SQLSTATE codes the repos translate into domain errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// pgDate converts a calendar date to a Postgres DATE parameter, dropping any
// time-of-day and zone so the stored day is the UTC calendar day.
func pgDate(t time.Time) pgtype.Date {
	return pgtype.Date{Time: domain.NormalizeDate(t), Valid: !t.IsZero()}
}

// mapPgError translates constraint violations into domain sentinels and
// passes everything else through untouched.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return fmt.Errorf("%w: %s", domain.ErrConflict, pgErr.ConstraintName)
	case pgForeignKeyViolation:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, pgErr.ConstraintName)
	case pgCheckViolation:
		return fmt.Errorf("%w: %s", domain.ErrValidation, pgErr.ConstraintName)
	default:
		return err
	}
}
