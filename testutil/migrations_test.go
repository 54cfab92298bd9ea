package testutil_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/stay-planner/migrations"
	"github.com/pkordes/stay-planner/testutil"
)

var schemaTables = []string{"users", "trips"}

// TestMigrations applies every migration, checks the schema, then rolls all
// the way back and checks it is gone.
func TestMigrations(t *testing.T) {
	db := testutil.NewSQLDB(t)

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	require.NoError(t, err, "create goose provider")

	ctx := context.Background()

	// Other packages' TestMain may already have migrated the shared database.
	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "initial reset")

	results, err := provider.Up(ctx)
	require.NoError(t, err, "goose up")
	assert.Len(t, results, 2)

	for _, table := range schemaTables {
		assert.True(t, tableExists(t, db, table), "expected table %q to exist", table)
	}

	_, err = db.ExecContext(ctx, `INSERT INTO users (id, email) VALUES ('00000000-0000-0000-0000-000000000001', 'm@example.com')`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `
		INSERT INTO trips (user_id, country, start_date, end_date)
		VALUES ('00000000-0000-0000-0000-000000000001', 'FRA', '2024-06-10', '2024-06-01')`)
	assert.Error(t, err, "inverted dates must violate the check constraint")

	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "goose down-to 0")

	for _, table := range schemaTables {
		assert.False(t, tableExists(t, db, table), "expected table %q to be dropped", table)
	}

	// Leave the database migrated for packages that run after this one.
	_, err = provider.Up(ctx)
	require.NoError(t, err, "goose up after reset")
}

func tableExists(t *testing.T, db *sql.DB, table string) bool {
	t.Helper()

	const q = `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public'
			AND   table_name   = $1
		)`
	var exists bool
	err := db.QueryRowContext(context.Background(), q, table).Scan(&exists)
	require.NoError(t, err, "check table existence for %q", table)
	return exists
}
