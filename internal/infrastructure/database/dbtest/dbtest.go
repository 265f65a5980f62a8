package dbtest

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"awards-backend/internal/infrastructure/database"
)

// TestDatabaseURLEnv names the DSN used by Postgres-backed tests
const TestDatabaseURLEnv = "TEST_DATABASE_URL"

// OpenTestPool connects to TEST_DATABASE_URL, recreates the schema and
// truncates all tables. Tests are skipped when the variable is unset.
func OpenTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv(TestDatabaseURLEnv)
	if dsn == "" {
		t.Skipf("%s not set; skipping Postgres test", TestDatabaseURLEnv)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, database.Schema()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE likes, comments, nominations, votes, nominees, categories CASCADE`); err != nil {
		t.Fatalf("failed to clean database: %v", err)
	}

	return pool
}
