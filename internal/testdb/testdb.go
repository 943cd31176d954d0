// Package testdb provides helpers for integration tests that need a real
// Postgres database. Tests using it are expected to run with the
// integration build tag and BRAINFLIP_TEST_DB_URL pointing at a database
// with migrations applied.
package testdb

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// EnvTestDBURL names the environment variable holding the test database URL.
const EnvTestDBURL = "BRAINFLIP_TEST_DB_URL"

// GetTestDB opens a connection to the test database, skipping the test
// when no test database is configured. The connection is closed when the
// test finishes.
func GetTestDB(t *testing.T) *sql.DB {
	t.Helper()

	url := os.Getenv(EnvTestDBURL)
	if url == "" {
		t.Skipf("skipping: %s is not set", EnvTestDBURL)
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("failed to ping test database: %v", err)
	}

	return db
}

// WithTx runs fn inside a transaction that is always rolled back, keeping
// tests isolated from each other.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("failed to begin test transaction: %v", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	fn(t, tx)
}
