// Package dbtest connects repository suites to a disposable Postgres database.
package dbtest

import (
	"database/sql"
	"os"
	"testing"

	"github.com/ridloal/smartshop-pos/internal/platform/database"
)

// DSNEnv names the database the repository suites run against. The suites
// truncate every table, so never point it at real data, and run them with
// -p 1 since packages share the database.
const DSNEnv = "SMARTSHOP_TEST_DB_DSN"

// Open migrates and connects to the test database, skipping the test when
// DSNEnv is unset.
func Open(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv(DSNEnv)
	if dsn == "" {
		t.Skipf("%s not set, skipping store tests", DSNEnv)
	}
	if err := database.Migrate("pgx", dsn); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	db, err := database.Connect("pgx", dsn)
	if err != nil {
		t.Fatalf("connect test database: %v", err)
	}
	return db
}

func Reset(t *testing.T, db *sql.DB) {
	t.Helper()
	if _, err := db.Exec(`TRUNCATE users, products, sales, customers RESTART IDENTITY`); err != nil {
		t.Fatalf("reset test database: %v", err)
	}
}
