// Package dbtest opens throwaway in-memory databases for tests.
package dbtest

import (
	"testing"

	"github.com/blog-api/internal/config"
	"github.com/blog-api/internal/database"
	"github.com/rs/zerolog"
)

// New returns a migrated in-memory database that is closed when the test ends.
// The pool is pinned to a single connection because every SQLite
// connection to ":memory:" sees its own private database.
func New(t testing.TB) *database.DB {
	t.Helper()

	cfg := &config.DatabaseConfig{
		Path:         ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}

	db, err := database.New(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}
