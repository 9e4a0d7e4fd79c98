package store

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"

	_ "github.com/glebarez/go-sqlite"
)

// openTestStore opens a throwaway sqlite file and applies migrations.
func openTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := sqlx.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	s := New(db)
	if err := s.ApplyMigrations(); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	return s
}
