// Package store holds all database access for the service. A single Store
// wraps the pooled sqlx handle; user and media operations live in their own
// files.
package store

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// queryTimeout bounds every single store round-trip.
const queryTimeout = 3 * time.Second

type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// ApplyMigrations creates all the SQL tables needed for the service to work.
func (s *Store) ApplyMigrations() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS "users" (
			"id"         TEXT PRIMARY KEY,
			"username"   TEXT NOT NULL UNIQUE,
			"access_key" TEXT NOT NULL UNIQUE,
			"is_admin"   INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS "media" (
			"file_name" TEXT PRIMARY KEY,
			"content"   BLOB NOT NULL,
			"mime_type" TEXT NOT NULL,
			"user_id"   TEXT NOT NULL REFERENCES "users"("id")
		)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}

	return nil
}
