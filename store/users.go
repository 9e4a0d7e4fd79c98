package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/liondadev/quick-media-host/types"
)

// CreateUser inserts a new user row. The username and access key columns are
// unique; collisions surface as driver errors.
func (s *Store) CreateUser(ctx context.Context, id, username, accessKey string, isAdmin bool) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx, `INSERT INTO "users" ("id", "username", "access_key", "is_admin") VALUES ($1, $2, $3, $4)`, id, username, accessKey, isAdmin)
	return err
}

// UserById returns the user with the given id, or nil if there is none.
func (s *Store) UserById(ctx context.Context, id string) (*types.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var u types.User
	if err := s.db.GetContext(ctx, &u, `SELECT "id", "username", "access_key", "is_admin" FROM "users" WHERE "id" = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &u, nil
}

// UserByAccessKey resolves a bearer token to its user, or nil if the key
// doesn't belong to anyone. This is the only credential check in the system.
func (s *Store) UserByAccessKey(ctx context.Context, accessKey string) (*types.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var u types.User
	if err := s.db.GetContext(ctx, &u, `SELECT "id", "username", "access_key", "is_admin" FROM "users" WHERE "access_key" = $1`, accessKey); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &u, nil
}

// DeleteUserCascade removes a user and everything they own in one
// transaction. Media goes first so no media row ever points at a missing
// user, and a failure between the two deletes rolls both back.
func (s *Store) DeleteUserCascade(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cascade delete: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM "media" WHERE "user_id" = $1`, id); err != nil {
		return fmt.Errorf("delete media owned by user %s: %w", id, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM "users" WHERE "id" = $1`, id); err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}

	return tx.Commit()
}
