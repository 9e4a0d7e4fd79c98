package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/liondadev/quick-media-host/types"
)

// CreateMedia inserts a new media row. The file name is the primary key, so
// a generated-name collision that slips past the upstream existence check
// fails here instead of overwriting anything.
func (s *Store) CreateMedia(ctx context.Context, m *types.Media) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx, `INSERT INTO "media" ("file_name", "content", "mime_type", "user_id") VALUES ($1, $2, $3, $4)`, m.FileName, m.Content, m.MimeType, m.UserId)
	return err
}

// MediaByName returns the media row with the given file name, or nil if
// there is none.
func (s *Store) MediaByName(ctx context.Context, name string) (*types.Media, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var m types.Media
	if err := s.db.GetContext(ctx, &m, `SELECT "file_name", "content", "mime_type", "user_id" FROM "media" WHERE "file_name" = $1`, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &m, nil
}

// MediaNameExists reports whether a file name is already taken, without
// pulling the content blob out of the database.
func (s *Store) MediaNameExists(ctx context.Context, name string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var one int
	if err := s.db.GetContext(ctx, &one, `SELECT 1 FROM "media" WHERE "file_name" = $1 LIMIT 1`, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// DeleteMediaByName removes a single media row. Callers check existence and
// ownership first.
func (s *Store) DeleteMediaByName(ctx context.Context, name string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx, `DELETE FROM "media" WHERE "file_name" = $1`, name)
	return err
}
