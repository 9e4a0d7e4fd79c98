package server

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

var alphanum = []byte("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

// The lengths are part of the observable contract: 16 characters for file
// base names, 64 for access keys.
const (
	FileNameLength  = 16
	AccessKeyLength = 64
)

const maxFreeFileNameAttempts = 4

// randomString returns an n character alphanumeric string drawn from a
// cryptographic source.
func randomString(n int) (string, error) {
	limit := big.NewInt(int64(len(alphanum)))

	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("random string: %w", err)
		}
		b[i] = alphanum[idx.Int64()]
	}

	return string(b), nil
}

// freeFileName generates a random file name with the given extension that is
// not currently in use. Collisions are vanishingly rare, so after a few
// attempts we fail the upload rather than loop forever.
func (s *Server) freeFileName(ctx context.Context, ext string) (string, error) {
	for attempt := 0; attempt < maxFreeFileNameAttempts; attempt++ {
		base, err := randomString(FileNameLength)
		if err != nil {
			return "", err
		}

		name := base + "." + ext
		exists, err := s.store.MediaNameExists(ctx, name)
		if err != nil {
			return "", err
		}
		if !exists {
			return name, nil
		}
	}

	return "", errors.New("could not find a free file name")
}
