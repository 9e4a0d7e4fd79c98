package store

import (
	"bytes"
	"context"
	"testing"

	"github.com/liondadev/quick-media-host/types"
)

func TestMediaLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.CreateUser(ctx, "u1", "alice", "key-alice", false); err != nil {
		t.Fatalf("create user: %v", err)
	}

	content := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x01, 0x02}
	m := &types.Media{FileName: "abcd1234.jpg", Content: content, MimeType: "image/jpeg", UserId: "u1"}
	if err := s.CreateMedia(ctx, m); err != nil {
		t.Fatalf("create media: %v", err)
	}

	got, err := s.MediaByName(ctx, "abcd1234.jpg")
	if err != nil {
		t.Fatalf("media by name: %v", err)
	}
	if got == nil || got.MimeType != "image/jpeg" || got.UserId != "u1" {
		t.Fatalf("unexpected media: %+v", got)
	}
	if !bytes.Equal(got.Content, content) {
		t.Fatalf("content round trip mismatch: %v != %v", got.Content, content)
	}

	exists, err := s.MediaNameExists(ctx, "abcd1234.jpg")
	if err != nil || !exists {
		t.Fatalf("expected name to exist, got %v, %v", exists, err)
	}
	exists, err = s.MediaNameExists(ctx, "nope.png")
	if err != nil || exists {
		t.Fatalf("expected name to be free, got %v, %v", exists, err)
	}

	if err := s.DeleteMediaByName(ctx, "abcd1234.jpg"); err != nil {
		t.Fatalf("delete media: %v", err)
	}
	if got, err := s.MediaByName(ctx, "abcd1234.jpg"); err != nil || got != nil {
		t.Fatalf("expected media gone, got %+v, %v", got, err)
	}
}

func TestCreateMediaRejectsDuplicateName(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.CreateUser(ctx, "u1", "alice", "key-alice", false); err != nil {
		t.Fatalf("create user: %v", err)
	}

	m := &types.Media{FileName: "same.png", Content: []byte("a"), MimeType: "image/png", UserId: "u1"}
	if err := s.CreateMedia(ctx, m); err != nil {
		t.Fatalf("create media: %v", err)
	}

	// The primary key backstops generated-name collisions: no overwrite.
	dup := &types.Media{FileName: "same.png", Content: []byte("b"), MimeType: "image/png", UserId: "u1"}
	if err := s.CreateMedia(ctx, dup); err == nil {
		t.Fatal("expected duplicate file name to fail")
	}

	got, err := s.MediaByName(ctx, "same.png")
	if err != nil || got == nil {
		t.Fatalf("media by name: %+v, %v", got, err)
	}
	if !bytes.Equal(got.Content, []byte("a")) {
		t.Fatalf("original content was overwritten: %q", got.Content)
	}
}
