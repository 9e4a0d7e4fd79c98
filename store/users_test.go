package store

import (
	"context"
	"testing"

	"github.com/liondadev/quick-media-host/types"
)

func TestUserLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.CreateUser(ctx, "u1", "alice", "key-alice", false); err != nil {
		t.Fatalf("create user: %v", err)
	}

	u, err := s.UserById(ctx, "u1")
	if err != nil {
		t.Fatalf("user by id: %v", err)
	}
	if u == nil || u.Username != "alice" || u.AccessKey != "key-alice" || u.IsAdmin {
		t.Fatalf("unexpected user: %+v", u)
	}

	u, err = s.UserByAccessKey(ctx, "key-alice")
	if err != nil {
		t.Fatalf("user by access key: %v", err)
	}
	if u == nil || u.Id != "u1" {
		t.Fatalf("unexpected user for access key: %+v", u)
	}

	// Absent rows come back as nil, nil.
	if u, err := s.UserById(ctx, "nope"); err != nil || u != nil {
		t.Fatalf("expected nil, nil for unknown id, got %+v, %v", u, err)
	}
	if u, err := s.UserByAccessKey(ctx, "wrong-key"); err != nil || u != nil {
		t.Fatalf("expected nil, nil for unknown key, got %+v, %v", u, err)
	}
}

func TestCreateUserEnforcesUniqueness(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.CreateUser(ctx, "u1", "alice", "key-1", false); err != nil {
		t.Fatalf("create user: %v", err)
	}

	if err := s.CreateUser(ctx, "u2", "alice", "key-2", false); err == nil {
		t.Fatal("expected duplicate username to fail")
	}
	if err := s.CreateUser(ctx, "u3", "bob", "key-1", false); err == nil {
		t.Fatal("expected duplicate access key to fail")
	}
}

func TestDeleteUserCascade(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.CreateUser(ctx, "u1", "alice", "key-alice", false); err != nil {
		t.Fatalf("create alice: %v", err)
	}
	if err := s.CreateUser(ctx, "u2", "bob", "key-bob", false); err != nil {
		t.Fatalf("create bob: %v", err)
	}

	files := []struct {
		name  string
		owner string
	}{
		{"aaaa.png", "u1"},
		{"bbbb.jpg", "u1"},
		{"cccc.gif", "u2"},
	}
	for _, f := range files {
		m := &types.Media{FileName: f.name, Content: []byte("x"), MimeType: "image/png", UserId: f.owner}
		if err := s.CreateMedia(ctx, m); err != nil {
			t.Fatalf("create media %s: %v", f.name, err)
		}
	}

	if err := s.DeleteUserCascade(ctx, "u1"); err != nil {
		t.Fatalf("cascade delete: %v", err)
	}

	// Alice and both of her files are gone.
	if u, err := s.UserById(ctx, "u1"); err != nil || u != nil {
		t.Fatalf("expected alice gone, got %+v, %v", u, err)
	}
	for _, name := range []string{"aaaa.png", "bbbb.jpg"} {
		if m, err := s.MediaByName(ctx, name); err != nil || m != nil {
			t.Fatalf("expected media %s gone, got %+v, %v", name, m, err)
		}
	}

	// Bob and his file are untouched.
	if u, err := s.UserById(ctx, "u2"); err != nil || u == nil {
		t.Fatalf("expected bob to survive, got %+v, %v", u, err)
	}
	if m, err := s.MediaByName(ctx, "cccc.gif"); err != nil || m == nil {
		t.Fatalf("expected bob's media to survive, got %+v, %v", m, err)
	}
}

func TestDeleteUserCascadeWithoutMedia(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.CreateUser(ctx, "u1", "alice", "key-alice", false); err != nil {
		t.Fatalf("create user: %v", err)
	}

	// Deleting a user who owns nothing must still succeed.
	if err := s.DeleteUserCascade(ctx, "u1"); err != nil {
		t.Fatalf("cascade delete without media: %v", err)
	}
	if u, err := s.UserById(ctx, "u1"); err != nil || u != nil {
		t.Fatalf("expected user gone, got %+v, %v", u, err)
	}
}
