package server

import (
	"strings"
	"testing"
)

func TestRandomString(t *testing.T) {
	for _, n := range []int{FileNameLength, AccessKeyLength} {
		s, err := randomString(n)
		if err != nil {
			t.Fatalf("random string: %v", err)
		}
		if len(s) != n {
			t.Fatalf("length = %d, want %d", len(s), n)
		}
		for _, c := range s {
			if !strings.ContainsRune(string(alphanum), c) {
				t.Fatalf("character %q outside the alphanumeric alphabet", c)
			}
		}
	}
}

func TestRandomStringIsNotConstant(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 32; i++ {
		s, err := randomString(FileNameLength)
		if err != nil {
			t.Fatalf("random string: %v", err)
		}
		if seen[s] {
			t.Fatalf("generated %q twice in 32 draws", s)
		}
		seen[s] = true
	}
}
