package id_test

import (
	"strings"
	"testing"

	"github.com/trigtutor/backend/internal/id"
)

func TestNewRequestID_Format(t *testing.T) {
	got := id.NewRequestID()
	if len(got) != id.RequestIDLength {
		t.Fatalf("expected length %d, got %d", id.RequestIDLength, len(got))
	}
	for _, r := range got {
		if !strings.ContainsRune("abcdefghijklmnopqrstuvwxyz0123456789", r) {
			t.Errorf("unexpected character %q in %q", r, got)
		}
	}
}

func TestNewRequestID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		v := id.NewRequestID()
		if seen[v] {
			t.Fatalf("duplicate id %q after %d draws", v, i)
		}
		seen[v] = true
	}
}

func TestRandom_Length(t *testing.T) {
	if got := id.Random(4); len(got) != 4 {
		t.Errorf("expected 4 characters, got %q", got)
	}
	if got := id.Random(0); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}
