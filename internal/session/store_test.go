package session

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStore_BindOverwrites(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Bind(ctx, "sess-1", "token-a"); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if err := s.Bind(ctx, "sess-1", "token-b"); err != nil {
		t.Fatalf("Bind overwrite: %v", err)
	}

	tok, err := s.Current(ctx, "sess-1")
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if tok != "token-b" {
		t.Errorf("expected overwrite to win: got %q", tok)
	}
}

func TestMemoryStore_CurrentMissing(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.Current(context.Background(), "nope"); err != ErrNoSession {
		t.Errorf("expected ErrNoSession, got: %v", err)
	}
}

func TestMemoryStore_EmptyTokenIsNoSession(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	if err := s.Bind(ctx, "sess-1", ""); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if _, err := s.Current(ctx, "sess-1"); err != ErrNoSession {
		t.Errorf("expected ErrNoSession for empty token, got: %v", err)
	}
}

func TestMemoryStore_ClearIdempotent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Bind(ctx, "sess-1", "token-a"); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if err := s.Clear(ctx, "sess-1"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if err := s.Clear(ctx, "sess-1"); err != nil {
		t.Errorf("Clear of missing session should succeed: %v", err)
	}
	if _, err := s.Current(ctx, "sess-1"); err != ErrNoSession {
		t.Errorf("expected ErrNoSession after clear, got: %v", err)
	}
}

func TestMemoryStore_DeleteExpired(t *testing.T) {
	s := NewMemoryStore()
	s.ttl = -time.Second // everything is born expired
	ctx := context.Background()

	_ = s.Bind(ctx, "sess-1", "token-a")
	_ = s.Bind(ctx, "sess-2", "token-b")

	n, err := s.DeleteExpired(ctx)
	if err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 expired sessions removed, got %d", n)
	}
}
