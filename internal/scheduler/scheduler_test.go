package scheduler

import (
	"context"
	"testing"

	"github.com/sbelkacem/gosocial/internal/session"
)

func TestPruneSessions(t *testing.T) {
	store := session.NewMemoryStore()
	_ = store.Bind(context.Background(), "sess-1", "token-a")

	s := New(store)
	s.pruneSessions()

	// The session is not expired, so it survives pruning.
	if _, err := store.Current(context.Background(), "sess-1"); err != nil {
		t.Errorf("live session pruned: %v", err)
	}
}

func TestStartStop(t *testing.T) {
	s := New(session.NewMemoryStore())
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	s.Stop()
}
