package session

import (
	"context"
	"sync"
	"time"
)

type memorySession struct {
	token     string
	expiresAt time.Time
}

// MemoryStore is an in-process session store for tests and single-node dev.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memorySession
	ttl      time.Duration
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memorySession),
		ttl:      DefaultTTL,
	}
}

func (s *MemoryStore) Bind(ctx context.Context, sessionID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = memorySession{token: token, expiresAt: time.Now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Current(ctx context.Context, sessionID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionID]
	if !ok || sess.token == "" || time.Now().After(sess.expiresAt) {
		return "", ErrNoSession
	}
	return sess.token, nil
}

func (s *MemoryStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

func (s *MemoryStore) DeleteExpired(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	now := time.Now()
	for id, sess := range s.sessions {
		if now.After(sess.expiresAt) {
			delete(s.sessions, id)
			n++
		}
	}
	return n, nil
}
