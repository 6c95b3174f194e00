package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sbelkacem/gosocial/internal/session"
)

// Scheduler runs background maintenance. The only job today prunes expired
// sessions so the sessions table does not grow without bound.
type Scheduler struct {
	cron     *cron.Cron
	sessions session.Store
}

func New(sessions session.Store) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		sessions: sessions,
	}
}

// Start registers the pruning job (hourly) and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("@hourly", s.pruneSessions); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop stops the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) pruneSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := s.sessions.DeleteExpired(ctx)
	if err != nil {
		slog.Error("session pruning failed", "error", err)
		return
	}
	if n > 0 {
		slog.Info("pruned expired sessions", "count", n)
	}
}
