// Package scheduler runs the ingestion pipeline on a fixed interval.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler wraps a cron runner with a single recurring job.
type Scheduler struct {
	cron *cron.Cron
}

// New builds an idle scheduler.
func New() *Scheduler {
	return &Scheduler{cron: cron.New()}
}

// Every registers the job to run at the given interval.
func (s *Scheduler) Every(interval time.Duration, job func()) error {
	if interval <= 0 {
		return fmt.Errorf("invalid interval %v", interval)
	}
	if _, err := s.cron.AddFunc(fmt.Sprintf("@every %s", interval), job); err != nil {
		return fmt.Errorf("failed to schedule job: %w", err)
	}
	return nil
}

// Start begins firing scheduled jobs in their own goroutines.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for a running job to finish, up to the
// context deadline.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
