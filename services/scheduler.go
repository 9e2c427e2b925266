package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const DefaultRevalidateSchedule = "@every 1h"

// Scheduler periodically republishes the site root so a missed
// invalidation is never stale for longer than one interval.
type Scheduler struct {
	cron      *cron.Cron
	publisher Publisher
	logger    *slog.Logger
	timeout   time.Duration
}

func NewScheduler(schedule string, publisher Publisher, logger *slog.Logger) (*Scheduler, error) {
	if schedule == "" {
		schedule = DefaultRevalidateSchedule
	}
	s := &Scheduler{
		cron:      cron.New(),
		publisher: publisher,
		logger:    logger,
		timeout:   30 * time.Second,
	}
	if _, err := s.cron.AddFunc(schedule, s.Revalidate); err != nil {
		return nil, fmt.Errorf("invalid revalidate schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Revalidate runs one scheduled invalidation of the site root.
func (s *Scheduler) Revalidate() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	result := s.publisher.Invalidate(ctx, RootPath)
	s.logger.Info("scheduled revalidation", "path", result.Path, "invalidated", result.Invalidated)
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("revalidation scheduler started", "entries", len(s.cron.Entries()))
}

// Stop halts the cron and waits for a running job, bounded by ctx.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
