package collector

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"
)

// SchedulerConfig holds scheduling parameters for the daily batch.
type SchedulerConfig struct {
	// RunAt is the local wall-clock time of the daily run, "HH:MM".
	// Day-ahead prices for yesterday are always published by then.
	RunAt string

	// RunAtStart triggers one batch immediately on startup.
	RunAtStart bool

	// Location for interpreting RunAt. Defaults to time.Local.
	Location *time.Location
}

// Scheduler runs the collector batch once per day at a fixed time.
type Scheduler struct {
	collector *Collector
	config    SchedulerConfig
	logger    *log.Logger
	now       func() time.Time
}

// NewScheduler creates a new Scheduler.
func NewScheduler(c *Collector, config SchedulerConfig, logger *log.Logger) (*Scheduler, error) {
	if _, _, err := parseRunAt(config.RunAt); err != nil {
		return nil, err
	}
	if config.Location == nil {
		config.Location = time.Local
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Scheduler{
		collector: c,
		config:    config,
		logger:    logger,
		now:       time.Now,
	}, nil
}

// Run blocks until the context is cancelled, executing one batch per day
// at the configured time. Batch errors are logged, never fatal.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Printf("scheduler started, daily run at %s (%s)", s.config.RunAt, s.config.Location)

	if s.config.RunAtStart {
		s.runOnce(ctx)
	}

	for {
		next := s.nextRun()
		s.logger.Printf("next batch at %s", next.Format(time.RFC3339))

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if _, err := s.collector.RunBatch(ctx); err != nil && ctx.Err() == nil {
		s.logger.Printf("batch run failed: %v", err)
	}
}

// nextRun computes the next occurrence of RunAt strictly after now.
func (s *Scheduler) nextRun() time.Time {
	hour, minute, _ := parseRunAt(s.config.RunAt)

	now := s.now().In(s.config.Location)
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, s.config.Location)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// parseRunAt validates and splits an "HH:MM" wall-clock time.
func parseRunAt(value string) (hour, minute int, err error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid run_at %q, expected HH:MM", value)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid run_at hour in %q", value)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid run_at minute in %q", value)
	}
	return hour, minute, nil
}
