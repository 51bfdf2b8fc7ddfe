package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// DefaultSweepSchedule runs the expiry sweep every ten minutes.
const DefaultSweepSchedule = "*/10 * * * *"

// Sweeper expires stale sessions on a cron schedule.
type Sweeper struct {
	manager  *Manager
	schedule string
	logger   *slog.Logger

	cron  *cron.Cron
	entry cron.EntryID
}

// NewSweeper creates a sweeper driving the manager's Sweep on the given
// cron expression. An empty schedule uses DefaultSweepSchedule.
func NewSweeper(manager *Manager, schedule string, logger *slog.Logger) (*Sweeper, error) {
	if manager == nil {
		return nil, fmt.Errorf("session: nil manager")
	}
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Sweeper{
		manager:  manager,
		schedule: schedule,
		logger:   logger,
		cron:     cron.New(),
	}

	entry, err := s.cron.AddFunc(schedule, s.sweep)
	if err != nil {
		return nil, fmt.Errorf("session: invalid sweep schedule %q: %w", schedule, err)
	}
	s.entry = entry
	return s, nil
}

// Start begins scheduled sweeping.
func (s *Sweeper) Start() {
	s.cron.Start()
	s.logger.Info("session sweeper started", "schedule", s.schedule)
}

// Stop halts scheduling and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("session sweeper stopped")
}

func (s *Sweeper) sweep() {
	if _, err := s.manager.Sweep(context.Background()); err != nil {
		s.logger.Error("session sweep failed", "error", err)
	}
}
