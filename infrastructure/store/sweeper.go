package store

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"x402-gate/domain/interfaces"
)

// Sweeper runs the periodic expired-job eviction independently of request
// handling, bounding store growth under load.
type Sweeper struct {
	cron    *cron.Cron
	store   interfaces.JobStore
	logger  interfaces.Logger
	onSweep func(evicted, remaining int)
}

// NewSweeper creates a sweeper that evicts expired jobs on the given
// interval. onSweep may be nil; when set it is invoked after every sweep
// (used to feed metrics).
func NewSweeper(
	jobStore interfaces.JobStore,
	interval time.Duration,
	logger interfaces.Logger,
	onSweep func(evicted, remaining int),
) (*Sweeper, error) {
	s := &Sweeper{
		cron:    cron.New(),
		store:   jobStore,
		logger:  logger,
		onSweep: onSweep,
	}

	spec := fmt.Sprintf("@every %s", interval)
	if _, err := s.cron.AddFunc(spec, s.sweep); err != nil {
		return nil, fmt.Errorf("failed to schedule sweep %q: %w", spec, err)
	}
	return s, nil
}

// Start begins the sweep schedule.
func (s *Sweeper) Start() {
	s.cron.Start()
}

// Stop halts the schedule and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// sweep runs one eviction pass.
func (s *Sweeper) sweep() {
	evicted := s.store.SweepExpired()
	remaining := s.store.ActiveJobs()
	if evicted > 0 {
		s.logger.Info("expired payment jobs evicted", "evicted", evicted, "remaining", remaining)
	}
	if s.onSweep != nil {
		s.onSweep(evicted, remaining)
	}
}
