package sweep

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"snapbid/utils"
)

// Scheduler runs the sweeper on a fixed interval using a cron runner.
type Scheduler struct {
	sweeper *Sweeper
	runner  *cron.Cron
}

// NewScheduler wires the sweeper to a cron runner ticking every
// interval.
func NewScheduler(sweeper *Sweeper, interval time.Duration) (*Scheduler, error) {
	runner := cron.New()
	spec := fmt.Sprintf("@every %s", interval)
	_, err := runner.AddFunc(spec, func() {
		if err := sweeper.RunOnce(context.Background()); err != nil {
			utils.Error("settlement sweep failed", map[string]any{"error": err.Error()})
		}
	})
	if err != nil {
		return nil, fmt.Errorf("sweep: failed to schedule %q: %w", spec, err)
	}
	return &Scheduler{sweeper: sweeper, runner: runner}, nil
}

// Start launches the cron runner in its own goroutine.
func (s *Scheduler) Start() {
	s.runner.Start()
	utils.Info("settlement scheduler started", nil)
}

// Stop halts the cron runner and waits for an in-flight sweep to finish.
func (s *Scheduler) Stop() {
	ctx := s.runner.Stop()
	<-ctx.Done()
	utils.Info("settlement scheduler stopped", nil)
}
