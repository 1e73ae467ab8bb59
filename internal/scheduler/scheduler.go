package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Runner is one notification pass; it reports how many outages it saw.
// notifier.Service implements this.
type Runner interface {
	Run(ctx context.Context) (int, error)
}

// Scheduler invokes notification runs on a fixed interval. The loop is
// sequential, so runs never overlap.
type Scheduler struct {
	runner   Runner
	log      *zap.Logger
	interval time.Duration
}

// New creates a Scheduler.
func New(runner Runner, log *zap.Logger, interval time.Duration) *Scheduler {
	return &Scheduler{runner: runner, log: log, interval: interval}
}

// Run executes one pass immediately, then on every tick until ctx is canceled.
func (s *Scheduler) Run(ctx context.Context) {
	s.tick(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopping")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	start := time.Now()
	count, err := s.runner.Run(ctx)
	if err != nil {
		s.log.Error("notification run failed", zap.Error(err))
		return
	}
	s.log.Info("notification run finished",
		zap.Int("outages", count),
		zap.Duration("took", time.Since(start)))
}
