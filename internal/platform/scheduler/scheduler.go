// Package scheduler triggers the daily batch on a cron expression.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/cash_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/cash_ledger/internal/core/ports/services"
	"github.com/SscSPs/cash_ledger/internal/middleware"
	"github.com/robfig/cron/v3"
)

// Scheduler runs BatchSvc.RunDaily as the system actor.
type Scheduler struct {
	cron   *cron.Cron
	batch  portssvc.BatchSvc
	logger *slog.Logger
}

// New parses spec (standard five-field cron syntax) and registers the daily run.
func New(spec string, batch portssvc.BatchSvc, logger *slog.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		batch:  batch,
		logger: logger,
	}
	if _, err := s.cron.AddFunc(spec, s.runOnce); err != nil {
		return nil, fmt.Errorf("invalid batch schedule %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) runOnce() {
	ctx := middleware.WithLogger(context.Background(), s.logger.With(slog.String("trigger", "cron")))
	reports, err := s.batch.RunDaily(ctx, domain.SystemActor)
	if err != nil {
		s.logger.Error("Scheduled batch failed", slog.String("error", err.Error()))
		return
	}
	for _, r := range reports {
		s.logger.Info("Scheduled batch pass",
			slog.String("job", r.Job),
			slog.Int("items", len(r.Outcomes)),
			slog.Int("double_fault", r.Count(domain.OutcomeDoubleFault)))
	}
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Batch scheduler started")
}

// Stop stops scheduling and waits for a running batch to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
