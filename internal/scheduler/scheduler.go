// Package scheduler runs the background jobs: the nightly sweep that moves
// sent invoices past their due date to overdue.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	portssvc "github.com/autonomoapp/autonomo_backend/internal/core/ports/services"
)

// Scheduler owns the cron instance and the jobs registered on it.
type Scheduler struct {
	cron    *cron.Cron
	sweeper portssvc.InvoiceSweeperSvc
	spec    string
	logger  *slog.Logger
}

// NewScheduler builds a scheduler with the overdue invoice sweep registered
// under the given cron spec (with a seconds field).
func NewScheduler(sweeper portssvc.InvoiceSweeperSvc, spec string, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithSeconds()),
		sweeper: sweeper,
		spec:    spec,
		logger:  logger,
	}
}

// Start registers the jobs and starts the cron loop in its own goroutine.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, s.runOverdueSweep)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("Scheduler started", slog.String("overdue_sweep_spec", s.spec))
	return nil
}

// Stop stops the cron loop and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Scheduler stopped")
}

func (s *Scheduler) runOverdueSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	now := time.Now()
	marked, err := s.sweeper.MarkOverdueInvoices(ctx, now)
	if err != nil {
		s.logger.Error("Overdue invoice sweep failed", slog.String("error", err.Error()))
		return
	}

	s.logger.Info("Overdue invoice sweep completed", slog.Int("marked", marked), slog.Time("as_of", now))
}
