package jobs

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Schedules holds the cron specs for each maintenance job.
type Schedules struct {
	Heartbeat     string
	LowStockSweep string
	ReminderScan  string
	NightlyReport string
	LogTrim       string
}

// Scheduler runs the maintenance jobs on their configured cron schedules.
type Scheduler struct {
	jobs   *Jobs
	cron   *cron.Cron
	logger *zap.Logger
}

func NewScheduler(jobs *Jobs, schedules Schedules, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Scheduler{
		jobs:   jobs,
		cron:   cron.New(),
		logger: logger,
	}

	entries := []struct {
		name string
		spec string
		run  func()
	}{
		{"heartbeat", schedules.Heartbeat, jobs.Heartbeat},
		{"low_stock_sweep", schedules.LowStockSweep, func() { jobs.LowStockSweep(context.Background()) }},
		{"order_reminder_scan", schedules.ReminderScan, func() { jobs.OrderReminderScan(context.Background()) }},
		{"nightly_report", schedules.NightlyReport, func() { jobs.NightlyReport(context.Background()) }},
		{"job_log_trim", schedules.LogTrim, jobs.TrimLog},
	}

	for _, entry := range entries {
		if entry.spec == "" {
			continue
		}
		if _, err := s.cron.AddFunc(entry.spec, entry.run); err != nil {
			return nil, err
		}
		logger.Info("job scheduled", zap.String("job", entry.name), zap.String("spec", entry.spec))
	}

	return s, nil
}

// Start launches the cron scheduler.
func (s *Scheduler) Start() {
	if s == nil || s.cron == nil {
		return
	}
	s.cron.Start()
	s.logger.Info("job scheduler started")
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop(ctx context.Context) {
	if s == nil || s.cron == nil {
		return
	}
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	s.logger.Info("job scheduler stopped")
}
