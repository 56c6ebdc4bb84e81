package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DispatchSweepJob periodically runs the assignment workflow over every
// pending request. Runs every ten seconds so requests left behind by a
// failed direct assignment are picked up quickly.
type DispatchSweepJob struct {
	handler commands.SweepPendingCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDispatchSweepJob creates a new job for sweeping pending requests.
func NewDispatchSweepJob(handler commands.SweepPendingCommandHandler, logger *slog.Logger) *DispatchSweepJob {
	return &DispatchSweepJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "dispatch_sweep_job"),
	}
}

// Start begins the dispatch sweep job.
func (j *DispatchSweepJob) Start() error {
	_, err := j.cron.AddFunc("*/10 * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewSweepPendingCommand()

		report, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Dispatch sweep job failed", "error", err)
			return
		}

		// An all-skipped sweep is the normal idle state, keep it quiet.
		if report.Assigned > 0 || report.Failed > 0 {
			j.logger.InfoContext(ctx, "Dispatch sweep finished",
				"assigned", report.Assigned,
				"skipped", report.Skipped,
				"failed", report.Failed)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Dispatch sweep job started (running every ten seconds)")
	return nil
}

// Stop stops the dispatch sweep job.
func (j *DispatchSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Dispatch sweep job stopped")
}
