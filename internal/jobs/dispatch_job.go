package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DispatchJob periodically runs the pending-order backlog through the
// assignment workflow. Overlapping runs are absorbed by the handler's
// re-entry guard, so a slow run and the next tick never race.
type DispatchJob struct {
	handler  *commands.ProcessPendingOrdersCommandHandler
	cron     *cron.Cron
	schedule string
	logger   *slog.Logger
}

// NewDispatchJob creates the dispatch job with the given cron schedule
// (six-field spec with seconds, e.g. "*/10 * * * * *").
func NewDispatchJob(handler *commands.ProcessPendingOrdersCommandHandler,
	schedule string, logger *slog.Logger) *DispatchJob {
	return &DispatchJob{
		handler:  handler,
		cron:     cron.New(cron.WithSeconds()),
		schedule: schedule,
		logger:   logger.With("component", "dispatch_job"),
	}
}

// Start begins the periodic dispatch runs.
func (j *DispatchJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewProcessPendingOrdersCommand()

		if _, handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			j.logger.ErrorContext(ctx, "Dispatch job failed", "error", handleErr)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Dispatch job started", "schedule", j.schedule)
	return nil
}

// Stop stops the dispatch job.
func (j *DispatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Dispatch job stopped")
}
