// Package jobs provides the scheduled background tasks of the dispatch
// service, built on github.com/robfig/cron/v3.
package jobs

import (
	"fmt"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	dispatchJob *DispatchJob
}

// NewJobManager creates a job manager with all required jobs.
func NewJobManager(processPendingOrdersHandler *commands.ProcessPendingOrdersCommandHandler,
	dispatchSchedule string, logger *slog.Logger) *JobManager {
	return &JobManager{
		dispatchJob: NewDispatchJob(processPendingOrdersHandler, dispatchSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.dispatchJob.Start(); err != nil {
		return fmt.Errorf("failed to start dispatch job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.dispatchJob.Stop()
}
