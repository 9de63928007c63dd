package jobs

import (
	"fmt"
	"log/slog"

	"cargolink/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	storageFeeAccrualJob *StorageFeeAccrualJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	flagStorageDebtsHandler commands.FlagStorageDebtsCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		storageFeeAccrualJob: NewStorageFeeAccrualJob(flagStorageDebtsHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.storageFeeAccrualJob.Start(); err != nil {
		return fmt.Errorf("failed to start storage fee accrual job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.storageFeeAccrualJob.Stop()
}
