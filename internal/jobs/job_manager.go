package jobs

import (
	"fmt"
	"log/slog"

	"jetbond/internal/core/application/usecases/commands"
)

// JobManager coordinates the scheduled background jobs of the service.
type JobManager struct {
	expirationJob *ExpirationJob
}

// NewJobManager creates a job manager wiring the expiration sweeper.
func NewJobManager(
	expireJobsHandler commands.ExpireJobsCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		expirationJob: NewExpirationJob(expireJobsHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.expirationJob.Start(); err != nil {
		return fmt.Errorf("failed to start expiration job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.expirationJob.Stop()
}
