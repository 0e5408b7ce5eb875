package jobs

import (
	"context"
	"log/slog"

	"jetbond/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ExpirationJob sweeps the matching jobs once a minute and expires the ones
// past their deadline. The sweep itself is idempotent, so an overlapping or
// delayed run does no harm.
type ExpirationJob struct {
	handler commands.ExpireJobsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewExpirationJob creates the sweeper over the given handler.
func NewExpirationJob(handler commands.ExpireJobsCommandHandler, logger *slog.Logger) *ExpirationJob {
	return &ExpirationJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "expiration_job"),
	}
}

// Start begins the expiration sweep, running every minute.
func (j *ExpirationJob) Start() error {
	_, err := j.cron.AddFunc("@every 1m", func() {
		ctx := context.Background()
		cmd := commands.NewExpireJobsCommand()

		expired, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Expiration sweep failed", "error", handleErr)
			return
		}

		if expired > 0 {
			j.logger.InfoContext(ctx, "Expiration sweep finished", "expired", expired)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Expiration job started (running every minute)")
	return nil
}

// Stop stops the expiration sweep.
func (j *ExpirationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Expiration job stopped")
}
