package commands

import (
	"context"
	"log/slog"
	"time"

	"jetbond/internal/core/domain/model/worker"
	"jetbond/internal/core/ports"
)

// ExpireJobsCommandHandler performs the expiration sweep: every job still in
// the matching super-state whose deadline has passed is force-expired and its
// applicants are released with the "Job expired" reason. The expiredAt stamp
// makes the pass idempotent; a job is expired exactly once no matter how
// often the sweeper runs.
type ExpireJobsCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	scheduler  ports.WindowScheduler
	logger     *slog.Logger
}

// NewExpireJobsCommandHandler creates a handler for expiration sweeps.
func NewExpireJobsCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	scheduler ports.WindowScheduler,
	logger *slog.Logger,
) ExpireJobsCommandHandler {
	return ExpireJobsCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		scheduler:  scheduler,
		logger:     logger.With("component", "expire_jobs"),
	}
}

// Handle runs one sweep and returns the number of jobs expired.
func (h ExpireJobsCommandHandler) Handle(ctx context.Context, cmd ExpireJobsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	matching, err := uow.JobRepository().GetAllInMatching(ctx)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	expired := 0
	var pending []pendingNotification

	for _, aggregate := range matching {
		if !aggregate.IsExpirable(now) {
			continue
		}

		done, err := aggregate.Expire(now)
		if err != nil {
			h.logger.Error("expiring job", "jobId", aggregate.ID().String(), "error", err)
			continue
		}
		if !done {
			continue
		}

		_, resets, err := releaseApplicants(ctx, uow.WorkerRepository(), aggregate,
			worker.TriggerJobCancelled, "Job expired")
		if err != nil {
			return 0, err
		}
		pending = append(pending, resets...)

		if err = uow.JobRepository().Update(ctx, aggregate); err != nil {
			return 0, err
		}

		h.scheduler.Cancel(aggregate.ID())
		h.logger.Info("job expired", "jobId", aggregate.ID().String(), "expiredAt", now)
		expired++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	flush(h.notifier, pending)

	return expired, nil
}
