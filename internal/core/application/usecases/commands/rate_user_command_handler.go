package commands

import (
	"context"

	"jetbond/internal/core/domain/model/job"
	"jetbond/internal/core/domain/model/kernel"
)

// RateUserCommandHandler handles rating submission for a job. The direction
// follows from the rater: the employer rates the selected worker, the
// selected worker rates the employer. The rating stamps the job (once per
// direction) and bumps the rated user's counter bucket; it gates no state
// transition.
type RateUserCommandHandler struct {
	uowFactory UoWFactory
}

// NewRateUserCommandHandler creates a handler for rating submission.
func NewRateUserCommandHandler(uowFactory UoWFactory) RateUserCommandHandler {
	return RateUserCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the rating command. The job must have a selected worker,
// and the rater must be either the employer or that worker.
func (h RateUserCommandHandler) Handle(ctx context.Context, cmd RateUserCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.JobRepository().Get(ctx, cmd.JobID())
	if err != nil {
		return err
	}

	selectedID := aggregate.SelectedWorkerID()
	if selectedID == nil {
		return job.ErrPermissionDenied
	}

	var ratedID kernel.UUID
	switch {
	case cmd.RaterID().IsEqual(aggregate.EmployerID()):
		if err = aggregate.RateWorker(cmd.Rating()); err != nil {
			return err
		}
		ratedID = *selectedID
	case cmd.RaterID().IsEqual(*selectedID):
		if err = aggregate.RateEmployer(cmd.Rating()); err != nil {
			return err
		}
		ratedID = aggregate.EmployerID()
	default:
		return job.ErrPermissionDenied
	}

	rated, err := uow.WorkerRepository().Get(ctx, ratedID)
	if err != nil {
		return err
	}
	if err = rated.AddRating(cmd.Rating()); err != nil {
		return err
	}

	if err = uow.WorkerRepository().Update(ctx, rated); err != nil {
		return err
	}
	if err = uow.JobRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
