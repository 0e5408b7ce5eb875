package commands

import (
	"context"
	"time"

	"jetbond/internal/core/domain/model/job"
)

// CreateJobCommandHandler handles the business logic for job creation.
// New jobs start in matching status with a closed response window; the window
// opens on the first application.
type CreateJobCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateJobCommandHandler creates a handler for job creation operations.
func NewCreateJobCommandHandler(uowFactory UoWFactory) CreateJobCommandHandler {
	return CreateJobCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the job creation command. The employer must be a
// registered user; the expiration offset is defaulted and capped by the
// aggregate.
func (h CreateJobCommandHandler) Handle(ctx context.Context, cmd CreateJobCommand) error {
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

	if _, err := uow.WorkerRepository().Get(ctx, cmd.EmployerID()); err != nil {
		return err
	}

	aggregate, err := job.NewJob(
		cmd.JobID(),
		cmd.EmployerID(),
		cmd.Title(),
		cmd.Description(),
		cmd.District(),
		cmd.HourlyRate(),
		cmd.Duration(),
		cmd.ExpirationMinutes(),
		time.Now(),
	)
	if err != nil {
		return err
	}

	if err = uow.JobRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
