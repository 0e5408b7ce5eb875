package commands

import (
	"context"

	"jetbond/internal/core/ports"
)

// CloseWindowCommandHandler closes a job's response window, advancing the job
// from matching to awaiting_selection. Idempotent: the timer and the capacity
// path may race, whichever runs second is a no-op. Jobs already assigned,
// cancelled, or expired are left untouched.
type CloseWindowCommandHandler struct {
	uowFactory JobUoWFactory
	scheduler  ports.WindowScheduler
}

// NewCloseWindowCommandHandler creates a handler for window close operations.
func NewCloseWindowCommandHandler(uowFactory JobUoWFactory, scheduler ports.WindowScheduler) CloseWindowCommandHandler {
	return CloseWindowCommandHandler{
		uowFactory: uowFactory,
		scheduler:  scheduler,
	}
}

// Handle processes the window close command.
func (h CloseWindowCommandHandler) Handle(ctx context.Context, cmd CloseWindowCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	h.scheduler.Cancel(cmd.JobID())

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

	if !aggregate.Window().IsOpen() {
		return uow.Commit(ctx)
	}

	aggregate.CloseWindow()

	if err = uow.JobRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
