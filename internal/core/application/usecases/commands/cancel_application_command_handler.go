package commands

import (
	"context"
	"time"

	"jetbond/internal/core/domain/model/worker"
	"jetbond/internal/core/ports"
)

// CancelApplicationCommandHandler handles a worker withdrawing from a job.
// The response is removed from the window (freeing a capacity slot while the
// window is open), the worker is barred from re-applying, and their
// availability resets to open_to_work.
type CancelApplicationCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
}

// NewCancelApplicationCommandHandler creates a handler for application
// withdrawal.
func NewCancelApplicationCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) CancelApplicationCommandHandler {
	return CancelApplicationCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the withdrawal command.
func (h CancelApplicationCommandHandler) Handle(ctx context.Context, cmd CancelApplicationCommand) error {
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

	applicant, err := uow.WorkerRepository().Get(ctx, cmd.WorkerID())
	if err != nil {
		return err
	}

	if err = aggregate.Withdraw(cmd.WorkerID()); err != nil {
		return err
	}

	if applicant.IsBusy() && applicant.IsTiedTo(cmd.JobID()) {
		if err = applicant.Release(worker.TriggerCancelApplication); err != nil {
			return err
		}
		if err = uow.WorkerRepository().Update(ctx, applicant); err != nil {
			return err
		}
	}

	if err = uow.JobRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Notify(aggregate.EmployerID(), ports.Notification{
		Type:          ports.EventJobResponse,
		JobID:         aggregate.ID().String(),
		WorkerID:      cmd.WorkerID().String(),
		ResponseCount: aggregate.Window().ResponseCount(),
		WindowOpen:    aggregate.Window().IsOpen(),
		Message:       "Applicant withdrew their application",
		Timestamp:     time.Now(),
	})

	return nil
}
