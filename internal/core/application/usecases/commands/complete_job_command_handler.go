package commands

import (
	"context"
	"time"

	"jetbond/internal/core/domain/model/worker"
	"jetbond/internal/core/ports"
)

// CompleteJobCommandHandler handles the employer confirming completion of an
// assigned or pending job. The selected worker is released with the
// job_completed cause; an optional rating is stamped on the job and counted
// on the worker in the same transaction.
type CompleteJobCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
}

// NewCompleteJobCommandHandler creates a handler for job completion.
func NewCompleteJobCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) CompleteJobCommandHandler {
	return CompleteJobCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the completion command.
func (h CompleteJobCommandHandler) Handle(ctx context.Context, cmd CompleteJobCommand) error {
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

	if err = aggregate.Complete(cmd.EmployerID(), time.Now()); err != nil {
		return err
	}

	selectedID := aggregate.SelectedWorkerID()
	var selected *worker.Worker
	if selectedID != nil {
		if selected, err = uow.WorkerRepository().Get(ctx, *selectedID); err != nil {
			return err
		}

		if cmd.HasRating() {
			if err = aggregate.RateWorker(cmd.Rating()); err != nil {
				return err
			}
			if err = selected.AddRating(cmd.Rating()); err != nil {
				return err
			}
		}

		if selected.IsBusy() && selected.IsTiedTo(cmd.JobID()) {
			if err = selected.Release(worker.TriggerJobCompleted); err != nil {
				return err
			}
		}

		if err = uow.WorkerRepository().Update(ctx, selected); err != nil {
			return err
		}
	}

	if err = uow.JobRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if selectedID != nil {
		message := "Job completed"
		if cmd.HasRating() {
			message = "Job completed with " + cmd.Rating().String() + " rating"
		}

		h.notifier.Notify(*selectedID, ports.Notification{
			Type:      ports.EventJobCompleted,
			JobID:     aggregate.ID().String(),
			JobTitle:  aggregate.Title(),
			Rating:    cmd.Rating().String(),
			Message:   message,
			Timestamp: time.Now(),
		})
	}

	return nil
}
