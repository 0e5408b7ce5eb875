package commands

import (
	"context"
	"time"

	"jetbond/internal/core/domain/model/worker"
	"jetbond/internal/core/ports"
)

// CancelJobCommandHandler handles an employer withdrawing their job. The job
// moves to cancelled, its window timer is disarmed, and every worker still
// tied to the job (applicants and, on an assigned job, the selected worker)
// goes back to open_to_work.
type CancelJobCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	scheduler  ports.WindowScheduler
}

// NewCancelJobCommandHandler creates a handler for job cancellation.
func NewCancelJobCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	scheduler ports.WindowScheduler,
) CancelJobCommandHandler {
	return CancelJobCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		scheduler:  scheduler,
	}
}

// Handle processes the cancellation command.
func (h CancelJobCommandHandler) Handle(ctx context.Context, cmd CancelJobCommand) error {
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

	if err = aggregate.Cancel(cmd.EmployerID(), time.Now()); err != nil {
		return err
	}

	_, pending, err := releaseApplicants(ctx, uow.WorkerRepository(), aggregate,
		worker.TriggerJobCancelled, "Job cancelled by employer")
	if err != nil {
		return err
	}

	if selectedID := aggregate.SelectedWorkerID(); selectedID != nil {
		selected, err := uow.WorkerRepository().Get(ctx, *selectedID)
		if err != nil {
			return err
		}
		if selected.IsBusy() && selected.IsTiedTo(cmd.JobID()) {
			if err = selected.Release(worker.TriggerJobCancelled); err != nil {
				return err
			}
			if err = uow.WorkerRepository().Update(ctx, selected); err != nil {
				return err
			}
			pending = append(pending, pendingNotification{
				recipientID: selected.ID(),
				notification: ports.Notification{
					Type:      ports.EventStatusReset,
					JobID:     aggregate.ID().String(),
					JobTitle:  aggregate.Title(),
					Message:   "Your status has been reset to \"Open to work\". Reason: Job cancelled by employer",
					Timestamp: time.Now(),
				},
			})
		}
	}

	if err = uow.JobRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.scheduler.Cancel(cmd.JobID())

	for _, response := range aggregate.Window().Responses() {
		h.notifier.Notify(response.WorkerID, ports.Notification{
			Type:      ports.EventJobCancelled,
			JobID:     aggregate.ID().String(),
			JobTitle:  aggregate.Title(),
			Message:   "Job has been cancelled by employer",
			Timestamp: time.Now(),
		})
	}
	flush(h.notifier, pending)

	return nil
}
