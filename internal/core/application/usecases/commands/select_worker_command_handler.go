package commands

import (
	"context"
	"time"

	"jetbond/internal/core/domain/model/worker"
	"jetbond/internal/core/ports"
)

// SelectWorkerCommandHandler handles the employer's selection of one
// applicant. The job moves to assigned, the selected worker stays busy (now
// tied by assignment), every other applicant is released with the
// not_selected cause, and all applicants learn the outcome.
type SelectWorkerCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	scheduler  ports.WindowScheduler
}

// NewSelectWorkerCommandHandler creates a handler for worker selection.
func NewSelectWorkerCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	scheduler ports.WindowScheduler,
) SelectWorkerCommandHandler {
	return SelectWorkerCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		scheduler:  scheduler,
	}
}

// Handle processes the selection command. Selecting while the window is still
// open is allowed and closes it.
func (h SelectWorkerCommandHandler) Handle(ctx context.Context, cmd SelectWorkerCommand) error {
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

	if err = aggregate.Assign(cmd.WorkerID(), cmd.EmployerID(), time.Now()); err != nil {
		return err
	}

	// Free everyone who was not picked; the selected worker remains busy.
	if _, _, err = releaseApplicants(ctx, uow.WorkerRepository(), aggregate,
		worker.TriggerNotSelected, "not selected"); err != nil {
		return err
	}

	if err = uow.JobRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.scheduler.Cancel(cmd.JobID())

	for _, response := range aggregate.Window().Responses() {
		selected := response.WorkerID.IsEqual(cmd.WorkerID())
		message := "You were not selected. Your status has been reset to \"Open to work\""
		if selected {
			message = "Congratulations! You got the job"
		}

		h.notifier.Notify(response.WorkerID, ports.Notification{
			Type:      ports.EventSelectionResult,
			JobID:     aggregate.ID().String(),
			Selected:  &selected,
			Message:   message,
			Timestamp: time.Now(),
		})
	}

	return nil
}
