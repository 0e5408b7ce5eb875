package commands

import (
	"context"
	"time"

	"jetbond/internal/core/ports"
)

// MarkEmployeeDoneCommandHandler moves an assigned job to pending on the
// selected worker's report. The worker stays busy until the employer confirms
// completion. When the report carries a rating, the employer is rated in the
// same transaction.
type MarkEmployeeDoneCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
}

// NewMarkEmployeeDoneCommandHandler creates a handler for done reports.
func NewMarkEmployeeDoneCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) MarkEmployeeDoneCommandHandler {
	return MarkEmployeeDoneCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the done report.
func (h MarkEmployeeDoneCommandHandler) Handle(ctx context.Context, cmd MarkEmployeeDoneCommand) error {
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

	if err = aggregate.MarkPending(cmd.WorkerID()); err != nil {
		return err
	}

	if cmd.HasRating() {
		if err = aggregate.RateEmployer(cmd.Rating()); err != nil {
			return err
		}

		employer, ratedErr := uow.WorkerRepository().Get(ctx, aggregate.EmployerID())
		if ratedErr != nil {
			return ratedErr
		}
		if err = employer.AddRating(cmd.Rating()); err != nil {
			return err
		}
		if err = uow.WorkerRepository().Update(ctx, employer); err != nil {
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
		Type:      ports.EventJobResponse,
		JobID:     aggregate.ID().String(),
		WorkerID:  cmd.WorkerID().String(),
		Rating:    cmd.Rating().String(),
		Message:   "Worker reported the job as done, awaiting your confirmation",
		Timestamp: time.Now(),
	})

	return nil
}
