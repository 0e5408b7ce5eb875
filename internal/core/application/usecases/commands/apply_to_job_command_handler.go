package commands

import (
	"context"
	"log/slog"
	"time"

	"jetbond/internal/core/domain/model/job"
	"jetbond/internal/core/domain/model/kernel"
	"jetbond/internal/core/ports"
)

// ApplyToJobCommandHandler handles a worker applying to a job. In one
// critical section it flips the worker to busy and records the response in
// the job's window, so either both happen or neither does.
//
// Side effects after commit: the employer is notified of the response, the
// first response arms the five-minute close timer, and the fifth response
// closes the window immediately.
type ApplyToJobCommandHandler struct {
	uowFactory   UoWFactory
	notifier     ports.Notifier
	scheduler    ports.WindowScheduler
	closeHandler CloseWindowCommandHandler
	logger       *slog.Logger
}

// NewApplyToJobCommandHandler creates a handler for job applications.
func NewApplyToJobCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	scheduler ports.WindowScheduler,
	closeHandler CloseWindowCommandHandler,
	logger *slog.Logger,
) ApplyToJobCommandHandler {
	return ApplyToJobCommandHandler{
		uowFactory:   uowFactory,
		notifier:     notifier,
		scheduler:    scheduler,
		closeHandler: closeHandler,
		logger:       logger.With("component", "apply_to_job"),
	}
}

// Handle processes the application and reports the window state after it.
func (h ApplyToJobCommandHandler) Handle(ctx context.Context, cmd ApplyToJobCommand) (job.ApplyResult, error) {
	if err := cmd.Validate(); err != nil {
		return job.ApplyResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return job.ApplyResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.JobRepository().Get(ctx, cmd.JobID())
	if err != nil {
		return job.ApplyResult{}, err
	}

	applicant, err := uow.WorkerRepository().Get(ctx, cmd.WorkerID())
	if err != nil {
		return job.ApplyResult{}, err
	}

	// Check the window gates before touching the worker: once the worker is
	// busy the job-side Apply must not be able to fail.
	if err = aggregate.CanApply(cmd.WorkerID()); err != nil {
		return job.ApplyResult{}, err
	}

	if err = applicant.Apply(cmd.JobID()); err != nil {
		return job.ApplyResult{}, err
	}

	result, err := aggregate.Apply(cmd.WorkerID(), time.Now())
	if err != nil {
		return job.ApplyResult{}, err
	}

	if err = uow.WorkerRepository().Update(ctx, applicant); err != nil {
		return job.ApplyResult{}, err
	}
	if err = uow.JobRepository().Update(ctx, aggregate); err != nil {
		return job.ApplyResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return job.ApplyResult{}, err
	}

	h.notifier.Notify(aggregate.EmployerID(), ports.Notification{
		Type:          ports.EventJobResponse,
		JobID:         aggregate.ID().String(),
		WorkerID:      cmd.WorkerID().String(),
		ResponseCount: result.ResponseCount,
		WindowOpen:    !result.WindowFilled,
		Timestamp:     time.Now(),
	})

	switch {
	case result.WindowFilled:
		h.closeNow(cmd.JobID())
	case result.WindowOpened:
		h.scheduler.Schedule(cmd.JobID(), job.WindowDuration, func() {
			h.closeNow(cmd.JobID())
		})
	}

	return result, nil
}

func (h ApplyToJobCommandHandler) closeNow(jobID kernel.UUID) {
	closeCmd, err := NewCloseWindowCommand(jobID)
	if err != nil {
		h.logger.Error("building close window command", "jobId", jobID.String(), "error", err)
		return
	}
	if err = h.closeHandler.Handle(context.Background(), closeCmd); err != nil {
		h.logger.Error("closing response window", "jobId", jobID.String(), "error", err)
	}
}
