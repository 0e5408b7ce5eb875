package commands

import (
	"errors"

	"jetbond/internal/core/domain/model/kernel"
	"jetbond/internal/pkg/guard"
)

var ErrApplyToJobCommandIsNotConstructed = errors.New(
	"ApplyToJobCommand must be created via NewApplyToJobCommand constructor",
)

// ApplyToJobCommand represents a worker's application to a job.
type ApplyToJobCommand struct { //nolint:recvcheck //using for validation
	jobID    kernel.UUID
	workerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewApplyToJobCommand creates a command for a worker applying to a job.
func NewApplyToJobCommand(jobID, workerID kernel.UUID) (ApplyToJobCommand, error) {
	cmd := ApplyToJobCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setJobID(jobID),
		cmd.setWorkerID(workerID),
	); err != nil {
		return ApplyToJobCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyToJobCommand) Validate() error {
	return c.guard.Validate(ErrApplyToJobCommandIsNotConstructed)
}

// JobID returns the job being applied to.
func (c ApplyToJobCommand) JobID() kernel.UUID { return c.jobID }

// WorkerID returns the applying worker.
func (c ApplyToJobCommand) WorkerID() kernel.UUID { return c.workerID }

func (c *ApplyToJobCommand) setJobID(jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}

	c.jobID = jobID
	return nil
}

func (c *ApplyToJobCommand) setWorkerID(workerID kernel.UUID) error {
	if err := workerID.Validate(); err != nil {
		return err
	}

	c.workerID = workerID
	return nil
}
