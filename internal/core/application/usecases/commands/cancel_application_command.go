package commands

import (
	"errors"

	"jetbond/internal/core/domain/model/kernel"
	"jetbond/internal/pkg/guard"
)

var ErrCancelApplicationCommandIsNotConstructed = errors.New(
	"CancelApplicationCommand must be created via NewCancelApplicationCommand constructor",
)

// CancelApplicationCommand represents a worker withdrawing their application
// to a job. Withdrawal is permanent: the worker can never re-apply to the
// same job.
type CancelApplicationCommand struct { //nolint:recvcheck //using for validation
	jobID    kernel.UUID
	workerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelApplicationCommand creates a command to withdraw an application.
func NewCancelApplicationCommand(jobID, workerID kernel.UUID) (CancelApplicationCommand, error) {
	cmd := CancelApplicationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setJobID(jobID),
		cmd.setWorkerID(workerID),
	); err != nil {
		return CancelApplicationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelApplicationCommand) Validate() error {
	return c.guard.Validate(ErrCancelApplicationCommandIsNotConstructed)
}

// JobID returns the job the application targets.
func (c CancelApplicationCommand) JobID() kernel.UUID { return c.jobID }

// WorkerID returns the withdrawing worker.
func (c CancelApplicationCommand) WorkerID() kernel.UUID { return c.workerID }

func (c *CancelApplicationCommand) setJobID(jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}

	c.jobID = jobID
	return nil
}

func (c *CancelApplicationCommand) setWorkerID(workerID kernel.UUID) error {
	if err := workerID.Validate(); err != nil {
		return err
	}

	c.workerID = workerID
	return nil
}
