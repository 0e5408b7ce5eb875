package commands

import (
	"errors"

	"jetbond/internal/core/domain/model/kernel"
	"jetbond/internal/pkg/guard"
)

var ErrSelectWorkerCommandIsNotConstructed = errors.New(
	"SelectWorkerCommand must be created via NewSelectWorkerCommand constructor",
)

// SelectWorkerCommand represents an employer picking one applicant for their
// job.
type SelectWorkerCommand struct { //nolint:recvcheck //using for validation
	jobID      kernel.UUID
	employerID kernel.UUID
	workerID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewSelectWorkerCommand creates a command to select a worker. employerID is
// the acting principal and must own the job.
func NewSelectWorkerCommand(jobID, employerID, workerID kernel.UUID) (SelectWorkerCommand, error) {
	cmd := SelectWorkerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setJobID(jobID),
		cmd.setEmployerID(employerID),
		cmd.setWorkerID(workerID),
	); err != nil {
		return SelectWorkerCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SelectWorkerCommand) Validate() error {
	return c.guard.Validate(ErrSelectWorkerCommandIsNotConstructed)
}

// JobID returns the job being assigned.
func (c SelectWorkerCommand) JobID() kernel.UUID { return c.jobID }

// EmployerID returns the acting employer.
func (c SelectWorkerCommand) EmployerID() kernel.UUID { return c.employerID }

// WorkerID returns the selected applicant.
func (c SelectWorkerCommand) WorkerID() kernel.UUID { return c.workerID }

func (c *SelectWorkerCommand) setJobID(jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}

	c.jobID = jobID
	return nil
}

func (c *SelectWorkerCommand) setEmployerID(employerID kernel.UUID) error {
	if err := employerID.Validate(); err != nil {
		return err
	}

	c.employerID = employerID
	return nil
}

func (c *SelectWorkerCommand) setWorkerID(workerID kernel.UUID) error {
	if err := workerID.Validate(); err != nil {
		return err
	}

	c.workerID = workerID
	return nil
}
