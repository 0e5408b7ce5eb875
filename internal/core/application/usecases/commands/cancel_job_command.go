package commands

import (
	"errors"

	"jetbond/internal/core/domain/model/kernel"
	"jetbond/internal/pkg/guard"
)

var ErrCancelJobCommandIsNotConstructed = errors.New(
	"CancelJobCommand must be created via NewCancelJobCommand constructor",
)

// CancelJobCommand represents an employer withdrawing their job posting.
type CancelJobCommand struct { //nolint:recvcheck //using for validation
	jobID      kernel.UUID
	employerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelJobCommand creates a command to cancel a job. employerID is the
// acting principal and must own the job.
func NewCancelJobCommand(jobID, employerID kernel.UUID) (CancelJobCommand, error) {
	cmd := CancelJobCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setJobID(jobID),
		cmd.setEmployerID(employerID),
	); err != nil {
		return CancelJobCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelJobCommand) Validate() error {
	return c.guard.Validate(ErrCancelJobCommandIsNotConstructed)
}

// JobID returns the job being cancelled.
func (c CancelJobCommand) JobID() kernel.UUID { return c.jobID }

// EmployerID returns the acting employer.
func (c CancelJobCommand) EmployerID() kernel.UUID { return c.employerID }

func (c *CancelJobCommand) setJobID(jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}

	c.jobID = jobID
	return nil
}

func (c *CancelJobCommand) setEmployerID(employerID kernel.UUID) error {
	if err := employerID.Validate(); err != nil {
		return err
	}

	c.employerID = employerID
	return nil
}
