package commands

import (
	"errors"

	"jetbond/internal/core/domain/model/kernel"
	"jetbond/internal/pkg/guard"
)

var ErrCloseWindowCommandIsNotConstructed = errors.New(
	"CloseWindowCommand must be created via NewCloseWindowCommand constructor",
)

// CloseWindowCommand represents a request to close a job's response window.
// Issued by the window timer and by the capacity check on the fifth response.
type CloseWindowCommand struct { //nolint:recvcheck //using for validation
	jobID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCloseWindowCommand creates a command to close the job's response window.
func NewCloseWindowCommand(jobID kernel.UUID) (CloseWindowCommand, error) {
	cmd := CloseWindowCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setJobID(jobID); err != nil {
		return CloseWindowCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CloseWindowCommand) Validate() error {
	return c.guard.Validate(ErrCloseWindowCommandIsNotConstructed)
}

// JobID returns the job whose window should close.
func (c CloseWindowCommand) JobID() kernel.UUID { return c.jobID }

func (c *CloseWindowCommand) setJobID(jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}

	c.jobID = jobID
	return nil
}
