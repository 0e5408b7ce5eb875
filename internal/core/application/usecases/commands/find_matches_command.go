package commands

import (
	"errors"

	"jetbond/internal/core/domain/model/kernel"
	"jetbond/internal/pkg/guard"
)

var ErrFindMatchesCommandIsNotConstructed = errors.New(
	"FindMatchesCommand must be created via NewFindMatchesCommand constructor",
)

// FindMatchesCommand represents a request to run candidate matching for a job
// and notify the matched workers.
type FindMatchesCommand struct { //nolint:recvcheck //using for validation
	jobID kernel.UUID

	guard guard.ConstructorGuard
}

// NewFindMatchesCommand creates a command to match candidates for the job.
func NewFindMatchesCommand(jobID kernel.UUID) (FindMatchesCommand, error) {
	cmd := FindMatchesCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setJobID(jobID); err != nil {
		return FindMatchesCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c FindMatchesCommand) Validate() error {
	return c.guard.Validate(ErrFindMatchesCommandIsNotConstructed)
}

// JobID returns the job to match candidates for.
func (c FindMatchesCommand) JobID() kernel.UUID { return c.jobID }

func (c *FindMatchesCommand) setJobID(jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}

	c.jobID = jobID
	return nil
}
