package commands

import (
	"errors"

	"jetbond/internal/core/domain/model/kernel"
	"jetbond/internal/pkg/guard"
)

var ErrCompleteJobCommandIsNotConstructed = errors.New(
	"CompleteJobCommand must be created via NewCompleteJobCommand constructor",
)

// CompleteJobCommand represents an employer confirming job completion, with
// an optional rating of the worker stamped in the same operation.
type CompleteJobCommand struct { //nolint:recvcheck //using for validation
	jobID      kernel.UUID
	employerID kernel.UUID
	rating     kernel.Rating

	guard guard.ConstructorGuard
}

// NewCompleteJobCommand creates a command to complete a job. rating may be
// empty to skip rating the worker.
func NewCompleteJobCommand(jobID, employerID kernel.UUID, rating kernel.Rating) (CompleteJobCommand, error) {
	cmd := CompleteJobCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setJobID(jobID),
		cmd.setEmployerID(employerID),
		cmd.setRating(rating),
	); err != nil {
		return CompleteJobCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteJobCommand) Validate() error {
	return c.guard.Validate(ErrCompleteJobCommandIsNotConstructed)
}

// JobID returns the job being completed.
func (c CompleteJobCommand) JobID() kernel.UUID { return c.jobID }

// EmployerID returns the acting employer.
func (c CompleteJobCommand) EmployerID() kernel.UUID { return c.employerID }

// Rating returns the optional worker rating, empty when none was given.
func (c CompleteJobCommand) Rating() kernel.Rating { return c.rating }

// HasRating reports whether a rating was supplied.
func (c CompleteJobCommand) HasRating() bool { return c.rating != "" }

func (c *CompleteJobCommand) setJobID(jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}

	c.jobID = jobID
	return nil
}

func (c *CompleteJobCommand) setEmployerID(employerID kernel.UUID) error {
	if err := employerID.Validate(); err != nil {
		return err
	}

	c.employerID = employerID
	return nil
}

func (c *CompleteJobCommand) setRating(rating kernel.Rating) error {
	if rating == "" {
		return nil
	}
	if err := rating.Validate(); err != nil {
		return err
	}

	c.rating = rating
	return nil
}
