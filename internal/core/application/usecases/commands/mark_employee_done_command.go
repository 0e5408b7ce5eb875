package commands

import (
	"errors"

	"jetbond/internal/core/domain/model/kernel"
	"jetbond/internal/pkg/guard"
)

var ErrMarkEmployeeDoneCommandIsNotConstructed = errors.New(
	"MarkEmployeeDoneCommand must be created via NewMarkEmployeeDoneCommand constructor",
)

// MarkEmployeeDoneCommand represents the selected worker reporting their part
// of an assigned job as done, optionally rating the employer in the same
// operation. The job waits in pending until the employer confirms completion.
type MarkEmployeeDoneCommand struct { //nolint:recvcheck //using for validation
	jobID    kernel.UUID
	workerID kernel.UUID
	rating   kernel.Rating

	guard guard.ConstructorGuard
}

// NewMarkEmployeeDoneCommand creates a command for the done report. workerID
// is the acting principal and must be the selected worker. rating may be
// empty to skip rating the employer.
func NewMarkEmployeeDoneCommand(jobID, workerID kernel.UUID, rating kernel.Rating) (MarkEmployeeDoneCommand, error) {
	cmd := MarkEmployeeDoneCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setJobID(jobID),
		cmd.setWorkerID(workerID),
		cmd.setRating(rating),
	); err != nil {
		return MarkEmployeeDoneCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkEmployeeDoneCommand) Validate() error {
	return c.guard.Validate(ErrMarkEmployeeDoneCommandIsNotConstructed)
}

// JobID returns the assigned job.
func (c MarkEmployeeDoneCommand) JobID() kernel.UUID { return c.jobID }

// WorkerID returns the reporting worker.
func (c MarkEmployeeDoneCommand) WorkerID() kernel.UUID { return c.workerID }

// Rating returns the worker's rating of the employer, empty when none.
func (c MarkEmployeeDoneCommand) Rating() kernel.Rating { return c.rating }

// HasRating reports whether a rating was supplied.
func (c MarkEmployeeDoneCommand) HasRating() bool { return c.rating != "" }

func (c *MarkEmployeeDoneCommand) setJobID(jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}

	c.jobID = jobID
	return nil
}

func (c *MarkEmployeeDoneCommand) setWorkerID(workerID kernel.UUID) error {
	if err := workerID.Validate(); err != nil {
		return err
	}

	c.workerID = workerID
	return nil
}

func (c *MarkEmployeeDoneCommand) setRating(rating kernel.Rating) error {
	if rating == "" {
		return nil
	}
	if err := rating.Validate(); err != nil {
		return err
	}

	c.rating = rating
	return nil
}
