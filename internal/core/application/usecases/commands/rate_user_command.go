package commands

import (
	"errors"

	"jetbond/internal/core/domain/model/kernel"
	"jetbond/internal/pkg/guard"
)

var ErrRateUserCommandIsNotConstructed = errors.New(
	"RateUserCommand must be created via NewRateUserCommand constructor",
)

// RateUserCommand represents a rating submitted for a job: the employer rates
// the selected worker or the selected worker rates the employer. Each
// direction can be stamped at most once per job.
type RateUserCommand struct { //nolint:recvcheck //using for validation
	jobID   kernel.UUID
	raterID kernel.UUID
	rating  kernel.Rating

	guard guard.ConstructorGuard
}

// NewRateUserCommand creates a command to submit a rating.
func NewRateUserCommand(jobID, raterID kernel.UUID, rating kernel.Rating) (RateUserCommand, error) {
	cmd := RateUserCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setJobID(jobID),
		cmd.setRaterID(raterID),
		cmd.setRating(rating),
	); err != nil {
		return RateUserCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RateUserCommand) Validate() error {
	return c.guard.Validate(ErrRateUserCommandIsNotConstructed)
}

// JobID returns the job the rating belongs to.
func (c RateUserCommand) JobID() kernel.UUID { return c.jobID }

// RaterID returns the acting principal.
func (c RateUserCommand) RaterID() kernel.UUID { return c.raterID }

// Rating returns the submitted rating bucket.
func (c RateUserCommand) Rating() kernel.Rating { return c.rating }

func (c *RateUserCommand) setJobID(jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}

	c.jobID = jobID
	return nil
}

func (c *RateUserCommand) setRaterID(raterID kernel.UUID) error {
	if err := raterID.Validate(); err != nil {
		return err
	}

	c.raterID = raterID
	return nil
}

func (c *RateUserCommand) setRating(rating kernel.Rating) error {
	if err := rating.Validate(); err != nil {
		return err
	}

	c.rating = rating
	return nil
}
