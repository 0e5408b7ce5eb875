package commands

import (
	"errors"

	"jetbond/internal/pkg/guard"
)

var ErrExpireJobsCommandIsNotConstructed = errors.New(
	"ExpireJobsCommand must be created via NewExpireJobsCommand constructor",
)

// ExpireJobsCommand represents one pass of the expiration sweeper over every
// job still in the matching super-state.
type ExpireJobsCommand struct {
	guard guard.ConstructorGuard
}

// NewExpireJobsCommand creates a command for an expiration sweep.
func NewExpireJobsCommand() ExpireJobsCommand {
	return ExpireJobsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c ExpireJobsCommand) Validate() error {
	return c.guard.Validate(ErrExpireJobsCommandIsNotConstructed)
}
