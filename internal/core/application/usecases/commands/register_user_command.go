package commands

import (
	"errors"

	"jetbond/internal/core/domain/model/kernel"
	"jetbond/internal/core/domain/model/worker"
	"jetbond/internal/pkg/guard"
)

var (
	ErrRegisterUserCommandIsNotConstructed = errors.New(
		"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
	)
	ErrUserNameIsRequired = errors.New("name is required")
)

// RegisterUserCommand represents a request to register a worker or employer
// account. Worker-profile fields (district, rates, skills) are optional for
// employers.
type RegisterUserCommand struct { //nolint:recvcheck //using for validation
	userID   kernel.UUID
	name     string
	userType worker.Type
	district string
	minRate  int
	maxRate  int
	skills   []string
	locale   string

	guard guard.ConstructorGuard
}

// NewRegisterUserCommand creates a command to register a new user.
// Validates that the ID is valid, the name is not empty, and the user type is
// one of worker/employer.
func NewRegisterUserCommand(
	userID kernel.UUID,
	name string,
	userType worker.Type,
	district string,
	minRate int,
	maxRate int,
	skills []string,
	locale string,
) (RegisterUserCommand, error) {
	cmd := RegisterUserCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setName(name),
		cmd.setUserType(userType),
	); err != nil {
		return RegisterUserCommand{}, err
	}

	cmd.district = district
	cmd.minRate = minRate
	cmd.maxRate = maxRate
	cmd.skills = skills
	cmd.locale = locale

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

// UserID returns the new user's identifier.
func (c RegisterUserCommand) UserID() kernel.UUID { return c.userID }

// Name returns the display name.
func (c RegisterUserCommand) Name() string { return c.name }

// UserType returns whether the account is a worker or an employer.
func (c RegisterUserCommand) UserType() worker.Type { return c.userType }

// District returns the home district, possibly empty.
func (c RegisterUserCommand) District() string { return c.district }

// MinRate returns the lower hourly rate bound (0 = unbounded).
func (c RegisterUserCommand) MinRate() int { return c.minRate }

// MaxRate returns the upper hourly rate bound (0 = unbounded).
func (c RegisterUserCommand) MaxRate() int { return c.maxRate }

// Skills returns the declared skill list.
func (c RegisterUserCommand) Skills() []string { return c.skills }

// Locale returns the preferred language hint.
func (c RegisterUserCommand) Locale() string { return c.locale }

func (c *RegisterUserCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}

func (c *RegisterUserCommand) setName(name string) error {
	if name == "" {
		return ErrUserNameIsRequired
	}

	c.name = name
	return nil
}

func (c *RegisterUserCommand) setUserType(userType worker.Type) error {
	if err := userType.Validate(); err != nil {
		return err
	}

	c.userType = userType
	return nil
}
