package commands

import (
	"errors"

	"jetbond/internal/core/domain/model/kernel"
	"jetbond/internal/pkg/guard"
)

var (
	ErrCreateJobCommandIsNotConstructed = errors.New(
		"CreateJobCommand must be created via NewCreateJobCommand constructor",
	)
	ErrJobTitleIsRequired       = errors.New("title is required")
	ErrJobDescriptionIsRequired = errors.New("description is required")
	ErrJobDistrictIsRequired    = errors.New("district is required")
	ErrJobHourlyRateIsInvalid   = errors.New("hourlyRate must be greater than 0")
)

// CreateJobCommand represents a request to post a new job.
//
// Example:
//
//	jobID := kernel.NewUUID()
//	cmd, err := NewCreateJobCommand(jobID, employerID,
//	    "Unload a truck", "Two hours of moving boxes", "Central", 25, "2 hours", 30)
//	if err != nil {
//	    return fmt.Errorf("invalid job data: %w", err)
//	}
//
//	handler := NewCreateJobCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create job: %w", err)
//	}
type CreateJobCommand struct { //nolint:recvcheck //using for validation
	jobID             kernel.UUID
	employerID        kernel.UUID
	title             string
	description       string
	district          string
	hourlyRate        int
	duration          string
	expirationMinutes int

	guard guard.ConstructorGuard
}

// NewCreateJobCommand creates a command to post a new job. The expiration
// offset is passed through as-is; the aggregate applies the default and the
// cap.
func NewCreateJobCommand(
	jobID kernel.UUID,
	employerID kernel.UUID,
	title string,
	description string,
	district string,
	hourlyRate int,
	duration string,
	expirationMinutes int,
) (CreateJobCommand, error) {
	cmd := CreateJobCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setJobID(jobID),
		cmd.setEmployerID(employerID),
		cmd.setTitle(title),
		cmd.setDescription(description),
		cmd.setDistrict(district),
		cmd.setHourlyRate(hourlyRate),
	); err != nil {
		return CreateJobCommand{}, err
	}

	cmd.duration = duration
	cmd.expirationMinutes = expirationMinutes

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateJobCommand) Validate() error {
	return c.guard.Validate(ErrCreateJobCommandIsNotConstructed)
}

// JobID returns the new job's identifier.
func (c CreateJobCommand) JobID() kernel.UUID { return c.jobID }

// EmployerID returns the posting employer's identifier.
func (c CreateJobCommand) EmployerID() kernel.UUID { return c.employerID }

// Title returns the job title.
func (c CreateJobCommand) Title() string { return c.title }

// Description returns the job description.
func (c CreateJobCommand) Description() string { return c.description }

// District returns the job's district.
func (c CreateJobCommand) District() string { return c.district }

// HourlyRate returns the offered hourly rate.
func (c CreateJobCommand) HourlyRate() int { return c.hourlyRate }

// Duration returns the free-form duration text.
func (c CreateJobCommand) Duration() string { return c.duration }

// ExpirationMinutes returns the requested expiration offset.
func (c CreateJobCommand) ExpirationMinutes() int { return c.expirationMinutes }

func (c *CreateJobCommand) setJobID(jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}

	c.jobID = jobID
	return nil
}

func (c *CreateJobCommand) setEmployerID(employerID kernel.UUID) error {
	if err := employerID.Validate(); err != nil {
		return err
	}

	c.employerID = employerID
	return nil
}

func (c *CreateJobCommand) setTitle(title string) error {
	if title == "" {
		return ErrJobTitleIsRequired
	}

	c.title = title
	return nil
}

func (c *CreateJobCommand) setDescription(description string) error {
	if description == "" {
		return ErrJobDescriptionIsRequired
	}

	c.description = description
	return nil
}

func (c *CreateJobCommand) setDistrict(district string) error {
	if district == "" {
		return ErrJobDistrictIsRequired
	}

	c.district = district
	return nil
}

func (c *CreateJobCommand) setHourlyRate(hourlyRate int) error {
	if hourlyRate <= 0 {
		return ErrJobHourlyRateIsInvalid
	}

	c.hourlyRate = hourlyRate
	return nil
}
