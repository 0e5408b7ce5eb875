package ports

import (
	"context"
	"errors"

	"jetbond/internal/core/domain/model/job"
	"jetbond/internal/core/domain/model/kernel"
)

// ErrAlreadyExists is returned by Add when the aggregate's id is taken.
var ErrAlreadyExists = errors.New("aggregate with this id already exists")

// JobRepository defines the persistence contract for job aggregates.
type JobRepository interface {
	// Add persists a new job aggregate to storage.
	// The job must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *job.Job) error

	// Update persists changes to an existing job aggregate.
	Update(ctx context.Context, aggregate *job.Job) error

	// Get retrieves a job aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*job.Job, error)

	// GetAllInMatching retrieves every job still in the matching super-state
	// (status matching or awaiting_selection). Used by the expiration sweeper
	// and by worker-facing job listings.
	GetAllInMatching(ctx context.Context) ([]*job.Job, error)

	// GetAllByEmployer retrieves every job posted by the given employer,
	// regardless of status.
	GetAllByEmployer(ctx context.Context, employerID kernel.UUID) ([]*job.Job, error)
}
