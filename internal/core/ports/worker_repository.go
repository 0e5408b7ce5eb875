// Package ports defines the contracts between the core and the adapters:
// repositories and the unit of work on the storage side, plus the outbound
// boundaries for durable mirroring, notifications, scoring, and window timers.
package ports

import (
	"context"

	"jetbond/internal/core/domain/model/kernel"
	"jetbond/internal/core/domain/model/worker"
)

// WorkerRepository defines the persistence contract for user aggregates
// (workers and employers share one record type).
type WorkerRepository interface {
	// Add persists a new user aggregate to storage.
	// The user must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *worker.Worker) error

	// Update persists changes to an existing user aggregate.
	Update(ctx context.Context, aggregate *worker.Worker) error

	// Get retrieves a user aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*worker.Worker, error)

	// GetAllOpenToWork retrieves every worker currently open to work.
	// Employers and busy workers are excluded; this is the matching pool.
	GetAllOpenToWork(ctx context.Context) ([]*worker.Worker, error)
}
