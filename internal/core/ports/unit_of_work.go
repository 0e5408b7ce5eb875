package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary over the
// authoritative in-memory state. Begin enters the store's critical section;
// until Commit or Rollback no other unit of work observes or mutates state.
// Client code must explicitly manage the lifecycle.
type UnitOfWork interface {
	// Begin enters the critical section. It blocks while another unit of
	// work holds it and fails only when ctx is done first.
	Begin(ctx context.Context) error

	// Commit leaves the critical section, keeping every change made through
	// the repositories. Changed aggregates are then mirrored to the durable
	// store asynchronously and best-effort: a mirror failure is logged and
	// never rolls the committed state back.
	Commit(ctx context.Context) error

	// Rollback leaves the critical section discarding uncommitted changes.
	// Calling it after Commit is a no-op, so it is safe to defer.
	Rollback(ctx context.Context) error

	// JobRepository returns a JobRepository bound to this unit of work.
	JobRepository() JobRepository

	// WorkerRepository returns a WorkerRepository bound to this unit of work.
	WorkerRepository() WorkerRepository
}
