package ports

import (
	"context"

	"jetbond/internal/core/domain/model/job"
	"jetbond/internal/core/domain/model/worker"
)

// State is everything the durable store holds, loaded in one shot at startup
// to seed the authoritative in-memory store.
type State struct {
	Jobs    []*job.Job
	Workers []*worker.Worker
}

// DurableStore is the write-behind mirror of the in-memory state. Saves are
// upserts and run after commit, asynchronously and best-effort: a failed save
// is logged and retried on the aggregate's next change, never propagated.
type DurableStore interface {
	// SaveJob upserts a job record.
	SaveJob(ctx context.Context, aggregate *job.Job) error

	// SaveWorker upserts a user record.
	SaveWorker(ctx context.Context, aggregate *worker.Worker) error

	// LoadAll reads the complete persisted state.
	LoadAll(ctx context.Context) (State, error)
}
