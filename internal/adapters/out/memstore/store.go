// Package memstore is the authoritative storage of the service: plain maps
// behind one store-wide mutex. Every unit of work is a critical section over
// the whole store, which is what makes the multi-aggregate transitions of
// matching (job window plus applicant availability) atomic. A durable store,
// when configured, receives committed changes as an asynchronous write-behind
// mirror and seeds the maps on startup.
package memstore

import (
	"context"
	"log/slog"

	"jetbond/internal/core/domain/model/job"
	"jetbond/internal/core/domain/model/kernel"
	"jetbond/internal/core/domain/model/worker"
	"jetbond/internal/core/ports"
)

// Store owns the in-memory state. Access goes through units of work created
// by the factory; the store itself only exposes seeding.
//
// The critical section is a one-slot semaphore rather than a sync.Mutex so
// that a waiting unit of work can give up when its context is cancelled.
type Store struct {
	sem     chan struct{}
	jobs    map[kernel.UUID]*job.Job
	workers map[kernel.UUID]*worker.Worker

	durable ports.DurableStore
	logger  *slog.Logger
}

// NewStore creates an empty store. durable may be nil, which disables the
// write-behind mirror.
func NewStore(durable ports.DurableStore, logger *slog.Logger) *Store {
	return &Store{
		sem:     make(chan struct{}, 1),
		jobs:    make(map[kernel.UUID]*job.Job),
		workers: make(map[kernel.UUID]*worker.Worker),
		durable: durable,
		logger:  logger.With("component", "memstore"),
	}
}

func (s *Store) acquire(ctx context.Context) error {
	select {
	case s.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) release() {
	<-s.sem
}

// Seed loads persisted state into the maps. Meant for startup, before the
// store is shared; it still takes the lock so a stray early unit of work
// cannot observe a half-seeded store.
func (s *Store) Seed(state ports.State) {
	s.sem <- struct{}{}
	defer s.release()

	for _, aggregate := range state.Jobs {
		s.jobs[aggregate.ID()] = cloneJob(aggregate)
	}
	for _, aggregate := range state.Workers {
		s.workers[aggregate.ID()] = cloneWorker(aggregate)
	}

	s.logger.Info("state seeded", "jobs", len(state.Jobs), "users", len(state.Workers))
}

func (s *Store) createUnitOfWork() *UnitOfWork {
	return newUnitOfWork(s)
}

// Factory adapts the store to ports.UnitOfWorkFactory.
type Factory struct {
	store *Store
}

// NewUnitOfWorkFactory creates the unit-of-work factory for a store.
func NewUnitOfWorkFactory(store *Store) Factory {
	return Factory{store: store}
}

// Create returns a fresh unit of work over the store.
func (f Factory) Create() ports.UnitOfWork {
	return f.store.createUnitOfWork()
}
