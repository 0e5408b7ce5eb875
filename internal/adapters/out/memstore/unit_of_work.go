package memstore

import (
	"context"
	"errors"

	"jetbond/internal/core/domain/model/job"
	"jetbond/internal/core/domain/model/kernel"
	"jetbond/internal/core/domain/model/worker"
	"jetbond/internal/core/ports"
)

// Unit-of-work lifecycle violations.
var (
	ErrNotInTransaction     = errors.New("unit of work has not been started")
	ErrAlreadyInTransaction = errors.New("unit of work has already been started")
)

// UnitOfWork is one critical section over the store. Writes are staged in
// overlay maps and only land in the store on Commit; Rollback drops them.
// After Commit the staged aggregates are mirrored to the durable store in a
// background goroutine. The map entries are never mutated in place, only
// replaced, so the mirror can read its snapshot without holding the lock.
type UnitOfWork struct {
	store *Store

	holding   bool
	completed bool

	stagedJobs    map[kernel.UUID]*job.Job
	stagedWorkers map[kernel.UUID]*worker.Worker
}

func newUnitOfWork(store *Store) *UnitOfWork {
	return &UnitOfWork{
		store:         store,
		stagedJobs:    make(map[kernel.UUID]*job.Job),
		stagedWorkers: make(map[kernel.UUID]*worker.Worker),
	}
}

// Begin enters the store's critical section.
func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.holding || u.completed {
		return ErrAlreadyInTransaction
	}

	if err := u.store.acquire(ctx); err != nil {
		return err
	}

	u.holding = true
	return nil
}

// Commit publishes the staged writes and leaves the critical section, then
// hands the written aggregates to the durable mirror.
func (u *UnitOfWork) Commit(_ context.Context) error {
	if !u.holding {
		return ErrNotInTransaction
	}

	for id, aggregate := range u.stagedJobs {
		u.store.jobs[id] = aggregate
	}
	for id, aggregate := range u.stagedWorkers {
		u.store.workers[id] = aggregate
	}

	u.holding = false
	u.completed = true
	u.store.release()

	if u.store.durable != nil && (len(u.stagedJobs) > 0 || len(u.stagedWorkers) > 0) {
		go u.store.mirror(u.stagedJobs, u.stagedWorkers)
	}

	return nil
}

// Rollback drops the staged writes and leaves the critical section. After a
// Commit it is a no-op, so it is safe to defer.
func (u *UnitOfWork) Rollback(_ context.Context) error {
	if !u.holding {
		if u.completed {
			return nil
		}
		return ErrNotInTransaction
	}

	u.stagedJobs = make(map[kernel.UUID]*job.Job)
	u.stagedWorkers = make(map[kernel.UUID]*worker.Worker)

	u.holding = false
	u.completed = true
	u.store.release()

	return nil
}

// JobRepository returns the job repository bound to this unit of work.
func (u *UnitOfWork) JobRepository() ports.JobRepository {
	return &JobRepository{uow: u}
}

// WorkerRepository returns the user repository bound to this unit of work.
func (u *UnitOfWork) WorkerRepository() ports.WorkerRepository {
	return &WorkerRepository{uow: u}
}

// mirror pushes committed aggregates to the durable store. Failures are
// logged and swallowed: the in-memory state is already the truth, and the
// record is written again on the aggregate's next change.
func (s *Store) mirror(jobs map[kernel.UUID]*job.Job, workers map[kernel.UUID]*worker.Worker) {
	ctx := context.Background()

	for id, aggregate := range jobs {
		if err := s.durable.SaveJob(ctx, aggregate); err != nil {
			s.logger.Error("job mirror failed", "jobId", id, "error", err)
		}
	}
	for id, aggregate := range workers {
		if err := s.durable.SaveWorker(ctx, aggregate); err != nil {
			s.logger.Error("user mirror failed", "userId", id, "error", err)
		}
	}
}
