package memstore

import (
	"context"

	"jetbond/internal/core/domain/model/kernel"
	"jetbond/internal/core/domain/model/worker"
	"jetbond/internal/core/ports"
	"jetbond/internal/pkg/errs"
)

// WorkerRepository is the user-side view of one unit of work.
type WorkerRepository struct {
	uow *UnitOfWork
}

// Add stages a new user.
func (r *WorkerRepository) Add(_ context.Context, aggregate *worker.Worker) error {
	if !r.uow.holding {
		return ErrNotInTransaction
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}

	id := aggregate.ID()
	if _, ok := r.uow.stagedWorkers[id]; ok {
		return ports.ErrAlreadyExists
	}
	if _, ok := r.uow.store.workers[id]; ok {
		return ports.ErrAlreadyExists
	}

	r.uow.stagedWorkers[id] = cloneWorker(aggregate)
	return nil
}

// Update stages changes to an existing user.
func (r *WorkerRepository) Update(_ context.Context, aggregate *worker.Worker) error {
	if !r.uow.holding {
		return ErrNotInTransaction
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}

	id := aggregate.ID()
	if _, ok := r.uow.stagedWorkers[id]; !ok {
		if _, ok = r.uow.store.workers[id]; !ok {
			return errs.NewObjectNotFoundError("userId", id.String())
		}
	}

	r.uow.stagedWorkers[id] = cloneWorker(aggregate)
	return nil
}

// Get retrieves a user by id. Staged writes shadow committed state.
func (r *WorkerRepository) Get(_ context.Context, id kernel.UUID) (*worker.Worker, error) {
	if !r.uow.holding {
		return nil, ErrNotInTransaction
	}
	if err := id.Validate(); err != nil {
		return nil, err
	}

	if aggregate, ok := r.uow.stagedWorkers[id]; ok {
		return cloneWorker(aggregate), nil
	}
	if aggregate, ok := r.uow.store.workers[id]; ok {
		return cloneWorker(aggregate), nil
	}

	return nil, errs.NewObjectNotFoundError("userId", id.String())
}

// GetAllOpenToWork retrieves the matching pool: workers currently open.
func (r *WorkerRepository) GetAllOpenToWork(_ context.Context) ([]*worker.Worker, error) {
	if !r.uow.holding {
		return nil, ErrNotInTransaction
	}

	workers := make([]*worker.Worker, 0)
	for id, aggregate := range r.uow.store.workers {
		if _, shadowed := r.uow.stagedWorkers[id]; shadowed {
			continue
		}
		if aggregate.IsWorker() && aggregate.IsOpenToWork() {
			workers = append(workers, cloneWorker(aggregate))
		}
	}
	for _, aggregate := range r.uow.stagedWorkers {
		if aggregate.IsWorker() && aggregate.IsOpenToWork() {
			workers = append(workers, cloneWorker(aggregate))
		}
	}

	return workers, nil
}
