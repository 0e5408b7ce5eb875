package memstore

import (
	"context"

	"jetbond/internal/core/domain/model/job"
	"jetbond/internal/core/domain/model/kernel"
	"jetbond/internal/core/ports"
	"jetbond/internal/pkg/errs"
)

// JobRepository is the job-side view of one unit of work. Reads and writes
// operate on clones; a returned aggregate stays usable after Commit.
type JobRepository struct {
	uow *UnitOfWork
}

// Add stages a new job.
func (r *JobRepository) Add(_ context.Context, aggregate *job.Job) error {
	if !r.uow.holding {
		return ErrNotInTransaction
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}

	id := aggregate.ID()
	if _, ok := r.uow.stagedJobs[id]; ok {
		return ports.ErrAlreadyExists
	}
	if _, ok := r.uow.store.jobs[id]; ok {
		return ports.ErrAlreadyExists
	}

	r.uow.stagedJobs[id] = cloneJob(aggregate)
	return nil
}

// Update stages changes to an existing job.
func (r *JobRepository) Update(_ context.Context, aggregate *job.Job) error {
	if !r.uow.holding {
		return ErrNotInTransaction
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}

	id := aggregate.ID()
	if _, ok := r.uow.stagedJobs[id]; !ok {
		if _, ok = r.uow.store.jobs[id]; !ok {
			return errs.NewObjectNotFoundError("jobId", id.String())
		}
	}

	r.uow.stagedJobs[id] = cloneJob(aggregate)
	return nil
}

// Get retrieves a job by id. Staged writes shadow committed state.
func (r *JobRepository) Get(_ context.Context, id kernel.UUID) (*job.Job, error) {
	if !r.uow.holding {
		return nil, ErrNotInTransaction
	}
	if err := id.Validate(); err != nil {
		return nil, err
	}

	if aggregate, ok := r.uow.stagedJobs[id]; ok {
		return cloneJob(aggregate), nil
	}
	if aggregate, ok := r.uow.store.jobs[id]; ok {
		return cloneJob(aggregate), nil
	}

	return nil, errs.NewObjectNotFoundError("jobId", id.String())
}

// GetAllInMatching retrieves every job still in the matching super-state.
func (r *JobRepository) GetAllInMatching(_ context.Context) ([]*job.Job, error) {
	return r.getAll(func(aggregate *job.Job) bool {
		return aggregate.Status().IsMatching()
	})
}

// GetAllByEmployer retrieves every job posted by the given employer.
func (r *JobRepository) GetAllByEmployer(_ context.Context, employerID kernel.UUID) ([]*job.Job, error) {
	if err := employerID.Validate(); err != nil {
		return nil, err
	}

	return r.getAll(func(aggregate *job.Job) bool {
		return aggregate.EmployerID().IsEqual(employerID)
	})
}

func (r *JobRepository) getAll(keep func(*job.Job) bool) ([]*job.Job, error) {
	if !r.uow.holding {
		return nil, ErrNotInTransaction
	}

	jobs := make([]*job.Job, 0)
	for id, aggregate := range r.uow.store.jobs {
		if _, shadowed := r.uow.stagedJobs[id]; shadowed {
			continue
		}
		if keep(aggregate) {
			jobs = append(jobs, cloneJob(aggregate))
		}
	}
	for _, aggregate := range r.uow.stagedJobs {
		if keep(aggregate) {
			jobs = append(jobs, cloneJob(aggregate))
		}
	}

	return jobs, nil
}
