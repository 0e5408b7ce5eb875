// Package queries contains read operations over the authoritative store.
// Handlers enter the unit-of-work critical section only long enough to copy
// the aggregates they need and serve flattened read models from those copies.
package queries

import (
	"context"
	"sort"

	"jetbond/internal/core/domain/model/job"
	"jetbond/internal/core/ports"
)

// GetJobsQueryHandler builds job listings. Employers get their own jobs in
// every status; workers get the open marketplace: jobs still accepting or
// selecting applicants.
type GetJobsQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

// NewGetJobsQueryHandler creates a handler for job listings.
func NewGetJobsQueryHandler(uowFactory ports.UnitOfWorkFactory) GetJobsQueryHandler {
	return GetJobsQueryHandler{uowFactory: uowFactory}
}

// Handle executes the listing. Results are sorted newest first.
func (h GetJobsQueryHandler) Handle(
	ctx context.Context,
	query GetJobsQuery,
) ([]GetJobsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requester, err := uow.WorkerRepository().Get(ctx, query.RequesterID())
	if err != nil {
		return nil, err
	}

	var aggregates []*job.Job
	if requester.IsWorker() {
		aggregates, err = uow.JobRepository().GetAllInMatching(ctx)
	} else {
		aggregates, err = uow.JobRepository().GetAllByEmployer(ctx, requester.ID())
	}
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	jobs := make([]GetJobsQueryResponse, 0, len(aggregates))
	for _, aggregate := range aggregates {
		if query.District() != "" && aggregate.District() != query.District() {
			continue
		}
		jobs = append(jobs, toJobResponse(aggregate))
	}

	sort.Slice(jobs, func(i, j int) bool {
		if jobs[i].CreatedAt.Equal(jobs[j].CreatedAt) {
			return jobs[i].ID.String() < jobs[j].ID.String()
		}
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})

	return jobs, nil
}

func toJobResponse(aggregate *job.Job) GetJobsQueryResponse {
	return GetJobsQueryResponse{
		ID:               aggregate.ID(),
		EmployerID:       aggregate.EmployerID(),
		Title:            aggregate.Title(),
		Description:      aggregate.Description(),
		District:         aggregate.District(),
		HourlyRate:       aggregate.HourlyRate(),
		Duration:         aggregate.Duration(),
		Status:           aggregate.Status().String(),
		CreatedAt:        aggregate.CreatedAt(),
		ExpiresAt:        aggregate.ExpiresAt(),
		ResponseCount:    aggregate.Window().ResponseCount(),
		WindowOpen:       aggregate.Window().IsOpen(),
		SelectedWorkerID: aggregate.SelectedWorkerID(),
	}
}
