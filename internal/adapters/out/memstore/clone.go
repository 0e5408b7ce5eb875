package memstore

import (
	"fmt"

	"jetbond/internal/core/domain/model/job"
	"jetbond/internal/core/domain/model/worker"
)

// The store never hands out or keeps a pointer the other side can mutate:
// reads clone out, writes clone in. Clones rebuild aggregates through their
// Restore constructors, so a clone that fails to validate indicates a
// corrupted record and panics instead of propagating bad state.

func cloneJob(aggregate *job.Job) *job.Job {
	window := aggregate.Window()
	clone, err := job.RestoreJob(
		aggregate.ID(),
		aggregate.EmployerID(),
		aggregate.Title(),
		aggregate.Description(),
		aggregate.District(),
		aggregate.HourlyRate(),
		aggregate.Duration(),
		aggregate.Status(),
		aggregate.CreatedAt(),
		aggregate.ExpiresAt(),
		copyPtr(aggregate.ExpiredAt()),
		copyPtr(aggregate.SelectedWorkerID()),
		copyPtr(aggregate.SelectedAt()),
		copyPtr(aggregate.CompletedAt()),
		copyPtr(aggregate.CancelledAt()),
		copyPtr(aggregate.EmployerRating()),
		copyPtr(aggregate.WorkerRating()),
		job.RestoreResponseWindow(window.IsOpen(), copyPtr(window.FirstResponseAt()), window.Responses()),
		aggregate.CancelledApplications(),
	)
	if err != nil {
		panic(fmt.Sprintf("memstore: job %s does not survive a clone: %v", aggregate.ID(), err))
	}

	return clone
}

func cloneWorker(aggregate *worker.Worker) *worker.Worker {
	clone, err := worker.RestoreWorker(
		aggregate.ID(),
		aggregate.Name(),
		aggregate.UserType(),
		aggregate.District(),
		aggregate.MinRate(),
		aggregate.MaxRate(),
		aggregate.Skills(),
		aggregate.Locale(),
		aggregate.Availability(),
		copyPtr(aggregate.CurrentJobID()),
		aggregate.Ratings(),
	)
	if err != nil {
		panic(fmt.Sprintf("memstore: user %s does not survive a clone: %v", aggregate.ID(), err))
	}

	return clone
}

func copyPtr[T any](v *T) *T {
	if v == nil {
		return nil
	}

	c := *v
	return &c
}
