package commands

import (
	"context"
	"time"

	"jetbond/internal/core/domain/model/job"
	"jetbond/internal/core/domain/model/kernel"
	"jetbond/internal/core/domain/model/worker"
	"jetbond/internal/core/ports"
)

// releaseApplicants flips every applicant still tied to the job back to
// open_to_work and records the notifications to send after commit. The
// selected worker (if any) is skipped: their release has its own cause.
// Returns the updated workers and the queued status-reset notifications.
func releaseApplicants(
	ctx context.Context,
	repo ports.WorkerRepository,
	aggregate *job.Job,
	trigger worker.Trigger,
	reason string,
) ([]*worker.Worker, []pendingNotification, error) {
	var released []*worker.Worker
	var pending []pendingNotification

	for _, response := range aggregate.Window().Responses() {
		if selected := aggregate.SelectedWorkerID(); selected != nil && selected.IsEqual(response.WorkerID) {
			continue
		}

		applicant, err := repo.Get(ctx, response.WorkerID)
		if err != nil {
			return nil, nil, err
		}
		if !applicant.IsBusy() || !applicant.IsTiedTo(aggregate.ID()) {
			continue
		}

		if err = applicant.Release(trigger); err != nil {
			return nil, nil, err
		}
		if err = repo.Update(ctx, applicant); err != nil {
			return nil, nil, err
		}

		released = append(released, applicant)
		pending = append(pending, pendingNotification{
			recipientID: applicant.ID(),
			notification: ports.Notification{
				Type:      ports.EventStatusReset,
				JobID:     aggregate.ID().String(),
				JobTitle:  aggregate.Title(),
				Message:   "Your status has been reset to \"Open to work\". Reason: " + reason,
				Timestamp: time.Now(),
			},
		})
	}

	return released, pending, nil
}

// pendingNotification pairs a notification with its recipient so handlers can
// collect messages inside the critical section and push them after commit.
type pendingNotification struct {
	recipientID  kernel.UUID
	notification ports.Notification
}

// flush pushes every queued notification. Call after Commit only.
func flush(notifier ports.Notifier, pending []pendingNotification) {
	for _, p := range pending {
		notifier.Notify(p.recipientID, p.notification)
	}
}
