package ports

import (
	"time"

	"jetbond/internal/core/domain/model/kernel"
)

// WindowScheduler manages the one-shot timer that force-closes a job's
// response window. At most one timer exists per job.
type WindowScheduler interface {
	// Schedule arms the close timer for a job, replacing any existing one.
	// fn runs once after d unless Cancel is called first.
	Schedule(jobID kernel.UUID, d time.Duration, fn func())

	// Cancel disarms the job's timer if it is still pending.
	Cancel(jobID kernel.UUID)
}
