package job

import (
	"errors"
	"time"

	"jetbond/internal/core/domain/model/kernel"
)

const (
	// MaxResponses is the hard cap on applications collected for one job.
	MaxResponses = 5

	// WindowDuration is how long the response window stays open after the
	// first accepted application.
	WindowDuration = 5 * time.Minute
)

// Response window failures, detected before any mutation.
var (
	// ErrAlreadyApplied is returned when a worker applies twice to the same job.
	ErrAlreadyApplied = errors.New("worker already applied to this job")
	// ErrWindowClosed is returned when the job no longer accepts applications.
	ErrWindowClosed = errors.New("response window is closed")
	// ErrCapacityExceeded is returned when the response cap has been reached.
	ErrCapacityExceeded = errors.New("maximum responses reached")
	// ErrPreviouslyCancelled is returned when a worker re-applies to a job they
	// withdrew from earlier. Such workers may never re-apply.
	ErrPreviouslyCancelled = errors.New("application to this job was previously cancelled")
	// ErrNotApplied is returned when withdrawing an application that does not exist.
	ErrNotApplied = errors.New("worker has not applied to this job")
)

// Response is one worker's application, in arrival order.
type Response struct {
	WorkerID    kernel.UUID
	RespondedAt time.Time
}

// ResponseWindow bounds, in both count and time, the set of workers allowed to
// apply to one job. It opens on the first accepted application and closes
// exactly once, either by timer expiry or by reaching MaxResponses; once closed
// it never reopens for that job.
type ResponseWindow struct {
	isOpen          bool
	firstResponseAt *time.Time
	responses       []Response
}

// RestoreResponseWindow rebuilds a window from persisted state.
func RestoreResponseWindow(isOpen bool, firstResponseAt *time.Time, responses []Response) ResponseWindow {
	return ResponseWindow{
		isOpen:          isOpen,
		firstResponseAt: firstResponseAt,
		responses:       append([]Response(nil), responses...),
	}
}

// IsOpen reports whether the window currently accepts applications.
func (w *ResponseWindow) IsOpen() bool {
	return w.isOpen
}

// FirstResponseAt returns the time of the first accepted application,
// or nil if the window never opened.
func (w *ResponseWindow) FirstResponseAt() *time.Time {
	return w.firstResponseAt
}

// Responses returns the collected applications in arrival order.
func (w *ResponseWindow) Responses() []Response {
	return append([]Response(nil), w.responses...)
}

// ResponseCount returns the number of collected applications.
func (w *ResponseWindow) ResponseCount() int {
	return len(w.responses)
}

// HasResponse reports whether the given worker has an application on record.
func (w *ResponseWindow) HasResponse(workerID kernel.UUID) bool {
	for _, r := range w.responses {
		if r.WorkerID.IsEqual(workerID) {
			return true
		}
	}
	return false
}

// open marks the window open and stamps the first response time.
// Called by the aggregate on the first accepted application.
func (w *ResponseWindow) open(now time.Time) {
	if w.isOpen || w.firstResponseAt != nil {
		return
	}
	w.isOpen = true
	w.firstResponseAt = &now
}

// add appends a response. The aggregate performs all gating beforehand.
func (w *ResponseWindow) add(workerID kernel.UUID, now time.Time) {
	w.responses = append(w.responses, Response{WorkerID: workerID, RespondedAt: now})
}

// close marks the window closed. Idempotent; a closed window never reopens.
func (w *ResponseWindow) close() bool {
	if !w.isOpen {
		return false
	}
	w.isOpen = false
	return true
}

// remove deletes the given worker's response, preserving arrival order of the
// rest. Reports whether a response was removed.
func (w *ResponseWindow) remove(workerID kernel.UUID) bool {
	for i, r := range w.responses {
		if r.WorkerID.IsEqual(workerID) {
			w.responses = append(w.responses[:i], w.responses[i+1:]...)
			return true
		}
	}
	return false
}
