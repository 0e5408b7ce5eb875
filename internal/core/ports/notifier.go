package ports

import (
	"time"

	"jetbond/internal/core/domain/model/kernel"
)

// EventType names the kind of a pushed notification.
type EventType string

const (
	// EventJobMatch tells a worker they appeared in a job's candidate list.
	EventJobMatch EventType = "job_match"

	// EventJobResponse tells an employer a worker applied to their job.
	EventJobResponse EventType = "job_response"

	// EventSelectionResult tells an applicant whether they were selected.
	EventSelectionResult EventType = "selection_result"

	// EventJobCancelled tells applicants the employer withdrew the job.
	EventJobCancelled EventType = "job_cancelled"

	// EventJobCompleted tells the selected worker the job was completed.
	EventJobCompleted EventType = "job_completed"

	// EventStatusReset tells a worker their availability went back to
	// open_to_work, with the reason.
	EventStatusReset EventType = "status_reset"
)

// Notification is the JSON payload pushed to a user. Fields irrelevant to the
// event type stay zero and are omitted on the wire.
type Notification struct {
	Type          EventType `json:"type"`
	JobID         string    `json:"jobId,omitempty"`
	JobTitle      string    `json:"jobTitle,omitempty"`
	District      string    `json:"district,omitempty"`
	HourlyRate    int       `json:"hourlyRate,omitempty"`
	MatchScore    int       `json:"matchScore,omitempty"`
	WorkerID      string    `json:"workerId,omitempty"`
	ResponseCount int       `json:"responseCount,omitempty"`
	WindowOpen    bool      `json:"windowOpen,omitempty"`
	Selected      *bool     `json:"selected,omitempty"`
	Rating        string    `json:"rating,omitempty"`
	Message       string    `json:"message,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// Notifier pushes notifications to users. Delivery is best-effort and
// fire-and-forget: implementations buffer for offline users or drop, and a
// delivery problem never propagates into the calling transition.
type Notifier interface {
	Notify(recipientID kernel.UUID, notification Notification)
}

// StoredNotification is a notification held in the offline buffer, together
// with its read mark.
type StoredNotification struct {
	Notification
	Read bool `json:"read"`
}

// NotificationInbox exposes the offline buffer for pull-based retrieval.
type NotificationInbox interface {
	// Pending returns the recipient's unread notifications, oldest first,
	// and marks them as read.
	Pending(recipientID kernel.UUID) []StoredNotification
}
