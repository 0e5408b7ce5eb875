package worker

import (
	"errors"
	"fmt"
)

// Sentinels wrapped by the availability transition errors.
var (
	ErrInvalidAvailabilityTransition = errors.New("invalid availability transition")
	ErrInvalidTrigger                = errors.New("invalid availability trigger")
)

// Availability is a worker's synchronization state. A worker may hold at most
// one active application or assignment at a time; busy workers are invisible
// to matching.
type Availability int

const (
	// AvailabilityUnknown represents an invalid or undefined availability.
	AvailabilityUnknown Availability = iota

	// AvailabilityOpenToWork means the worker may apply to jobs and appears
	// as a matching candidate.
	AvailabilityOpenToWork

	// AvailabilityBusy means the worker is tied to a job (applied or
	// assigned) and is excluded from matching.
	AvailabilityBusy
)

func getAvailabilityStrings() map[Availability]string {
	return map[Availability]string{
		AvailabilityUnknown:    "unknown",
		AvailabilityOpenToWork: "open_to_work",
		AvailabilityBusy:       "busy",
	}
}

// String returns the persisted lowercase name of the availability.
func (a Availability) String() string {
	if str, ok := getAvailabilityStrings()[a]; ok {
		return str
	}
	return "unknown"
}

// Validate checks that the Availability value is one of the defined states.
func (a Availability) Validate() error {
	if a != AvailabilityOpenToWork && a != AvailabilityBusy {
		return fmt.Errorf("%w: %d is not a valid availability", ErrInvalidAvailabilityTransition, a)
	}
	return nil
}

// AvailabilityFromString parses the persisted lowercase name back into an
// Availability.
func AvailabilityFromString(name string) (Availability, error) {
	for availability, str := range getAvailabilityStrings() {
		if availability != AvailabilityUnknown && str == name {
			return availability, nil
		}
	}
	return AvailabilityUnknown, fmt.Errorf("%w: %q is not a valid availability", ErrInvalidAvailabilityTransition, name)
}

// Trigger names the business event driving an availability change. The
// availability graph has exactly two edges and every edge carries its own set
// of legal triggers; a legal edge driven by the wrong trigger is still
// rejected.
type Trigger int

const (
	// TriggerUnknown represents an invalid or undefined trigger.
	TriggerUnknown Trigger = iota

	// TriggerApplyToJob is the only way a worker becomes busy.
	TriggerApplyToJob

	// TriggerJobCompleted releases the worker when their job finished.
	TriggerJobCompleted

	// TriggerJobCancelled releases the worker when their job was withdrawn
	// or expired.
	TriggerJobCancelled

	// TriggerNotSelected releases an applicant when the employer picked
	// someone else.
	TriggerNotSelected

	// TriggerCancelApplication releases a worker who withdrew their own
	// application.
	TriggerCancelApplication
)

func getTriggerStrings() map[Trigger]string {
	return map[Trigger]string{
		TriggerUnknown:           "unknown",
		TriggerApplyToJob:        "apply_to_job",
		TriggerJobCompleted:      "job_completed",
		TriggerJobCancelled:      "job_cancelled",
		TriggerNotSelected:       "not_selected",
		TriggerCancelApplication: "cancel_application",
	}
}

// String returns the lowercase name of the trigger.
func (t Trigger) String() string {
	if str, ok := getTriggerStrings()[t]; ok {
		return str
	}
	return "unknown"
}

// availabilityTable maps each edge of the availability graph to the triggers
// allowed to drive it.
func availabilityTable() map[Availability]map[Availability][]Trigger {
	return map[Availability]map[Availability][]Trigger{
		AvailabilityOpenToWork: {
			AvailabilityBusy: {TriggerApplyToJob},
		},
		AvailabilityBusy: {
			AvailabilityOpenToWork: {
				TriggerJobCompleted,
				TriggerJobCancelled,
				TriggerNotSelected,
				TriggerCancelApplication,
			},
		},
	}
}

// CanTransition reports whether the edge from -> to exists and whether the
// given trigger may drive it.
func CanTransition(from, to Availability, trigger Trigger) bool {
	row, ok := availabilityTable()[from]
	if !ok {
		return false
	}

	triggers, ok := row[to]
	if !ok {
		return false
	}

	for _, tr := range triggers {
		if tr == trigger {
			return true
		}
	}
	return false
}

// InvalidTransitionError describes an availability change rejected because
// the edge does not exist (for example releasing a worker who is already
// open to work).
type InvalidTransitionError struct {
	From Availability
	To   Availability
}

func newInvalidTransitionError(from, to Availability) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid availability transition from %s to %s", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidAvailabilityTransition
}

// InvalidTriggerError describes an availability change along an existing edge
// driven by a trigger that edge does not accept.
type InvalidTriggerError struct {
	From    Availability
	To      Availability
	Trigger Trigger
}

func newInvalidTriggerError(from, to Availability, trigger Trigger) *InvalidTriggerError {
	return &InvalidTriggerError{From: from, To: to, Trigger: trigger}
}

func (e *InvalidTriggerError) Error() string {
	return fmt.Sprintf("trigger %s cannot drive availability transition from %s to %s", e.Trigger, e.From, e.To)
}

func (e *InvalidTriggerError) Unwrap() error {
	return ErrInvalidTrigger
}
