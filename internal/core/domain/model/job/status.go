package job

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is the sentinel wrapped by every InvalidTransitionError.
var ErrInvalidTransition = errors.New("invalid job transition")

// Role identifies the kind of principal attempting a job transition.
// Every edge in the status graph carries a set of roles allowed to drive it.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleEmployer is the principal who created the job.
	RoleEmployer

	// RoleWorker is a worker principal, relevant for the selected worker's edges.
	RoleWorker

	// RoleSystem marks transitions driven by the system itself (window close,
	// expiration sweep) with no human principal.
	RoleSystem
)

// String returns the lowercase name of the role.
func (r Role) String() string {
	switch r {
	case RoleEmployer:
		return "employer"
	case RoleWorker:
		return "worker"
	case RoleSystem:
		return "system"
	default:
		return "unknown"
	}
}

// Status represents the lifecycle state of a job posting.
// It implements a state machine with defined transitions to ensure jobs follow
// the correct business workflow.
//
// State transitions:
//
//	Matching ──┬──> AwaitingSelection ──┬──> Assigned ──┬──> Pending ──> Completed
//	           │                        │               ├──> Completed
//	           │                        │               └──> Cancelled
//	           ├────────────────────────┴──> Cancelled
//	           └──> Expired   (AwaitingSelection ──> Expired as well)
//
// Matching and AwaitingSelection together form the "matching" super-state:
// the job is still owned by the matching flow, the difference being whether the
// response window is still accepting applications.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusMatching is the initial status: the job is visible to workers and
	// its response window is open or openable.
	StatusMatching

	// StatusAwaitingSelection marks a job whose response window has closed but
	// whose employer has not yet picked a worker. Still within the matching
	// super-state.
	StatusAwaitingSelection

	// StatusAssigned indicates the employer selected a worker.
	StatusAssigned

	// StatusPending indicates the selected worker reported their part done and
	// the job awaits the employer's confirmation.
	StatusPending

	// StatusCompleted is terminal: the employer confirmed completion.
	StatusCompleted

	// StatusCancelled is terminal: the employer withdrew the job.
	StatusCancelled

	// StatusExpired is terminal: the posting ran out of time before assignment.
	StatusExpired
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:           "unknown",
		StatusMatching:          "matching",
		StatusAwaitingSelection: "awaiting_selection",
		StatusAssigned:          "assigned",
		StatusPending:           "pending",
		StatusCompleted:         "completed",
		StatusCancelled:         "cancelled",
		StatusExpired:           "expired",
	}
}

// transitionTable is the single source of truth for the status graph: for each
// source status, the legal target statuses and the roles permitted to drive
// each edge. Terminal statuses map to an empty row.
func transitionTable() map[Status]map[Status][]Role {
	return map[Status]map[Status][]Role{
		StatusMatching: {
			StatusAwaitingSelection: {RoleSystem},
			StatusAssigned:          {RoleEmployer},
			StatusCancelled:         {RoleEmployer},
			StatusExpired:           {RoleSystem},
		},
		StatusAwaitingSelection: {
			StatusAssigned:  {RoleEmployer},
			StatusCancelled: {RoleEmployer},
			StatusExpired:   {RoleSystem},
		},
		StatusAssigned: {
			StatusPending:   {RoleWorker},
			StatusCompleted: {RoleEmployer},
			StatusCancelled: {RoleEmployer},
		},
		StatusPending: {
			StatusCompleted: {RoleEmployer},
		},
		StatusCompleted: {},
		StatusCancelled: {},
		StatusExpired:   {},
	}
}

// String returns the persisted lowercase name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks that the Status value is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := transitionTable()[s]; !ok {
		return fmt.Errorf("%w: %d is not a valid status", ErrInvalidTransition, s)
	}
	return nil
}

// StatusFromString parses the persisted lowercase name back into a Status.
func StatusFromString(name string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != StatusUnknown && str == name {
			return status, nil
		}
	}
	return StatusUnknown, fmt.Errorf("%w: %q is not a valid status", ErrInvalidTransition, name)
}

// IsMatching reports whether the status belongs to the matching super-state
// (the job has not been assigned, cancelled, or expired yet).
func (s Status) IsMatching() bool {
	return s == StatusMatching || s == StatusAwaitingSelection
}

// IsTerminal reports whether the status has no outgoing edges.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusExpired
}

// CanTransition is a pure lookup into the transition table: it reports whether
// the edge from -> to exists and whether the given role may drive it.
func CanTransition(from, to Status, role Role) bool {
	row, ok := transitionTable()[from]
	if !ok {
		return false
	}

	roles, ok := row[to]
	if !ok {
		return false
	}

	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// InvalidTransitionError describes a rejected job status transition with
// enough detail to reconstruct the attempted edge.
type InvalidTransitionError struct {
	From   Status
	To     Status
	Role   Role
	Reason string
}

// newInvalidTransitionError builds the error for an illegal edge attempt.
func newInvalidTransitionError(from, to Status, role Role, reason string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to, Role: role, Reason: reason}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid job transition from %s to %s for %s: %s", e.From, e.To, e.Role, e.Reason)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
