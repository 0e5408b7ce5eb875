package job

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusShouldBeValidatable(t *testing.T) {
	valid := []Status{
		StatusMatching,
		StatusAwaitingSelection,
		StatusAssigned,
		StatusPending,
		StatusCompleted,
		StatusCancelled,
		StatusExpired,
	}
	for _, s := range valid {
		t.Run(s.String(), func(t *testing.T) {
			assert.NoError(t, s.Validate())
		})
	}

	assert.Error(t, StatusUnknown.Validate())
	assert.Error(t, Status(99).Validate())
}

func TestStatusFromString(t *testing.T) {
	for status, name := range getStatusStrings() {
		if status == StatusUnknown {
			continue
		}
		parsed, err := StatusFromString(name)
		assert.NoError(t, err)
		assert.Equal(t, status, parsed)
	}

	_, err := StatusFromString("flying")
	assert.Error(t, err)
}

func TestStatusTransitionTable(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		to      Status
		role    Role
		allowed bool
	}{
		{"system closes the window", StatusMatching, StatusAwaitingSelection, RoleSystem, true},
		{"employer selects while window is open", StatusMatching, StatusAssigned, RoleEmployer, true},
		{"employer selects after window close", StatusAwaitingSelection, StatusAssigned, RoleEmployer, true},
		{"employer cancels during matching", StatusMatching, StatusCancelled, RoleEmployer, true},
		{"employer cancels awaiting selection", StatusAwaitingSelection, StatusCancelled, RoleEmployer, true},
		{"system expires matching", StatusMatching, StatusExpired, RoleSystem, true},
		{"system expires awaiting selection", StatusAwaitingSelection, StatusExpired, RoleSystem, true},
		{"worker marks assigned job pending", StatusAssigned, StatusPending, RoleWorker, true},
		{"employer completes assigned job", StatusAssigned, StatusCompleted, RoleEmployer, true},
		{"employer cancels assigned job", StatusAssigned, StatusCancelled, RoleEmployer, true},
		{"employer completes pending job", StatusPending, StatusCompleted, RoleEmployer, true},

		{"worker cannot select", StatusMatching, StatusAssigned, RoleWorker, false},
		{"system cannot select", StatusAwaitingSelection, StatusAssigned, RoleSystem, false},
		{"worker cannot cancel the job", StatusMatching, StatusCancelled, RoleWorker, false},
		{"employer cannot expire", StatusMatching, StatusExpired, RoleEmployer, false},
		{"employer cannot mark pending", StatusAssigned, StatusPending, RoleEmployer, false},
		{"worker cannot complete", StatusPending, StatusCompleted, RoleWorker, false},
		{"system cannot expire an assigned job", StatusAssigned, StatusExpired, RoleSystem, false},
		{"pending cannot be cancelled", StatusPending, StatusCancelled, RoleEmployer, false},
		{"completed is terminal", StatusCompleted, StatusCancelled, RoleEmployer, false},
		{"cancelled is terminal", StatusCancelled, StatusMatching, RoleSystem, false},
		{"expired is terminal", StatusExpired, StatusMatching, RoleSystem, false},
		{"no backwards edge", StatusAssigned, StatusMatching, RoleSystem, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to, tt.role))
		})
	}
}

func TestStatusIsMatching(t *testing.T) {
	assert.True(t, StatusMatching.IsMatching())
	assert.True(t, StatusAwaitingSelection.IsMatching())
	assert.False(t, StatusAssigned.IsMatching())
	assert.False(t, StatusCompleted.IsMatching())
}

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusExpired.IsTerminal())
	assert.False(t, StatusMatching.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
}

func TestInvalidTransitionErrorShouldUnwrap(t *testing.T) {
	err := newInvalidTransitionError(StatusCompleted, StatusCancelled, RoleEmployer, "edge is not allowed")
	assert.True(t, errors.Is(err, ErrInvalidTransition))

	var target *InvalidTransitionError
	assert.True(t, errors.As(err, &target))
	assert.Equal(t, StatusCompleted, target.From)
	assert.Equal(t, StatusCancelled, target.To)
}
