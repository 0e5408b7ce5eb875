package job

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jetbond/internal/core/domain/model/kernel"
)

func newTestJob(t *testing.T) *Job {
	t.Helper()
	j, err := NewJob(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"Unload a truck",
		"Two hours of moving boxes",
		"Central",
		25,
		"2 hours",
		DefaultExpirationMinutes,
		time.Now(),
	)
	require.NoError(t, err)
	return j
}

func TestNewJobShouldCreateMatchingJob(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	id := kernel.NewUUID()
	employerID := kernel.NewUUID()

	j, err := NewJob(id, employerID, "Paint a fence", "White paint provided", "North", 30, "half a day", 15, now)
	require.NoError(t, err)

	assert.Equal(t, id, j.ID())
	assert.Equal(t, employerID, j.EmployerID())
	assert.Equal(t, StatusMatching, j.Status())
	assert.Equal(t, now, j.CreatedAt())
	assert.Equal(t, now.Add(15*time.Minute), j.ExpiresAt())
	assert.False(t, j.Window().IsOpen())
	assert.Nil(t, j.SelectedWorkerID())
	assert.NoError(t, j.Validate())
}

func TestNewJobShouldDefaultAndClampExpiration(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		minutes int
		want    time.Duration
	}{
		{"zero falls back to default", 0, DefaultExpirationMinutes * time.Minute},
		{"negative falls back to default", -10, DefaultExpirationMinutes * time.Minute},
		{"in range is kept", 60, 60 * time.Minute},
		{"above maximum is clamped", 500, MaxExpirationMinutes * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j, err := NewJob(kernel.NewUUID(), kernel.NewUUID(), "t", "d", "Central", 10, "", tt.minutes, now)
			require.NoError(t, err)
			assert.Equal(t, now.Add(tt.want), j.ExpiresAt())
		})
	}
}

func TestNewJobShouldValidateParams(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		fn   func() (*Job, error)
	}{
		{"empty id", func() (*Job, error) {
			return NewJob(kernel.UUID{}, kernel.NewUUID(), "t", "d", "Central", 10, "", 5, now)
		}},
		{"empty employer id", func() (*Job, error) {
			return NewJob(kernel.NewUUID(), kernel.UUID{}, "t", "d", "Central", 10, "", 5, now)
		}},
		{"empty title", func() (*Job, error) {
			return NewJob(kernel.NewUUID(), kernel.NewUUID(), "", "d", "Central", 10, "", 5, now)
		}},
		{"empty description", func() (*Job, error) {
			return NewJob(kernel.NewUUID(), kernel.NewUUID(), "t", "", "Central", 10, "", 5, now)
		}},
		{"empty district", func() (*Job, error) {
			return NewJob(kernel.NewUUID(), kernel.NewUUID(), "t", "d", "", 10, "", 5, now)
		}},
		{"zero hourly rate", func() (*Job, error) {
			return NewJob(kernel.NewUUID(), kernel.NewUUID(), "t", "d", "Central", 0, "", 5, now)
		}},
		{"negative hourly rate", func() (*Job, error) {
			return NewJob(kernel.NewUUID(), kernel.NewUUID(), "t", "d", "Central", -5, "", 5, now)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j, err := tt.fn()
			assert.Error(t, err)
			assert.Nil(t, j)
		})
	}
}

func TestJobValidateShouldFailOnZeroValue(t *testing.T) {
	var j Job
	assert.ErrorIs(t, j.Validate(), ErrJobIsNotConstructed)
	assert.ErrorIs(t, (*Job)(nil).Validate(), ErrJobIsNotConstructed)
}

func TestApplyShouldOpenWindowOnFirstResponse(t *testing.T) {
	j := newTestJob(t)
	now := time.Now()
	workerID := kernel.NewUUID()

	res, err := j.Apply(workerID, now)
	require.NoError(t, err)

	assert.True(t, res.WindowOpened)
	assert.False(t, res.WindowFilled)
	assert.Equal(t, 1, res.ResponseCount)
	assert.True(t, j.Window().IsOpen())
	assert.Equal(t, now, *j.Window().FirstResponseAt())
	assert.True(t, j.Window().HasResponse(workerID))
}

func TestApplyShouldRejectDuplicateWorker(t *testing.T) {
	j := newTestJob(t)
	workerID := kernel.NewUUID()

	_, err := j.Apply(workerID, time.Now())
	require.NoError(t, err)

	_, err = j.Apply(workerID, time.Now())
	assert.ErrorIs(t, err, ErrAlreadyApplied)
	assert.Equal(t, 1, j.Window().ResponseCount())
}

func TestApplyShouldFillWindowAtCapacity(t *testing.T) {
	j := newTestJob(t)

	var last ApplyResult
	for i := 0; i < MaxResponses; i++ {
		res, err := j.Apply(kernel.NewUUID(), time.Now())
		require.NoError(t, err)
		last = res
	}

	assert.True(t, last.WindowFilled)
	assert.Equal(t, MaxResponses, last.ResponseCount)

	// The handler closes the window on WindowFilled; the sixth applicant must
	// still see a capacity error, not a closed-window one.
	j.CloseWindow()
	_, err := j.Apply(kernel.NewUUID(), time.Now())
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestApplyShouldRejectAfterWindowClosed(t *testing.T) {
	j := newTestJob(t)
	_, err := j.Apply(kernel.NewUUID(), time.Now())
	require.NoError(t, err)

	j.CloseWindow()

	_, err = j.Apply(kernel.NewUUID(), time.Now())
	assert.ErrorIs(t, err, ErrWindowClosed)
}

func TestApplyShouldRejectPreviouslyCancelledWorker(t *testing.T) {
	j := newTestJob(t)
	workerID := kernel.NewUUID()

	_, err := j.Apply(workerID, time.Now())
	require.NoError(t, err)
	require.NoError(t, j.Withdraw(workerID))

	_, err = j.Apply(workerID, time.Now())
	assert.ErrorIs(t, err, ErrPreviouslyCancelled)
}

func TestCloseWindowShouldAdvanceToAwaitingSelection(t *testing.T) {
	j := newTestJob(t)
	_, err := j.Apply(kernel.NewUUID(), time.Now())
	require.NoError(t, err)

	closed := j.CloseWindow()

	assert.True(t, closed)
	assert.Equal(t, StatusAwaitingSelection, j.Status())
	assert.False(t, j.Window().IsOpen())

	// Second close is a no-op.
	assert.False(t, j.CloseWindow())
	assert.Equal(t, StatusAwaitingSelection, j.Status())
}

func TestWithdrawShouldRemoveResponseAndBarReapply(t *testing.T) {
	j := newTestJob(t)
	workerID := kernel.NewUUID()
	otherID := kernel.NewUUID()

	_, err := j.Apply(workerID, time.Now())
	require.NoError(t, err)
	_, err = j.Apply(otherID, time.Now())
	require.NoError(t, err)

	require.NoError(t, j.Withdraw(workerID))

	assert.False(t, j.Window().HasResponse(workerID))
	assert.True(t, j.Window().HasResponse(otherID))
	assert.True(t, j.HasCancelledApplication(workerID))
	assert.Equal(t, 1, j.Window().ResponseCount())
}

func TestWithdrawShouldFailWhenNotApplied(t *testing.T) {
	j := newTestJob(t)
	assert.ErrorIs(t, j.Withdraw(kernel.NewUUID()), ErrNotApplied)
}

func TestWithdrawShouldFailAfterAssignment(t *testing.T) {
	j := newTestJob(t)
	workerID := kernel.NewUUID()

	_, err := j.Apply(workerID, time.Now())
	require.NoError(t, err)
	require.NoError(t, j.Assign(workerID, j.EmployerID(), time.Now()))

	err = j.Withdraw(workerID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestAssignShouldSelectApplicant(t *testing.T) {
	j := newTestJob(t)
	workerID := kernel.NewUUID()
	now := time.Now()

	_, err := j.Apply(workerID, now)
	require.NoError(t, err)

	require.NoError(t, j.Assign(workerID, j.EmployerID(), now))

	assert.Equal(t, StatusAssigned, j.Status())
	require.NotNil(t, j.SelectedWorkerID())
	assert.True(t, workerID.IsEqual(*j.SelectedWorkerID()))
	assert.Equal(t, now, *j.SelectedAt())
	assert.False(t, j.Window().IsOpen())
}

func TestAssignShouldWorkFromAwaitingSelection(t *testing.T) {
	j := newTestJob(t)
	workerID := kernel.NewUUID()

	_, err := j.Apply(workerID, time.Now())
	require.NoError(t, err)
	j.CloseWindow()

	assert.NoError(t, j.Assign(workerID, j.EmployerID(), time.Now()))
	assert.Equal(t, StatusAssigned, j.Status())
}

func TestAssignShouldRejectNonApplicant(t *testing.T) {
	j := newTestJob(t)
	_, err := j.Apply(kernel.NewUUID(), time.Now())
	require.NoError(t, err)

	err = j.Assign(kernel.NewUUID(), j.EmployerID(), time.Now())
	assert.ErrorIs(t, err, ErrNotApplied)
	assert.Equal(t, StatusMatching, j.Status())
}

func TestAssignShouldRejectForeignEmployer(t *testing.T) {
	j := newTestJob(t)
	workerID := kernel.NewUUID()
	_, err := j.Apply(workerID, time.Now())
	require.NoError(t, err)

	err = j.Assign(workerID, kernel.NewUUID(), time.Now())
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestMarkPendingShouldRequireSelectedWorker(t *testing.T) {
	j := newTestJob(t)
	workerID := kernel.NewUUID()
	_, err := j.Apply(workerID, time.Now())
	require.NoError(t, err)
	require.NoError(t, j.Assign(workerID, j.EmployerID(), time.Now()))

	err = j.MarkPending(kernel.NewUUID())
	assert.ErrorIs(t, err, ErrPermissionDenied)

	require.NoError(t, j.MarkPending(workerID))
	assert.Equal(t, StatusPending, j.Status())
}

func TestCompleteShouldWorkFromAssignedAndPending(t *testing.T) {
	now := time.Now()

	fromAssigned := newTestJob(t)
	workerID := kernel.NewUUID()
	_, err := fromAssigned.Apply(workerID, now)
	require.NoError(t, err)
	require.NoError(t, fromAssigned.Assign(workerID, fromAssigned.EmployerID(), now))
	require.NoError(t, fromAssigned.Complete(fromAssigned.EmployerID(), now))
	assert.Equal(t, StatusCompleted, fromAssigned.Status())
	assert.Equal(t, now, *fromAssigned.CompletedAt())

	fromPending := newTestJob(t)
	_, err = fromPending.Apply(workerID, now)
	require.NoError(t, err)
	require.NoError(t, fromPending.Assign(workerID, fromPending.EmployerID(), now))
	require.NoError(t, fromPending.MarkPending(workerID))
	require.NoError(t, fromPending.Complete(fromPending.EmployerID(), now))
	assert.Equal(t, StatusCompleted, fromPending.Status())
}

func TestCompleteShouldRejectWrongActorAndStatus(t *testing.T) {
	j := newTestJob(t)
	workerID := kernel.NewUUID()
	_, err := j.Apply(workerID, time.Now())
	require.NoError(t, err)

	// Matching has no completed edge.
	assert.ErrorIs(t, j.Complete(j.EmployerID(), time.Now()), ErrInvalidTransition)

	require.NoError(t, j.Assign(workerID, j.EmployerID(), time.Now()))
	assert.ErrorIs(t, j.Complete(workerID, time.Now()), ErrPermissionDenied)
}

func TestCancelShouldCloseWindowAndStampTime(t *testing.T) {
	j := newTestJob(t)
	now := time.Now()
	_, err := j.Apply(kernel.NewUUID(), now)
	require.NoError(t, err)

	require.NoError(t, j.Cancel(j.EmployerID(), now))

	assert.Equal(t, StatusCancelled, j.Status())
	assert.Equal(t, now, *j.CancelledAt())
	assert.False(t, j.Window().IsOpen())
}

func TestCancelShouldRejectPendingAndTerminal(t *testing.T) {
	j := newTestJob(t)
	workerID := kernel.NewUUID()
	now := time.Now()
	_, err := j.Apply(workerID, now)
	require.NoError(t, err)
	require.NoError(t, j.Assign(workerID, j.EmployerID(), now))
	require.NoError(t, j.MarkPending(workerID))

	assert.ErrorIs(t, j.Cancel(j.EmployerID(), now), ErrInvalidTransition)

	require.NoError(t, j.Complete(j.EmployerID(), now))
	assert.ErrorIs(t, j.Cancel(j.EmployerID(), now), ErrInvalidTransition)
}

func TestExpireShouldBeIdempotent(t *testing.T) {
	j := newTestJob(t)
	now := time.Now()

	expired, err := j.Expire(now)
	require.NoError(t, err)
	assert.True(t, expired)
	assert.Equal(t, StatusExpired, j.Status())
	assert.Equal(t, now, *j.ExpiredAt())

	expired, err = j.Expire(now.Add(time.Minute))
	require.NoError(t, err)
	assert.False(t, expired)
	assert.Equal(t, now, *j.ExpiredAt())
}

func TestExpireShouldRejectAssignedJob(t *testing.T) {
	j := newTestJob(t)
	workerID := kernel.NewUUID()
	_, err := j.Apply(workerID, time.Now())
	require.NoError(t, err)
	require.NoError(t, j.Assign(workerID, j.EmployerID(), time.Now()))

	_, err = j.Expire(time.Now())
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestIsExpirable(t *testing.T) {
	now := time.Now()
	j, err := NewJob(kernel.NewUUID(), kernel.NewUUID(), "t", "d", "Central", 10, "", 5, now)
	require.NoError(t, err)

	assert.False(t, j.IsExpirable(now))
	assert.False(t, j.IsExpirable(now.Add(4*time.Minute)))
	assert.True(t, j.IsExpirable(now.Add(5*time.Minute)))

	j.CloseWindow()
	assert.True(t, j.IsExpirable(now.Add(6*time.Minute)), "awaiting selection is still expirable")

	_, err = j.Expire(now.Add(6 * time.Minute))
	require.NoError(t, err)
	assert.False(t, j.IsExpirable(now.Add(time.Hour)))
}

func TestRatingsShouldStampOncePerDirection(t *testing.T) {
	j := newTestJob(t)

	require.NoError(t, j.RateWorker(kernel.RatingGood))
	assert.Equal(t, kernel.RatingGood, *j.EmployerRating())
	assert.ErrorIs(t, j.RateWorker(kernel.RatingBad), ErrAlreadyRated)

	require.NoError(t, j.RateEmployer(kernel.RatingNeutral))
	assert.Equal(t, kernel.RatingNeutral, *j.WorkerRating())
	assert.ErrorIs(t, j.RateEmployer(kernel.RatingGood), ErrAlreadyRated)
}

func TestRatingsShouldRejectInvalidValue(t *testing.T) {
	j := newTestJob(t)
	assert.Error(t, j.RateWorker(kernel.Rating("amazing")))
	assert.Nil(t, j.EmployerRating())
}

func TestRestoreJobShouldPreserveState(t *testing.T) {
	id := kernel.NewUUID()
	employerID := kernel.NewUUID()
	workerID := kernel.NewUUID()
	cancelledID := kernel.NewUUID()
	now := time.Now()
	selectedAt := now.Add(time.Minute)
	rating := kernel.RatingGood

	window := RestoreResponseWindow(false, &now, []Response{{WorkerID: workerID, RespondedAt: now}})

	j, err := RestoreJob(
		id, employerID,
		"Unload a truck", "Two hours of moving boxes", "Central", 25, "2 hours",
		StatusAssigned,
		now, now.Add(5*time.Minute), nil,
		&workerID, &selectedAt, nil, nil,
		&rating, nil,
		window,
		[]kernel.UUID{cancelledID},
	)
	require.NoError(t, err)

	assert.Equal(t, StatusAssigned, j.Status())
	assert.True(t, workerID.IsEqual(*j.SelectedWorkerID()))
	assert.True(t, j.HasCancelledApplication(cancelledID))
	assert.True(t, j.Window().HasResponse(workerID))
	assert.Equal(t, kernel.RatingGood, *j.EmployerRating())
	assert.NoError(t, j.Validate())
}

func TestRestoreJobShouldRejectInvalidStatus(t *testing.T) {
	_, err := RestoreJob(
		kernel.NewUUID(), kernel.NewUUID(),
		"t", "d", "Central", 10, "",
		StatusUnknown,
		time.Now(), time.Now(), nil,
		nil, nil, nil, nil, nil, nil,
		ResponseWindow{}, nil,
	)
	assert.True(t, errors.Is(err, ErrInvalidTransition))
}
