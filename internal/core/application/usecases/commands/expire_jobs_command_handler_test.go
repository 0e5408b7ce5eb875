package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"jetbond/internal/core/application/usecases/commands"
	"jetbond/internal/core/domain/model/job"
	"jetbond/internal/core/domain/model/kernel"
	"jetbond/internal/core/ports"
)

func newStaleJob(t *testing.T, employerID kernel.UUID) *job.Job {
	t.Helper()
	// Created far enough in the past that even the maximum offset has passed.
	created := time.Now().Add(-4 * time.Hour)
	j, err := job.NewJob(kernel.NewUUID(), employerID,
		"Walk a dog", "One hour in the park", "North", 15, "1 hour", 5, created)
	require.NoError(t, err)
	return j
}

func TestExpireJobsHandlerExpiresStaleMatchingJobs(t *testing.T) {
	ctx := t.Context()
	employerID := kernel.NewUUID()

	stale := newStaleJob(t, employerID)
	fresh := newMatchingJob(t, employerID)

	applicant := newOpenWorker(t)
	require.NoError(t, applicant.Apply(stale.ID()))
	_, err := stale.Apply(applicant.ID(), time.Now())
	require.NoError(t, err)

	jobRepo := new(MockJobRepository)
	workerRepo := new(MockWorkerRepository)
	jobRepo.On("GetAllInMatching", ctx).Return([]*job.Job{stale, fresh}, nil)
	workerRepo.On("Get", ctx, applicant.ID()).Return(applicant, nil)
	workerRepo.On("Update", ctx, applicant).Return(nil)
	jobRepo.On("Update", ctx, stale).Return(nil)
	_, factory := permissiveUoW(jobRepo, workerRepo)

	notifier := new(MockNotifier)
	notifier.On("Notify", applicant.ID(), mock.MatchedBy(func(n ports.Notification) bool {
		return n.Type == ports.EventStatusReset
	})).Once()

	scheduler := new(MockScheduler)
	scheduler.On("Cancel", stale.ID()).Once()

	handler := commands.NewExpireJobsCommandHandler(factory, notifier, scheduler, testLogger())
	expired, err := handler.Handle(ctx, commands.NewExpireJobsCommand())
	require.NoError(t, err)

	assert.Equal(t, 1, expired)
	assert.Equal(t, job.StatusExpired, stale.Status())
	assert.NotNil(t, stale.ExpiredAt())
	assert.Equal(t, job.StatusMatching, fresh.Status(), "fresh job untouched")
	assert.True(t, applicant.IsOpenToWork())
	jobRepo.AssertNotCalled(t, "Update", ctx, fresh)
	notifier.AssertExpectations(t)
	scheduler.AssertExpectations(t)
}

func TestExpireJobsHandlerIsIdempotent(t *testing.T) {
	ctx := t.Context()
	stale := newStaleJob(t, kernel.NewUUID())

	jobRepo := new(MockJobRepository)
	workerRepo := new(MockWorkerRepository)
	jobRepo.On("GetAllInMatching", ctx).Return([]*job.Job{stale}, nil)
	jobRepo.On("Update", ctx, stale).Return(nil)
	_, factory := permissiveUoW(jobRepo, workerRepo)

	scheduler := new(MockScheduler)
	scheduler.On("Cancel", stale.ID())

	handler := commands.NewExpireJobsCommandHandler(factory, new(MockNotifier), scheduler, testLogger())

	expired, err := handler.Handle(ctx, commands.NewExpireJobsCommand())
	require.NoError(t, err)
	assert.Equal(t, 1, expired)
	first := *stale.ExpiredAt()

	// A second sweep over the same state expires nothing new.
	expired, err = handler.Handle(ctx, commands.NewExpireJobsCommand())
	require.NoError(t, err)
	assert.Equal(t, 0, expired)
	assert.Equal(t, first, *stale.ExpiredAt(), "expiredAt stamped once")
}

func TestExpireJobsHandlerExpiresAwaitingSelection(t *testing.T) {
	ctx := t.Context()
	stale := newStaleJob(t, kernel.NewUUID())
	stale.CloseWindow()
	require.Equal(t, job.StatusAwaitingSelection, stale.Status())

	jobRepo := new(MockJobRepository)
	jobRepo.On("GetAllInMatching", ctx).Return([]*job.Job{stale}, nil)
	jobRepo.On("Update", ctx, stale).Return(nil)
	_, factory := permissiveUoW(jobRepo, new(MockWorkerRepository))

	scheduler := new(MockScheduler)
	scheduler.On("Cancel", stale.ID())

	handler := commands.NewExpireJobsCommandHandler(factory, new(MockNotifier), scheduler, testLogger())
	expired, err := handler.Handle(ctx, commands.NewExpireJobsCommand())
	require.NoError(t, err)

	assert.Equal(t, 1, expired)
	assert.Equal(t, job.StatusExpired, stale.Status())
}
