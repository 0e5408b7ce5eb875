package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jetbond/internal/core/application/usecases/commands"
	"jetbond/internal/core/domain/model/job"
	"jetbond/internal/core/domain/model/kernel"
)

func TestCloseWindowHandlerAdvancesJobToAwaitingSelection(t *testing.T) {
	ctx := t.Context()
	aggregate := newMatchingJob(t, kernel.NewUUID())
	applicant := newOpenWorker(t)
	require.NoError(t, applicant.Apply(aggregate.ID()))
	_, err := aggregate.Apply(applicant.ID(), time.Now())
	require.NoError(t, err)

	jobRepo := new(MockJobRepository)
	jobRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil)
	jobRepo.On("Update", ctx, aggregate).Return(nil)
	_, factory := permissiveJobUoW(jobRepo)

	scheduler := new(MockScheduler)
	scheduler.On("Cancel", aggregate.ID()).Once()

	handler := commands.NewCloseWindowCommandHandler(factory, scheduler)
	cmd, err := commands.NewCloseWindowCommand(aggregate.ID())
	require.NoError(t, err)

	require.NoError(t, handler.Handle(ctx, cmd))

	assert.Equal(t, job.StatusAwaitingSelection, aggregate.Status())
	assert.False(t, aggregate.Window().IsOpen())
	scheduler.AssertExpectations(t)
}

func TestCloseWindowHandlerIsIdempotent(t *testing.T) {
	ctx := t.Context()
	aggregate := newMatchingJob(t, kernel.NewUUID())
	applicant := newOpenWorker(t)
	require.NoError(t, applicant.Apply(aggregate.ID()))
	_, err := aggregate.Apply(applicant.ID(), time.Now())
	require.NoError(t, err)
	aggregate.CloseWindow()

	jobRepo := new(MockJobRepository)
	jobRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil)
	_, factory := permissiveJobUoW(jobRepo)

	scheduler := new(MockScheduler)
	scheduler.On("Cancel", aggregate.ID())

	handler := commands.NewCloseWindowCommandHandler(factory, scheduler)
	cmd, err := commands.NewCloseWindowCommand(aggregate.ID())
	require.NoError(t, err)

	require.NoError(t, handler.Handle(ctx, cmd))

	assert.Equal(t, job.StatusAwaitingSelection, aggregate.Status())
	jobRepo.AssertNotCalled(t, "Update", ctx, aggregate)
}

func TestCloseWindowHandlerLeavesNeverOpenedWindowAlone(t *testing.T) {
	ctx := t.Context()
	aggregate := newMatchingJob(t, kernel.NewUUID())

	jobRepo := new(MockJobRepository)
	jobRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil)
	_, factory := permissiveJobUoW(jobRepo)

	scheduler := new(MockScheduler)
	scheduler.On("Cancel", aggregate.ID())

	handler := commands.NewCloseWindowCommandHandler(factory, scheduler)
	cmd, err := commands.NewCloseWindowCommand(aggregate.ID())
	require.NoError(t, err)

	require.NoError(t, handler.Handle(ctx, cmd))

	assert.Equal(t, job.StatusMatching, aggregate.Status())
}
