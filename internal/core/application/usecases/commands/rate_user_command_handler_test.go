package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jetbond/internal/core/application/usecases/commands"
	"jetbond/internal/core/domain/model/job"
	"jetbond/internal/core/domain/model/kernel"
	"jetbond/internal/core/domain/model/worker"
)

func TestRateUserHandlerEmployerRatesWorker(t *testing.T) {
	ctx := t.Context()
	employerID := kernel.NewUUID()
	selected := newOpenWorker(t)
	aggregate := newAssignedJob(t, employerID, selected)

	jobRepo := new(MockJobRepository)
	workerRepo := new(MockWorkerRepository)
	jobRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil)
	workerRepo.On("Get", ctx, selected.ID()).Return(selected, nil)
	workerRepo.On("Update", ctx, selected).Return(nil)
	jobRepo.On("Update", ctx, aggregate).Return(nil)
	_, factory := permissiveUoW(jobRepo, workerRepo)

	handler := commands.NewRateUserCommandHandler(factory)
	cmd, err := commands.NewRateUserCommand(aggregate.ID(), employerID, kernel.RatingGood)
	require.NoError(t, err)

	require.NoError(t, handler.Handle(ctx, cmd))

	assert.Equal(t, kernel.RatingGood, *aggregate.EmployerRating())
	assert.Equal(t, 1, selected.Ratings().Good)

	// Second rating in the same direction is rejected.
	cmd2, err := commands.NewRateUserCommand(aggregate.ID(), employerID, kernel.RatingBad)
	require.NoError(t, err)
	err = handler.Handle(ctx, cmd2)
	assert.ErrorIs(t, err, job.ErrAlreadyRated)
	assert.Equal(t, 0, selected.Ratings().Bad)
}

func TestRateUserHandlerWorkerRatesEmployer(t *testing.T) {
	ctx := t.Context()
	employerID := kernel.NewUUID()
	selected := newOpenWorker(t)
	aggregate := newAssignedJob(t, employerID, selected)

	employer, err := worker.NewWorker(employerID, "Boris", worker.TypeEmployer, "Central", 0, 0, nil, "")
	require.NoError(t, err)

	jobRepo := new(MockJobRepository)
	workerRepo := new(MockWorkerRepository)
	jobRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil)
	workerRepo.On("Get", ctx, employerID).Return(employer, nil)
	workerRepo.On("Update", ctx, employer).Return(nil)
	jobRepo.On("Update", ctx, aggregate).Return(nil)
	_, factory := permissiveUoW(jobRepo, workerRepo)

	handler := commands.NewRateUserCommandHandler(factory)
	cmd, err := commands.NewRateUserCommand(aggregate.ID(), selected.ID(), kernel.RatingNeutral)
	require.NoError(t, err)

	require.NoError(t, handler.Handle(ctx, cmd))

	assert.Equal(t, kernel.RatingNeutral, *aggregate.WorkerRating())
	assert.Equal(t, 1, employer.Ratings().Neutral)
	assert.Nil(t, aggregate.EmployerRating(), "directions are independent")
}

func TestRateUserHandlerRejectsOutsiders(t *testing.T) {
	ctx := t.Context()
	employerID := kernel.NewUUID()
	selected := newOpenWorker(t)
	aggregate := newAssignedJob(t, employerID, selected)

	jobRepo := new(MockJobRepository)
	jobRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil)
	_, factory := permissiveUoW(jobRepo, new(MockWorkerRepository))

	handler := commands.NewRateUserCommandHandler(factory)
	cmd, err := commands.NewRateUserCommand(aggregate.ID(), kernel.NewUUID(), kernel.RatingGood)
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)
	assert.ErrorIs(t, err, job.ErrPermissionDenied)
}

func TestRateUserHandlerRejectsUnassignedJob(t *testing.T) {
	ctx := t.Context()
	employerID := kernel.NewUUID()
	aggregate := newMatchingJob(t, employerID)

	jobRepo := new(MockJobRepository)
	jobRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil)
	_, factory := permissiveUoW(jobRepo, new(MockWorkerRepository))

	handler := commands.NewRateUserCommandHandler(factory)
	cmd, err := commands.NewRateUserCommand(aggregate.ID(), employerID, kernel.RatingGood)
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)
	assert.ErrorIs(t, err, job.ErrPermissionDenied)
}
