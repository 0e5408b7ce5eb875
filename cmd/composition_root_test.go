package cmd_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jetbond/cmd"
	"jetbond/internal/adapters/out/memstore"
	"jetbond/internal/core/domain/model/job"
	"jetbond/internal/core/domain/model/kernel"
	"jetbond/internal/core/ports"
)

func restoredOpenWindowJob(t *testing.T, firstResponseAt time.Time) *job.Job {
	t.Helper()

	now := time.Now()
	window := job.RestoreResponseWindow(true, &firstResponseAt, []job.Response{
		{WorkerID: kernel.NewUUID(), RespondedAt: firstResponseAt},
	})

	j, err := job.RestoreJob(
		kernel.NewUUID(), kernel.NewUUID(),
		"Unload a truck", "Two hours of moving boxes", "Central", 25, "2 hours",
		job.StatusMatching,
		now.Add(-10*time.Minute), now.Add(time.Hour),
		nil, nil, nil, nil, nil, nil, nil,
		window, nil,
	)
	require.NoError(t, err)
	return j
}

func jobStatus(t *testing.T, store *memstore.Store, id kernel.UUID) (job.Status, bool) {
	t.Helper()

	uow := memstore.NewUnitOfWorkFactory(store).Create()
	require.NoError(t, uow.Begin(t.Context()))
	defer func() { _ = uow.Rollback(context.Background()) }()

	restored, err := uow.JobRepository().Get(t.Context(), id)
	require.NoError(t, err)
	return restored.Status(), restored.Window().IsOpen()
}

func TestRestoreWindowTimersClosesOverdueWindow(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	store := memstore.NewStore(nil, logger)

	overdue := restoredOpenWindowJob(t, time.Now().Add(-10*time.Minute))
	state := ports.State{Jobs: []*job.Job{overdue}}
	store.Seed(state)

	root := cmd.NewCompositionRoot(cmd.Config{}, store, logger)
	defer root.Scheduler().Stop()

	root.RestoreWindowTimers(t.Context(), state)

	status, open := jobStatus(t, store, overdue.ID())
	assert.Equal(t, job.StatusAwaitingSelection, status)
	assert.False(t, open)
}

func TestRestoreWindowTimersLeavesRunningWindowOpen(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	store := memstore.NewStore(nil, logger)

	running := restoredOpenWindowJob(t, time.Now().Add(-time.Minute))
	state := ports.State{Jobs: []*job.Job{running}}
	store.Seed(state)

	root := cmd.NewCompositionRoot(cmd.Config{}, store, logger)
	defer root.Scheduler().Stop()

	root.RestoreWindowTimers(t.Context(), state)

	status, open := jobStatus(t, store, running.ID())
	assert.Equal(t, job.StatusMatching, status)
	assert.True(t, open, "window with time remaining stays open until its timer fires")
}
