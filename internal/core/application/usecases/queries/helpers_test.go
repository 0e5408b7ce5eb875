package queries_test

import (
	"log/slog"
	"testing"
	"time"

	"jetbond/internal/adapters/out/memstore"
	"jetbond/internal/core/domain/model/job"
	"jetbond/internal/core/domain/model/kernel"
	"jetbond/internal/core/domain/model/worker"

	"github.com/stretchr/testify/require"
)

// Query tests run against the real in-memory store rather than repository
// mocks: listings depend on filter semantics the store implements.

func newTestStore() *memstore.Store {
	return memstore.NewStore(nil, slog.New(slog.DiscardHandler))
}

func seed(t *testing.T, store *memstore.Store, jobs []*job.Job, workers []*worker.Worker) {
	t.Helper()

	uow := memstore.NewUnitOfWorkFactory(store).Create()
	require.NoError(t, uow.Begin(t.Context()))

	for _, aggregate := range workers {
		require.NoError(t, uow.WorkerRepository().Add(t.Context(), aggregate))
	}
	for _, aggregate := range jobs {
		require.NoError(t, uow.JobRepository().Add(t.Context(), aggregate))
	}

	require.NoError(t, uow.Commit(t.Context()))
}

func newEmployer(t *testing.T, name string) *worker.Worker {
	t.Helper()

	aggregate, err := worker.NewWorker(
		kernel.NewUUID(), name, worker.TypeEmployer, "Center", 0, 0, nil, "ru",
	)
	require.NoError(t, err)

	return aggregate
}

func newWorker(t *testing.T, name, district string) *worker.Worker {
	t.Helper()

	aggregate, err := worker.NewWorker(
		kernel.NewUUID(), name, worker.TypeWorker,
		district, 15, 40, []string{"plumbing", "repair"}, "en",
	)
	require.NoError(t, err)

	return aggregate
}

func newJob(t *testing.T, employerID kernel.UUID, title, district string, createdAt time.Time) *job.Job {
	t.Helper()

	aggregate, err := job.NewJob(
		kernel.NewUUID(), employerID, title,
		"Fix a leaking sink", district, 25, "2 hours", 0, createdAt,
	)
	require.NoError(t, err)

	return aggregate
}
