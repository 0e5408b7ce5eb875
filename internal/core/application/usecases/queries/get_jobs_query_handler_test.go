package queries_test

import (
	"testing"
	"time"

	"jetbond/internal/adapters/out/memstore"
	"jetbond/internal/core/application/usecases/queries"
	"jetbond/internal/core/domain/model/job"
	"jetbond/internal/core/domain/model/kernel"
	"jetbond/internal/core/domain/model/worker"
	"jetbond/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewGetJobsQuery_RequiresRequester(t *testing.T) {
	_, err := queries.NewGetJobsQuery(kernel.UUID{}, "")
	assert.Error(t, err)
}

func Test_GetJobsQuery_ValidateZeroValue(t *testing.T) {
	var query queries.GetJobsQuery
	assert.ErrorIs(t, query.Validate(), queries.ErrGetJobsQueryIsNotConstructed)
}

func Test_GetJobsQueryHandler_WorkerSeesOpenMarketplace(t *testing.T) {
	store := newTestStore()
	employer := newEmployer(t, "Gulnara")
	applicant := newWorker(t, "Aibek", "Watan")

	now := time.Now()
	open := newJob(t, employer.ID(), "Plumber needed", "Watan", now)
	closed := newJob(t, employer.ID(), "Painter needed", "Watan", now)
	require.NoError(t, closed.Cancel(employer.ID(), now))

	seed(t, store, []*job.Job{open, closed}, []*worker.Worker{employer, applicant})

	handler := queries.NewGetJobsQueryHandler(memstore.NewUnitOfWorkFactory(store))
	query, err := queries.NewGetJobsQuery(applicant.ID(), "")
	require.NoError(t, err)

	jobs, err := handler.Handle(t.Context(), query)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.True(t, jobs[0].ID.IsEqual(open.ID()))
	assert.Equal(t, "matching", jobs[0].Status)
}

func Test_GetJobsQueryHandler_EmployerSeesOwnJobsInAnyStatus(t *testing.T) {
	store := newTestStore()
	employer := newEmployer(t, "Gulnara")
	other := newEmployer(t, "Marat")

	now := time.Now()
	mine := newJob(t, employer.ID(), "Plumber needed", "Watan", now)
	cancelled := newJob(t, employer.ID(), "Painter needed", "Center", now)
	require.NoError(t, cancelled.Cancel(employer.ID(), now))
	theirs := newJob(t, other.ID(), "Mover needed", "Watan", now)

	seed(t, store, []*job.Job{mine, cancelled, theirs}, []*worker.Worker{employer, other})

	handler := queries.NewGetJobsQueryHandler(memstore.NewUnitOfWorkFactory(store))
	query, err := queries.NewGetJobsQuery(employer.ID(), "")
	require.NoError(t, err)

	jobs, err := handler.Handle(t.Context(), query)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	for _, got := range jobs {
		assert.True(t, got.EmployerID.IsEqual(employer.ID()))
	}
}

func Test_GetJobsQueryHandler_DistrictFilter(t *testing.T) {
	store := newTestStore()
	employer := newEmployer(t, "Gulnara")
	applicant := newWorker(t, "Aibek", "Watan")

	now := time.Now()
	near := newJob(t, employer.ID(), "Plumber needed", "Watan", now)
	far := newJob(t, employer.ID(), "Painter needed", "Center", now)

	seed(t, store, []*job.Job{near, far}, []*worker.Worker{employer, applicant})

	handler := queries.NewGetJobsQueryHandler(memstore.NewUnitOfWorkFactory(store))
	query, err := queries.NewGetJobsQuery(applicant.ID(), "Watan")
	require.NoError(t, err)

	jobs, err := handler.Handle(t.Context(), query)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.True(t, jobs[0].ID.IsEqual(near.ID()))
}

func Test_GetJobsQueryHandler_SortsNewestFirst(t *testing.T) {
	store := newTestStore()
	employer := newEmployer(t, "Gulnara")

	now := time.Now()
	older := newJob(t, employer.ID(), "Plumber needed", "Watan", now.Add(-time.Hour))
	newer := newJob(t, employer.ID(), "Painter needed", "Watan", now)

	seed(t, store, []*job.Job{older, newer}, []*worker.Worker{employer})

	handler := queries.NewGetJobsQueryHandler(memstore.NewUnitOfWorkFactory(store))
	query, err := queries.NewGetJobsQuery(employer.ID(), "")
	require.NoError(t, err)

	jobs, err := handler.Handle(t.Context(), query)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.True(t, jobs[0].ID.IsEqual(newer.ID()))
	assert.True(t, jobs[1].ID.IsEqual(older.ID()))
}

func Test_GetJobsQueryHandler_UnknownRequester(t *testing.T) {
	store := newTestStore()

	handler := queries.NewGetJobsQueryHandler(memstore.NewUnitOfWorkFactory(store))
	query, err := queries.NewGetJobsQuery(kernel.NewUUID(), "")
	require.NoError(t, err)

	_, err = handler.Handle(t.Context(), query)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}
