package cmd

import (
	"context"
	"log/slog"
	"time"

	"jetbond/internal/adapters/out/deepseek"
	"jetbond/internal/adapters/out/memstore"
	"jetbond/internal/adapters/out/schedule"
	"jetbond/internal/adapters/out/ws"
	"jetbond/internal/core/application/usecases/commands"
	"jetbond/internal/core/application/usecases/queries"
	"jetbond/internal/core/domain/model/job"
	"jetbond/internal/core/domain/services"
	"jetbond/internal/core/ports"
	"jetbond/internal/jobs"
)

// CompositionRoot wires adapters into use case handlers. The hub doubles as
// the push notifier and the offline inbox; the scheduler carries the window
// close timers shared by apply, select, cancel and expire.
type CompositionRoot struct {
	logger     *slog.Logger
	uowFactory memstore.Factory
	hub        *ws.Hub
	scheduler  *schedule.TimerScheduler
	ranker     services.CandidateRanker
}

func NewCompositionRoot(config Config, store *memstore.Store, logger *slog.Logger) *CompositionRoot {
	var primary services.MatchScorer
	if config.DeepSeekAPIKey != "" {
		primary = deepseek.NewScorer(config.DeepSeekAPIKey, config.DeepSeekBaseURL, logger)
	}

	return &CompositionRoot{
		logger:     logger,
		uowFactory: memstore.NewUnitOfWorkFactory(store),
		hub:        ws.NewHub(logger),
		scheduler:  schedule.NewTimerScheduler(logger),
		ranker:     services.NewCandidateRanker(primary, logger),
	}
}

// Hub returns the push connection hub, for mounting the /ws route and for
// shutdown.
func (c *CompositionRoot) Hub() *ws.Hub {
	return c.hub
}

// Scheduler returns the window close scheduler, for shutdown.
func (c *CompositionRoot) Scheduler() *schedule.TimerScheduler {
	return c.scheduler
}

func (c *CompositionRoot) CreateRegisterUserCommandHandler() commands.RegisterUserCommandHandler {
	var f commands.WorkerUoWFactory = FuncWorkerUoWFactory(func() commands.WorkerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterUserCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateJobCommandHandler() commands.CreateJobCommandHandler {
	return commands.NewCreateJobCommandHandler(c.crossUoWFactory())
}

func (c *CompositionRoot) CreateFindMatchesCommandHandler() commands.FindMatchesCommandHandler {
	return commands.NewFindMatchesCommandHandler(c.crossUoWFactory(), c.ranker, c.hub)
}

func (c *CompositionRoot) CreateApplyToJobCommandHandler() commands.ApplyToJobCommandHandler {
	return commands.NewApplyToJobCommandHandler(
		c.crossUoWFactory(),
		c.hub,
		c.scheduler,
		c.CreateCloseWindowCommandHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateCloseWindowCommandHandler() commands.CloseWindowCommandHandler {
	var f commands.JobUoWFactory = FuncJobUoWFactory(func() commands.JobUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCloseWindowCommandHandler(f, c.scheduler)
}

func (c *CompositionRoot) CreateSelectWorkerCommandHandler() commands.SelectWorkerCommandHandler {
	return commands.NewSelectWorkerCommandHandler(c.crossUoWFactory(), c.hub, c.scheduler)
}

func (c *CompositionRoot) CreateCancelApplicationCommandHandler() commands.CancelApplicationCommandHandler {
	return commands.NewCancelApplicationCommandHandler(c.crossUoWFactory(), c.hub)
}

func (c *CompositionRoot) CreateCancelJobCommandHandler() commands.CancelJobCommandHandler {
	return commands.NewCancelJobCommandHandler(c.crossUoWFactory(), c.hub, c.scheduler)
}

func (c *CompositionRoot) CreateMarkEmployeeDoneCommandHandler() commands.MarkEmployeeDoneCommandHandler {
	return commands.NewMarkEmployeeDoneCommandHandler(c.crossUoWFactory(), c.hub)
}

func (c *CompositionRoot) CreateCompleteJobCommandHandler() commands.CompleteJobCommandHandler {
	return commands.NewCompleteJobCommandHandler(c.crossUoWFactory(), c.hub)
}

func (c *CompositionRoot) CreateRateUserCommandHandler() commands.RateUserCommandHandler {
	return commands.NewRateUserCommandHandler(c.crossUoWFactory())
}

func (c *CompositionRoot) CreateExpireJobsCommandHandler() commands.ExpireJobsCommandHandler {
	return commands.NewExpireJobsCommandHandler(c.crossUoWFactory(), c.hub, c.scheduler, c.logger)
}

func (c *CompositionRoot) CreateGetJobsQueryHandler() queries.GetJobsQueryHandler {
	return queries.NewGetJobsQueryHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateGetJobApplicantsQueryHandler() queries.GetJobApplicantsQueryHandler {
	return queries.NewGetJobApplicantsQueryHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateGetUserQueryHandler() queries.GetUserQueryHandler {
	return queries.NewGetUserQueryHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateGetPendingNotificationsQueryHandler() queries.GetPendingNotificationsQueryHandler {
	return queries.NewGetPendingNotificationsQueryHandler(c.hub)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateExpireJobsCommandHandler(), c.logger)
}

// RestoreWindowTimers re-arms the close timer of every restored job whose
// response window is still open. A window already past firstResponseAt plus
// the window duration is closed immediately.
func (c *CompositionRoot) RestoreWindowTimers(ctx context.Context, state ports.State) {
	handler := c.CreateCloseWindowCommandHandler()

	for _, restored := range state.Jobs {
		window := restored.Window()
		if !window.IsOpen() || window.FirstResponseAt() == nil {
			continue
		}

		jobID := restored.ID()
		closeNow := func(ctx context.Context) {
			cmd, err := commands.NewCloseWindowCommand(jobID)
			if err != nil {
				c.logger.Error("building close window command", "jobId", jobID.String(), "error", err)
				return
			}
			if err = handler.Handle(ctx, cmd); err != nil {
				c.logger.Error("closing response window", "jobId", jobID.String(), "error", err)
			}
		}

		remaining := time.Until(window.FirstResponseAt().Add(job.WindowDuration))
		if remaining <= 0 {
			c.logger.Info("closing overdue response window", "jobId", jobID.String())
			closeNow(ctx)
			continue
		}

		c.logger.Info("re-arming response window timer",
			"jobId", jobID.String(), "remaining", remaining)
		c.scheduler.Schedule(jobID, remaining, func() {
			closeNow(context.Background())
		})
	}
}

func (c *CompositionRoot) crossUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncJobUoWFactory func() commands.JobUoW

func (f FuncJobUoWFactory) Create() commands.JobUoW {
	return f()
}

type FuncWorkerUoWFactory func() commands.WorkerUoW

func (f FuncWorkerUoWFactory) Create() commands.WorkerUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
