package commands

import (
	"context"
	"time"

	"jetbond/internal/core/domain/services"
	"jetbond/internal/core/ports"
)

// FindMatchesCommandHandler runs candidate matching for a job: pulls the
// open-to-work pool, ranks it through the scoring strategy (remote with
// heuristic fallback), and notifies every matched worker. Scoring failures
// never surface; the ranker guarantees a heuristic result.
type FindMatchesCommandHandler struct {
	uowFactory UoWFactory
	ranker     services.CandidateRanker
	notifier   ports.Notifier
}

// NewFindMatchesCommandHandler creates a handler for candidate matching.
func NewFindMatchesCommandHandler(
	uowFactory UoWFactory,
	ranker services.CandidateRanker,
	notifier ports.Notifier,
) FindMatchesCommandHandler {
	return FindMatchesCommandHandler{
		uowFactory: uowFactory,
		ranker:     ranker,
		notifier:   notifier,
	}
}

// Handle runs the matching pass and returns the ranked candidate list.
// The employer's locale is passed to the scorer as a language hint.
func (h FindMatchesCommandHandler) Handle(ctx context.Context, cmd FindMatchesCommand) ([]services.Candidate, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.JobRepository().Get(ctx, cmd.JobID())
	if err != nil {
		return nil, err
	}

	locale := ""
	if employer, err := uow.WorkerRepository().Get(ctx, aggregate.EmployerID()); err == nil {
		locale = employer.Locale()
	}

	pool, err := uow.WorkerRepository().GetAllOpenToWork(ctx)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	// Ranked outside the critical section: the remote scorer may take
	// seconds and must not block other transactions. The repositories hand
	// out snapshots, so the released lock is safe here.
	candidates := h.ranker.Rank(ctx, aggregate, pool, locale)

	for _, candidate := range candidates {
		h.notifier.Notify(candidate.WorkerID, ports.Notification{
			Type:       ports.EventJobMatch,
			JobID:      aggregate.ID().String(),
			JobTitle:   aggregate.Title(),
			District:   aggregate.District(),
			HourlyRate: aggregate.HourlyRate(),
			MatchScore: candidate.Score,
			Timestamp:  time.Now(),
		})
	}

	return candidates, nil
}
