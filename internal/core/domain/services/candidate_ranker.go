package services

import (
	"context"
	"log/slog"
	"sort"

	"jetbond/internal/core/domain/model/job"
	"jetbond/internal/core/domain/model/worker"
)

// MaxCandidates bounds every ranked candidate list.
const MaxCandidates = 10

// CandidateRanker is the domain service behind candidate matching: it filters
// the worker pool down to open-to-work workers, scores them through the
// configured strategy, and returns the top candidates sorted descending by
// score.
//
// The ranker never fails. When the primary scorer errors (remote provider
// down, timeout, malformed response) the whole set is rescored with the local
// heuristic.
type CandidateRanker struct {
	primary   MatchScorer
	heuristic HeuristicScorer
	logger    *slog.Logger
}

// NewCandidateRanker creates a ranker. primary may be nil, in which case only
// the heuristic is used.
func NewCandidateRanker(primary MatchScorer, logger *slog.Logger) CandidateRanker {
	return CandidateRanker{
		primary:   primary,
		heuristic: NewHeuristicScorer(),
		logger:    logger.With("component", "candidate_ranker"),
	}
}

// Rank produces the ranked candidate list for a job. locale hints the
// language of the reasoning text.
func (r CandidateRanker) Rank(ctx context.Context, j *job.Job, pool []*worker.Worker, locale string) []Candidate {
	available := make([]*worker.Worker, 0, len(pool))
	for _, w := range pool {
		if w.IsWorker() && w.IsOpenToWork() {
			available = append(available, w)
		}
	}
	if len(available) == 0 {
		return []Candidate{}
	}

	candidates := r.scoreAll(ctx, j, available, locale)

	sort.SliceStable(candidates, func(i, k int) bool {
		return candidates[i].Score > candidates[k].Score
	})
	if len(candidates) > MaxCandidates {
		candidates = candidates[:MaxCandidates]
	}
	return candidates
}

func (r CandidateRanker) scoreAll(ctx context.Context, j *job.Job, workers []*worker.Worker, locale string) []Candidate {
	if r.primary != nil {
		candidates, err := r.primary.ScoreCandidates(ctx, j, workers, locale)
		if err == nil {
			return candidates
		}
		r.logger.Warn("primary scorer failed, falling back to heuristic",
			"jobId", j.ID().String(), "error", err)
	}

	candidates, _ := r.heuristic.ScoreCandidates(ctx, j, workers, locale)
	return candidates
}
