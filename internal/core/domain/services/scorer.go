package services

import (
	"context"
	"errors"

	"jetbond/internal/core/domain/model/job"
	"jetbond/internal/core/domain/model/kernel"
	"jetbond/internal/core/domain/model/worker"
)

// ErrScoringUnavailable is returned by a MatchScorer when it cannot produce
// scores: provider unreachable, timeout, malformed response. It never leaves
// the ranking service; the ranker recovers with the local heuristic.
var ErrScoringUnavailable = errors.New("scoring unavailable")

// Candidate is a scored worker produced by candidate matching, sorted
// descending by score in every ranked list.
type Candidate struct {
	WorkerID  kernel.UUID
	Score     int
	Reasoning string
}

// MatchScorer scores a set of workers against a job. locale is a hint for
// human-readable reasoning text and may be empty.
//
// Implementations may call remote providers; any failure must be reported as
// an error wrapping ErrScoringUnavailable so the caller can fall back.
type MatchScorer interface {
	ScoreCandidates(ctx context.Context, j *job.Job, workers []*worker.Worker, locale string) ([]Candidate, error)
}
