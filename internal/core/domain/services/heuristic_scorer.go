package services

import (
	"context"
	"strings"

	"jetbond/internal/core/domain/model/job"
	"jetbond/internal/core/domain/model/worker"
)

// Scoring weights of the local heuristic. Scores land in [0,100].
const (
	baseScore          = 60
	districtBonus      = 25
	rateBonus          = 15
	skillBonus         = 5
	skillBonusCap      = 20
	goodRatingBonusCap = 10
	maxScore           = 100

	// badRatingThreshold is the bad-rating share above which a worker's
	// whole score is halved.
	badRatingThreshold = 0.3
)

// skillKeywords is the vocabulary used to extract skills from job text.
func skillKeywords() []string {
	return []string{
		"cleaning", "cooking", "driving", "delivery", "customer service",
		"sales", "marketing", "writing", "translation", "teaching",
		"tutoring", "childcare", "eldercare", "gardening", "maintenance",
		"repair", "construction", "painting", "moving", "assembly",
		"data entry", "admin", "reception", "phone", "computer",
		"microsoft office", "excel", "word", "powerpoint", "accounting",
	}
}

// HeuristicScorer is the local scoring strategy: a pure function of the job
// and worker records, no I/O, never fails. It backs matching directly and
// serves as the fallback when a remote scorer is unavailable.
//
// Per worker the score is built up from a base of 60: +25 when the worker's
// district matches the job's, +15 when the job's hourly rate falls inside the
// worker's expected range, +5 per overlapping skill keyword (capped at +20),
// plus up to +10 proportional to the worker's share of good ratings. Workers
// whose bad-rating share exceeds 30% have their score halved. The result is
// clamped to 100.
type HeuristicScorer struct{}

// NewHeuristicScorer creates a new HeuristicScorer instance.
func NewHeuristicScorer() HeuristicScorer {
	return HeuristicScorer{}
}

// ScoreCandidates scores every given worker. It never returns an error; the
// ctx parameter exists to satisfy MatchScorer.
func (s HeuristicScorer) ScoreCandidates(_ context.Context, j *job.Job, workers []*worker.Worker, _ string) ([]Candidate, error) {
	jobSkills := extractSkills(j.Title() + " " + j.Description())

	candidates := make([]Candidate, 0, len(workers))
	for _, w := range workers {
		candidates = append(candidates, Candidate{
			WorkerID:  w.ID(),
			Score:     s.score(j, w, jobSkills),
			Reasoning: "heuristic matching",
		})
	}
	return candidates, nil
}

func (s HeuristicScorer) score(j *job.Job, w *worker.Worker, jobSkills []string) int {
	score := baseScore

	if strings.EqualFold(w.District(), j.District()) {
		score += districtBonus
	}

	if rateInRange(j.HourlyRate(), w.MinRate(), w.MaxRate()) {
		score += rateBonus
	}

	if overlap := matchingSkills(w.Skills(), jobSkills); overlap > 0 {
		bonus := overlap * skillBonus
		if bonus > skillBonusCap {
			bonus = skillBonusCap
		}
		score += bonus
	}

	score += int(w.GoodRatingRatio() * goodRatingBonusCap)

	if w.BadRatingRatio() > badRatingThreshold {
		score /= 2
	}

	if score > maxScore {
		score = maxScore
	}
	return score
}

// rateInRange checks containment of the job rate in the worker's expected
// range; a zero bound is unbounded on that side.
func rateInRange(rate, minRate, maxRate int) bool {
	if minRate > 0 && rate < minRate {
		return false
	}
	if maxRate > 0 && rate > maxRate {
		return false
	}
	return true
}

// extractSkills returns the skill keywords mentioned in the job text.
func extractSkills(text string) []string {
	lower := strings.ToLower(text)

	var found []string
	for _, skill := range skillKeywords() {
		if strings.Contains(lower, skill) {
			found = append(found, skill)
		}
	}
	return found
}

// matchingSkills counts worker skills overlapping the job's extracted skills.
// Matching is substring-based in both directions, so "house cleaning"
// matches the "cleaning" keyword.
func matchingSkills(workerSkills, jobSkills []string) int {
	count := 0
	for _, ws := range workerSkills {
		wl := strings.ToLower(ws)
		for _, js := range jobSkills {
			if strings.Contains(wl, js) || strings.Contains(js, wl) {
				count++
				break
			}
		}
	}
	return count
}
