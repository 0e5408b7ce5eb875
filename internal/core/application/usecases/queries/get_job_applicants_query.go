package queries

import (
	"errors"
	"time"

	"jetbond/internal/core/domain/model/kernel"
	"jetbond/internal/pkg/guard"
)

var ErrGetJobApplicantsQueryIsNotConstructed = errors.New(
	"GetJobApplicantsQuery must be created via NewGetJobApplicantsQuery constructor",
)

// GetJobApplicantsQuery retrieves the applicants of one job, in arrival
// order, with enough profile data for the employer to pick one.
type GetJobApplicantsQuery struct { //nolint:recvcheck //using for validation
	jobID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetJobApplicantsQuery creates an applicants query for the given job.
func NewGetJobApplicantsQuery(jobID kernel.UUID) (GetJobApplicantsQuery, error) {
	query := GetJobApplicantsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setJobID(jobID); err != nil {
		return GetJobApplicantsQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetJobApplicantsQuery) Validate() error {
	return q.guard.Validate(ErrGetJobApplicantsQueryIsNotConstructed)
}

// JobID returns the job whose applicants are requested.
func (q GetJobApplicantsQuery) JobID() kernel.UUID { return q.jobID }

func (q *GetJobApplicantsQuery) setJobID(jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}

	q.jobID = jobID
	return nil
}

// GetJobApplicantsQueryResponse is one applicant's profile as the employer
// sees it during selection.
type GetJobApplicantsQueryResponse struct {
	WorkerID       kernel.UUID
	Name           string
	District       string
	MinRate        int
	MaxRate        int
	Skills         []string
	GoodRatings    int
	NeutralRatings int
	BadRatings     int
	RespondedAt    time.Time
}
