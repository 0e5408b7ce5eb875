package queries

import (
	"errors"
	"time"

	"jetbond/internal/core/domain/model/kernel"
	"jetbond/internal/pkg/guard"
)

var ErrGetJobsQueryIsNotConstructed = errors.New(
	"GetJobsQuery must be created via NewGetJobsQuery constructor",
)

// GetJobsQuery lists jobs visible to one user. Employers see their own jobs
// in every status; workers see only jobs still collecting applications. An
// optional district narrows the listing.
type GetJobsQuery struct { //nolint:recvcheck //using for validation
	requesterID kernel.UUID
	district    string

	guard guard.ConstructorGuard
}

// NewGetJobsQuery creates a job listing query. district may be empty, which
// disables the district filter.
func NewGetJobsQuery(requesterID kernel.UUID, district string) (GetJobsQuery, error) {
	query := GetJobsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setRequesterID(requesterID); err != nil {
		return GetJobsQuery{}, err
	}

	query.district = district
	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetJobsQuery) Validate() error {
	return q.guard.Validate(ErrGetJobsQueryIsNotConstructed)
}

// RequesterID returns the user the listing is built for.
func (q GetJobsQuery) RequesterID() kernel.UUID { return q.requesterID }

// District returns the district filter, empty when unset.
func (q GetJobsQuery) District() string { return q.district }

func (q *GetJobsQuery) setRequesterID(requesterID kernel.UUID) error {
	if err := requesterID.Validate(); err != nil {
		return err
	}

	q.requesterID = requesterID
	return nil
}

// GetJobsQueryResponse is the flattened job read model returned by listings.
type GetJobsQueryResponse struct {
	ID               kernel.UUID
	EmployerID       kernel.UUID
	Title            string
	Description      string
	District         string
	HourlyRate       int
	Duration         string
	Status           string
	CreatedAt        time.Time
	ExpiresAt        time.Time
	ResponseCount    int
	WindowOpen       bool
	SelectedWorkerID *kernel.UUID
}
