package queries

import (
	"context"

	"jetbond/internal/core/ports"
)

// GetJobApplicantsQueryHandler joins a job's response list with the
// applicants' profiles.
type GetJobApplicantsQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

// NewGetJobApplicantsQueryHandler creates a handler for applicant listings.
func NewGetJobApplicantsQueryHandler(uowFactory ports.UnitOfWorkFactory) GetJobApplicantsQueryHandler {
	return GetJobApplicantsQueryHandler{uowFactory: uowFactory}
}

// Handle executes the query. Applicants come back in arrival order.
func (h GetJobApplicantsQueryHandler) Handle(
	ctx context.Context,
	query GetJobApplicantsQuery,
) ([]GetJobApplicantsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.JobRepository().Get(ctx, query.JobID())
	if err != nil {
		return nil, err
	}

	responses := aggregate.Window().Responses()
	applicants := make([]GetJobApplicantsQueryResponse, 0, len(responses))

	for _, response := range responses {
		applicant, getErr := uow.WorkerRepository().Get(ctx, response.WorkerID)
		if getErr != nil {
			return nil, getErr
		}

		ratings := applicant.Ratings()
		applicants = append(applicants, GetJobApplicantsQueryResponse{
			WorkerID:       applicant.ID(),
			Name:           applicant.Name(),
			District:       applicant.District(),
			MinRate:        applicant.MinRate(),
			MaxRate:        applicant.MaxRate(),
			Skills:         applicant.Skills(),
			GoodRatings:    ratings.Good,
			NeutralRatings: ratings.Neutral,
			BadRatings:     ratings.Bad,
			RespondedAt:    response.RespondedAt,
		})
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return applicants, nil
}
