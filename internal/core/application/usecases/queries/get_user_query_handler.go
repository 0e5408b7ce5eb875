package queries

import (
	"context"

	"jetbond/internal/core/ports"
)

// GetUserQueryHandler retrieves one user's profile from the store.
type GetUserQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

// NewGetUserQueryHandler creates a handler for profile retrieval.
func NewGetUserQueryHandler(uowFactory ports.UnitOfWorkFactory) GetUserQueryHandler {
	return GetUserQueryHandler{uowFactory: uowFactory}
}

// Handle executes the profile query.
func (h GetUserQueryHandler) Handle(
	ctx context.Context,
	query GetUserQuery,
) (GetUserQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetUserQueryResponse{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return GetUserQueryResponse{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.WorkerRepository().Get(ctx, query.UserID())
	if err != nil {
		return GetUserQueryResponse{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return GetUserQueryResponse{}, err
	}

	ratings := aggregate.Ratings()
	return GetUserQueryResponse{
		ID:             aggregate.ID(),
		Name:           aggregate.Name(),
		UserType:       string(aggregate.UserType()),
		District:       aggregate.District(),
		MinRate:        aggregate.MinRate(),
		MaxRate:        aggregate.MaxRate(),
		Skills:         aggregate.Skills(),
		Locale:         aggregate.Locale(),
		Availability:   aggregate.Availability().String(),
		CurrentJobID:   aggregate.CurrentJobID(),
		GoodRatings:    ratings.Good,
		NeutralRatings: ratings.Neutral,
		BadRatings:     ratings.Bad,
	}, nil
}
