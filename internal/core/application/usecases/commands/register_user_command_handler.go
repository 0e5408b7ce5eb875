package commands

import (
	"context"

	"jetbond/internal/core/domain/model/worker"
)

// RegisterUserCommandHandler handles the business logic for user registration.
type RegisterUserCommandHandler struct {
	uowFactory WorkerUoWFactory
}

// NewRegisterUserCommandHandler creates a handler for user registration.
func NewRegisterUserCommandHandler(uowFactory WorkerUoWFactory) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the registration command: builds the user aggregate
// (workers start open to work) and persists it.
func (h RegisterUserCommandHandler) Handle(ctx context.Context, cmd RegisterUserCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	user, err := worker.NewWorker(
		cmd.UserID(),
		cmd.Name(),
		cmd.UserType(),
		cmd.District(),
		cmd.MinRate(),
		cmd.MaxRate(),
		cmd.Skills(),
		cmd.Locale(),
	)
	if err != nil {
		return err
	}

	if err = uow.WorkerRepository().Add(ctx, user); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
