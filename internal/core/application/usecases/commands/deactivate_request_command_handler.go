package commands

import (
	"context"

	"ineed/internal/pkg/errs"
)

// DeactivateRequestCommandHandler handles withdrawal of a posted request.
type DeactivateRequestCommandHandler struct {
	uowFactory RequestUoWFactory
}

// NewDeactivateRequestCommandHandler creates a handler for request withdrawal.
func NewDeactivateRequestCommandHandler(uowFactory RequestUoWFactory) DeactivateRequestCommandHandler {
	return DeactivateRequestCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the withdrawal. Only the request owner may withdraw, and
// repeating the call is harmless.
func (h *DeactivateRequestCommandHandler) Handle(ctx context.Context, cmd DeactivateRequestCommand) error {
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

	repo := uow.RequestRepository()
	aggregate, err := repo.Get(ctx, cmd.RequestID())
	if err != nil {
		return err
	}

	if !aggregate.IsOwnedBy(cmd.ActorID()) {
		return errs.NewNotAuthorizedError("only the request owner can withdraw it")
	}

	aggregate.Deactivate()

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
