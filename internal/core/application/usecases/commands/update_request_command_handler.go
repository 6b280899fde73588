package commands

import (
	"context"

	"ineed/internal/pkg/errs"
)

// UpdateRequestCommandHandler handles owner edits to a posted request.
type UpdateRequestCommandHandler struct {
	uowFactory RequestUoWFactory
}

// NewUpdateRequestCommandHandler creates a handler for request edits.
func NewUpdateRequestCommandHandler(uowFactory RequestUoWFactory) UpdateRequestCommandHandler {
	return UpdateRequestCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the edit. Only the request owner may edit.
func (h *UpdateRequestCommandHandler) Handle(ctx context.Context, cmd UpdateRequestCommand) error {
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
		return errs.NewNotAuthorizedError("only the request owner can edit it")
	}

	if err = aggregate.Edit(cmd.Title(), cmd.Description(), cmd.Budget()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
