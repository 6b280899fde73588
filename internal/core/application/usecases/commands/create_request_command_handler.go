package commands

import (
	"context"

	"ineed/internal/core/domain/model/conversation"
	"ineed/internal/core/domain/model/order"
	"ineed/internal/core/domain/model/request"
)

// CreateRequestCommandHandler handles the business logic for posting a need.
// One transaction inserts the request, its order in Active status, and its
// conversation with the owner as first participant. A failure of any insert
// rolls back all of them.
type CreateRequestCommandHandler struct {
	uowFactory CreateRequestUoWFactory
}

// NewCreateRequestCommandHandler creates a handler for request creation.
func NewCreateRequestCommandHandler(uowFactory CreateRequestUoWFactory) CreateRequestCommandHandler {
	return CreateRequestCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the request creation command.
func (h *CreateRequestCommandHandler) Handle(ctx context.Context, cmd CreateRequestCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	newRequest, err := request.NewRequest(
		cmd.RequestID(), cmd.OwnerID(),
		cmd.Title(), cmd.Description(), cmd.Category(),
		cmd.RequestType(), cmd.Location(), cmd.Budget(),
	)
	if err != nil {
		return err
	}

	newOrder, err := order.NewOrder(cmd.OrderID(), cmd.RequestID(), cmd.OwnerID())
	if err != nil {
		return err
	}

	newConversation, err := conversation.NewConversation(cmd.ConversationID(), cmd.OrderID(), cmd.OwnerID())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.RequestRepository().Add(ctx, newRequest); err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.ConversationRepository().Add(ctx, newConversation); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
