package commands

import (
	"context"

	"ineed/internal/pkg/errs"
)

// CancelOrderCommandHandler handles the client calling an order off. Works
// with or without a bound provider, but only while the order is Active. The
// linked request leaves matching in the same transaction.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cancellation command.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if !aggregate.ClientID().IsEqual(cmd.ActorID()) {
		return errs.NewNotAuthorizedError("only the order's client can cancel it")
	}

	if err = aggregate.Cancel(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = retireRequest(ctx, uow, aggregate.RequestID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
