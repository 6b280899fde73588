package commands

import (
	"context"

	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/core/domain/model/notification"
	"ineed/internal/pkg/errs"
)

// CompleteOrderCommandHandler handles the client marking an order done.
// Completion requires a bound provider and an Active order; the linked
// request leaves matching in the same transaction. The provider is notified
// after commit so reviews can follow promptly.
type CompleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   OrderEventNotifier
}

// NewCompleteOrderCommandHandler creates a handler for order completion.
func NewCompleteOrderCommandHandler(uowFactory OrderUoWFactory, notifier OrderEventNotifier) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the completion command.
func (h *CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) error {
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
		return errs.NewNotAuthorizedError("only the order's client can complete it")
	}

	if err = aggregate.Complete(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = retireRequest(ctx, uow, aggregate.RequestID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if provider := aggregate.ProviderID(); provider != nil {
		h.notifier.Notify(ctx, *provider, notification.KindOrderCompleted, cmd.OrderID(),
			"Order was completed")
	}
	return nil
}

// retireRequest takes the linked request out of matching when its order
// reaches a terminal status. The request row stays.
func retireRequest(ctx context.Context, uow OrderUoW, requestID kernel.UUID) error {
	repo := uow.RequestRepository()
	aggregate, err := repo.Get(ctx, requestID)
	if err != nil {
		return err
	}

	aggregate.Deactivate()
	return repo.Update(ctx, aggregate)
}
