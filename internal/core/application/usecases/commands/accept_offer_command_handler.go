package commands

import (
	"context"
	"fmt"

	"ineed/internal/core/domain/model/notification"
	"ineed/internal/pkg/errs"
)

// AcceptOfferCommandHandler handles the client choosing a winning offer.
// The order row is locked for the duration of the transaction, so two
// concurrent acceptances serialize and the second one sees a bound provider
// and fails. The winner's provider joins the conversation if not already in
// it, and is notified after commit.
type AcceptOfferCommandHandler struct {
	uowFactory OfferUoWFactory
	notifier   OrderEventNotifier
}

// NewAcceptOfferCommandHandler creates a handler for offer acceptance.
func NewAcceptOfferCommandHandler(uowFactory OfferUoWFactory, notifier OrderEventNotifier) AcceptOfferCommandHandler {
	return AcceptOfferCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the acceptance command.
func (h *AcceptOfferCommandHandler) Handle(ctx context.Context, cmd AcceptOfferCommand) error {
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
		return errs.NewNotAuthorizedError("only the order's client can accept an offer")
	}

	if !aggregate.IsAcceptingOffers() {
		return errs.NewInvalidOperationError("order is no longer accepting offers")
	}

	chosen, err := uow.OfferRepository().Get(ctx, cmd.OfferID())
	if err != nil {
		return err
	}

	// An offer on another order is indistinguishable from a missing one.
	if !chosen.BelongsTo(cmd.OrderID()) {
		return errs.NewObjectNotFoundError("offerID", cmd.OfferID())
	}

	if err = aggregate.AcceptOffer(chosen.ProviderID(), chosen.Value()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	conversationRepo := uow.ConversationRepository()
	thread, err := conversationRepo.GetByOrderID(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = conversationRepo.UpsertParticipant(ctx, thread.ID(), chosen.ProviderID()); err != nil {
		return err
	}

	posted, err := uow.RequestRepository().Get(ctx, aggregate.RequestID())
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Notify(ctx, chosen.ProviderID(), notification.KindOfferAccepted, cmd.OrderID(),
		fmt.Sprintf("Your offer for %q was accepted", posted.Title()))
	return nil
}
