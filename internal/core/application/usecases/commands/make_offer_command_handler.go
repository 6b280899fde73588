package commands

import (
	"context"
	"fmt"

	"ineed/internal/core/domain/model/notification"
	"ineed/internal/core/domain/model/offer"
	"ineed/internal/pkg/errs"
)

// MakeOfferCommandHandler handles the business logic for bidding on an order.
// The preconditions are checked in a fixed sequence: the order must exist,
// the bidder must not be the client, and the order must still accept offers.
// The offer insert and the bidder's conversation membership commit together;
// the client is notified only after that commit.
type MakeOfferCommandHandler struct {
	uowFactory OfferUoWFactory
	notifier   OrderEventNotifier
}

// NewMakeOfferCommandHandler creates a handler for offer submission.
func NewMakeOfferCommandHandler(uowFactory OfferUoWFactory, notifier OrderEventNotifier) MakeOfferCommandHandler {
	return MakeOfferCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the offer submission command.
func (h *MakeOfferCommandHandler) Handle(ctx context.Context, cmd MakeOfferCommand) error {
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

	// Locking the row keeps a concurrent acceptance from committing between
	// the gate below and the offer insert.
	aggregate, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if aggregate.ClientID().IsEqual(cmd.ProviderID()) {
		return errs.NewInvalidOperationError("cannot make an offer on your own order")
	}

	if !aggregate.IsAcceptingOffers() {
		return errs.NewInvalidOperationError("order is no longer accepting offers")
	}

	newOffer, err := offer.NewOffer(cmd.OfferID(), cmd.OrderID(), cmd.ProviderID(), cmd.Value(), cmd.Message())
	if err != nil {
		return err
	}

	if err = uow.OfferRepository().Add(ctx, newOffer); err != nil {
		return err
	}

	conversationRepo := uow.ConversationRepository()
	thread, err := conversationRepo.GetByOrderID(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = conversationRepo.UpsertParticipant(ctx, thread.ID(), cmd.ProviderID()); err != nil {
		return err
	}

	posted, err := uow.RequestRepository().Get(ctx, aggregate.RequestID())
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Notify(ctx, aggregate.ClientID(), notification.KindNewOffer, cmd.OrderID(),
		fmt.Sprintf("You received a new offer on %q", posted.Title()))
	return nil
}
