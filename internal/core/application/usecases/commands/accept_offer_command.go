package commands

import (
	"errors"

	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/pkg/guard"
)

var ErrAcceptOfferCommandIsNotConstructed = errors.New(
	"AcceptOfferCommand must be created via NewAcceptOfferCommand constructor",
)

// AcceptOfferCommand represents the client choosing a winning offer.
type AcceptOfferCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	offerID kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptOfferCommand creates a command to accept an offer on an order.
func NewAcceptOfferCommand(orderID kernel.UUID, offerID kernel.UUID, actorID kernel.UUID) (AcceptOfferCommand, error) {
	cmd := AcceptOfferCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		offerID.Validate(),
		actorID.Validate(),
	); err != nil {
		return AcceptOfferCommand{}, err
	}

	cmd.orderID = orderID
	cmd.offerID = offerID
	cmd.actorID = actorID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptOfferCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOfferCommandIsNotConstructed)
}

// OrderID returns the order the offer was made on.
func (c AcceptOfferCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OfferID returns the offer to accept.
func (c AcceptOfferCommand) OfferID() kernel.UUID {
	return c.offerID
}

// ActorID returns the acting user's identifier.
func (c AcceptOfferCommand) ActorID() kernel.UUID {
	return c.actorID
}
