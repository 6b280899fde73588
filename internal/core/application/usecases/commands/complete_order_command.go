package commands

import (
	"errors"

	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/pkg/guard"
)

var ErrCompleteOrderCommandIsNotConstructed = errors.New(
	"CompleteOrderCommand must be created via NewCompleteOrderCommand constructor",
)

// CompleteOrderCommand represents the client confirming the work is done.
type CompleteOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompleteOrderCommand creates a command to complete an order.
func NewCompleteOrderCommand(orderID kernel.UUID, actorID kernel.UUID) (CompleteOrderCommand, error) {
	cmd := CompleteOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		actorID.Validate(),
	); err != nil {
		return CompleteOrderCommand{}, err
	}

	cmd.orderID = orderID
	cmd.actorID = actorID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrderCommandIsNotConstructed)
}

// OrderID returns the order to complete.
func (c CompleteOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the acting user's identifier.
func (c CompleteOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}
