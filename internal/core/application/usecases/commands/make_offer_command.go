package commands

import (
	"errors"
	"fmt"

	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/pkg/errs"
	"ineed/internal/pkg/guard"
)

var ErrMakeOfferCommandIsNotConstructed = errors.New(
	"MakeOfferCommand must be created via NewMakeOfferCommand constructor",
)

// MakeOfferCommand represents a provider bidding on an order.
//
// Example:
//
//	cmd, err := NewMakeOfferCommand(kernel.NewUUID(), orderID, providerID, 120.50, "Can start tomorrow")
//	if err != nil {
//	    return fmt.Errorf("invalid offer data: %w", err)
//	}
//
//	handler := NewMakeOfferCommandHandler(uowFactory, notifier)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to make offer: %w", err)
//	}
type MakeOfferCommand struct { //nolint:recvcheck //using for validation
	offerID    kernel.UUID
	orderID    kernel.UUID
	providerID kernel.UUID
	value      float64
	message    string

	guard guard.ConstructorGuard
}

// NewMakeOfferCommand creates a command to bid on an order.
// Validates identifiers and that the offered value is positive.
func NewMakeOfferCommand(
	offerID kernel.UUID,
	orderID kernel.UUID,
	providerID kernel.UUID,
	value float64,
	message string,
) (MakeOfferCommand, error) {
	cmd := MakeOfferCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		offerID.Validate(),
		orderID.Validate(),
		providerID.Validate(),
		cmd.setValue(value),
	); err != nil {
		return MakeOfferCommand{}, err
	}

	cmd.offerID = offerID
	cmd.orderID = orderID
	cmd.providerID = providerID
	cmd.message = message
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MakeOfferCommand) Validate() error {
	return c.guard.Validate(ErrMakeOfferCommandIsNotConstructed)
}

// OfferID returns the identifier for the new offer.
func (c MakeOfferCommand) OfferID() kernel.UUID {
	return c.offerID
}

// OrderID returns the order being bid on.
func (c MakeOfferCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ProviderID returns the bidding user's identifier.
func (c MakeOfferCommand) ProviderID() kernel.UUID {
	return c.providerID
}

// Value returns the offered amount.
func (c MakeOfferCommand) Value() float64 {
	return c.value
}

// Message returns the optional message to the client.
func (c MakeOfferCommand) Message() string {
	return c.message
}

func (c *MakeOfferCommand) setValue(value float64) error {
	if value <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("value",
			fmt.Errorf("%f is not greater than 0", value))
	}

	c.value = value
	return nil
}
