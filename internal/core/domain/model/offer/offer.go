// Package offer implements the offer entity: a provider's bid on an order.
// Offers carry no accepted flag; acceptance is recorded on the order by
// binding the winning offer's provider and value, so the first acceptance
// transaction to commit wins.
package offer

import (
	"errors"
	"fmt"
	"time"

	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/pkg/errs"
)

// ErrOfferIsNotConstructed is returned when an Offer instance was not
// created through NewOffer or RestoreOffer.
var ErrOfferIsNotConstructed = errors.New("Offer must be created via NewOffer or RestoreOffer constructor")

// Offer is a provider's bid on an order: a positive value and an optional
// message to the client. Many offers may coexist on one order; they are
// retained for history even after one is accepted.
type Offer struct {
	id         kernel.UUID
	orderID    kernel.UUID
	providerID kernel.UUID
	value      float64
	message    string
	createdAt  time.Time

	isConstructed bool
}

// NewOffer creates an offer with validated fields. The creation timestamp
// is taken from the clock here; the store's commit order, not this
// timestamp, decides acceptance races.
func NewOffer(
	id kernel.UUID,
	orderID kernel.UUID,
	providerID kernel.UUID,
	value float64,
	message string,
) (*Offer, error) {
	return RestoreOffer(id, orderID, providerID, value, message, time.Now().UTC())
}

// RestoreOffer reconstructs an offer from persistence.
func RestoreOffer(
	id kernel.UUID,
	orderID kernel.UUID,
	providerID kernel.UUID,
	value float64,
	message string,
	createdAt time.Time,
) (*Offer, error) {
	o := &Offer{
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderID(orderID),
		o.setProviderID(providerID),
		o.setValue(value),
	); err != nil {
		return nil, err
	}

	o.message = message
	o.createdAt = createdAt
	return o, nil
}

// Validate ensures the Offer instance was properly constructed.
func (o *Offer) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOfferIsNotConstructed
	}

	return nil
}

// ID returns the offer's unique identifier.
func (o *Offer) ID() kernel.UUID {
	return o.id
}

// OrderID returns the identifier of the order this offer bids on.
func (o *Offer) OrderID() kernel.UUID {
	return o.orderID
}

// ProviderID returns the bidding provider's identifier.
func (o *Offer) ProviderID() kernel.UUID {
	return o.providerID
}

// Value returns the offered amount.
func (o *Offer) Value() float64 {
	return o.value
}

// Message returns the optional message to the client. Empty when none given.
func (o *Offer) Message() string {
	return o.message
}

// CreatedAt returns the offer's creation timestamp.
func (o *Offer) CreatedAt() time.Time {
	return o.createdAt
}

// BelongsTo reports whether this offer bids on the given order.
func (o *Offer) BelongsTo(orderID kernel.UUID) bool {
	return o.orderID.IsEqual(orderID)
}

func (o *Offer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Offer) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	o.orderID = orderID
	return nil
}

func (o *Offer) setProviderID(providerID kernel.UUID) error {
	if err := providerID.Validate(); err != nil {
		return err
	}
	o.providerID = providerID
	return nil
}

func (o *Offer) setValue(value float64) error {
	if value <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("value",
			fmt.Errorf("%f is not greater than 0", value))
	}
	o.value = value
	return nil
}
