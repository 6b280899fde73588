package order

import (
	"errors"
	"fmt"

	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder. This ensures all orders are properly validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

// Order is the transactional lifecycle object bound 1:1 to a request.
// It is the aggregate root that tracks who fulfills the request and for how
// much, from creation through offer acceptance to completion or cancellation.
//
// Order maintains these invariants:
//   - id, requestID and clientID are always valid UUIDs
//   - providerID and finalValue are unset until an offer is accepted, then
//     set exactly once and never overwritten
//   - status transitions follow the Status state machine
//   - the provider is never the client
//
// The struct uses private fields so all mutation goes through validated
// methods; acceptance-once is enforced here, and the persistence layer backs
// it with row-level locking so concurrent acceptors cannot both observe an
// unbound order.
type Order struct {
	id         kernel.UUID
	requestID  kernel.UUID
	clientID   kernel.UUID
	providerID *kernel.UUID
	finalValue *float64
	status     Status

	isConstructed bool
}

// NewOrder creates an Active order for a freshly posted request.
// The client is the request owner; no provider is bound yet.
func NewOrder(id kernel.UUID, requestID kernel.UUID, clientID kernel.UUID) (*Order, error) {
	o := &Order{
		status:        Active,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setRequestID(requestID),
		o.setClientID(clientID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence, including its
// current status and any bound provider and final value. Used by the
// repository layer; all invariants are re-validated.
func RestoreOrder(
	id kernel.UUID,
	requestID kernel.UUID,
	clientID kernel.UUID,
	providerID *kernel.UUID,
	finalValue *float64,
	status Status,
) (*Order, error) {
	o := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setRequestID(requestID),
		o.setClientID(clientID),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	o.status = status

	if providerID != nil {
		if err := providerID.Validate(); err != nil {
			return nil, err
		}
		if providerID.IsEqual(clientID) {
			return nil, errs.NewValueIsInvalidError("providerID equals clientID")
		}
		o.providerID = providerID
	}

	if finalValue != nil {
		if *finalValue <= 0 {
			return nil, errs.NewValueIsInvalidErrorWithCause("finalValue",
				fmt.Errorf("%f is not greater than 0", *finalValue))
		}
		o.finalValue = finalValue
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// RequestID returns the identifier of the request this order belongs to.
func (o *Order) RequestID() kernel.UUID {
	return o.requestID
}

// ClientID returns the request owner's identifier.
func (o *Order) ClientID() kernel.UUID {
	return o.clientID
}

// ProviderID returns the bound provider's identifier.
// Returns nil until an offer has been accepted.
func (o *Order) ProviderID() *kernel.UUID {
	return o.providerID
}

// FinalValue returns the accepted offer's value.
// Returns nil until an offer has been accepted.
func (o *Order) FinalValue() *float64 {
	return o.finalValue
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// IsParticipant reports whether the given user is the order's client or its
// bound provider.
func (o *Order) IsParticipant(userID kernel.UUID) bool {
	if o.clientID.IsEqual(userID) {
		return true
	}
	return o.providerID != nil && o.providerID.IsEqual(userID)
}

// IsAcceptingOffers reports whether new offers may still be made: the order
// must be Active and no offer may have been accepted yet.
func (o *Order) IsAcceptingOffers() bool {
	return o.status == Active && o.providerID == nil
}

// AcceptOffer binds the winning offer's provider and value to the order.
//
// Business rules enforced:
//   - The order must be Active
//   - No provider may be bound yet: acceptance happens exactly once
//   - The provider must not be the client
//
// The status stays Active; "accepted" is modeled as provider and final value
// being set. A losing concurrent acceptor re-reading the row after the winner
// commits will find the provider bound and fail here with InvalidOperation
// instead of overwriting the winner.
func (o *Order) AcceptOffer(providerID kernel.UUID, value float64) error {
	if err := providerID.Validate(); err != nil {
		return err
	}

	if o.status != Active {
		return errs.NewInvalidOperationErrorWithCause(
			"order is no longer active",
			fmt.Errorf("status is %s", o.status.String()),
		)
	}

	if o.providerID != nil {
		return errs.NewInvalidOperationError("an offer has already been accepted for this order")
	}

	if providerID.IsEqual(o.clientID) {
		return errs.NewInvalidOperationError("cannot accept an offer from the order's own client")
	}

	if value <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("value",
			fmt.Errorf("%f is not greater than 0", value))
	}

	o.providerID = &providerID
	o.finalValue = &value
	return nil
}

// Complete marks the order as fulfilled.
//
// Business rules enforced:
//   - The order must be Active
//   - A provider must be bound; an order nobody accepted cannot complete
//
// Completed is terminal and is the gate for review submission.
func (o *Order) Complete() error {
	if o.providerID == nil {
		return errs.NewInvalidOperationError("order has no bound provider to complete with")
	}

	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Cancel withdraws the order. Allowed only while Active; terminal afterwards.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}
	o.requestID = requestID
	return nil
}

func (o *Order) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return err
	}
	o.clientID = clientID
	return nil
}
