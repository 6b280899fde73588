package queries

import (
	"errors"
	"time"

	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its offers. Only the order's
// parties may look: the client always, the provider once bound, and any
// user who has made an offer.
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for a single order view.
func NewGetOrderQuery(orderID kernel.UUID, actorID kernel.UUID) (GetOrderQuery, error) {
	q := GetOrderQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		actorID.Validate(),
	); err != nil {
		return GetOrderQuery{}, err
	}

	q.orderID = orderID
	q.actorID = actorID
	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the order to view.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// ActorID returns the acting user's identifier.
func (q GetOrderQuery) ActorID() kernel.UUID {
	return q.actorID
}

// GetOrderQueryResponse is the order view in the read model.
type GetOrderQueryResponse struct {
	ID         kernel.UUID
	RequestID  kernel.UUID
	ClientID   kernel.UUID
	ProviderID *kernel.UUID
	FinalValue *float64
	Status     string
	Offers     []OrderOfferResponse
}

// OrderOfferResponse is one offer inside the order view.
type OrderOfferResponse struct {
	ID         kernel.UUID
	ProviderID kernel.UUID
	Value      float64
	Message    string
	CreatedAt  time.Time
}
