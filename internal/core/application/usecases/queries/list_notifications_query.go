package queries

import (
	"errors"
	"time"

	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/pkg/guard"
)

var ErrListNotificationsQueryIsNotConstructed = errors.New(
	"ListNotificationsQuery must be created via NewListNotificationsQuery constructor",
)

// ListNotificationsQuery retrieves the acting user's inbox, newest first.
type ListNotificationsQuery struct { //nolint:recvcheck //using for validation
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewListNotificationsQuery creates an inbox query.
func NewListNotificationsQuery(actorID kernel.UUID) (ListNotificationsQuery, error) {
	q := ListNotificationsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := actorID.Validate(); err != nil {
		return ListNotificationsQuery{}, err
	}

	q.actorID = actorID
	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q ListNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrListNotificationsQueryIsNotConstructed)
}

// ActorID returns the inbox owner's identifier.
func (q ListNotificationsQuery) ActorID() kernel.UUID {
	return q.actorID
}

// ListNotificationsQueryResponse is one inbox entry in the read model.
type ListNotificationsQueryResponse struct {
	ID        kernel.UUID
	Kind      string
	OrderID   kernel.UUID
	Text      string
	IsRead    bool
	CreatedAt time.Time
}
