package queries

import (
	"errors"
	"time"

	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/pkg/guard"
)

var ErrListMessagesQueryIsNotConstructed = errors.New(
	"ListMessagesQuery must be created via NewListMessagesQuery constructor",
)

// ListMessagesQuery retrieves a conversation's messages in posting order.
// Only participants may read the thread.
type ListMessagesQuery struct { //nolint:recvcheck //using for validation
	conversationID kernel.UUID
	actorID        kernel.UUID

	guard guard.ConstructorGuard
}

// NewListMessagesQuery creates a thread history query.
func NewListMessagesQuery(conversationID kernel.UUID, actorID kernel.UUID) (ListMessagesQuery, error) {
	q := ListMessagesQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		conversationID.Validate(),
		actorID.Validate(),
	); err != nil {
		return ListMessagesQuery{}, err
	}

	q.conversationID = conversationID
	q.actorID = actorID
	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q ListMessagesQuery) Validate() error {
	return q.guard.Validate(ErrListMessagesQueryIsNotConstructed)
}

// ConversationID returns the thread to read.
func (q ListMessagesQuery) ConversationID() kernel.UUID {
	return q.conversationID
}

// ActorID returns the acting user's identifier.
func (q ListMessagesQuery) ActorID() kernel.UUID {
	return q.actorID
}

// ListMessagesQueryResponse is one message in the read model.
type ListMessagesQueryResponse struct {
	ID        kernel.UUID
	AuthorID  kernel.UUID
	Text      string
	CreatedAt time.Time
}
