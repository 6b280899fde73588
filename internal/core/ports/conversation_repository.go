package ports

import (
	"context"

	"ineed/internal/core/domain/model/conversation"
	"ineed/internal/core/domain/model/kernel"
)

// ConversationRepository defines the persistence contract for conversation
// threads and their messages.
type ConversationRepository interface {
	// Add persists a new conversation with its initial participants.
	Add(ctx context.Context, aggregate *conversation.Conversation) error

	// Get retrieves a conversation with its participants.
	Get(ctx context.Context, id kernel.UUID) (*conversation.Conversation, error)

	// GetByOrderID retrieves the conversation attached to an order.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*conversation.Conversation, error)

	// UpsertParticipant adds a user to a conversation. Adding an existing
	// participant is a no-op.
	UpsertParticipant(ctx context.Context, conversationID kernel.UUID, userID kernel.UUID) error

	// AddMessage persists a message in a conversation.
	AddMessage(ctx context.Context, message *conversation.Message) error
}
