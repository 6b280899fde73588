package ports

import (
	"context"

	"ineed/internal/core/domain/model/kernel"
)

// PushEvent is the payload delivered to connected sockets. Kind matches the
// stored notification kinds; Data is marshaled to JSON as-is.
type PushEvent struct {
	Kind string `json:"kind"`
	Data any    `json:"data"`
}

// RealtimePusher delivers events to currently connected clients. Delivery is
// best effort: the stored notification row is the durable record, so
// implementations drop events for absent or slow recipients rather than
// block the caller.
type RealtimePusher interface {
	// PushToUser delivers an event to one user's open connections.
	PushToUser(ctx context.Context, userID kernel.UUID, event PushEvent) error

	// PushToConversation delivers an event to every participant subscribed
	// to a conversation.
	PushToConversation(ctx context.Context, conversationID kernel.UUID, event PushEvent) error
}
