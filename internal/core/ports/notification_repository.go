package ports

import (
	"context"

	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/core/domain/model/notification"
)

// NotificationRepository defines the persistence contract for the inbox.
type NotificationRepository interface {
	// Add persists a new notification.
	Add(ctx context.Context, entity *notification.Notification) error

	// Get retrieves a notification by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error)

	// Update persists changes to a notification, such as the read flag.
	Update(ctx context.Context, entity *notification.Notification) error

	// GetAllForRecipient retrieves a user's notifications, newest first,
	// capped at limit.
	GetAllForRecipient(ctx context.Context, recipientID kernel.UUID, limit int) ([]*notification.Notification, error)
}
