package queries

import (
	"context"
	"time"

	"ineed/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListNotificationsQueryHandler retrieves a user's inbox from the database.
type ListNotificationsQueryHandler struct {
	db *gorm.DB
}

// NewListNotificationsQueryHandler creates a handler for inbox listings.
func NewListNotificationsQueryHandler(db *gorm.DB) ListNotificationsQueryHandler {
	return ListNotificationsQueryHandler{db: db}
}

// Handle executes the query, newest first, capped at DefaultListLimit.
func (h ListNotificationsQueryHandler) Handle(
	ctx context.Context,
	query ListNotificationsQuery,
) ([]ListNotificationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, kind, order_id, text, is_read, created_at
		FROM notifications
		WHERE recipient_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, query.ActorID().String(), DefaultListLimit).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]ListNotificationsQueryResponse, 0)

	for rows.Next() {
		var resp ListNotificationsQueryResponse
		var id, orderID uuid.UUID
		var createdAt time.Time

		if err = rows.Scan(&id, &resp.Kind, &orderID, &resp.Text, &resp.IsRead, &createdAt); err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		resp.CreatedAt = createdAt
		notifications = append(notifications, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}
