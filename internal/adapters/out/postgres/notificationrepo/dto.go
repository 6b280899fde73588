// Package notificationrepo persists notification inbox entries.
package notificationrepo

import (
	"time"

	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// NotificationDTO represents the database structure for persisting notifications.
type NotificationDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	RecipientID uuid.UUID `gorm:"type:uuid;index"`
	Kind        string
	OrderID     uuid.UUID `gorm:"type:uuid"`
	Text        string
	IsRead      bool
	CreatedAt   time.Time
}

// TableName overrides GORM's default naming convention to use "notifications".
func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(entity *notification.Notification) NotificationDTO {
	return NotificationDTO{
		ID:          entity.ID().Bytes(),
		RecipientID: entity.RecipientID().Bytes(),
		Kind:        entity.Kind().String(),
		OrderID:     entity.OrderID().Bytes(),
		Text:        entity.Text(),
		IsRead:      entity.IsRead(),
		CreatedAt:   entity.CreatedAt(),
	}
}

func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	recipientID, err := kernel.UUIDFromBytes(dto.RecipientID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	kind, err := notification.ParseKind(dto.Kind)
	if err != nil {
		return nil, err
	}

	return notification.RestoreNotification(id, recipientID, kind, orderID, dto.Text, dto.IsRead, dto.CreatedAt)
}
