// Package orderrepo persists order aggregates, including the row locking
// that serializes offer acceptance.
package orderrepo

import (
	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RequestID  uuid.UUID  `gorm:"type:uuid;uniqueIndex"`
	ClientID   uuid.UUID  `gorm:"type:uuid;index"`
	ProviderID *uuid.UUID `gorm:"type:uuid;index"`
	FinalValue *float64
	Status     string
}

// TableName overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var providerID *uuid.UUID
	if id := aggregate.ProviderID(); id != nil {
		raw := id.Bytes()
		providerID = &raw
	}

	return OrderDTO{
		ID:         aggregate.ID().Bytes(),
		RequestID:  aggregate.RequestID().Bytes(),
		ClientID:   aggregate.ClientID().Bytes(),
		ProviderID: providerID,
		FinalValue: aggregate.FinalValue(),
		Status:     aggregate.Status().String(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	requestID, err := kernel.UUIDFromBytes(dto.RequestID[:])
	if err != nil {
		return nil, err
	}

	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}

	var providerID *kernel.UUID
	if dto.ProviderID != nil {
		pID, providerErr := kernel.UUIDFromBytes((*dto.ProviderID)[:])
		if providerErr != nil {
			return nil, providerErr
		}

		providerID = &pID
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, requestID, clientID, providerID, dto.FinalValue, status)
}
