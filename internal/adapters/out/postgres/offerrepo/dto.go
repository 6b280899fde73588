// Package offerrepo persists offers. Offers are immutable once placed, so
// the repository only ever inserts and reads.
package offerrepo

import (
	"time"

	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/core/domain/model/offer"

	"github.com/google/uuid"
)

// OfferDTO represents the database structure for persisting offers.
type OfferDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	ProviderID uuid.UUID `gorm:"type:uuid;index"`
	Value      float64
	Message    string
	CreatedAt  time.Time
}

// TableName overrides GORM's default naming convention to use "offers".
func (OfferDTO) TableName() string {
	return "offers"
}

func fromDomain(entity *offer.Offer) OfferDTO {
	return OfferDTO{
		ID:         entity.ID().Bytes(),
		OrderID:    entity.OrderID().Bytes(),
		ProviderID: entity.ProviderID().Bytes(),
		Value:      entity.Value(),
		Message:    entity.Message(),
		CreatedAt:  entity.CreatedAt(),
	}
}

func toDomain(dto OfferDTO) (*offer.Offer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	providerID, err := kernel.UUIDFromBytes(dto.ProviderID[:])
	if err != nil {
		return nil, err
	}

	return offer.RestoreOffer(id, orderID, providerID, dto.Value, dto.Message, dto.CreatedAt)
}
