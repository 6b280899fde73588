package ports

import (
	"context"

	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/core/domain/model/offer"
)

// OfferRepository defines the persistence contract for offers.
type OfferRepository interface {
	// Add persists a new offer.
	Add(ctx context.Context, entity *offer.Offer) error

	// Get retrieves an offer by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*offer.Offer, error)

	// GetAllByOrderID retrieves all offers on an order, newest first.
	GetAllByOrderID(ctx context.Context, orderID kernel.UUID) ([]*offer.Offer, error)
}
