package ports

import (
	"context"

	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its row until the current
	// transaction ends. Concurrent accept and complete operations serialize
	// on this lock, so only the first acceptance to commit binds a provider.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByRequestID retrieves the order created alongside a request.
	GetByRequestID(ctx context.Context, requestID kernel.UUID) (*order.Order, error)
}
