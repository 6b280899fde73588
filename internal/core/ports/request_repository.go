// Package ports defines the persistence and push contracts between the
// application core and its adapters. Repositories operate on whole
// aggregates; listing and search read models bypass them and query the
// store directly.
package ports

import (
	"context"

	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/core/domain/model/request"
)

// RequestRepository defines the persistence contract for request aggregates.
type RequestRepository interface {
	// Add persists a new request aggregate.
	Add(ctx context.Context, aggregate *request.Request) error

	// Update persists changes to an existing request aggregate.
	Update(ctx context.Context, aggregate *request.Request) error

	// Get retrieves a request by its identifier, active or not.
	Get(ctx context.Context, id kernel.UUID) (*request.Request, error)
}
