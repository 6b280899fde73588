package ports

import (
	"context"

	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/core/domain/model/user"
)

// UserRepository defines the persistence contract for user aggregates.
type UserRepository interface {
	// Add persists a new user.
	Add(ctx context.Context, aggregate *user.User) error

	// Get retrieves a user by their identifier.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// ApplyRating folds a rating into the user's stored aggregate as one
	// atomic update. Concurrent calls must not lose increments.
	ApplyRating(ctx context.Context, userID kernel.UUID, rating int) error
}
