package ports

import (
	"context"

	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/core/domain/model/review"
)

// ReviewRepository defines the persistence contract for reviews.
type ReviewRepository interface {
	// Add persists a new review. Returns a conflict error when the author
	// already reviewed the order; the store's unique index is the arbiter
	// under concurrency.
	Add(ctx context.Context, entity *review.Review) error

	// GetAllForRecipient retrieves reviews received by a user, newest first.
	GetAllForRecipient(ctx context.Context, recipientID kernel.UUID) ([]*review.Review, error)
}
