package reviewrepo

import (
	"context"
	"errors"

	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/core/domain/model/review"
	"ineed/internal/pkg/errs"

	"gorm.io/gorm"
)

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormReviewRepository implements ReviewRepository using GORM.
type GormReviewRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormReviewRepository creates a new GORM review repository.
func NewGormReviewRepository(db *gorm.DB, tracker aggregateTracker) *GormReviewRepository {
	return &GormReviewRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new review. A second review by the same author for the same
// order violates the unique index and comes back as a conflict. Requires
// the connection to be opened with TranslateError enabled.
func (r *GormReviewRepository) Add(ctx context.Context, entity *review.Review) error {
	if err := entity.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entity)
	err := r.db.WithContext(ctx).Create(&dto).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewConflictError("review already submitted for this order")
	}
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(entity.ID(), entity)
	return nil
}

// GetAllForRecipient retrieves reviews received by a user, newest first.
func (r *GormReviewRepository) GetAllForRecipient(
	ctx context.Context,
	recipientID kernel.UUID,
) ([]*review.Review, error) {
	if err := recipientID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ReviewDTO
	err := r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID.Bytes()).
		Order("created_at DESC, id DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	reviews := make([]*review.Review, 0, len(dtos))
	for _, dto := range dtos {
		entity, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, entity)
	}

	return reviews, nil
}
