// Package reviewrepo persists reviews. A unique index on (order_id,
// author_id) is the one-review-per-party guard; inserting a duplicate
// surfaces as a conflict.
package reviewrepo

import (
	"time"

	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/core/domain/model/review"

	"github.com/google/uuid"
)

// ReviewDTO represents the database structure for persisting reviews.
type ReviewDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_reviews_order_author"`
	AuthorID      uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_reviews_order_author"`
	RecipientID   uuid.UUID `gorm:"type:uuid;index"`
	Rating        int
	Text          string
	Communication *int
	Quality       *int
	Punctuality   *int
	CreatedAt     time.Time
}

// TableName overrides GORM's default naming convention to use "reviews".
func (ReviewDTO) TableName() string {
	return "reviews"
}

func fromDomain(entity *review.Review) ReviewDTO {
	aspects := entity.AspectRatings()
	return ReviewDTO{
		ID:            entity.ID().Bytes(),
		OrderID:       entity.OrderID().Bytes(),
		AuthorID:      entity.AuthorID().Bytes(),
		RecipientID:   entity.RecipientID().Bytes(),
		Rating:        entity.Rating(),
		Text:          entity.Text(),
		Communication: aspects.Communication,
		Quality:       aspects.Quality,
		Punctuality:   aspects.Punctuality,
		CreatedAt:     entity.CreatedAt(),
	}
}

func toDomain(dto ReviewDTO) (*review.Review, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	authorID, err := kernel.UUIDFromBytes(dto.AuthorID[:])
	if err != nil {
		return nil, err
	}

	recipientID, err := kernel.UUIDFromBytes(dto.RecipientID[:])
	if err != nil {
		return nil, err
	}

	aspects := review.Aspects{
		Communication: dto.Communication,
		Quality:       dto.Quality,
		Punctuality:   dto.Punctuality,
	}

	return review.RestoreReview(id, orderID, authorID, recipientID, dto.Rating, dto.Text, aspects, dto.CreatedAt)
}
