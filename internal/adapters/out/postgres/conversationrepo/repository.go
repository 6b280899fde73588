package conversationrepo

import (
	"context"
	"errors"

	"ineed/internal/core/domain/model/conversation"
	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormConversationRepository implements ConversationRepository using GORM.
type GormConversationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormConversationRepository creates a new GORM conversation repository.
func NewGormConversationRepository(db *gorm.DB, tracker aggregateTracker) *GormConversationRepository {
	return &GormConversationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new conversation and its initial participants.
func (r *GormConversationRepository) Add(ctx context.Context, aggregate *conversation.Conversation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, participants := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}
	if len(participants) > 0 {
		if err := r.db.WithContext(ctx).Create(&participants).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a conversation by ID with its participant set.
func (r *GormConversationRepository) Get(ctx context.Context, id kernel.UUID) (*conversation.Conversation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ConversationDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("conversation", id.String())
	}
	if err != nil {
		return nil, err
	}

	return r.load(ctx, dto)
}

// GetByOrderID retrieves the conversation attached to an order.
func (r *GormConversationRepository) GetByOrderID(
	ctx context.Context,
	orderID kernel.UUID,
) (*conversation.Conversation, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto ConversationDTO
	err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("conversation by order", orderID.String())
	}
	if err != nil {
		return nil, err
	}

	return r.load(ctx, dto)
}

// UpsertParticipant adds a user to a conversation. Re-adding an existing
// participant is a no-op.
func (r *GormConversationRepository) UpsertParticipant(
	ctx context.Context,
	conversationID kernel.UUID,
	userID kernel.UUID,
) error {
	if err := conversationID.Validate(); err != nil {
		return err
	}
	if err := userID.Validate(); err != nil {
		return err
	}

	dto := ParticipantDTO{
		ConversationID: conversationID.Bytes(),
		UserID:         userID.Bytes(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto).Error
}

// AddMessage appends a message to a conversation.
func (r *GormConversationRepository) AddMessage(ctx context.Context, entity *conversation.Message) error {
	if err := entity.Validate(); err != nil {
		return err
	}

	dto := messageFromDomain(entity)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormConversationRepository) load(
	ctx context.Context,
	dto ConversationDTO,
) (*conversation.Conversation, error) {
	var participants []ParticipantDTO
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", dto.ID).
		Find(&participants).Error
	if err != nil {
		return nil, err
	}

	aggregate, err := toDomain(dto, participants)
	if err != nil {
		return nil, err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return aggregate, nil
}
