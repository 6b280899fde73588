// Package conversationrepo persists conversation threads, their participant
// sets and their messages. Participants live in a join table with a composite
// primary key so repeated joins by the same provider collapse into one row.
package conversationrepo

import (
	"time"

	"ineed/internal/core/domain/model/conversation"
	"ineed/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ConversationDTO represents the database structure for persisting conversations.
type ConversationDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;uniqueIndex"`
}

// TableName overrides GORM's default naming convention to use "conversations".
func (ConversationDTO) TableName() string {
	return "conversations"
}

// ParticipantDTO represents one membership row of a conversation.
type ParticipantDTO struct {
	ConversationID uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// TableName overrides GORM's default naming convention.
func (ParticipantDTO) TableName() string {
	return "conversation_participants"
}

// MessageDTO represents the database structure for persisting messages.
type MessageDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	ConversationID uuid.UUID `gorm:"type:uuid;index"`
	AuthorID       uuid.UUID `gorm:"type:uuid"`
	Text           string
	CreatedAt      time.Time
}

// TableName overrides GORM's default naming convention to use "messages".
func (MessageDTO) TableName() string {
	return "messages"
}

func fromDomain(aggregate *conversation.Conversation) (ConversationDTO, []ParticipantDTO) {
	dto := ConversationDTO{
		ID:      aggregate.ID().Bytes(),
		OrderID: aggregate.OrderID().Bytes(),
	}

	participantIDs := aggregate.ParticipantIDs()
	participants := make([]ParticipantDTO, 0, len(participantIDs))
	for _, pid := range participantIDs {
		participants = append(participants, ParticipantDTO{
			ConversationID: dto.ID,
			UserID:         pid.Bytes(),
		})
	}

	return dto, participants
}

func toDomain(dto ConversationDTO, participants []ParticipantDTO) (*conversation.Conversation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	participantIDs := make([]kernel.UUID, 0, len(participants))
	for _, p := range participants {
		pid, participantErr := kernel.UUIDFromBytes(p.UserID[:])
		if participantErr != nil {
			return nil, participantErr
		}
		participantIDs = append(participantIDs, pid)
	}

	return conversation.RestoreConversation(id, orderID, participantIDs)
}

func messageFromDomain(entity *conversation.Message) MessageDTO {
	return MessageDTO{
		ID:             entity.ID().Bytes(),
		ConversationID: entity.ConversationID().Bytes(),
		AuthorID:       entity.AuthorID().Bytes(),
		Text:           entity.Text(),
		CreatedAt:      entity.CreatedAt(),
	}
}
