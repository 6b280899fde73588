package queries

import (
	"context"
	"time"

	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListMessagesQueryHandler retrieves a conversation's history from the
// database after checking the reader is a participant.
type ListMessagesQueryHandler struct {
	db *gorm.DB
}

// NewListMessagesQueryHandler creates a handler for thread history.
func NewListMessagesQueryHandler(db *gorm.DB) ListMessagesQueryHandler {
	return ListMessagesQueryHandler{db: db}
}

// Handle executes the query, oldest message first.
func (h ListMessagesQueryHandler) Handle(
	ctx context.Context,
	query ListMessagesQuery,
) ([]ListMessagesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var member int64
	err := h.db.WithContext(ctx).Raw(`
		SELECT count(*) FROM conversation_participants
		WHERE conversation_id = ? AND user_id = ?
	`, query.ConversationID().String(), query.ActorID().String()).Scan(&member).Error
	if err != nil {
		return nil, err
	}
	if member == 0 {
		return nil, errs.NewNotAuthorizedError("only conversation participants can read messages")
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, author_id, text, created_at
		FROM messages
		WHERE conversation_id = ?
		ORDER BY created_at ASC, id ASC
	`, query.ConversationID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]ListMessagesQueryResponse, 0)

	for rows.Next() {
		var resp ListMessagesQueryResponse
		var id, authorID uuid.UUID
		var createdAt time.Time

		if err = rows.Scan(&id, &authorID, &resp.Text, &createdAt); err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.AuthorID, err = kernel.UUIDFromBytes(authorID[:]); err != nil {
			return nil, err
		}
		resp.CreatedAt = createdAt
		messages = append(messages, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}
