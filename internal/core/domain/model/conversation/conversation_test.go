package conversation_test

import (
	"testing"
	"time"

	"ineed/internal/core/domain/model/conversation"
	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConversation(t *testing.T) {
	t.Run("creates thread with client as participant", func(t *testing.T) {
		id := kernel.NewUUID()
		orderID := kernel.NewUUID()
		clientID := kernel.NewUUID()

		c, err := conversation.NewConversation(id, orderID, clientID)

		require.NoError(t, err)
		assert.True(t, c.ID().IsEqual(id))
		assert.True(t, c.OrderID().IsEqual(orderID))
		assert.True(t, c.HasParticipant(clientID))
		assert.False(t, c.HasParticipant(kernel.NewUUID()))
	})

	t.Run("rejects invalid ids", func(t *testing.T) {
		var zero kernel.UUID

		_, err := conversation.NewConversation(zero, kernel.NewUUID(), kernel.NewUUID())
		require.Error(t, err)

		_, err = conversation.NewConversation(kernel.NewUUID(), zero, kernel.NewUUID())
		require.Error(t, err)

		_, err = conversation.NewConversation(kernel.NewUUID(), kernel.NewUUID(), zero)
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var c conversation.Conversation
		require.ErrorIs(t, c.Validate(), conversation.ErrConversationIsNotConstructed)
	})
}

func TestConversation_AddParticipant(t *testing.T) {
	clientID := kernel.NewUUID()
	c, err := conversation.NewConversation(kernel.NewUUID(), kernel.NewUUID(), clientID)
	require.NoError(t, err)

	providerID := kernel.NewUUID()
	require.NoError(t, c.AddParticipant(providerID))
	assert.True(t, c.HasParticipant(providerID))
	assert.Len(t, c.ParticipantIDs(), 2)

	// Re-adding is a no-op.
	require.NoError(t, c.AddParticipant(providerID))
	assert.Len(t, c.ParticipantIDs(), 2)
}

func TestRestoreConversation(t *testing.T) {
	a := kernel.NewUUID()
	b := kernel.NewUUID()

	c, err := conversation.RestoreConversation(kernel.NewUUID(), kernel.NewUUID(), []kernel.UUID{a, b})

	require.NoError(t, err)
	assert.True(t, c.HasParticipant(a))
	assert.True(t, c.HasParticipant(b))
}

func TestNewMessage(t *testing.T) {
	t.Run("creates message", func(t *testing.T) {
		id := kernel.NewUUID()
		conversationID := kernel.NewUUID()
		authorID := kernel.NewUUID()

		m, err := conversation.NewMessage(id, conversationID, authorID, "hello there")

		require.NoError(t, err)
		assert.True(t, m.ID().IsEqual(id))
		assert.True(t, m.ConversationID().IsEqual(conversationID))
		assert.True(t, m.AuthorID().IsEqual(authorID))
		assert.Equal(t, "hello there", m.Text())
		assert.False(t, m.CreatedAt().IsZero())
	})

	t.Run("rejects empty text", func(t *testing.T) {
		_, err := conversation.NewMessage(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "   ")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var m conversation.Message
		require.ErrorIs(t, m.Validate(), conversation.ErrMessageIsNotConstructed)
	})
}

func TestRestoreMessage(t *testing.T) {
	createdAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	m, err := conversation.RestoreMessage(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "text", createdAt)

	require.NoError(t, err)
	assert.Equal(t, createdAt, m.CreatedAt())
}
