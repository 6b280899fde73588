package ws

import (
	"context"
	"errors"
	"sync"
	"testing"

	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu     sync.Mutex
	events []ports.PushEvent
	fail   bool
}

func (c *fakeConn) WriteJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("broken pipe")
	}
	c.events = append(c.events, v.(ports.PushEvent))
	return nil
}

func (c *fakeConn) Close() error { return nil }

func (c *fakeConn) received() []ports.PushEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]ports.PushEvent(nil), c.events...)
}

func TestHub_PushToUser(t *testing.T) {
	hub := NewHub()
	userID := kernel.NewUUID()
	first := &fakeConn{}
	second := &fakeConn{}
	other := &fakeConn{}

	hub.join(userRoom(userID), first)
	hub.join(userRoom(userID), second)
	hub.join(userRoom(kernel.NewUUID()), other)

	event := ports.PushEvent{Kind: "new_offer", Data: map[string]string{"orderId": "x"}}
	err := hub.PushToUser(context.Background(), userID, event)

	require.NoError(t, err)
	assert.Equal(t, []ports.PushEvent{event}, first.received())
	assert.Equal(t, []ports.PushEvent{event}, second.received())
	assert.Empty(t, other.received())
}

func TestHub_PushToConversation(t *testing.T) {
	hub := NewHub()
	conversationID := kernel.NewUUID()
	member := &fakeConn{}

	hub.join(conversationRoom(conversationID), member)

	event := ports.PushEvent{Kind: "new_message", Data: "hello"}
	err := hub.PushToConversation(context.Background(), conversationID, event)

	require.NoError(t, err)
	assert.Equal(t, []ports.PushEvent{event}, member.received())
}

func TestHub_PushToAbsentRecipientIsNoop(t *testing.T) {
	hub := NewHub()

	err := hub.PushToUser(context.Background(), kernel.NewUUID(), ports.PushEvent{Kind: "new_offer"})

	require.NoError(t, err)
}

func TestHub_DropRemovesFromAllRooms(t *testing.T) {
	hub := NewHub()
	userID := kernel.NewUUID()
	conversationID := kernel.NewUUID()
	c := &fakeConn{}

	hub.join(userRoom(userID), c)
	hub.join(conversationRoom(conversationID), c)
	hub.drop(c)

	require.NoError(t, hub.PushToUser(context.Background(), userID, ports.PushEvent{Kind: "new_offer"}))
	require.NoError(t, hub.PushToConversation(context.Background(), conversationID, ports.PushEvent{Kind: "new_message"}))
	assert.Empty(t, c.received())
}

func TestHub_FailedWriteDoesNotAffectOthers(t *testing.T) {
	hub := NewHub()
	userID := kernel.NewUUID()
	broken := &fakeConn{fail: true}
	healthy := &fakeConn{}

	hub.join(userRoom(userID), broken)
	hub.join(userRoom(userID), healthy)

	event := ports.PushEvent{Kind: "offer_accepted"}
	err := hub.PushToUser(context.Background(), userID, event)

	require.NoError(t, err)
	assert.Equal(t, []ports.PushEvent{event}, healthy.received())
}
