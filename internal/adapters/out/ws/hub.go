// Package ws delivers realtime events over websockets. Connections are
// grouped into rooms: every user gets a personal room on connect and may
// join rooms for conversations they participate in. Delivery is best effort;
// the notification inbox is the durable record.
package ws

import (
	"context"
	"sync"

	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/core/ports"
)

// conn is the subset of *websocket.Conn the hub writes through. Narrowed so
// tests can observe deliveries without opening sockets.
type conn interface {
	WriteJSON(v any) error
	Close() error
}

// Hub tracks connected sockets by room and implements ports.RealtimePusher.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[conn]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[conn]struct{}),
	}
}

func userRoom(userID kernel.UUID) string {
	return "user:" + userID.String()
}

func conversationRoom(conversationID kernel.UUID) string {
	return "conversation:" + conversationID.String()
}

func (h *Hub) join(room string, c conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.rooms[room]
	if !ok {
		members = make(map[conn]struct{})
		h.rooms[room] = members
	}
	members[c] = struct{}{}
}

// drop removes the connection from every room it joined.
func (h *Hub) drop(c conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for room, members := range h.rooms {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
}

// broadcast writes the event to every member of the room. A failed write
// only affects that connection; its read loop will notice the broken socket
// and clean up.
func (h *Hub) broadcast(room string, event ports.PushEvent) {
	h.mu.RLock()
	members := make([]conn, 0, len(h.rooms[room]))
	for c := range h.rooms[room] {
		members = append(members, c)
	}
	h.mu.RUnlock()

	for _, c := range members {
		_ = c.WriteJSON(event)
	}
}

// PushToUser delivers an event to the user's open connections. Absent
// recipients are not an error.
func (h *Hub) PushToUser(_ context.Context, userID kernel.UUID, event ports.PushEvent) error {
	h.broadcast(userRoom(userID), event)
	return nil
}

// PushToConversation delivers an event to every socket subscribed to the
// conversation's room.
func (h *Hub) PushToConversation(_ context.Context, conversationID kernel.UUID, event ports.PushEvent) error {
	h.broadcast(conversationRoom(conversationID), event)
	return nil
}
