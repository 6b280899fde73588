package ws

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"ineed/internal/core/domain/model/conversation"
	"ineed/internal/core/domain/model/kernel"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// ConversationReader loads a conversation so the handler can verify
// participation before letting a socket join its room.
type ConversationReader interface {
	Get(ctx context.Context, id kernel.UUID) (*conversation.Conversation, error)
}

// clientCommand is what a connected socket may send. The protocol is mostly
// server push; the only client action is joining conversation rooms.
type clientCommand struct {
	Action         string `json:"action"`
	ConversationID string `json:"conversationId"`
}

var errNotParticipant = errors.New("user is not a participant of the conversation")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Handler upgrades HTTP requests to websocket connections and wires them
// into the hub.
type Handler struct {
	hub           *Hub
	conversations ConversationReader
	logger        *slog.Logger
}

// NewHandler creates a websocket handler backed by the given hub.
func NewHandler(hub *Hub, conversations ConversationReader, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		hub:           hub,
		conversations: conversations,
		logger:        logger,
	}
}

// Serve handles the websocket endpoint. The acting user comes from the
// X-User-ID header and is subscribed to their personal room immediately;
// conversation rooms are joined on request after a participation check.
func (h *Handler) Serve(c echo.Context) error {
	userID, err := kernel.UUIDFromString(c.Request().Header.Get("X-User-ID"))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing or invalid user id"})
	}

	socket, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	h.hub.join(userRoom(userID), socket)
	defer func() {
		h.hub.drop(socket)
		_ = socket.Close()
	}()

	ctx := c.Request().Context()
	for {
		var cmd clientCommand
		if err := socket.ReadJSON(&cmd); err != nil {
			return nil
		}

		if cmd.Action != "join" {
			continue
		}

		if err := h.joinConversation(ctx, socket, userID, cmd.ConversationID); err != nil {
			h.logger.WarnContext(ctx, "websocket join rejected",
				"userId", userID.String(),
				"conversationId", cmd.ConversationID,
				"error", err)
		}
	}
}

func (h *Handler) joinConversation(
	ctx context.Context,
	socket *websocket.Conn,
	userID kernel.UUID,
	rawConversationID string,
) error {
	conversationID, err := kernel.UUIDFromString(rawConversationID)
	if err != nil {
		return err
	}

	thread, err := h.conversations.Get(ctx, conversationID)
	if err != nil {
		return err
	}

	if !thread.HasParticipant(userID) {
		return errNotParticipant
	}

	h.hub.join(conversationRoom(conversationID), socket)
	return nil
}
