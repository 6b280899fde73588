package commands

import (
	"context"
	"log/slog"

	"ineed/internal/core/domain/model/conversation"
	"ineed/internal/core/ports"
	"ineed/internal/pkg/errs"
)

// PostMessageCommandHandler handles appends to a conversation thread.
// Posting requires membership in the thread, checked explicitly against the
// stored participant set. After commit the message is pushed to everyone
// subscribed to the conversation; the stored row is the durable copy, so a
// failed push is logged and dropped.
type PostMessageCommandHandler struct {
	uowFactory MessageUoWFactory
	pusher     ports.RealtimePusher
	logger     *slog.Logger
}

// NewPostMessageCommandHandler creates a handler for posting messages.
func NewPostMessageCommandHandler(
	uowFactory MessageUoWFactory,
	pusher ports.RealtimePusher,
	logger *slog.Logger,
) PostMessageCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return PostMessageCommandHandler{
		uowFactory: uowFactory,
		pusher:     pusher,
		logger:     logger,
	}
}

// Handle processes the message command.
func (h *PostMessageCommandHandler) Handle(ctx context.Context, cmd PostMessageCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ConversationRepository()
	thread, err := repo.Get(ctx, cmd.ConversationID())
	if err != nil {
		return err
	}

	if !thread.HasParticipant(cmd.AuthorID()) {
		return errs.NewNotAuthorizedError("only conversation participants can post messages")
	}

	message, err := conversation.NewMessage(cmd.MessageID(), cmd.ConversationID(), cmd.AuthorID(), cmd.Text())
	if err != nil {
		return err
	}

	if err = repo.AddMessage(ctx, message); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	event := ports.PushEvent{
		Kind: "new_message",
		Data: map[string]any{
			"id":             message.ID().String(),
			"conversationId": cmd.ConversationID().String(),
			"authorId":       cmd.AuthorID().String(),
			"text":           cmd.Text(),
			"createdAt":      message.CreatedAt(),
		},
	}
	if err = h.pusher.PushToConversation(ctx, cmd.ConversationID(), event); err != nil {
		h.logger.WarnContext(ctx, "push message",
			"conversation", cmd.ConversationID().String(), "err", err)
	}
	return nil
}
