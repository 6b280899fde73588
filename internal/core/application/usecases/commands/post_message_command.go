package commands

import (
	"errors"
	"strings"

	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/pkg/errs"
	"ineed/internal/pkg/guard"
)

var ErrPostMessageCommandIsNotConstructed = errors.New(
	"PostMessageCommand must be created via NewPostMessageCommand constructor",
)

// PostMessageCommand represents a participant writing into an order's
// conversation thread.
type PostMessageCommand struct { //nolint:recvcheck //using for validation
	messageID      kernel.UUID
	conversationID kernel.UUID
	authorID       kernel.UUID
	text           string

	guard guard.ConstructorGuard
}

// NewPostMessageCommand creates a command to append a message to a thread.
func NewPostMessageCommand(
	messageID kernel.UUID,
	conversationID kernel.UUID,
	authorID kernel.UUID,
	text string,
) (PostMessageCommand, error) {
	cmd := PostMessageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		messageID.Validate(),
		conversationID.Validate(),
		authorID.Validate(),
		cmd.setText(text),
	); err != nil {
		return PostMessageCommand{}, err
	}

	cmd.messageID = messageID
	cmd.conversationID = conversationID
	cmd.authorID = authorID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PostMessageCommand) Validate() error {
	return c.guard.Validate(ErrPostMessageCommandIsNotConstructed)
}

// MessageID returns the identifier for the new message.
func (c PostMessageCommand) MessageID() kernel.UUID {
	return c.messageID
}

// ConversationID returns the thread to append to.
func (c PostMessageCommand) ConversationID() kernel.UUID {
	return c.conversationID
}

// AuthorID returns the writing user's identifier.
func (c PostMessageCommand) AuthorID() kernel.UUID {
	return c.authorID
}

// Text returns the message body.
func (c PostMessageCommand) Text() string {
	return c.text
}

func (c *PostMessageCommand) setText(text string) error {
	if strings.TrimSpace(text) == "" {
		return errs.NewValueIsRequiredError("text")
	}

	c.text = text
	return nil
}
