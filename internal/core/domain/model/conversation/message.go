package conversation

import (
	"errors"
	"strings"
	"time"

	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/pkg/errs"
)

// ErrMessageIsNotConstructed is returned when a Message instance was not
// created through NewMessage or RestoreMessage.
var ErrMessageIsNotConstructed = errors.New("Message must be created via NewMessage or RestoreMessage constructor")

// Message is a single entry in a conversation thread.
type Message struct {
	id             kernel.UUID
	conversationID kernel.UUID
	authorID       kernel.UUID
	text           string
	createdAt      time.Time

	isConstructed bool
}

// NewMessage creates a message with a non-empty text body.
func NewMessage(id kernel.UUID, conversationID kernel.UUID, authorID kernel.UUID, text string) (*Message, error) {
	return RestoreMessage(id, conversationID, authorID, text, time.Now().UTC())
}

// RestoreMessage reconstructs a message from persistence.
func RestoreMessage(
	id kernel.UUID,
	conversationID kernel.UUID,
	authorID kernel.UUID,
	text string,
	createdAt time.Time,
) (*Message, error) {
	m := &Message{
		isConstructed: true,
	}

	if err := errors.Join(
		m.setID(id),
		m.setConversationID(conversationID),
		m.setAuthorID(authorID),
		m.setText(text),
	); err != nil {
		return nil, err
	}

	m.createdAt = createdAt
	return m, nil
}

// Validate ensures the Message instance was properly constructed.
func (m *Message) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMessageIsNotConstructed
	}

	return nil
}

// ID returns the message's unique identifier.
func (m *Message) ID() kernel.UUID {
	return m.id
}

// ConversationID returns the thread this message belongs to.
func (m *Message) ConversationID() kernel.UUID {
	return m.conversationID
}

// AuthorID returns the message author's identifier.
func (m *Message) AuthorID() kernel.UUID {
	return m.authorID
}

// Text returns the message body.
func (m *Message) Text() string {
	return m.text
}

// CreatedAt returns the message's creation timestamp.
func (m *Message) CreatedAt() time.Time {
	return m.createdAt
}

func (m *Message) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *Message) setConversationID(conversationID kernel.UUID) error {
	if err := conversationID.Validate(); err != nil {
		return err
	}
	m.conversationID = conversationID
	return nil
}

func (m *Message) setAuthorID(authorID kernel.UUID) error {
	if err := authorID.Validate(); err != nil {
		return err
	}
	m.authorID = authorID
	return nil
}

func (m *Message) setText(text string) error {
	if strings.TrimSpace(text) == "" {
		return errs.NewValueIsRequiredError("text")
	}
	m.text = text
	return nil
}
