package conversation

import (
	"errors"

	"ineed/internal/core/domain/model/kernel"
)

// ErrConversationIsNotConstructed is returned when a Conversation instance
// was not created through NewConversation or RestoreConversation.
var ErrConversationIsNotConstructed = errors.New(
	"Conversation must be created via NewConversation or RestoreConversation constructor")

// Conversation is the message thread attached to exactly one order. The
// client joins at creation; providers join when they make an offer.
// Participation, not order ownership, gates posting and reading messages.
type Conversation struct {
	id           kernel.UUID
	orderID      kernel.UUID
	participants map[kernel.UUID]struct{}

	isConstructed bool
}

// NewConversation creates the thread for an order with the client as its
// first participant.
func NewConversation(id kernel.UUID, orderID kernel.UUID, clientID kernel.UUID) (*Conversation, error) {
	c, err := RestoreConversation(id, orderID, nil)
	if err != nil {
		return nil, err
	}

	if err := c.AddParticipant(clientID); err != nil {
		return nil, err
	}
	return c, nil
}

// RestoreConversation reconstructs a conversation from persistence.
func RestoreConversation(id kernel.UUID, orderID kernel.UUID, participantIDs []kernel.UUID) (*Conversation, error) {
	c := &Conversation{
		participants:  make(map[kernel.UUID]struct{}),
		isConstructed: true,
	}

	if err := errors.Join(
		c.setID(id),
		c.setOrderID(orderID),
	); err != nil {
		return nil, err
	}

	for _, pid := range participantIDs {
		if err := c.AddParticipant(pid); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Validate ensures the Conversation instance was properly constructed.
func (c *Conversation) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrConversationIsNotConstructed
	}

	return nil
}

// ID returns the conversation's unique identifier.
func (c *Conversation) ID() kernel.UUID {
	return c.id
}

// OrderID returns the identifier of the order this thread belongs to.
func (c *Conversation) OrderID() kernel.UUID {
	return c.orderID
}

// AddParticipant adds a user to the thread. Adding an existing participant
// is a no-op, so repeated offers by the same provider stay harmless.
func (c *Conversation) AddParticipant(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.participants[userID] = struct{}{}
	return nil
}

// HasParticipant reports whether the user is in the thread.
func (c *Conversation) HasParticipant(userID kernel.UUID) bool {
	_, ok := c.participants[userID]
	return ok
}

// ParticipantIDs returns the thread's participants in unspecified order.
func (c *Conversation) ParticipantIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(c.participants))
	for id := range c.participants {
		ids = append(ids, id)
	}
	return ids
}

func (c *Conversation) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Conversation) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}
