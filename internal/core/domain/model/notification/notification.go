// Package notification implements the stored notification entity. A
// notification is persisted first and pushed to connected sockets after, so
// a missed push is recoverable from the inbox.
package notification

import (
	"errors"
	"fmt"
	"time"

	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/pkg/errs"
)

// ErrNotificationIsNotConstructed is returned when a Notification instance
// was not created through NewNotification or RestoreNotification.
var ErrNotificationIsNotConstructed = errors.New(
	"Notification must be created via NewNotification or RestoreNotification constructor")

// Kind labels what happened. The payload carries the related identifiers.
type Kind int

const (
	// KindUnknown represents an invalid or undefined kind.
	KindUnknown Kind = iota

	// KindNewOffer tells a client a provider bid on their order.
	KindNewOffer

	// KindOfferAccepted tells a provider their offer won.
	KindOfferAccepted

	// KindNewMessage tells a participant the thread has a new message.
	KindNewMessage

	// KindNewReview tells a user they received a review.
	KindNewReview

	// KindOrderCompleted tells the provider the client confirmed the work.
	KindOrderCompleted
)

func getKindStrings() map[Kind]string {
	return map[Kind]string{
		KindUnknown:        "unknown",
		KindNewOffer:       "new_offer",
		KindOfferAccepted:  "offer_accepted",
		KindNewMessage:     "new_message",
		KindNewReview:      "new_review",
		KindOrderCompleted: "order_completed",
	}
}

// ParseKind converts the stored representation to a Kind.
func ParseKind(s string) (Kind, error) {
	for k, v := range getKindStrings() {
		if v == s && k != KindUnknown {
			return k, nil
		}
	}
	return KindUnknown, errs.NewValueIsInvalidErrorWithCause("kind",
		fmt.Errorf("%q is not a valid notification kind", s))
}

// Validate checks the Kind is one of the defined event labels.
func (k Kind) Validate() error {
	if k <= KindUnknown || k > KindOrderCompleted {
		return errs.NewValueIsInvalidErrorWithCause("kind",
			fmt.Errorf("%d is not a valid notification kind", k))
	}
	return nil
}

// String returns the stored representation. Implements fmt.Stringer.
func (k Kind) String() string {
	if s, ok := getKindStrings()[k]; ok {
		return s
	}
	return "unknown"
}

// Notification is a stored inbox entry for one recipient.
type Notification struct {
	id          kernel.UUID
	recipientID kernel.UUID
	kind        Kind
	orderID     kernel.UUID
	text        string
	isRead      bool
	createdAt   time.Time

	isConstructed bool
}

// NewNotification creates an unread notification about an order event.
func NewNotification(
	id kernel.UUID,
	recipientID kernel.UUID,
	kind Kind,
	orderID kernel.UUID,
	text string,
) (*Notification, error) {
	return RestoreNotification(id, recipientID, kind, orderID, text, false, time.Now().UTC())
}

// RestoreNotification reconstructs a notification from persistence.
func RestoreNotification(
	id kernel.UUID,
	recipientID kernel.UUID,
	kind Kind,
	orderID kernel.UUID,
	text string,
	isRead bool,
	createdAt time.Time,
) (*Notification, error) {
	n := &Notification{
		isConstructed: true,
	}

	if err := errors.Join(
		n.setID(id),
		n.setRecipientID(recipientID),
		n.setKind(kind),
		n.setOrderID(orderID),
	); err != nil {
		return nil, err
	}

	n.text = text
	n.isRead = isRead
	n.createdAt = createdAt
	return n, nil
}

// Validate ensures the Notification instance was properly constructed.
func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}

	return nil
}

// ID returns the notification's unique identifier.
func (n *Notification) ID() kernel.UUID {
	return n.id
}

// RecipientID returns the inbox owner's identifier.
func (n *Notification) RecipientID() kernel.UUID {
	return n.recipientID
}

// Kind returns what happened.
func (n *Notification) Kind() Kind {
	return n.kind
}

// OrderID returns the order the event relates to.
func (n *Notification) OrderID() kernel.UUID {
	return n.orderID
}

// Text returns the display text.
func (n *Notification) Text() string {
	return n.text
}

// IsRead reports whether the recipient has seen the notification.
func (n *Notification) IsRead() bool {
	return n.isRead
}

// CreatedAt returns the notification's creation timestamp.
func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

// IsOwnedBy reports whether the notification belongs to the given user.
func (n *Notification) IsOwnedBy(userID kernel.UUID) bool {
	return n.recipientID.IsEqual(userID)
}

// MarkRead flags the notification as seen. Idempotent.
func (n *Notification) MarkRead() {
	n.isRead = true
}

func (n *Notification) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	n.id = id
	return nil
}

func (n *Notification) setRecipientID(recipientID kernel.UUID) error {
	if err := recipientID.Validate(); err != nil {
		return err
	}
	n.recipientID = recipientID
	return nil
}

func (n *Notification) setKind(kind Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	n.kind = kind
	return nil
}

func (n *Notification) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	n.orderID = orderID
	return nil
}
