package commands

import (
	"errors"

	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/pkg/guard"
)

var ErrMarkNotificationReadCommandIsNotConstructed = errors.New(
	"MarkNotificationReadCommand must be created via NewMarkNotificationReadCommand constructor",
)

// MarkNotificationReadCommand represents a user acknowledging an inbox entry.
type MarkNotificationReadCommand struct { //nolint:recvcheck //using for validation
	notificationID kernel.UUID
	actorID        kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkNotificationReadCommand creates a command to mark a notification read.
func NewMarkNotificationReadCommand(notificationID kernel.UUID, actorID kernel.UUID) (MarkNotificationReadCommand, error) {
	cmd := MarkNotificationReadCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		notificationID.Validate(),
		actorID.Validate(),
	); err != nil {
		return MarkNotificationReadCommand{}, err
	}

	cmd.notificationID = notificationID
	cmd.actorID = actorID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkNotificationReadCommand) Validate() error {
	return c.guard.Validate(ErrMarkNotificationReadCommandIsNotConstructed)
}

// NotificationID returns the inbox entry to acknowledge.
func (c MarkNotificationReadCommand) NotificationID() kernel.UUID {
	return c.notificationID
}

// ActorID returns the acting user's identifier.
func (c MarkNotificationReadCommand) ActorID() kernel.UUID {
	return c.actorID
}
