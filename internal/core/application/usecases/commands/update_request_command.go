package commands

import (
	"errors"

	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/pkg/guard"
)

var ErrUpdateRequestCommandIsNotConstructed = errors.New(
	"UpdateRequestCommand must be created via NewUpdateRequestCommand constructor",
)

// UpdateRequestCommand represents an owner editing their posted need.
// Category, type, and location are fixed at creation and cannot be edited.
type UpdateRequestCommand struct { //nolint:recvcheck //using for validation
	requestID   kernel.UUID
	actorID     kernel.UUID
	title       string
	description string
	budget      *float64

	guard guard.ConstructorGuard
}

// NewUpdateRequestCommand creates a command to edit a request's mutable fields.
func NewUpdateRequestCommand(
	requestID kernel.UUID,
	actorID kernel.UUID,
	title string,
	description string,
	budget *float64,
) (UpdateRequestCommand, error) {
	cmd := UpdateRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		requestID.Validate(),
		actorID.Validate(),
	); err != nil {
		return UpdateRequestCommand{}, err
	}

	cmd.requestID = requestID
	cmd.actorID = actorID
	cmd.title = title
	cmd.description = description
	cmd.budget = budget
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateRequestCommand) Validate() error {
	return c.guard.Validate(ErrUpdateRequestCommandIsNotConstructed)
}

// RequestID returns the identifier of the request to edit.
func (c UpdateRequestCommand) RequestID() kernel.UUID {
	return c.requestID
}

// ActorID returns the acting user's identifier.
func (c UpdateRequestCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Title returns the new title.
func (c UpdateRequestCommand) Title() string {
	return c.title
}

// Description returns the new description.
func (c UpdateRequestCommand) Description() string {
	return c.description
}

// Budget returns the new budget, nil to clear it.
func (c UpdateRequestCommand) Budget() *float64 {
	return c.budget
}
