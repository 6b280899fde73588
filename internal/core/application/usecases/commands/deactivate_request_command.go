package commands

import (
	"errors"

	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/pkg/guard"
)

var ErrDeactivateRequestCommandIsNotConstructed = errors.New(
	"DeactivateRequestCommand must be created via NewDeactivateRequestCommand constructor",
)

// DeactivateRequestCommand represents an owner withdrawing their need from
// matching. The request row is kept; only the active flag flips.
type DeactivateRequestCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	actorID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeactivateRequestCommand creates a command to withdraw a request.
func NewDeactivateRequestCommand(requestID kernel.UUID, actorID kernel.UUID) (DeactivateRequestCommand, error) {
	cmd := DeactivateRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		requestID.Validate(),
		actorID.Validate(),
	); err != nil {
		return DeactivateRequestCommand{}, err
	}

	cmd.requestID = requestID
	cmd.actorID = actorID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeactivateRequestCommand) Validate() error {
	return c.guard.Validate(ErrDeactivateRequestCommandIsNotConstructed)
}

// RequestID returns the identifier of the request to withdraw.
func (c DeactivateRequestCommand) RequestID() kernel.UUID {
	return c.requestID
}

// ActorID returns the acting user's identifier.
func (c DeactivateRequestCommand) ActorID() kernel.UUID {
	return c.actorID
}
