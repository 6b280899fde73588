package commands

import (
	"errors"

	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/core/domain/model/request"
	"ineed/internal/pkg/guard"
)

var ErrCreateRequestCommandIsNotConstructed = errors.New(
	"CreateRequestCommand must be created via NewCreateRequestCommand constructor",
)

// CreateRequestCommand represents a user posting a new need. Creating the
// request also creates its order and conversation, so the command carries
// identifiers for all three.
//
// Example:
//
//	cmd, err := NewCreateRequestCommand(
//	    kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
//	    ownerID, "Fix kitchen sink", "Drain leaks under the counter.",
//	    "home-repair", request.TypeService, location, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid request data: %w", err)
//	}
type CreateRequestCommand struct { //nolint:recvcheck //using for validation
	requestID      kernel.UUID
	orderID        kernel.UUID
	conversationID kernel.UUID
	ownerID        kernel.UUID
	title          string
	description    string
	category       string
	requestType    request.Type
	location       kernel.GeoPoint
	budget         *float64

	guard guard.ConstructorGuard
}

// NewCreateRequestCommand creates a command to post a new need.
// Field validation is delegated to the aggregate constructors; the command
// only checks the identifiers it must mint rows for.
func NewCreateRequestCommand(
	requestID kernel.UUID,
	orderID kernel.UUID,
	conversationID kernel.UUID,
	ownerID kernel.UUID,
	title string,
	description string,
	category string,
	requestType request.Type,
	location kernel.GeoPoint,
	budget *float64,
) (CreateRequestCommand, error) {
	cmd := CreateRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		requestID.Validate(),
		orderID.Validate(),
		conversationID.Validate(),
		ownerID.Validate(),
	); err != nil {
		return CreateRequestCommand{}, err
	}

	cmd.requestID = requestID
	cmd.orderID = orderID
	cmd.conversationID = conversationID
	cmd.ownerID = ownerID
	cmd.title = title
	cmd.description = description
	cmd.category = category
	cmd.requestType = requestType
	cmd.location = location
	cmd.budget = budget
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateRequestCommand) Validate() error {
	return c.guard.Validate(ErrCreateRequestCommandIsNotConstructed)
}

// RequestID returns the identifier for the new request.
func (c CreateRequestCommand) RequestID() kernel.UUID {
	return c.requestID
}

// OrderID returns the identifier for the new order.
func (c CreateRequestCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ConversationID returns the identifier for the new conversation.
func (c CreateRequestCommand) ConversationID() kernel.UUID {
	return c.conversationID
}

// OwnerID returns the posting user's identifier.
func (c CreateRequestCommand) OwnerID() kernel.UUID {
	return c.ownerID
}

// Title returns the request title.
func (c CreateRequestCommand) Title() string {
	return c.title
}

// Description returns the request description.
func (c CreateRequestCommand) Description() string {
	return c.description
}

// Category returns the request category.
func (c CreateRequestCommand) Category() string {
	return c.category
}

// RequestType returns whether a service or a product is requested.
func (c CreateRequestCommand) RequestType() request.Type {
	return c.requestType
}

// Location returns the geographic anchor.
func (c CreateRequestCommand) Location() kernel.GeoPoint {
	return c.location
}

// Budget returns the optional budget.
func (c CreateRequestCommand) Budget() *float64 {
	return c.budget
}
