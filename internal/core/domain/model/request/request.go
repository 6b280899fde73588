package request

import (
	"errors"
	"fmt"

	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/pkg/errs"
)

// ErrRequestIsNotConstructed is returned when a Request instance was not
// created through NewRequest or RestoreRequest.
var ErrRequestIsNotConstructed = errors.New("Request must be created via NewRequest or RestoreRequest constructor")

const maxTitleLength = 255

// Request represents a user's posted need: a service to be performed or a
// product to be sourced, anchored to a geographic location so nearby
// providers can discover it.
//
// Invariants:
//   - title and description are non-empty; title is capped at 255 characters
//   - the location is a validated coordinate pair
//   - budget, when set, is positive
//   - a request is never hard-deleted; Deactivate flips isActive so the
//     order and offer history behind it stays intact
type Request struct {
	id          kernel.UUID
	ownerID     kernel.UUID
	title       string
	description string
	category    string
	reqType     Type
	location    kernel.GeoPoint
	budget      *float64
	isActive    bool

	isConstructed bool
}

// NewRequest creates an active request with validated fields.
// budget may be nil when the poster has no figure in mind.
func NewRequest(
	id kernel.UUID,
	ownerID kernel.UUID,
	title string,
	description string,
	category string,
	reqType Type,
	location kernel.GeoPoint,
	budget *float64,
) (*Request, error) {
	r := &Request{
		isActive:      true,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setOwnerID(ownerID),
		r.setTitle(title),
		r.setDescription(description),
		r.setCategory(category),
		r.setType(reqType),
		r.setLocation(location),
		r.setBudget(budget),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRequest reconstructs a request from persistence, including its
// active flag. Used by the repository layer.
func RestoreRequest(
	id kernel.UUID,
	ownerID kernel.UUID,
	title string,
	description string,
	category string,
	reqType Type,
	location kernel.GeoPoint,
	budget *float64,
	isActive bool,
) (*Request, error) {
	r, err := NewRequest(id, ownerID, title, description, category, reqType, location, budget)
	if err != nil {
		return nil, err
	}

	r.isActive = isActive
	return r, nil
}

// Validate ensures the Request instance was properly constructed.
func (r *Request) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRequestIsNotConstructed
	}

	return nil
}

// ID returns the request's unique identifier.
func (r *Request) ID() kernel.UUID {
	return r.id
}

// OwnerID returns the posting user's identifier.
func (r *Request) OwnerID() kernel.UUID {
	return r.ownerID
}

// Title returns the request title.
func (r *Request) Title() string {
	return r.title
}

// Description returns the request description.
func (r *Request) Description() string {
	return r.description
}

// Category returns the request's category identifier.
func (r *Request) Category() string {
	return r.category
}

// Type returns whether the request is for a service or a product.
func (r *Request) Type() Type {
	return r.reqType
}

// Location returns the request's geographic anchor.
func (r *Request) Location() kernel.GeoPoint {
	return r.location
}

// Budget returns the optional budget. Nil when the poster set none.
func (r *Request) Budget() *float64 {
	return r.budget
}

// IsActive reports whether the request is still visible to searchers.
func (r *Request) IsActive() bool {
	return r.isActive
}

// IsOwnedBy reports whether the given user posted this request.
// Ownership gates Edit and Deactivate.
func (r *Request) IsOwnedBy(userID kernel.UUID) bool {
	return r.ownerID.IsEqual(userID)
}

// Edit updates the mutable fields of the request. Category, type and
// location are fixed at creation: changing what or where a request is about
// would invalidate offers already made against it.
func (r *Request) Edit(title string, description string, budget *float64) error {
	return errors.Join(
		r.setTitle(title),
		r.setDescription(description),
		r.setBudget(budget),
	)
}

// Deactivate removes the request from listings without deleting it.
// Idempotent: deactivating an inactive request is a no-op.
func (r *Request) Deactivate() {
	r.isActive = false
}

func (r *Request) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Request) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}
	r.ownerID = ownerID
	return nil
}

func (r *Request) setTitle(title string) error {
	if title == "" {
		return errs.NewValueIsRequiredError("title")
	}
	if len(title) > maxTitleLength {
		return errs.NewValueIsOutOfRangeError("title length", len(title), 1, maxTitleLength)
	}
	r.title = title
	return nil
}

func (r *Request) setDescription(description string) error {
	if description == "" {
		return errs.NewValueIsRequiredError("description")
	}
	r.description = description
	return nil
}

func (r *Request) setCategory(category string) error {
	if category == "" {
		return errs.NewValueIsRequiredError("category")
	}
	r.category = category
	return nil
}

func (r *Request) setType(reqType Type) error {
	if err := reqType.Validate(); err != nil {
		return err
	}
	r.reqType = reqType
	return nil
}

func (r *Request) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	r.location = location
	return nil
}

func (r *Request) setBudget(budget *float64) error {
	if budget != nil && *budget <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("budget",
			fmt.Errorf("%f is not greater than 0", *budget))
	}
	r.budget = budget
	return nil
}
