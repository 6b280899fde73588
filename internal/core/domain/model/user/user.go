// Package user implements the user aggregate with its aggregated rating.
// The stored count and average are the source of truth for display; the
// store applies rating updates atomically so concurrent reviews never lose
// an increment.
package user

import (
	"errors"
	"strings"

	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/pkg/errs"
)

const (
	minRating = 1
	maxRating = 5
)

// ErrUserIsNotConstructed is returned when a User instance was not created
// through NewUser or RestoreUser.
var ErrUserIsNotConstructed = errors.New("User must be created via NewUser or RestoreUser constructor")

// User is a marketplace participant. Any user may act as client on their
// own orders and as provider on others'.
type User struct {
	id          kernel.UUID
	name        string
	ratingCount int
	ratingAvg   float64

	isConstructed bool
}

// NewUser creates a user with no ratings yet.
func NewUser(id kernel.UUID, name string) (*User, error) {
	return RestoreUser(id, name, 0, 0)
}

// RestoreUser reconstructs a user from persistence.
func RestoreUser(id kernel.UUID, name string, ratingCount int, ratingAvg float64) (*User, error) {
	u := &User{
		isConstructed: true,
	}

	if err := errors.Join(
		u.setID(id),
		u.setName(name),
		u.setRating(ratingCount, ratingAvg),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// Validate ensures the User instance was properly constructed.
func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}

	return nil
}

// ID returns the user's unique identifier.
func (u *User) ID() kernel.UUID {
	return u.id
}

// Name returns the user's display name.
func (u *User) Name() string {
	return u.name
}

// RatingCount returns how many reviews the user has received.
func (u *User) RatingCount() int {
	return u.ratingCount
}

// RatingAverage returns the running average of received ratings, 0 when
// the user has none.
func (u *User) RatingAverage() float64 {
	return u.ratingAvg
}

// ApplyRating folds a new rating into the running aggregate. The store
// performs the same update as a single SQL expression; this method exists
// for in-memory use and documents the formula.
func (u *User) ApplyRating(rating int) error {
	if rating < minRating || rating > maxRating {
		return errs.NewValueIsOutOfRangeError("rating", rating, minRating, maxRating)
	}

	u.ratingAvg = (u.ratingAvg*float64(u.ratingCount) + float64(rating)) / float64(u.ratingCount+1)
	u.ratingCount++
	return nil
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	u.name = name
	return nil
}

func (u *User) setRating(count int, avg float64) error {
	if count < 0 {
		return errs.NewValueIsInvalidError("ratingCount")
	}
	if avg < 0 || avg > maxRating {
		return errs.NewValueIsOutOfRangeError("ratingAverage", avg, 0, maxRating)
	}

	u.ratingCount = count
	u.ratingAvg = avg
	return nil
}
