package review

import (
	"errors"
	"fmt"
	"time"

	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/pkg/errs"
)

const (
	minRating = 1
	maxRating = 5
)

// ErrReviewIsNotConstructed is returned when a Review instance was not
// created through NewReview or RestoreReview.
var ErrReviewIsNotConstructed = errors.New("Review must be created via NewReview or RestoreReview constructor")

// Review is a rating left by one order party about the other after the
// order completes. One review per author per order; the store enforces
// uniqueness, this type enforces field validity.
type Review struct {
	id          kernel.UUID
	orderID     kernel.UUID
	authorID    kernel.UUID
	recipientID kernel.UUID
	rating      int
	text        string
	aspects     Aspects
	createdAt   time.Time

	isConstructed bool
}

// Aspects holds optional per-dimension scores, each 1..5 when present.
type Aspects struct {
	Communication *int
	Quality       *int
	Punctuality   *int
}

// NewReview creates a review with validated fields.
func NewReview(
	id kernel.UUID,
	orderID kernel.UUID,
	authorID kernel.UUID,
	recipientID kernel.UUID,
	rating int,
	text string,
	aspects Aspects,
) (*Review, error) {
	return RestoreReview(id, orderID, authorID, recipientID, rating, text, aspects, time.Now().UTC())
}

// RestoreReview reconstructs a review from persistence.
func RestoreReview(
	id kernel.UUID,
	orderID kernel.UUID,
	authorID kernel.UUID,
	recipientID kernel.UUID,
	rating int,
	text string,
	aspects Aspects,
	createdAt time.Time,
) (*Review, error) {
	r := &Review{
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setParties(authorID, recipientID),
		r.setOrderID(orderID),
		r.setRating(rating),
		r.setAspects(aspects),
	); err != nil {
		return nil, err
	}

	r.text = text
	r.createdAt = createdAt
	return r, nil
}

// Validate ensures the Review instance was properly constructed.
func (r *Review) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrReviewIsNotConstructed
	}

	return nil
}

// ID returns the review's unique identifier.
func (r *Review) ID() kernel.UUID {
	return r.id
}

// OrderID returns the completed order the review refers to.
func (r *Review) OrderID() kernel.UUID {
	return r.orderID
}

// AuthorID returns the reviewer's identifier.
func (r *Review) AuthorID() kernel.UUID {
	return r.authorID
}

// RecipientID returns the reviewed party's identifier.
func (r *Review) RecipientID() kernel.UUID {
	return r.recipientID
}

// Rating returns the overall score, 1..5.
func (r *Review) Rating() int {
	return r.rating
}

// Text returns the optional free-form comment. Empty when none given.
func (r *Review) Text() string {
	return r.text
}

// AspectRatings returns the optional per-dimension scores.
func (r *Review) AspectRatings() Aspects {
	return r.aspects
}

// CreatedAt returns the review's creation timestamp.
func (r *Review) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Review) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Review) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	r.orderID = orderID
	return nil
}

func (r *Review) setParties(authorID kernel.UUID, recipientID kernel.UUID) error {
	if err := errors.Join(authorID.Validate(), recipientID.Validate()); err != nil {
		return err
	}
	if authorID.IsEqual(recipientID) {
		return errs.NewValueIsInvalidErrorWithCause("recipientID",
			errors.New("author cannot review themselves"))
	}

	r.authorID = authorID
	r.recipientID = recipientID
	return nil
}

func (r *Review) setRating(rating int) error {
	if rating < minRating || rating > maxRating {
		return errs.NewValueIsOutOfRangeError("rating", rating, minRating, maxRating)
	}
	r.rating = rating
	return nil
}

func (r *Review) setAspects(aspects Aspects) error {
	check := func(name string, v *int) error {
		if v == nil {
			return nil
		}
		if *v < minRating || *v > maxRating {
			return errs.NewValueIsOutOfRangeError(name, *v, minRating, maxRating)
		}
		return nil
	}

	if err := errors.Join(
		check("communication", aspects.Communication),
		check("quality", aspects.Quality),
		check("punctuality", aspects.Punctuality),
	); err != nil {
		return err
	}

	r.aspects = aspects
	return nil
}

// String returns a short human-readable form for logs.
func (r *Review) String() string {
	return fmt.Sprintf("Review(%s, rating=%d)", r.id, r.rating)
}
