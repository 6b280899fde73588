package commands

import (
	"errors"

	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/core/domain/model/review"
	"ineed/internal/pkg/errs"
	"ineed/internal/pkg/guard"
)

var ErrSubmitReviewCommandIsNotConstructed = errors.New(
	"SubmitReviewCommand must be created via NewSubmitReviewCommand constructor",
)

// SubmitReviewCommand represents one order party rating the other after
// completion. The recipient is not part of the command; the handler derives
// it from the order so a caller can never rate an arbitrary user.
type SubmitReviewCommand struct { //nolint:recvcheck //using for validation
	reviewID kernel.UUID
	orderID  kernel.UUID
	authorID kernel.UUID
	rating   int
	text     string
	aspects  review.Aspects

	guard guard.ConstructorGuard
}

// NewSubmitReviewCommand creates a command to review a completed order.
func NewSubmitReviewCommand(
	reviewID kernel.UUID,
	orderID kernel.UUID,
	authorID kernel.UUID,
	rating int,
	text string,
	aspects review.Aspects,
) (SubmitReviewCommand, error) {
	cmd := SubmitReviewCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		reviewID.Validate(),
		orderID.Validate(),
		authorID.Validate(),
		cmd.setRating(rating),
	); err != nil {
		return SubmitReviewCommand{}, err
	}

	cmd.reviewID = reviewID
	cmd.orderID = orderID
	cmd.authorID = authorID
	cmd.text = text
	cmd.aspects = aspects
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitReviewCommand) Validate() error {
	return c.guard.Validate(ErrSubmitReviewCommandIsNotConstructed)
}

// ReviewID returns the identifier for the new review.
func (c SubmitReviewCommand) ReviewID() kernel.UUID {
	return c.reviewID
}

// OrderID returns the completed order being reviewed.
func (c SubmitReviewCommand) OrderID() kernel.UUID {
	return c.orderID
}

// AuthorID returns the reviewer's identifier.
func (c SubmitReviewCommand) AuthorID() kernel.UUID {
	return c.authorID
}

// Rating returns the overall score, 1..5.
func (c SubmitReviewCommand) Rating() int {
	return c.rating
}

// Text returns the optional comment.
func (c SubmitReviewCommand) Text() string {
	return c.text
}

// AspectRatings returns the optional per-dimension scores.
func (c SubmitReviewCommand) AspectRatings() review.Aspects {
	return c.aspects
}

func (c *SubmitReviewCommand) setRating(rating int) error {
	if rating < 1 || rating > 5 {
		return errs.NewValueIsOutOfRangeError("rating", rating, 1, 5)
	}

	c.rating = rating
	return nil
}
