package commands

import (
	"context"

	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/core/domain/model/notification"
	"ineed/internal/core/domain/model/order"
	"ineed/internal/core/domain/model/review"
	"ineed/internal/pkg/errs"
)

// SubmitReviewCommandHandler handles post-completion reviews. The order must
// be Completed with a bound provider and the author must be one of its two
// parties; the recipient is always the other one. The review insert and the
// recipient's rating aggregate update share a transaction, and a repeat
// review by the same author surfaces as a conflict from the store's unique
// index. The recipient is notified after commit.
type SubmitReviewCommandHandler struct {
	uowFactory ReviewUoWFactory
	notifier   OrderEventNotifier
}

// NewSubmitReviewCommandHandler creates a handler for review submission.
func NewSubmitReviewCommandHandler(uowFactory ReviewUoWFactory, notifier OrderEventNotifier) SubmitReviewCommandHandler {
	return SubmitReviewCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the review submission command.
func (h *SubmitReviewCommandHandler) Handle(ctx context.Context, cmd SubmitReviewCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	recipientID, err := reviewRecipient(aggregate, cmd.AuthorID())
	if err != nil {
		return err
	}

	newReview, err := review.NewReview(
		cmd.ReviewID(), cmd.OrderID(), cmd.AuthorID(), recipientID,
		cmd.Rating(), cmd.Text(), cmd.AspectRatings(),
	)
	if err != nil {
		return err
	}

	if err = uow.ReviewRepository().Add(ctx, newReview); err != nil {
		return err
	}

	if err = uow.UserRepository().ApplyRating(ctx, recipientID, cmd.Rating()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Notify(ctx, recipientID, notification.KindNewReview, cmd.OrderID(),
		"You received a new review")
	return nil
}

// reviewRecipient resolves who is being rated: the provider when the client
// writes, the client when the provider writes.
func reviewRecipient(aggregate *order.Order, authorID kernel.UUID) (kernel.UUID, error) {
	if aggregate.Status() != order.Completed {
		return kernel.UUID{}, errs.NewInvalidOperationError("only completed orders can be reviewed")
	}

	providerID := aggregate.ProviderID()
	if providerID == nil {
		return kernel.UUID{}, errs.NewInvalidOperationError("order has no provider to review")
	}

	switch {
	case aggregate.ClientID().IsEqual(authorID):
		return *providerID, nil
	case providerID.IsEqual(authorID):
		return aggregate.ClientID(), nil
	default:
		return kernel.UUID{}, errs.NewNotAuthorizedError("only the order's parties can review it")
	}
}
