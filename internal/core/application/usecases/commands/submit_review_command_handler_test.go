package commands_test

import (
	"testing"

	"ineed/internal/core/application/usecases/commands"
	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/core/domain/model/notification"
	"ineed/internal/core/domain/model/order"
	"ineed/internal/core/domain/model/review"
	"ineed/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func completedOrder(t *testing.T, clientID, providerID kernel.UUID) *order.Order {
	t.Helper()
	aggregate, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), clientID)
	require.NoError(t, err)
	require.NoError(t, aggregate.AcceptOffer(providerID, 100))
	require.NoError(t, aggregate.Complete())
	return aggregate
}

func TestSubmitReviewCommandHandler_Handle_ClientReviewsProvider(t *testing.T) {
	ctx := t.Context()
	clientID := kernel.NewUUID()
	providerID := kernel.NewUUID()
	aggregate := completedOrder(t, clientID, providerID)

	cmd, err := commands.NewSubmitReviewCommand(
		kernel.NewUUID(), aggregate.ID(), clientID, 5, "great", review.Aspects{})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	reviewRepo := new(MockReviewRepository)
	userRepo := new(MockUserRepository)
	uow := new(MockUoW)
	notifier := new(MockNotifier)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("ReviewRepository").Return(reviewRepo).Once(),
		reviewRepo.On("Add", mock.Anything, mock.MatchedBy(func(r *review.Review) bool {
			return r.RecipientID().IsEqual(providerID)
		})).Return(nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("ApplyRating", mock.Anything, providerID, 5).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		notifier.On("Notify", ctx, providerID, notification.KindNewReview, aggregate.ID(), mock.Anything).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockReviewUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitReviewCommandHandler(factory, notifier)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	reviewRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestSubmitReviewCommandHandler_Handle_ProviderReviewsClient(t *testing.T) {
	ctx := t.Context()
	clientID := kernel.NewUUID()
	providerID := kernel.NewUUID()
	aggregate := completedOrder(t, clientID, providerID)

	cmd, err := commands.NewSubmitReviewCommand(
		kernel.NewUUID(), aggregate.ID(), providerID, 4, "", review.Aspects{})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	reviewRepo := new(MockReviewRepository)
	userRepo := new(MockUserRepository)
	uow := new(MockUoW)
	notifier := new(MockNotifier)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("ReviewRepository").Return(reviewRepo).Once(),
		reviewRepo.On("Add", mock.Anything, mock.MatchedBy(func(r *review.Review) bool {
			return r.RecipientID().IsEqual(clientID)
		})).Return(nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("ApplyRating", mock.Anything, clientID, 4).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		notifier.On("Notify", ctx, clientID, notification.KindNewReview, aggregate.ID(), mock.Anything).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockReviewUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitReviewCommandHandler(factory, notifier)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	uow.AssertExpectations(t)
}

func TestSubmitReviewCommandHandler_Handle_OrderNotCompleted(t *testing.T) {
	ctx := t.Context()
	clientID := kernel.NewUUID()
	aggregate := activeOrder(t, clientID)

	cmd, err := commands.NewSubmitReviewCommand(
		kernel.NewUUID(), aggregate.ID(), clientID, 5, "", review.Aspects{})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockReviewUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitReviewCommandHandler(factory, new(MockNotifier))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrInvalidOperation)
}

func TestSubmitReviewCommandHandler_Handle_Outsider(t *testing.T) {
	ctx := t.Context()
	aggregate := completedOrder(t, kernel.NewUUID(), kernel.NewUUID())

	cmd, err := commands.NewSubmitReviewCommand(
		kernel.NewUUID(), aggregate.ID(), kernel.NewUUID(), 5, "", review.Aspects{})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockReviewUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitReviewCommandHandler(factory, new(MockNotifier))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrNotAuthorized)
}

func TestSubmitReviewCommandHandler_Handle_DuplicateIsConflict(t *testing.T) {
	ctx := t.Context()
	clientID := kernel.NewUUID()
	providerID := kernel.NewUUID()
	aggregate := completedOrder(t, clientID, providerID)

	cmd, err := commands.NewSubmitReviewCommand(
		kernel.NewUUID(), aggregate.ID(), clientID, 3, "", review.Aspects{})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	reviewRepo := new(MockReviewRepository)
	uow := new(MockUoW)
	notifier := new(MockNotifier)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("ReviewRepository").Return(reviewRepo).Once(),
		reviewRepo.On("Add", mock.Anything, mock.AnythingOfType("*review.Review")).
			Return(errs.NewConflictError("review already submitted for this order")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockReviewUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitReviewCommandHandler(factory, notifier)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrConflict)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	notifier.AssertNotCalled(t, "Notify",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
