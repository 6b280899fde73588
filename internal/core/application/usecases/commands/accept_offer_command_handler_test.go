package commands_test

import (
	"testing"

	"ineed/internal/core/application/usecases/commands"
	"ineed/internal/core/domain/model/conversation"
	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/core/domain/model/notification"
	"ineed/internal/core/domain/model/offer"
	"ineed/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAcceptOfferCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	clientID := kernel.NewUUID()
	providerID := kernel.NewUUID()
	aggregate := activeOrder(t, clientID)

	chosen, err := offer.NewOffer(kernel.NewUUID(), aggregate.ID(), providerID, 150, "")
	require.NoError(t, err)

	thread, err := conversation.NewConversation(kernel.NewUUID(), aggregate.ID(), clientID)
	require.NoError(t, err)

	cmd, err := commands.NewAcceptOfferCommand(aggregate.ID(), chosen.ID(), clientID)
	require.NoError(t, err)

	posted := postedRequest(t, aggregate, "Paint the fence")

	orderRepo := new(MockOrderRepository)
	offerRepo := new(MockOfferRepository)
	conversationRepo := new(MockConversationRepository)
	requestRepo := new(MockRequestRepository)
	uow := new(MockUoW)
	notifier := new(MockNotifier)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("OfferRepository").Return(offerRepo).Once(),
		offerRepo.On("Get", mock.Anything, chosen.ID()).Return(chosen, nil).Once(),
		orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("ConversationRepository").Return(conversationRepo).Once(),
		conversationRepo.On("GetByOrderID", mock.Anything, aggregate.ID()).Return(thread, nil).Once(),
		conversationRepo.On("UpsertParticipant", mock.Anything, thread.ID(), providerID).Return(nil).Once(),
		uow.On("RequestRepository").Return(requestRepo).Once(),
		requestRepo.On("Get", mock.Anything, aggregate.RequestID()).Return(posted, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		notifier.On("Notify", ctx, providerID, notification.KindOfferAccepted, aggregate.ID(),
			`Your offer for "Paint the fence" was accepted`).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOfferUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAcceptOfferCommandHandler(factory, notifier)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.NotNil(t, aggregate.ProviderID())
	assert.True(t, aggregate.ProviderID().IsEqual(providerID))
	require.NotNil(t, aggregate.FinalValue())
	assert.InDelta(t, 150.0, *aggregate.FinalValue(), 1e-9)

	orderRepo.AssertExpectations(t)
	offerRepo.AssertExpectations(t)
	conversationRepo.AssertExpectations(t)
	requestRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAcceptOfferCommandHandler_Handle_NotOwner(t *testing.T) {
	ctx := t.Context()
	aggregate := activeOrder(t, kernel.NewUUID())

	cmd, err := commands.NewAcceptOfferCommand(aggregate.ID(), kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOfferUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAcceptOfferCommandHandler(factory, new(MockNotifier))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrNotAuthorized)
}

func TestAcceptOfferCommandHandler_Handle_OfferFromOtherOrder(t *testing.T) {
	ctx := t.Context()
	clientID := kernel.NewUUID()
	aggregate := activeOrder(t, clientID)

	stray, err := offer.NewOffer(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 10, "")
	require.NoError(t, err)

	cmd, err := commands.NewAcceptOfferCommand(aggregate.ID(), stray.ID(), clientID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	offerRepo := new(MockOfferRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("OfferRepository").Return(offerRepo).Once(),
		offerRepo.On("Get", mock.Anything, stray.ID()).Return(stray, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOfferUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAcceptOfferCommandHandler(factory, new(MockNotifier))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Nil(t, aggregate.ProviderID())
}

func TestAcceptOfferCommandHandler_Handle_CancelledOrder(t *testing.T) {
	ctx := t.Context()
	clientID := kernel.NewUUID()
	aggregate := activeOrder(t, clientID)
	require.NoError(t, aggregate.Cancel())

	cmd, err := commands.NewAcceptOfferCommand(aggregate.ID(), kernel.NewUUID(), clientID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOfferUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAcceptOfferCommandHandler(factory, new(MockNotifier))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrInvalidOperation)
	uow.AssertNotCalled(t, "OfferRepository")
}

func TestAcceptOfferCommandHandler_Handle_LostRace(t *testing.T) {
	ctx := t.Context()
	clientID := kernel.NewUUID()
	winnerID := kernel.NewUUID()
	aggregate := activeOrder(t, clientID)

	// The lock holder bound a provider before we got the row.
	require.NoError(t, aggregate.AcceptOffer(winnerID, 100))

	loser, err := offer.NewOffer(kernel.NewUUID(), aggregate.ID(), kernel.NewUUID(), 80, "")
	require.NoError(t, err)

	cmd, err := commands.NewAcceptOfferCommand(aggregate.ID(), loser.ID(), clientID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOfferUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAcceptOfferCommandHandler(factory, new(MockNotifier))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrInvalidOperation)

	// The order's state decides before any offer lookup, so a stale or
	// deleted offer id still reports the closed order, not a missing offer.
	uow.AssertNotCalled(t, "OfferRepository")

	// The winner stays bound.
	require.NotNil(t, aggregate.ProviderID())
	assert.True(t, aggregate.ProviderID().IsEqual(winnerID))
}
