package commands_test

import (
	"errors"
	"testing"

	"ineed/internal/core/application/usecases/commands"
	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/core/domain/model/request"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLocation(t *testing.T) kernel.GeoPoint {
	t.Helper()
	loc, err := kernel.NewGeoPoint(-23.5505, -46.6333)
	require.NoError(t, err)
	return loc
}

func newCreateRequestCommand(t *testing.T) commands.CreateRequestCommand {
	t.Helper()
	cmd, err := commands.NewCreateRequestCommand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"Fix kitchen sink", "Drain leaks under the counter.",
		"home-repair", request.TypeService, testLocation(t), nil)
	require.NoError(t, err)
	return cmd
}

func TestCreateRequestCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateRequestCommand(t)

	requestRepo := new(MockRequestRepository)
	orderRepo := new(MockOrderRepository)
	conversationRepo := new(MockConversationRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RequestRepository").Return(requestRepo).Once(),
		requestRepo.On("Add", mock.Anything, mock.AnythingOfType("*request.Request")).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("ConversationRepository").Return(conversationRepo).Once(),
		conversationRepo.On("Add", mock.Anything, mock.AnythingOfType("*conversation.Conversation")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCreateRequestUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateRequestCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	requestRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	conversationRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateRequestCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateRequestCommand{} // not constructed properly
	factory := new(MockCreateRequestUoWFactory)
	h := commands.NewCreateRequestCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestCreateRequestCommandHandler_Handle_OrderAddErrorRollsBackAll(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateRequestCommand(t)

	requestRepo := new(MockRequestRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RequestRepository").Return(requestRepo).Once(),
		requestRepo.On("Add", mock.Anything, mock.AnythingOfType("*request.Request")).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
			Return(errors.New("insert failed")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCreateRequestUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateRequestCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	requestRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateRequestCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateRequestCommand(t)

	uow := new(MockUoW)
	factory := new(MockCreateRequestUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewCreateRequestCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
}
