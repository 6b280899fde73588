package commands_test

import (
	"errors"
	"testing"

	"ineed/internal/core/application/usecases/commands"
	"ineed/internal/core/domain/model/conversation"
	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/core/ports"
	"ineed/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPostMessageCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	authorID := kernel.NewUUID()
	thread, err := conversation.NewConversation(kernel.NewUUID(), kernel.NewUUID(), authorID)
	require.NoError(t, err)

	cmd, err := commands.NewPostMessageCommand(kernel.NewUUID(), thread.ID(), authorID, "hello")
	require.NoError(t, err)

	conversationRepo := new(MockConversationRepository)
	uow := new(MockUoW)
	pusher := new(MockPusher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ConversationRepository").Return(conversationRepo).Once(),
		conversationRepo.On("Get", mock.Anything, thread.ID()).Return(thread, nil).Once(),
		conversationRepo.On("AddMessage", mock.Anything, mock.AnythingOfType("*conversation.Message")).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		pusher.On("PushToConversation", ctx, thread.ID(), mock.MatchedBy(func(e ports.PushEvent) bool {
			return e.Kind == "new_message"
		})).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockMessageUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPostMessageCommandHandler(factory, pusher, nil)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	conversationRepo.AssertExpectations(t)
	pusher.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestPostMessageCommandHandler_Handle_NotParticipant(t *testing.T) {
	ctx := t.Context()
	thread, err := conversation.NewConversation(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)

	cmd, err := commands.NewPostMessageCommand(kernel.NewUUID(), thread.ID(), kernel.NewUUID(), "hello")
	require.NoError(t, err)

	conversationRepo := new(MockConversationRepository)
	uow := new(MockUoW)
	pusher := new(MockPusher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ConversationRepository").Return(conversationRepo).Once(),
		conversationRepo.On("Get", mock.Anything, thread.ID()).Return(thread, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockMessageUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPostMessageCommandHandler(factory, pusher, nil)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrNotAuthorized)
	pusher.AssertNotCalled(t, "PushToConversation", mock.Anything, mock.Anything, mock.Anything)
}

func TestPostMessageCommandHandler_Handle_PushFailureIsSwallowed(t *testing.T) {
	ctx := t.Context()
	authorID := kernel.NewUUID()
	thread, err := conversation.NewConversation(kernel.NewUUID(), kernel.NewUUID(), authorID)
	require.NoError(t, err)

	cmd, err := commands.NewPostMessageCommand(kernel.NewUUID(), thread.ID(), authorID, "hello")
	require.NoError(t, err)

	conversationRepo := new(MockConversationRepository)
	uow := new(MockUoW)
	pusher := new(MockPusher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ConversationRepository").Return(conversationRepo).Once(),
		conversationRepo.On("Get", mock.Anything, thread.ID()).Return(thread, nil).Once(),
		conversationRepo.On("AddMessage", mock.Anything, mock.AnythingOfType("*conversation.Message")).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		pusher.On("PushToConversation", ctx, thread.ID(), mock.Anything).
			Return(errors.New("socket gone")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockMessageUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPostMessageCommandHandler(factory, pusher, nil)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
}
