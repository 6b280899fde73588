package commands_test

import (
	"context"

	"ineed/internal/core/application/usecases/commands"
	"ineed/internal/core/domain/model/conversation"
	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/core/domain/model/notification"
	"ineed/internal/core/domain/model/offer"
	"ineed/internal/core/domain/model/order"
	"ineed/internal/core/domain/model/request"
	"ineed/internal/core/domain/model/review"
	"ineed/internal/core/domain/model/user"
	"ineed/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockRequestRepository struct{ mock.Mock }

func (m *MockRequestRepository) Add(ctx context.Context, aggregate *request.Request) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockRequestRepository) Update(ctx context.Context, aggregate *request.Request) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockRequestRepository) Get(ctx context.Context, id kernel.UUID) (*request.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*request.Request), args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByRequestID(ctx context.Context, requestID kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockOfferRepository struct{ mock.Mock }

func (m *MockOfferRepository) Add(ctx context.Context, entity *offer.Offer) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockOfferRepository) Get(ctx context.Context, id kernel.UUID) (*offer.Offer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*offer.Offer), args.Error(1)
}

func (m *MockOfferRepository) GetAllByOrderID(ctx context.Context, orderID kernel.UUID) ([]*offer.Offer, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*offer.Offer), args.Error(1)
}

type MockConversationRepository struct{ mock.Mock }

func (m *MockConversationRepository) Add(ctx context.Context, aggregate *conversation.Conversation) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockConversationRepository) Get(ctx context.Context, id kernel.UUID) (*conversation.Conversation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*conversation.Conversation), args.Error(1)
}

func (m *MockConversationRepository) GetByOrderID(
	ctx context.Context,
	orderID kernel.UUID,
) (*conversation.Conversation, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*conversation.Conversation), args.Error(1)
}

func (m *MockConversationRepository) UpsertParticipant(
	ctx context.Context,
	conversationID kernel.UUID,
	userID kernel.UUID,
) error {
	args := m.Called(ctx, conversationID, userID)
	return args.Error(0)
}

func (m *MockConversationRepository) AddMessage(ctx context.Context, message *conversation.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

type MockReviewRepository struct{ mock.Mock }

func (m *MockReviewRepository) Add(ctx context.Context, entity *review.Review) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockReviewRepository) GetAllForRecipient(
	ctx context.Context,
	recipientID kernel.UUID,
) ([]*review.Review, error) {
	args := m.Called(ctx, recipientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*review.Review), args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, aggregate *user.User) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) ApplyRating(ctx context.Context, userID kernel.UUID, rating int) error {
	args := m.Called(ctx, userID, rating)
	return args.Error(0)
}

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) Add(ctx context.Context, entity *notification.Notification) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockNotificationRepository) Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) Update(ctx context.Context, entity *notification.Notification) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockNotificationRepository) GetAllForRecipient(
	ctx context.Context,
	recipientID kernel.UUID,
	limit int,
) ([]*notification.Notification, error) {
	args := m.Called(ctx, recipientID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notification.Notification), args.Error(1)
}

// MockUoW satisfies every narrow unit of work interface in this package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) RequestRepository() ports.RequestRepository {
	args := m.Called()
	return args.Get(0).(ports.RequestRepository)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) OfferRepository() ports.OfferRepository {
	args := m.Called()
	return args.Get(0).(ports.OfferRepository)
}

func (m *MockUoW) ConversationRepository() ports.ConversationRepository {
	args := m.Called()
	return args.Get(0).(ports.ConversationRepository)
}

func (m *MockUoW) ReviewRepository() ports.ReviewRepository {
	args := m.Called()
	return args.Get(0).(ports.ReviewRepository)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	args := m.Called()
	return args.Get(0).(ports.UserRepository)
}

func (m *MockUoW) NotificationRepository() ports.NotificationRepository {
	args := m.Called()
	return args.Get(0).(ports.NotificationRepository)
}

type MockCreateRequestUoWFactory struct{ mock.Mock }

func (m *MockCreateRequestUoWFactory) Create() commands.CreateRequestUoW {
	args := m.Called()
	return args.Get(0).(commands.CreateRequestUoW)
}

type MockRequestUoWFactory struct{ mock.Mock }

func (m *MockRequestUoWFactory) Create() commands.RequestUoW {
	args := m.Called()
	return args.Get(0).(commands.RequestUoW)
}

type MockOfferUoWFactory struct{ mock.Mock }

func (m *MockOfferUoWFactory) Create() commands.OfferUoW {
	args := m.Called()
	return args.Get(0).(commands.OfferUoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockReviewUoWFactory struct{ mock.Mock }

func (m *MockReviewUoWFactory) Create() commands.ReviewUoW {
	args := m.Called()
	return args.Get(0).(commands.ReviewUoW)
}

type MockMessageUoWFactory struct{ mock.Mock }

func (m *MockMessageUoWFactory) Create() commands.MessageUoW {
	args := m.Called()
	return args.Get(0).(commands.MessageUoW)
}

type MockNotificationUoWFactory struct{ mock.Mock }

func (m *MockNotificationUoWFactory) Create() commands.NotificationUoW {
	args := m.Called()
	return args.Get(0).(commands.NotificationUoW)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(
	ctx context.Context,
	recipientID kernel.UUID,
	kind notification.Kind,
	orderID kernel.UUID,
	text string,
) {
	m.Called(ctx, recipientID, kind, orderID, text)
}

type MockPusher struct{ mock.Mock }

func (m *MockPusher) PushToUser(ctx context.Context, userID kernel.UUID, event ports.PushEvent) error {
	args := m.Called(ctx, userID, event)
	return args.Error(0)
}

func (m *MockPusher) PushToConversation(
	ctx context.Context,
	conversationID kernel.UUID,
	event ports.PushEvent,
) error {
	args := m.Called(ctx, conversationID, event)
	return args.Error(0)
}
