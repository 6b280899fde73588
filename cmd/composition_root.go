package cmd

import (
	"log/slog"

	"ineed/internal/adapters/out/postgres"
	"ineed/internal/adapters/out/postgres/conversationrepo"
	"ineed/internal/adapters/out/ws"
	"ineed/internal/core/application/usecases/commands"
	"ineed/internal/core/application/usecases/queries"
	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/core/ports"
	"ineed/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use case handlers. Each Create* method
// returns a handler bound to a fresh unit of work factory so concurrent
// requests never share transaction state.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	hub        *ws.Hub
	notifier   *commands.Notifier
	logger     *slog.Logger
}

// NewCompositionRoot builds the object graph shared by the HTTP server, the
// websocket endpoint and the background jobs.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB, config.TxTimeout)
	hub := ws.NewHub()

	notifier := commands.NewNotifier(
		FuncNotificationUoWFactory(func() commands.NotificationUoW {
			return uowFactory.Create()
		}),
		hub,
		logger,
	)

	return &CompositionRoot{
		gormDB:     gormDB,
		uowFactory: uowFactory,
		hub:        hub,
		notifier:   notifier,
		logger:     logger,
	}
}

// RealtimePusher exposes the websocket hub as the push port.
func (c *CompositionRoot) RealtimePusher() ports.RealtimePusher {
	return c.hub
}

// WSHandler builds the websocket endpoint handler. Conversation membership
// checks go through a standalone repository outside any transaction.
func (c *CompositionRoot) WSHandler() *ws.Handler {
	repo := conversationrepo.NewGormConversationRepository(c.gormDB, noopTracker{})
	return ws.NewHandler(c.hub, repo, c.logger)
}

// JobManager builds the background job coordinator.
func (c *CompositionRoot) JobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.gormDB, c.logger)
}

func (c *CompositionRoot) CreateCreateRequestCommandHandler() commands.CreateRequestCommandHandler {
	var f commands.CreateRequestUoWFactory = FuncCreateRequestUoWFactory(func() commands.CreateRequestUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateRequestCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateRequestCommandHandler() commands.UpdateRequestCommandHandler {
	var f commands.RequestUoWFactory = FuncRequestUoWFactory(func() commands.RequestUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateRequestCommandHandler(f)
}

func (c *CompositionRoot) CreateDeactivateRequestCommandHandler() commands.DeactivateRequestCommandHandler {
	var f commands.RequestUoWFactory = FuncRequestUoWFactory(func() commands.RequestUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeactivateRequestCommandHandler(f)
}

func (c *CompositionRoot) CreateMakeOfferCommandHandler() commands.MakeOfferCommandHandler {
	var f commands.OfferUoWFactory = FuncOfferUoWFactory(func() commands.OfferUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMakeOfferCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateAcceptOfferCommandHandler() commands.AcceptOfferCommandHandler {
	var f commands.OfferUoWFactory = FuncOfferUoWFactory(func() commands.OfferUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptOfferCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteOrderCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateSubmitReviewCommandHandler() commands.SubmitReviewCommandHandler {
	var f commands.ReviewUoWFactory = FuncReviewUoWFactory(func() commands.ReviewUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSubmitReviewCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreatePostMessageCommandHandler() commands.PostMessageCommandHandler {
	var f commands.MessageUoWFactory = FuncMessageUoWFactory(func() commands.MessageUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPostMessageCommandHandler(f, c.hub, c.logger)
}

func (c *CompositionRoot) CreateMarkNotificationReadCommandHandler() commands.MarkNotificationReadCommandHandler {
	var f commands.NotificationUoWFactory = FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkNotificationReadCommandHandler(f)
}

func (c *CompositionRoot) CreateListRequestsQueryHandler() queries.ListRequestsQueryHandler {
	return queries.NewListRequestsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListNotificationsQueryHandler() queries.ListNotificationsQueryHandler {
	return queries.NewListNotificationsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListMessagesQueryHandler() queries.ListMessagesQueryHandler {
	return queries.NewListMessagesQueryHandler(c.gormDB)
}

// noopTracker satisfies the repositories' tracker dependency for reads that
// happen outside a unit of work.
type noopTracker struct{}

func (noopTracker) TrackAggregate(_ kernel.UUID, _ any) {}

type FuncCreateRequestUoWFactory func() commands.CreateRequestUoW

func (f FuncCreateRequestUoWFactory) Create() commands.CreateRequestUoW {
	return f()
}

type FuncRequestUoWFactory func() commands.RequestUoW

func (f FuncRequestUoWFactory) Create() commands.RequestUoW {
	return f()
}

type FuncOfferUoWFactory func() commands.OfferUoW

func (f FuncOfferUoWFactory) Create() commands.OfferUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncReviewUoWFactory func() commands.ReviewUoW

func (f FuncReviewUoWFactory) Create() commands.ReviewUoW {
	return f()
}

type FuncMessageUoWFactory func() commands.MessageUoW

func (f FuncMessageUoWFactory) Create() commands.MessageUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}
