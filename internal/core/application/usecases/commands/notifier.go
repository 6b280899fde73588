package commands

import (
	"context"
	"log/slog"

	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/core/domain/model/notification"
	"ineed/internal/core/ports"
)

// OrderEventNotifier tells a user something happened on an order. Handlers
// call it after their own transaction commits, never inside it.
type OrderEventNotifier interface {
	Notify(ctx context.Context, recipientID kernel.UUID, kind notification.Kind, orderID kernel.UUID, text string)
}

// Notifier persists a notification row in its own short transaction and then
// pushes it to the recipient's open connections. The row is the durable
// record; the push is best effort. Failures are logged and swallowed so a
// broken inbox or socket never fails the business operation that triggered it.
type Notifier struct {
	uowFactory NotificationUoWFactory
	pusher     ports.RealtimePusher
	logger     *slog.Logger
}

// NewNotifier creates a notifier backed by the given store and pusher.
func NewNotifier(uowFactory NotificationUoWFactory, pusher ports.RealtimePusher, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}

	return &Notifier{
		uowFactory: uowFactory,
		pusher:     pusher,
		logger:     logger,
	}
}

// Notify stores the notification and pushes it to the recipient.
func (n *Notifier) Notify(
	ctx context.Context,
	recipientID kernel.UUID,
	kind notification.Kind,
	orderID kernel.UUID,
	text string,
) {
	entity, err := notification.NewNotification(kernel.NewUUID(), recipientID, kind, orderID, text)
	if err != nil {
		n.logger.ErrorContext(ctx, "build notification",
			"kind", kind.String(), "recipient", recipientID.String(), "err", err)
		return
	}

	if err := n.store(ctx, entity); err != nil {
		n.logger.ErrorContext(ctx, "store notification",
			"kind", kind.String(), "recipient", recipientID.String(), "err", err)
		return
	}

	event := ports.PushEvent{
		Kind: kind.String(),
		Data: map[string]any{
			"id":      entity.ID().String(),
			"orderId": orderID.String(),
			"text":    text,
		},
	}
	if err := n.pusher.PushToUser(ctx, recipientID, event); err != nil {
		n.logger.WarnContext(ctx, "push notification",
			"kind", kind.String(), "recipient", recipientID.String(), "err", err)
	}
}

func (n *Notifier) store(ctx context.Context, entity *notification.Notification) error {
	uow := n.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.NotificationRepository().Add(ctx, entity); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
