package commands

import (
	"context"

	"ineed/internal/pkg/errs"
)

// MarkNotificationReadCommandHandler handles inbox acknowledgements.
type MarkNotificationReadCommandHandler struct {
	uowFactory NotificationUoWFactory
}

// NewMarkNotificationReadCommandHandler creates a handler for read receipts.
func NewMarkNotificationReadCommandHandler(uowFactory NotificationUoWFactory) MarkNotificationReadCommandHandler {
	return MarkNotificationReadCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the acknowledgement. Only the recipient may acknowledge,
// and repeating the call is harmless.
func (h *MarkNotificationReadCommandHandler) Handle(ctx context.Context, cmd MarkNotificationReadCommand) error {
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

	repo := uow.NotificationRepository()
	entity, err := repo.Get(ctx, cmd.NotificationID())
	if err != nil {
		return err
	}

	if !entity.IsOwnedBy(cmd.ActorID()) {
		return errs.NewNotAuthorizedError("only the recipient can mark a notification read")
	}

	entity.MarkRead()

	if err = repo.Update(ctx, entity); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
