// Package postgres provides GORM-based implementation of the Unit of Work pattern.
// The Unit of Work pattern maintains a list of objects affected by a business
// transaction and coordinates writing out changes and resolving concurrency problems.
//
// Key Features:
//   - Transaction management across multiple repositories
//   - Bounded transaction deadlines so row locks are never held indefinitely
//   - Aggregate tracking for post-commit processing
//   - Proper isolation between concurrent operations
//
// Usage Patterns:
//
// Basic Transaction Management:
//
//	factory := NewGormUnitOfWorkFactory(db, 5*time.Second)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//
//	if err := uow.OrderRepository().Add(ctx, order); err != nil {
//	    uow.Rollback(ctx)
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance provides isolated transactions
//   - Multiple goroutines should use separate UnitOfWork instances
//   - Offer acceptance relies on OrderRepository.GetForUpdate row locking
package postgres

import (
	"context"
	"errors"
	"time"

	"ineed/internal/adapters/out/postgres/conversationrepo"
	"ineed/internal/adapters/out/postgres/notificationrepo"
	"ineed/internal/adapters/out/postgres/offerrepo"
	"ineed/internal/adapters/out/postgres/orderrepo"
	"ineed/internal/adapters/out/postgres/requestrepo"
	"ineed/internal/adapters/out/postgres/reviewrepo"
	"ineed/internal/adapters/out/postgres/userrepo"
	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/core/ports"
	"ineed/internal/pkg/errs"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database
// connections. Each created instance carries the factory's transaction
// timeout, so a stuck statement releases its locks instead of blocking other
// writers forever.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	txTimeout time.Duration
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances. txTimeout bounds every transaction started by the created
// instances; zero disables the bound.
func NewGormUnitOfWorkFactory(db *gorm.DB, txTimeout time.Duration) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, txTimeout: txTimeout}
}

// Create produces a new UnitOfWork instance ready for business transaction
// management. Each instance maintains its own transaction state and
// aggregate tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		txTimeout:         f.txTimeout,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates database transactions and tracks aggregate
// changes for business operations. Implements the Unit of Work pattern using
// GORM's transaction capabilities.
//
// The unit of work tracks all aggregates modified during the transaction,
// enabling patterns like domain event publishing after successful commits.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	txTimeout         time.Duration
	cancel            context.CancelFunc
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Subsequent repository operations will execute within this transaction
// context, under the configured deadline. Multiple calls to Begin on the
// same instance are safe and will not create nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	if uow.txTimeout > 0 {
		ctx, uow.cancel = context.WithTimeout(ctx, uow.txTimeout)
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.release()
		return err
	}

	return nil
}

// Commit finalizes all changes made within the current transaction. When the
// transaction outlived its deadline the error surfaces as an operation
// timeout. After commit, the transaction is closed and cannot be reused.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.release()

	if errors.Is(err, context.DeadlineExceeded) {
		return errs.NewOperationTimedOutError("commit transaction", err)
	}
	return err
}

// Rollback discards all changes made within the current transaction.
// After rollback, the transaction is closed and cannot be reused.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.release()
	return err
}

func (uow *GormUnitOfWork) release() {
	uow.tx = nil
	if uow.cancel != nil {
		uow.cancel()
		uow.cancel = nil
	}
}

// conn returns the active transaction, or the main connection when no
// transaction is open.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// RequestRepository provides access to request persistence operations within
// the unit of work.
func (uow *GormUnitOfWork) RequestRepository() ports.RequestRepository {
	return requestrepo.NewGormRequestRepository(uow.conn(), uow)
}

// OrderRepository provides access to order persistence operations within the
// unit of work, including the locking read used for offer acceptance.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// OfferRepository provides access to offer persistence operations within the
// unit of work.
func (uow *GormUnitOfWork) OfferRepository() ports.OfferRepository {
	return offerrepo.NewGormOfferRepository(uow.conn(), uow)
}

// ConversationRepository provides access to conversation persistence
// operations within the unit of work.
func (uow *GormUnitOfWork) ConversationRepository() ports.ConversationRepository {
	return conversationrepo.NewGormConversationRepository(uow.conn(), uow)
}

// ReviewRepository provides access to review persistence operations within
// the unit of work.
func (uow *GormUnitOfWork) ReviewRepository() ports.ReviewRepository {
	return reviewrepo.NewGormReviewRepository(uow.conn(), uow)
}

// UserRepository provides access to user persistence operations within the
// unit of work.
func (uow *GormUnitOfWork) UserRepository() ports.UserRepository {
	return userrepo.NewGormUserRepository(uow.conn(), uow)
}

// NotificationRepository provides access to notification persistence
// operations within the unit of work.
func (uow *GormUnitOfWork) NotificationRepository() ports.NotificationRepository {
	return notificationrepo.NewGormNotificationRepository(uow.conn(), uow)
}

// TrackAggregate registers a domain aggregate as modified within this unit
// of work. Called by repository implementations when aggregates are added,
// updated, or loaded for modification.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}
