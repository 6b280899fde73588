// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"ineed/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends only on the repositories its operation touches.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// RequestRepoFactory provides access to the request repository within a transaction.
	RequestRepoFactory interface {
		RequestRepository() ports.RequestRepository
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OfferRepoFactory provides access to the offer repository within a transaction.
	OfferRepoFactory interface {
		OfferRepository() ports.OfferRepository
	}

	// ConversationRepoFactory provides access to the conversation repository within a transaction.
	ConversationRepoFactory interface {
		ConversationRepository() ports.ConversationRepository
	}

	// ReviewRepoFactory provides access to the review repository within a transaction.
	ReviewRepoFactory interface {
		ReviewRepository() ports.ReviewRepository
	}

	// UserRepoFactory provides access to the user repository within a transaction.
	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	// NotificationRepoFactory provides access to the notification repository within a transaction.
	NotificationRepoFactory interface {
		NotificationRepository() ports.NotificationRepository
	}

	// RequestUoW manages transactions for request-only operations.
	RequestUoW interface {
		TxManager
		RequestRepoFactory
	}

	// RequestUoWFactory creates new request unit of work instances.
	RequestUoWFactory interface {
		Create() RequestUoW
	}

	// CreateRequestUoW spans the aggregates written together when a need is
	// posted: the request, its order, and its conversation. All four inserts
	// (the client participant rides with the conversation) commit or roll
	// back as one.
	CreateRequestUoW interface {
		TxManager
		RequestRepoFactory
		OrderRepoFactory
		ConversationRepoFactory
	}

	// CreateRequestUoWFactory creates new request-creation unit of work instances.
	CreateRequestUoWFactory interface {
		Create() CreateRequestUoW
	}

	// OfferUoW spans the aggregates touched by offer operations: the order,
	// its offers, the conversation the provider joins, and the request whose
	// title the notifications carry.
	OfferUoW interface {
		TxManager
		OrderRepoFactory
		OfferRepoFactory
		ConversationRepoFactory
		RequestRepoFactory
	}

	// OfferUoWFactory creates new offer unit of work instances.
	OfferUoWFactory interface {
		Create() OfferUoW
	}

	// OrderUoW manages transactions for order lifecycle transitions, which
	// also retire the linked request from matching.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		RequestRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// ReviewUoW spans the review insert and the recipient's rating update so
	// both land in the same transaction.
	ReviewUoW interface {
		TxManager
		OrderRepoFactory
		ReviewRepoFactory
		UserRepoFactory
	}

	// ReviewUoWFactory creates new review unit of work instances.
	ReviewUoWFactory interface {
		Create() ReviewUoW
	}

	// MessageUoW manages transactions for conversation message appends.
	MessageUoW interface {
		TxManager
		ConversationRepoFactory
	}

	// MessageUoWFactory creates new message unit of work instances.
	MessageUoWFactory interface {
		Create() MessageUoW
	}

	// NotificationUoW manages transactions for inbox operations.
	NotificationUoW interface {
		TxManager
		NotificationRepoFactory
	}

	// NotificationUoWFactory creates new notification unit of work instances.
	NotificationUoWFactory interface {
		Create() NotificationUoW
	}
)
