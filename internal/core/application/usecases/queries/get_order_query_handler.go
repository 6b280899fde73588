package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves a single order with its offers from the
// database. The existence check runs before the access check, so outsiders
// learn the order exists but nothing else.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order views.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp, err := h.loadOrder(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if !h.mayView(ctx, resp, query.ActorID()) {
		return GetOrderQueryResponse{}, errs.NewNotAuthorizedError("only the order's parties can view it")
	}

	offers, err := h.loadOffers(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.Offers = offers

	return resp, nil
}

func (h GetOrderQueryHandler) loadOrder(ctx context.Context, orderID kernel.UUID) (GetOrderQueryResponse, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT id, request_id, client_id, provider_id, final_value, status
		FROM orders
		WHERE id = ?
	`, orderID.String()).Row()

	var resp GetOrderQueryResponse
	var id, requestID, clientID uuid.UUID
	var providerID uuid.NullUUID
	var finalValue sql.NullFloat64

	err := row.Scan(&id, &requestID, &clientID, &providerID, &finalValue, &resp.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("orderID", orderID)
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.RequestID, err = kernel.UUIDFromBytes(requestID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.ClientID, err = kernel.UUIDFromBytes(clientID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if providerID.Valid {
		pid, idErr := kernel.UUIDFromBytes(providerID.UUID[:])
		if idErr != nil {
			return GetOrderQueryResponse{}, idErr
		}
		resp.ProviderID = &pid
	}
	if finalValue.Valid {
		v := finalValue.Float64
		resp.FinalValue = &v
	}

	return resp, nil
}

// mayView grants access to the client, the bound provider, and any user
// with an offer on the order.
func (h GetOrderQueryHandler) mayView(ctx context.Context, resp GetOrderQueryResponse, actorID kernel.UUID) bool {
	if resp.ClientID.IsEqual(actorID) {
		return true
	}
	if resp.ProviderID != nil && resp.ProviderID.IsEqual(actorID) {
		return true
	}

	var count int64
	if err := h.db.WithContext(ctx).Raw(`
		SELECT count(*) FROM offers WHERE order_id = ? AND provider_id = ?
	`, resp.ID.String(), actorID.String()).Scan(&count).Error; err != nil {
		return false
	}
	return count > 0
}

func (h GetOrderQueryHandler) loadOffers(ctx context.Context, orderID kernel.UUID) ([]OrderOfferResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, provider_id, value, message, created_at
		FROM offers
		WHERE order_id = ?
		ORDER BY created_at DESC, id DESC
	`, orderID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	offers := make([]OrderOfferResponse, 0)

	for rows.Next() {
		var resp OrderOfferResponse
		var id, providerID uuid.UUID
		var createdAt time.Time

		if err = rows.Scan(&id, &providerID, &resp.Value, &resp.Message, &createdAt); err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.ProviderID, err = kernel.UUIDFromBytes(providerID[:]); err != nil {
			return nil, err
		}
		resp.CreatedAt = createdAt
		offers = append(offers, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return offers, nil
}
