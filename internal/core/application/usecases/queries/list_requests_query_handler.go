package queries

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"

	"ineed/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListRequestsQueryHandler runs the marketplace search against the store.
// Geographic matching is done where the index lives: ST_DWithin on the
// geography column selects candidates, ST_Distance orders them. A transient
// store failure is retried once; reads are side-effect free.
type ListRequestsQueryHandler struct {
	db *gorm.DB
}

// NewListRequestsQueryHandler creates a handler for request searches.
func NewListRequestsQueryHandler(db *gorm.DB) ListRequestsQueryHandler {
	return ListRequestsQueryHandler{db: db}
}

// Handle executes the search and returns matches, nearest first in geo mode
// and newest first otherwise. Ties break on id descending so pagination is
// stable.
func (h ListRequestsQueryHandler) Handle(
	ctx context.Context,
	query ListRequestsQuery,
) ([]ListRequestsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlText, args := buildListRequestsSQL(query)

	results, err := h.scan(ctx, sqlText, args, query.HasGeo())
	if err != nil && isTransientStoreError(err) {
		results, err = h.scan(ctx, sqlText, args, query.HasGeo())
	}
	if err != nil {
		return nil, err
	}
	return results, nil
}

// isTransientStoreError reports whether a failed read is worth one more
// attempt. Only connection-level failures qualify; a SQL error or a dead
// context fails the same way every time.
func isTransientStoreError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

func buildListRequestsSQL(query ListRequestsQuery) (string, []any) {
	args := make([]any, 0, 8)

	selectCols := `
		SELECT
			r.id,
			o.id,
			r.title,
			r.description,
			r.category,
			r.type,
			ST_Y(r.location::geometry),
			ST_X(r.location::geometry),
			r.budget`
	if query.HasGeo() {
		selectCols += `,
			ST_Distance(r.location, ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography) AS distance`
		args = append(args, query.Center().Lng(), query.Center().Lat())
	}

	sqlText := selectCols + `
		FROM requests r
		JOIN orders o ON o.request_id = r.id
		WHERE r.is_active`

	if query.HasGeo() {
		sqlText += `
		AND ST_DWithin(r.location, ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography, ?)`
		args = append(args, query.Center().Lng(), query.Center().Lat(), query.RadiusMeters())
	}

	if query.Category() != "" {
		sqlText += `
		AND r.category = ?`
		args = append(args, query.Category())
	}

	if query.RequestType() != "" {
		sqlText += `
		AND r.type = ?`
		args = append(args, query.RequestType())
	}

	if query.Keyword() != "" {
		pattern := "%" + query.Keyword() + "%"
		sqlText += `
		AND (r.title ILIKE ? OR r.description ILIKE ?)`
		args = append(args, pattern, pattern)
	}

	if query.HasGeo() {
		sqlText += `
		ORDER BY distance ASC, r.id DESC`
	} else {
		sqlText += `
		ORDER BY r.created_at DESC, r.id DESC`
	}

	sqlText += `
		LIMIT ?`
	args = append(args, query.Limit())

	return sqlText, args
}

func (h ListRequestsQueryHandler) scan(
	ctx context.Context,
	sqlText string,
	args []any,
	withDistance bool,
) ([]ListRequestsQueryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(sqlText, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]ListRequestsQueryResponse, 0)

	for rows.Next() {
		var resp ListRequestsQueryResponse
		var id, orderID uuid.UUID
		var lat, lng float64
		var budget sql.NullFloat64
		var distance float64

		dest := []any{
			&id, &orderID, &resp.Title, &resp.Description, &resp.Category, &resp.Type,
			&lat, &lng, &budget,
		}
		if withDistance {
			dest = append(dest, &distance)
		}

		if err = rows.Scan(dest...); err != nil {
			return nil, err
		}

		requestID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = requestID

		linkedOrderID, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.OrderID = linkedOrderID

		location, locErr := kernel.NewGeoPoint(lat, lng)
		if locErr != nil {
			return nil, locErr
		}
		resp.Location = location

		if budget.Valid {
			v := budget.Float64
			resp.Budget = &v
		}
		if withDistance {
			d := distance
			resp.DistanceMeters = &d
		}

		results = append(results, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
