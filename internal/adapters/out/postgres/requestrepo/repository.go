// Package requestrepo persists request aggregates. The location lives in a
// PostGIS geography(Point,4326) column so radius search can use the gist
// index; reads and writes go through raw SQL because GORM has no native
// mapping for geography values.
package requestrepo

import (
	"context"
	"database/sql"
	"errors"

	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/core/domain/model/request"
	"ineed/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Schema is the DDL for the requests table. AutoMigrate cannot produce the
// geography column, so migration runs this statement instead.
const Schema = `
CREATE TABLE IF NOT EXISTS requests (
	id uuid PRIMARY KEY,
	owner_id uuid NOT NULL,
	title varchar(255) NOT NULL,
	description text NOT NULL,
	category text NOT NULL,
	type text NOT NULL,
	location geography(Point, 4326) NOT NULL,
	budget numeric,
	is_active boolean NOT NULL DEFAULT true,
	created_at timestamptz NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS requests_location_idx ON requests USING gist (location);
CREATE INDEX IF NOT EXISTS requests_category_idx ON requests (category);
`

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormRequestRepository implements RequestRepository using GORM.
type GormRequestRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormRequestRepository creates a new GORM request repository.
func NewGormRequestRepository(db *gorm.DB, tracker aggregateTracker) *GormRequestRepository {
	return &GormRequestRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new request to the database.
func (r *GormRequestRepository) Add(ctx context.Context, aggregate *request.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).Exec(`
		INSERT INTO requests (id, owner_id, title, description, category, type, location, budget, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography, ?, ?)
	`,
		aggregate.ID().String(), aggregate.OwnerID().String(),
		aggregate.Title(), aggregate.Description(), aggregate.Category(),
		aggregate.Type().String(),
		aggregate.Location().Lng(), aggregate.Location().Lat(),
		aggregate.Budget(), aggregate.IsActive(),
	).Error
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing request to the database. The location is fixed
// at creation and is not written again.
func (r *GormRequestRepository) Update(ctx context.Context, aggregate *request.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Exec(`
		UPDATE requests
		SET title = ?, description = ?, budget = ?, is_active = ?
		WHERE id = ?
	`,
		aggregate.Title(), aggregate.Description(), aggregate.Budget(), aggregate.IsActive(),
		aggregate.ID().String(),
	)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("request", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a request by ID, active or not.
func (r *GormRequestRepository) Get(ctx context.Context, id kernel.UUID) (*request.Request, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	row := r.db.WithContext(ctx).Raw(`
		SELECT id, owner_id, title, description, category, type,
			ST_Y(location::geometry), ST_X(location::geometry), budget, is_active
		FROM requests
		WHERE id = ?
	`, id.String()).Row()

	var rawID, ownerID uuid.UUID
	var title, description, category, typeStr string
	var lat, lng float64
	var budget sql.NullFloat64
	var isActive bool

	err := row.Scan(&rawID, &ownerID, &title, &description, &category, &typeStr,
		&lat, &lng, &budget, &isActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundError("request", id.String())
	}
	if err != nil {
		return nil, err
	}

	return restore(rawID, ownerID, title, description, category, typeStr, lat, lng, budget, isActive)
}

func restore(
	rawID, ownerID uuid.UUID,
	title, description, category, typeStr string,
	lat, lng float64,
	budget sql.NullFloat64,
	isActive bool,
) (*request.Request, error) {
	id, err := kernel.UUIDFromBytes(rawID[:])
	if err != nil {
		return nil, err
	}

	owner, err := kernel.UUIDFromBytes(ownerID[:])
	if err != nil {
		return nil, err
	}

	reqType, err := request.ParseType(typeStr)
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewGeoPoint(lat, lng)
	if err != nil {
		return nil, err
	}

	var budgetPtr *float64
	if budget.Valid {
		v := budget.Float64
		budgetPtr = &v
	}

	return request.RestoreRequest(id, owner, title, description, category, reqType, location, budgetPtr, isActive)
}
