// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models and go straight to the store,
// bypassing the aggregate repositories.
package queries

import (
	"errors"
	"fmt"

	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/core/domain/model/request"
	"ineed/internal/pkg/errs"
	"ineed/internal/pkg/guard"
)

const (
	// DefaultListLimit caps result pages when the caller does not ask for less.
	DefaultListLimit = 50

	maxListLimit    = 100
	maxRadiusMeters = 100_000
)

var ErrListRequestsQueryIsNotConstructed = errors.New(
	"ListRequestsQuery must be created via NewListRequestsQuery constructor",
)

// ListRequestsQuery searches active requests. With a center and radius it
// matches geographically, nearest first; without them it degrades to a
// recency-ordered listing. Category, type, and keyword filters are
// conjunctive in both modes.
//
// Example:
//
//	radius := 5000.0
//	query, err := NewListRequestsQuery(&lat, &lng, &radius, "home-repair", "service", "sink", 20)
//	if err != nil {
//	    return fmt.Errorf("invalid search: %w", err)
//	}
type ListRequestsQuery struct { //nolint:recvcheck //using for validation
	center       *kernel.GeoPoint
	radiusMeters float64
	category     string
	requestType  string
	keyword      string
	limit        int

	guard guard.ConstructorGuard
}

// NewListRequestsQuery creates a search query. Latitude, longitude, and
// radius come together or not at all. A zero limit means DefaultListLimit.
func NewListRequestsQuery(
	lat *float64,
	lng *float64,
	radiusMeters *float64,
	category string,
	requestType string,
	keyword string,
	limit int,
) (ListRequestsQuery, error) {
	q := ListRequestsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		q.setGeo(lat, lng, radiusMeters),
		q.setRequestType(requestType),
		q.setLimit(limit),
	); err != nil {
		return ListRequestsQuery{}, err
	}

	q.category = category
	q.keyword = keyword
	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q ListRequestsQuery) Validate() error {
	return q.guard.Validate(ErrListRequestsQueryIsNotConstructed)
}

// HasGeo reports whether the query carries a search center.
func (q ListRequestsQuery) HasGeo() bool {
	return q.center != nil
}

// Center returns the search center, nil in recency mode.
func (q ListRequestsQuery) Center() *kernel.GeoPoint {
	return q.center
}

// RadiusMeters returns the search radius, 0 in recency mode.
func (q ListRequestsQuery) RadiusMeters() float64 {
	return q.radiusMeters
}

// Category returns the category filter, empty for none.
func (q ListRequestsQuery) Category() string {
	return q.category
}

// RequestType returns the type filter ("service"/"product"), empty for none.
func (q ListRequestsQuery) RequestType() string {
	return q.requestType
}

// Keyword returns the title/description keyword filter, empty for none.
func (q ListRequestsQuery) Keyword() string {
	return q.keyword
}

// Limit returns the page size.
func (q ListRequestsQuery) Limit() int {
	return q.limit
}

func (q *ListRequestsQuery) setGeo(lat, lng, radiusMeters *float64) error {
	if lat == nil && lng == nil && radiusMeters == nil {
		return nil
	}

	if lat == nil || lng == nil || radiusMeters == nil {
		return errs.NewValueIsRequiredErrorWithCause("location",
			errors.New("lat, lng and radius must be provided together"))
	}

	center, err := kernel.NewGeoPoint(*lat, *lng)
	if err != nil {
		return err
	}

	if *radiusMeters <= 0 || *radiusMeters > maxRadiusMeters {
		return errs.NewValueIsOutOfRangeError("radius", *radiusMeters, 0, maxRadiusMeters)
	}

	q.center = &center
	q.radiusMeters = *radiusMeters
	return nil
}

func (q *ListRequestsQuery) setRequestType(requestType string) error {
	if requestType == "" {
		return nil
	}

	if _, err := request.ParseType(requestType); err != nil {
		return err
	}

	q.requestType = requestType
	return nil
}

func (q *ListRequestsQuery) setLimit(limit int) error {
	switch {
	case limit < 0:
		return errs.NewValueIsInvalidErrorWithCause("limit",
			fmt.Errorf("%d is negative", limit))
	case limit == 0:
		q.limit = DefaultListLimit
	case limit > maxListLimit:
		q.limit = maxListLimit
	default:
		q.limit = limit
	}
	return nil
}

// ListRequestsQueryResponse is one matched request in the read model.
// DistanceMeters is nil in recency mode.
type ListRequestsQueryResponse struct {
	ID             kernel.UUID
	OrderID        kernel.UUID
	Title          string
	Description    string
	Category       string
	Type           string
	Location       kernel.GeoPoint
	Budget         *float64
	DistanceMeters *float64
}
