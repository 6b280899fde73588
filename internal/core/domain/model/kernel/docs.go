// Package kernel provides core domain primitives shared across the
// marketplace model, following Domain-Driven Design principles.
//
// The package includes:
//   - UUID: a value object for unique identifiers with validation and comparison
//   - GeoPoint: a validated WGS84 coordinate pair with geodesic distance
//
// These primitives enforce invariants at construction time so domain objects
// built on them are always in a valid state. They are immutable and safe for
// concurrent use.
package kernel
