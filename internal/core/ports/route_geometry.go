package ports

import (
	"context"

	"nexus/internal/core/domain/model/kernel"
)

// Route is a drivable path through a sequence of waypoints as computed by an
// external routing engine.
type Route struct {
	// Geometry is the path polyline, ordered from start to end.
	Geometry []kernel.GeoPoint
	// DistanceMeters is the total driving distance.
	DistanceMeters float64
	// DurationSeconds is the estimated driving time.
	DurationSeconds float64
}

// RouteGeometryProvider resolves drivable route geometry between waypoints.
// Implementations call an external routing engine; callers treat failures as
// degradation (fall back to straight lines), never as a dispatch error.
type RouteGeometryProvider interface {
	// GetRoute computes the driving route visiting the waypoints in order.
	// At least two waypoints are required.
	GetRoute(ctx context.Context, waypoints []kernel.GeoPoint) (Route, error)
}
