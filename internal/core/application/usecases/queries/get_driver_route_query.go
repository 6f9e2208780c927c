package queries

import (
	"errors"

	"nexus/internal/core/domain/model/kernel"
	"nexus/internal/pkg/guard"
)

var ErrGetDriverRouteQueryIsNotConstructed = errors.New(
	"GetDriverRouteQuery must be created via NewGetDriverRouteQuery constructor",
)

// GetDriverRouteQuery retrieves a driver's current run: the remaining stops in
// route order plus drivable path geometry for the live map.
//
// Example:
//
//	query, _ := NewGetDriverRouteQuery(driverID)
//	handler := NewGetDriverRouteQueryHandler(db, routeProvider)
//
//	route, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve route: %w", err)
//	}
//	if route.Degraded {
//	    log.Println("Routing engine unavailable, geometry is straight lines")
//	}
type GetDriverRouteQuery struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDriverRouteQuery creates a query for one driver's current run.
func NewGetDriverRouteQuery(driverID kernel.UUID) (GetDriverRouteQuery, error) {
	query := GetDriverRouteQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setDriverID(driverID); err != nil {
		return GetDriverRouteQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetDriverRouteQueryIsNotConstructed if validation fails.
func (q GetDriverRouteQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverRouteQueryIsNotConstructed)
}

// DriverID returns the driver ID from the query.
func (q GetDriverRouteQuery) DriverID() kernel.UUID {
	return q.driverID
}

func (q *GetDriverRouteQuery) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	q.driverID = driverID
	return nil
}

// RouteStop is one remaining stop in a driver's run.
type RouteStop struct {
	TrackingID string
	Address    string
	Lat        float64
	Lng        float64
	RouteOrder int
	Status     string
}

// RoutePoint is one vertex of the route polyline.
type RoutePoint struct {
	Lat float64
	Lng float64
}

// GetDriverRouteQueryResponse represents one driver's run in the live map
// read model. When the routing engine is unreachable the geometry degrades
// to straight lines between the waypoints and Degraded is set.
type GetDriverRouteQueryResponse struct {
	DriverID        kernel.UUID
	Stops           []RouteStop
	Geometry        []RoutePoint
	DistanceMeters  float64
	DurationSeconds float64
	Degraded        bool
}
