package queries

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"nexus/internal/core/domain/model/kernel"
	"nexus/internal/core/domain/model/shipment"
	"nexus/internal/core/ports"
	"nexus/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetDriverRouteQueryHandler assembles a driver's current run for the live
// map: remaining stops from the database plus drivable geometry from the
// routing engine. A routing engine failure degrades the response to
// straight-line geometry instead of failing the query; the live map stays up
// when the engine is down.
type GetDriverRouteQueryHandler struct {
	db     *gorm.DB
	routes ports.RouteGeometryProvider
}

// NewGetDriverRouteQueryHandler creates a handler for driver route queries.
func NewGetDriverRouteQueryHandler(
	db *gorm.DB,
	routes ports.RouteGeometryProvider,
) GetDriverRouteQueryHandler {
	return GetDriverRouteQueryHandler{db: db, routes: routes}
}

// Handle executes the query to assemble one driver's run.
// Returns ObjectNotFoundError for an unknown driver. A driver without active
// shipments yields an empty run.
func (h GetDriverRouteQueryHandler) Handle(
	ctx context.Context,
	query GetDriverRouteQuery,
) (GetDriverRouteQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDriverRouteQueryResponse{}, err
	}

	response := GetDriverRouteQueryResponse{DriverID: query.DriverID()}

	var positionLat, positionLng float64
	row := h.db.WithContext(ctx).Raw(`
		SELECT position_lat, position_lng
		FROM drivers
		WHERE id = ?
	`, query.DriverID().Bytes()).Row()
	if err := row.Scan(&positionLat, &positionLng); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetDriverRouteQueryResponse{},
				errs.NewObjectNotFoundError("driver", query.DriverID().String())
		}
		return GetDriverRouteQueryResponse{}, err
	}

	stops, err := h.loadStops(ctx, query.DriverID())
	if err != nil {
		return GetDriverRouteQueryResponse{}, err
	}
	response.Stops = stops
	if len(stops) == 0 {
		return response, nil
	}

	waypoints, err := buildWaypoints(positionLat, positionLng, stops)
	if err != nil {
		return GetDriverRouteQueryResponse{}, err
	}

	route, err := h.routes.GetRoute(ctx, waypoints)
	if err != nil {
		slog.WarnContext(ctx, "route geometry degraded to straight lines",
			slog.String("driverId", query.DriverID().String()),
			slog.Any("error", err))
		response.Degraded = true
		response.Geometry = straightLine(waypoints)
		return response, nil
	}

	response.Geometry = make([]RoutePoint, 0, len(route.Geometry))
	for _, point := range route.Geometry {
		response.Geometry = append(response.Geometry, RoutePoint{Lat: point.Lat(), Lng: point.Lng()})
	}
	response.DistanceMeters = route.DistanceMeters
	response.DurationSeconds = route.DurationSeconds
	return response, nil
}

// loadStops retrieves the driver's active shipments in stop order.
func (h GetDriverRouteQueryHandler) loadStops(
	ctx context.Context,
	driverID kernel.UUID,
) ([]RouteStop, error) {
	stops := make([]RouteStop, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			tracking_id,
			destination_address,
			destination_lat,
			destination_lng,
			route_order,
			status
		FROM shipments
		WHERE driver_id = ? AND status IN (?, ?)
		ORDER BY route_order
	`, driverID.Bytes(), int(shipment.Assigned), int(shipment.InTransit)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var stop RouteStop
		var status int

		err = rows.Scan(
			&stop.TrackingID,
			&stop.Address,
			&stop.Lat,
			&stop.Lng,
			&stop.RouteOrder,
			&status,
		)
		if err != nil {
			return nil, err
		}

		stop.Status = shipment.Status(status).String()
		stops = append(stops, stop)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return stops, nil
}

// buildWaypoints assembles the waypoint sequence: the driver's position
// followed by the stops in route order.
func buildWaypoints(positionLat, positionLng float64, stops []RouteStop) ([]kernel.GeoPoint, error) {
	waypoints := make([]kernel.GeoPoint, 0, len(stops)+1)

	start, err := kernel.NewGeoPoint(positionLat, positionLng)
	if err != nil {
		return nil, err
	}
	waypoints = append(waypoints, start)

	for _, stop := range stops {
		point, err := kernel.NewGeoPoint(stop.Lat, stop.Lng)
		if err != nil {
			return nil, err
		}
		waypoints = append(waypoints, point)
	}

	return waypoints, nil
}

// straightLine renders the degraded geometry: the waypoints themselves.
func straightLine(waypoints []kernel.GeoPoint) []RoutePoint {
	geometry := make([]RoutePoint, 0, len(waypoints))
	for _, point := range waypoints {
		geometry = append(geometry, RoutePoint{Lat: point.Lat(), Lng: point.Lng()})
	}
	return geometry
}
