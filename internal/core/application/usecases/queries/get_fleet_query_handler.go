package queries

import (
	"context"

	"nexus/internal/core/domain/model/driver"
	"nexus/internal/core/domain/model/kernel"
	"nexus/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetFleetQueryHandler retrieves the fleet overview from the database.
// Joins the active shipment count per driver in a single round trip.
type GetFleetQueryHandler struct {
	db *gorm.DB
}

// NewGetFleetQueryHandler creates a handler for fleet queries.
// Requires a GORM database connection for query execution.
func NewGetFleetQueryHandler(db *gorm.DB) GetFleetQueryHandler {
	return GetFleetQueryHandler{db: db}
}

// Handle executes the query to retrieve the fleet overview.
// Returns drivers sorted by name with their active shipment counts.
func (h GetFleetQueryHandler) Handle(
	ctx context.Context,
	query GetFleetQuery,
) ([]GetFleetQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	drivers := make([]GetFleetQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			d.id,
			d.name,
			d.vehicle,
			d.status,
			d.position_lat,
			d.position_lng,
			d.phone,
			COUNT(s.id)
		FROM drivers d
		LEFT JOIN shipments s ON s.driver_id = d.id AND s.status IN (?, ?)
		GROUP BY d.id, d.name, d.vehicle, d.status, d.position_lat, d.position_lng, d.phone
		ORDER BY d.name
	`, int(shipment.Assigned), int(shipment.InTransit)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var response GetFleetQueryResponse
		var id uuid.UUID
		var vehicle, status int

		err = rows.Scan(
			&id,
			&response.Name,
			&vehicle,
			&status,
			&response.Lat,
			&response.Lng,
			&response.Phone,
			&response.ActiveShipments,
		)
		if err != nil {
			return nil, err
		}

		driverID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		response.ID = driverID
		response.Vehicle = driver.VehicleClass(vehicle).String()
		response.Status = driver.Status(status).String()
		drivers = append(drivers, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return drivers, nil
}
