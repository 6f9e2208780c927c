package queries

import (
	"context"

	"nexus/internal/core/domain/model/kernel"
	"nexus/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveShipmentsQueryHandler retrieves undelivered shipments from the
// database with their assigned drivers joined in.
type GetActiveShipmentsQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveShipmentsQueryHandler creates a handler for operations board queries.
// Requires a GORM database connection for query execution.
func NewGetActiveShipmentsQueryHandler(db *gorm.DB) GetActiveShipmentsQueryHandler {
	return GetActiveShipmentsQueryHandler{db: db}
}

// Handle executes the query to retrieve undelivered shipments.
// Returns shipments newest first.
func (h GetActiveShipmentsQueryHandler) Handle(
	ctx context.Context,
	query GetActiveShipmentsQuery,
) ([]GetActiveShipmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	shipments := make([]GetActiveShipmentsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			s.tracking_id,
			s.destination_address,
			s.destination_lat,
			s.destination_lng,
			s.status,
			s.weight_kg,
			s.price,
			s.route_order,
			s.driver_id,
			d.name,
			s.created_at
		FROM shipments s
		LEFT JOIN drivers d ON d.id = s.driver_id
		WHERE s.status <> ?
		ORDER BY s.created_at DESC
	`, int(shipment.Delivered)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var response GetActiveShipmentsQueryResponse
		var id uuid.UUID
		var driverID *uuid.UUID
		var status int

		err = rows.Scan(
			&id,
			&response.TrackingID,
			&response.DestinationAddress,
			&response.Lat,
			&response.Lng,
			&status,
			&response.WeightKg,
			&response.Price,
			&response.RouteOrder,
			&driverID,
			&response.DriverName,
			&response.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		shipmentID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		response.ID = shipmentID
		response.Status = shipment.Status(status).String()

		if driverID != nil {
			dID, idErr := kernel.UUIDFromBytes((*driverID)[:])
			if idErr != nil {
				return nil, idErr
			}
			response.DriverID = &dID
		}

		shipments = append(shipments, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return shipments, nil
}
