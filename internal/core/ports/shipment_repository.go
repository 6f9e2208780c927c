package ports

import (
	"context"

	"nexus/internal/core/domain/model/kernel"
	"nexus/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipment aggregates.
type ShipmentRepository interface {
	// Add persists a new shipment aggregate to storage.
	// The tracking id must be unique; a duplicate fails the insert.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists changes to an existing shipment aggregate.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get retrieves a shipment aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetByTrackingID retrieves a shipment aggregate by its tracking code
	// with a row-level write lock, serializing concurrent handover
	// confirmations for the same shipment.
	// Returns ObjectNotFoundError when the tracking id is unknown.
	GetByTrackingID(ctx context.Context, trackingID shipment.TrackingID) (*shipment.Shipment, error)

	// ExistsTrackingID reports whether a shipment with the given tracking
	// code already exists. Used by order intake to retry generation on
	// collision.
	ExistsTrackingID(ctx context.Context, trackingID shipment.TrackingID) (bool, error)

	// GetAllPending retrieves the shipments awaiting assignment, with
	// row-level write locks so a concurrent dispatch cycle cannot assign the
	// same shipment twice.
	GetAllPending(ctx context.Context) ([]*shipment.Shipment, error)

	// GetAllByDriver retrieves a driver's shipments ordered by route order.
	GetAllByDriver(ctx context.Context, driverID kernel.UUID) ([]*shipment.Shipment, error)

	// HasActiveShipments reports whether the driver still has assigned or
	// in-transit shipments. Used on delivery completion to decide whether the
	// driver returns to idle.
	HasActiveShipments(ctx context.Context, driverID kernel.UUID) (bool, error)

	// ResetAllToPending forces every shipment back to pending and clears all
	// driver bindings and route orders. Administrative escape hatch backing
	// the operational reset.
	ResetAllToPending(ctx context.Context) error
}
