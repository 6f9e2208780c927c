package shipmentrepo

import (
	"context"
	"errors"
	"time"

	"nexus/internal/core/domain/model/kernel"
	"nexus/internal/core/domain/model/shipment"
	"nexus/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormShipmentRepository implements ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormShipmentRepository creates a new GORM shipment repository.
func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new shipment to the database. A duplicate tracking id fails the
// insert with the unique index violation.
func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing shipment to the database.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a shipment by ID.
func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByTrackingID retrieves a shipment by its tracking code with a row-level
// write lock. Serializes concurrent handover confirmations for the same
// shipment: the second scan of the same token waits on the lock and then sees
// the already-advanced status.
func (r *GormShipmentRepository) GetByTrackingID(
	ctx context.Context,
	trackingID shipment.TrackingID,
) (*shipment.Shipment, error) {
	if err := trackingID.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "tracking_id = ?", trackingID.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", trackingID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ExistsTrackingID reports whether a shipment with the given tracking code
// already exists. Order intake retries generation on collision.
func (r *GormShipmentRepository) ExistsTrackingID(
	ctx context.Context,
	trackingID shipment.TrackingID,
) (bool, error) {
	if err := trackingID.Validate(); err != nil {
		return false, err
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&ShipmentDTO{}).
		Where("tracking_id = ?", trackingID.String()).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// GetAllPending retrieves the shipments awaiting assignment in creation order,
// with row-level write locks so a concurrent dispatch cycle cannot assign the
// same shipment twice.
func (r *GormShipmentRepository) GetAllPending(ctx context.Context) ([]*shipment.Shipment, error) {
	var dtos []ShipmentDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("status = ?", int(shipment.Pending)).
		Order("created_at").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return r.toDomainAll(dtos)
}

// GetAllByDriver retrieves a driver's shipments ordered by route order.
func (r *GormShipmentRepository) GetAllByDriver(
	ctx context.Context,
	driverID kernel.UUID,
) ([]*shipment.Shipment, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ShipmentDTO
	if err := r.db.WithContext(ctx).
		Where("driver_id = ?", driverID.Bytes()).
		Order("route_order").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return r.toDomainAll(dtos)
}

// HasActiveShipments reports whether the driver still has assigned or
// in-transit shipments.
func (r *GormShipmentRepository) HasActiveShipments(
	ctx context.Context,
	driverID kernel.UUID,
) (bool, error) {
	if err := driverID.Validate(); err != nil {
		return false, err
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&ShipmentDTO{}).
		Where("driver_id = ? AND status IN (?, ?)",
			driverID.Bytes(), int(shipment.Assigned), int(shipment.InTransit)).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// ResetAllToPending forces every shipment back to pending and clears all
// driver bindings and route orders. Bulk update; the aggregates are not loaded.
func (r *GormShipmentRepository) ResetAllToPending(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Model(&ShipmentDTO{}).
		Where("status <> ?", int(shipment.Pending)).
		Updates(map[string]any{
			"status":      int(shipment.Pending),
			"driver_id":   nil,
			"route_order": nil,
			"updated_at":  time.Now().UTC(),
		}).Error
}

func (r *GormShipmentRepository) toDomainAll(dtos []ShipmentDTO) ([]*shipment.Shipment, error) {
	shipments := make([]*shipment.Shipment, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, s)
	}

	return shipments, nil
}
