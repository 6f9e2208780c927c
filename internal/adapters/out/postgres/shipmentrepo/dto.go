// Package shipmentrepo provides data transfer objects and mapping functions
// for shipment persistence. It implements the repository pattern for the
// shipment aggregate, handling the conversion between domain entities and
// database rows.
package shipmentrepo

import (
	"time"

	"nexus/internal/core/domain/model/kernel"
	"nexus/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO represents the database structure for persisting shipment
// aggregates. The tracking id carries a unique index: it is the external
// identity printed on labels and embedded in handover tokens. DriverID and
// RouteOrder are nullable; they are set only while a driver is bound.
type ShipmentDTO struct {
	ID                 uuid.UUID   `gorm:"type:uuid;primaryKey"`
	TrackingID         string      `gorm:"type:varchar(16);not null;uniqueIndex"`
	OriginAddress      string      `gorm:"type:varchar(255);not null"`
	DestinationAddress string      `gorm:"type:varchar(255);not null"`
	Destination        GeoPointDTO `gorm:"embedded;embeddedPrefix:destination_"`
	Status             int         `gorm:"type:int;not null;index"`
	WeightKg           float64     `gorm:"type:double precision;not null"`
	Price              float64     `gorm:"type:numeric(14,2);not null"`
	DriverID           *uuid.UUID  `gorm:"type:uuid;index"`
	RouteOrder         *int        `gorm:"type:int"`
	CreatedAt          time.Time   `gorm:"not null"`
	UpdatedAt          time.Time   `gorm:"not null"`
}

// TableName specifies the database table name for shipment entities.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// GeoPointDTO represents an embedded coordinate pair within a table.
type GeoPointDTO struct {
	Lat float64 `gorm:"type:double precision;not null"`
	Lng float64 `gorm:"type:double precision;not null"`
}

// fromDomain converts a shipment domain aggregate to its database representation.
func fromDomain(aggregate *shipment.Shipment) ShipmentDTO {
	var driverID *uuid.UUID
	if aggregate.Driver() != nil {
		raw := aggregate.Driver().Bytes()
		driverID = &raw
	}

	var routeOrder *int
	if aggregate.RouteOrder() != nil {
		order := *aggregate.RouteOrder()
		routeOrder = &order
	}

	return ShipmentDTO{
		ID:                 aggregate.ID().Bytes(),
		TrackingID:         aggregate.TrackingID().String(),
		OriginAddress:      aggregate.OriginAddress(),
		DestinationAddress: aggregate.DestinationAddress(),
		Destination: GeoPointDTO{
			Lat: aggregate.Destination().Lat(),
			Lng: aggregate.Destination().Lng(),
		},
		Status:     int(aggregate.Status()),
		WeightKg:   aggregate.WeightKg(),
		Price:      aggregate.Price(),
		DriverID:   driverID,
		RouteOrder: routeOrder,
		CreatedAt:  aggregate.CreatedAt(),
		UpdatedAt:  aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to a shipment domain aggregate.
func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	trackingID, err := shipment.TrackingIDFromString(dto.TrackingID)
	if err != nil {
		return nil, err
	}

	destination, err := kernel.NewGeoPoint(dto.Destination.Lat, dto.Destination.Lng)
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	return shipment.RestoreShipment(
		id,
		trackingID,
		dto.OriginAddress,
		dto.DestinationAddress,
		destination,
		shipment.Status(dto.Status),
		dto.WeightKg,
		dto.Price,
		driverID,
		dto.RouteOrder,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
