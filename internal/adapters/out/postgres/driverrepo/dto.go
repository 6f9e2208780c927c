// Package driverrepo provides data transfer objects and mapping functions for
// driver persistence. It implements the repository pattern for the driver
// aggregate, handling the conversion between domain entities and database rows.
package driverrepo

import (
	"nexus/internal/core/domain/model/driver"
	"nexus/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DriverDTO represents the database structure for persisting driver aggregates.
// Vehicle class and status are stored as their integer codes.
type DriverDTO struct {
	ID       uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Name     string      `gorm:"type:varchar(255);not null"`
	Vehicle  int         `gorm:"type:int;not null"`
	Status   int         `gorm:"type:int;not null;index"`
	Position GeoPointDTO `gorm:"embedded;embeddedPrefix:position_"`
	Phone    string      `gorm:"type:varchar(32)"`
}

// TableName specifies the database table name for driver entities.
func (DriverDTO) TableName() string {
	return "drivers"
}

// GeoPointDTO represents an embedded coordinate pair within a table.
type GeoPointDTO struct {
	Lat float64 `gorm:"type:double precision;not null"`
	Lng float64 `gorm:"type:double precision;not null"`
}

// fromDomain converts a driver domain aggregate to its database representation.
func fromDomain(aggregate *driver.Driver) DriverDTO {
	return DriverDTO{
		ID:      aggregate.ID().Bytes(),
		Name:    aggregate.Name(),
		Vehicle: int(aggregate.Vehicle()),
		Status:  int(aggregate.Status()),
		Position: GeoPointDTO{
			Lat: aggregate.Position().Lat(),
			Lng: aggregate.Position().Lng(),
		},
		Phone: aggregate.Phone(),
	}
}

// toDomain converts a database DTO to a driver domain aggregate.
func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	position, err := kernel.NewGeoPoint(dto.Position.Lat, dto.Position.Lng)
	if err != nil {
		return nil, err
	}

	return driver.RestoreDriver(
		id,
		dto.Name,
		driver.VehicleClass(dto.Vehicle),
		driver.Status(dto.Status),
		position,
		dto.Phone,
	)
}
