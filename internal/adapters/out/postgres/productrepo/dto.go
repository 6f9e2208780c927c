// Package productrepo provides data transfer objects and mapping functions for
// product persistence. It implements the repository pattern for the product
// aggregate, handling the conversion between domain entities and database rows.
package productrepo

import (
	"nexus/internal/core/domain/model/kernel"
	"nexus/internal/core/domain/model/product"

	"github.com/google/uuid"
)

// ProductDTO represents the database structure for persisting product aggregates.
// The SKU carries a unique index: it is the external identity of the catalog entry.
type ProductDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	SKU       string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Stock     int       `gorm:"type:int;not null"`
	UnitPrice float64   `gorm:"type:numeric(12,2);not null"`
	Location  string    `gorm:"type:varchar(255)"`
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}

// fromDomain converts a product domain aggregate to its database representation.
func fromDomain(aggregate *product.Product) ProductDTO {
	return ProductDTO{
		ID:        aggregate.ID().Bytes(),
		SKU:       aggregate.SKU(),
		Name:      aggregate.Name(),
		Stock:     aggregate.Stock(),
		UnitPrice: aggregate.UnitPrice(),
		Location:  aggregate.Location(),
	}
}

// toDomain converts a database DTO to a product domain aggregate.
func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return product.RestoreProduct(id, dto.SKU, dto.Name, dto.Stock, dto.UnitPrice, dto.Location)
}
