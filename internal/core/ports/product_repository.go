// Package ports defines the contracts between the domain layer and
// infrastructure: repositories, the unit of work, the event publisher and the
// route geometry provider. These interfaces enable dependency inversion and
// testability.
package ports

import (
	"context"

	"nexus/internal/core/domain/model/kernel"
	"nexus/internal/core/domain/model/product"
)

// ProductRepository defines the persistence contract for product aggregates.
type ProductRepository interface {
	// Add persists a new product aggregate to storage.
	// The product must be valid and its SKU must not already exist.
	Add(ctx context.Context, aggregate *product.Product) error

	// Update persists changes to an existing product aggregate.
	Update(ctx context.Context, aggregate *product.Product) error

	// Get retrieves a product aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// GetBySKU retrieves a product aggregate by its SKU.
	// Returns ObjectNotFoundError when the SKU is unknown.
	GetBySKU(ctx context.Context, sku string) (*product.Product, error)

	// GetForUpdateBySKUs retrieves the products for the given SKUs with
	// row-level write locks, ordered by id so that concurrent reservations
	// acquire the locks in a consistent order. SKUs absent from storage are
	// simply missing from the result; the caller decides whether that is an
	// error.
	GetForUpdateBySKUs(ctx context.Context, skus []string) ([]*product.Product, error)
}
