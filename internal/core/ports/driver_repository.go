package ports

import (
	"context"

	"nexus/internal/core/domain/model/driver"
	"nexus/internal/core/domain/model/kernel"
)

// DriverRepository defines the persistence contract for driver aggregates.
type DriverRepository interface {
	// Add persists a new driver aggregate to storage.
	Add(ctx context.Context, aggregate *driver.Driver) error

	// Update persists changes to an existing driver aggregate.
	Update(ctx context.Context, aggregate *driver.Driver) error

	// Get retrieves a driver aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// GetForUpdate retrieves a driver aggregate with a row-level write lock,
	// serializing concurrent handover confirmations for the same driver.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// GetAll retrieves every driver.
	GetAll(ctx context.Context) ([]*driver.Driver, error)

	// GetAllIdle retrieves the drivers currently in the idle status, with
	// row-level write locks so a concurrent dispatch cycle cannot hand the
	// same driver out twice.
	GetAllIdle(ctx context.Context) ([]*driver.Driver, error)
}
