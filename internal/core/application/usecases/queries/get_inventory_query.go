// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"nexus/internal/core/domain/model/kernel"
	"nexus/internal/pkg/guard"
)

var ErrGetInventoryQueryIsNotConstructed = errors.New(
	"GetInventoryQuery must be created via NewGetInventoryQuery constructor",
)

// GetInventoryQuery retrieves the product catalog with live stock counters.
// An optional search term narrows the list by name or SKU.
//
// Example:
//
//	query := NewGetInventoryQuery("keyboard")
//	handler := NewGetInventoryQueryHandler(db)
//
//	products, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve inventory: %w", err)
//	}
//
//	for _, p := range products {
//	    fmt.Printf("%s: %d in stock (%s)\n", p.SKU, p.Stock, p.Status)
//	}
type GetInventoryQuery struct {
	search string

	guard guard.ConstructorGuard
}

// NewGetInventoryQuery creates a query for the product catalog.
// An empty search term returns the full catalog.
func NewGetInventoryQuery(search string) GetInventoryQuery {
	return GetInventoryQuery{
		search: search,
		guard:  guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetInventoryQueryIsNotConstructed if validation fails.
func (q GetInventoryQuery) Validate() error {
	return q.guard.Validate(ErrGetInventoryQueryIsNotConstructed)
}

// Search returns the search term from the query.
func (q GetInventoryQuery) Search() string {
	return q.search
}

// GetInventoryQueryResponse represents one product in the inventory read model.
type GetInventoryQueryResponse struct {
	ID        kernel.UUID
	SKU       string
	Name      string
	Stock     int
	UnitPrice float64
	Location  string
	Status    string
}
