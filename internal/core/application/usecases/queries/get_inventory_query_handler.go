package queries

import (
	"context"

	"nexus/internal/core/domain/model/kernel"
	"nexus/internal/core/domain/model/product"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetInventoryQueryHandler retrieves the product catalog from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
// The stock status (active, low_stock, out_of_stock) is derived from the
// counter at read time, never stored.
type GetInventoryQueryHandler struct {
	db *gorm.DB
}

// NewGetInventoryQueryHandler creates a handler for inventory queries.
// Requires a GORM database connection for query execution.
func NewGetInventoryQueryHandler(db *gorm.DB) GetInventoryQueryHandler {
	return GetInventoryQueryHandler{db: db}
}

// Handle executes the query to retrieve the product catalog.
// Returns products sorted by name, optionally narrowed by a case-insensitive
// match on name or SKU.
func (h GetInventoryQueryHandler) Handle(
	ctx context.Context,
	query GetInventoryQuery,
) ([]GetInventoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	products := make([]GetInventoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			sku,
			name,
			stock,
			unit_price,
			location
		FROM products
		WHERE ? = '' OR name ILIKE '%' || ? || '%' OR sku ILIKE '%' || ? || '%'
		ORDER BY name
	`, query.Search(), query.Search(), query.Search()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var response GetInventoryQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&response.SKU,
			&response.Name,
			&response.Stock,
			&response.UnitPrice,
			&response.Location,
		)
		if err != nil {
			return nil, err
		}

		productID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		response.ID = productID
		response.Status = product.StatusForStock(response.Stock).String()
		products = append(products, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}
