package queries

import (
	"errors"

	"nexus/internal/core/domain/model/kernel"
	"nexus/internal/pkg/guard"
)

var ErrGetFleetQueryIsNotConstructed = errors.New(
	"GetFleetQuery must be created via NewGetFleetQuery constructor",
)

// GetFleetQuery retrieves every driver with their current status, position
// and active shipment count for the fleet monitoring view.
type GetFleetQuery struct {
	guard guard.ConstructorGuard
}

// NewGetFleetQuery creates a query to retrieve the whole fleet.
func NewGetFleetQuery() GetFleetQuery {
	return GetFleetQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetFleetQueryIsNotConstructed if validation fails.
func (q GetFleetQuery) Validate() error {
	return q.guard.Validate(ErrGetFleetQueryIsNotConstructed)
}

// GetFleetQueryResponse represents one driver in the fleet read model.
type GetFleetQueryResponse struct {
	ID              kernel.UUID
	Name            string
	Vehicle         string
	Status          string
	Lat             float64
	Lng             float64
	Phone           string
	ActiveShipments int
}
