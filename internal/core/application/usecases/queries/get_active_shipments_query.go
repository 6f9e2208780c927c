package queries

import (
	"errors"
	"time"

	"nexus/internal/core/domain/model/kernel"
	"nexus/internal/pkg/guard"
)

var ErrGetActiveShipmentsQueryIsNotConstructed = errors.New(
	"GetActiveShipmentsQuery must be created via NewGetActiveShipmentsQuery constructor",
)

// GetActiveShipmentsQuery retrieves every shipment that has not been
// delivered yet, together with the assigned driver when there is one.
// Backs the operations board.
type GetActiveShipmentsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveShipmentsQuery creates a query for undelivered shipments.
func NewGetActiveShipmentsQuery() GetActiveShipmentsQuery {
	return GetActiveShipmentsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetActiveShipmentsQueryIsNotConstructed if validation fails.
func (q GetActiveShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveShipmentsQueryIsNotConstructed)
}

// GetActiveShipmentsQueryResponse represents one shipment in the operations
// board read model. Driver fields are nil while the shipment is pending.
type GetActiveShipmentsQueryResponse struct {
	ID                 kernel.UUID
	TrackingID         string
	DestinationAddress string
	Lat                float64
	Lng                float64
	Status             string
	WeightKg           float64
	Price              float64
	RouteOrder         *int
	DriverID           *kernel.UUID
	DriverName         *string
	CreatedAt          time.Time
}
