package shipment

import (
	"errors"
	"time"

	"nexus/internal/core/domain/model/kernel"
	"nexus/internal/pkg/errs"
	"nexus/internal/pkg/guard"
)

// Domain errors for shipment operations.
var (
	// ErrDestinationAddressIsRequired is returned when creating a shipment without a destination address.
	ErrDestinationAddressIsRequired = errs.NewValueIsRequiredError("destinationAddress")
	// ErrOriginAddressIsRequired is returned when creating a shipment without an origin address.
	ErrOriginAddressIsRequired = errs.NewValueIsRequiredError("originAddress")
	// ErrShipmentIsNotConstructed is returned when using an improperly initialized Shipment.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")
)

// Shipment represents one outbound delivery aggregate created from an order's
// line items. It is the aggregate root for the delivery lifecycle.
//
// Invariants:
//   - The status moves strictly forward: pending -> assigned -> in_transit -> delivered
//   - A driver is bound iff the status is assigned or later
//   - The route order (stop sequence within a driver's multi-stop run) is set
//     only while a driver is bound
//   - The administrative reset is the only backward path and lives outside the
//     regular transition set
//
// Transit transitions additionally verify ownership: only the bound driver may
// start or complete the run. A mismatched or repeated action is rejected with
// a typed transition error and no side effects.
type Shipment struct {
	// id uniquely identifies the shipment
	id kernel.UUID
	// trackingID is the unique customer-facing code
	trackingID TrackingID
	// originAddress is the warehouse the shipment leaves from
	originAddress string
	// destinationAddress is the free-form delivery address
	destinationAddress string
	// destination is the delivery coordinate
	destination kernel.GeoPoint
	// status is the lifecycle state
	status Status
	// weightKg is the aggregate package weight in kilograms
	weightKg float64
	// price is the order total carried for the waybill
	price float64
	// driverID is the assigned driver, nil while pending
	driverID *kernel.UUID
	// routeOrder is the 1-based stop sequence within the driver's run, nil while pending
	routeOrder *int
	// createdAt is when the shipment was created
	createdAt time.Time
	// updatedAt is bumped on every lifecycle mutation
	updatedAt time.Time
	// guard ensures the shipment was properly constructed
	guard guard.ConstructorGuard
}

// NewShipment creates a new Shipment in Pending status.
// Addresses must be non-empty, the destination coordinate must be valid, and
// the weight must be positive. Returns aggregated validation errors when
// multiple parameters are invalid.
func NewShipment(
	id kernel.UUID,
	trackingID TrackingID,
	originAddress string,
	destinationAddress string,
	destination kernel.GeoPoint,
	weightKg float64,
	price float64,
) (*Shipment, error) {
	now := time.Now().UTC()
	s := &Shipment{
		status:    Pending,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setTrackingID(trackingID),
		s.setOriginAddress(originAddress),
		s.setDestinationAddress(destinationAddress),
		s.setDestination(destination),
		s.setWeightKg(weightKg),
		s.setPrice(price),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreShipment reconstructs a Shipment aggregate from persistent storage,
// including its lifecycle state and driver binding. It re-checks the binding
// invariant: a driver must be present iff the status is assigned or later, and
// a route order requires a bound driver.
func RestoreShipment(
	id kernel.UUID,
	trackingID TrackingID,
	originAddress string,
	destinationAddress string,
	destination kernel.GeoPoint,
	status Status,
	weightKg float64,
	price float64,
	driverID *kernel.UUID,
	routeOrder *int,
	createdAt time.Time,
	updatedAt time.Time,
) (*Shipment, error) {
	s, err := NewShipment(id, trackingID, originAddress, destinationAddress, destination, weightKg, price)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	hasDriver := driverID != nil
	if hasDriver != (status != Pending) {
		return nil, errs.NewValueIsInvalidErrorWithCause("driverId",
			errors.New("driver binding does not match shipment status"))
	}
	if routeOrder != nil && driverID == nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("routeOrder",
			errors.New("route order requires a bound driver"))
	}

	if driverID != nil {
		if err = driverID.Validate(); err != nil {
			return nil, err
		}
		idCopy := *driverID
		s.driverID = &idCopy
	}
	if routeOrder != nil {
		orderCopy := *routeOrder
		s.routeOrder = &orderCopy
	}

	s.status = status
	s.createdAt = createdAt
	s.updatedAt = updatedAt
	return s, nil
}

// Validate checks if the Shipment was properly constructed via its constructor.
func (s *Shipment) Validate() error {
	if s == nil {
		return ErrShipmentIsNotConstructed
	}
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

// IsEqual compares two shipments by their unique identifiers.
func (s *Shipment) IsEqual(other *Shipment) bool {
	if other == nil {
		return false
	}
	return s.id.IsEqual(other.id)
}

// ID returns the unique identifier of the shipment.
func (s *Shipment) ID() kernel.UUID {
	return s.id
}

// TrackingID returns the customer-facing tracking code.
func (s *Shipment) TrackingID() TrackingID {
	return s.trackingID
}

// OriginAddress returns the warehouse address the shipment leaves from.
func (s *Shipment) OriginAddress() string {
	return s.originAddress
}

// DestinationAddress returns the free-form delivery address.
func (s *Shipment) DestinationAddress() string {
	return s.destinationAddress
}

// Destination returns the delivery coordinate.
func (s *Shipment) Destination() kernel.GeoPoint {
	return s.destination
}

// Status returns the current lifecycle state.
func (s *Shipment) Status() Status {
	return s.status
}

// WeightKg returns the aggregate package weight in kilograms.
func (s *Shipment) WeightKg() float64 {
	return s.weightKg
}

// Price returns the order total carried for the waybill.
func (s *Shipment) Price() float64 {
	return s.price
}

// Driver returns the bound driver's ID, or nil while pending.
func (s *Shipment) Driver() *kernel.UUID {
	return s.driverID
}

// RouteOrder returns the 1-based stop sequence within the driver's run,
// or nil while no driver is bound.
func (s *Shipment) RouteOrder() *int {
	return s.routeOrder
}

// CreatedAt returns the creation timestamp.
func (s *Shipment) CreatedAt() time.Time {
	return s.createdAt
}

// UpdatedAt returns the timestamp of the last lifecycle mutation.
func (s *Shipment) UpdatedAt() time.Time {
	return s.updatedAt
}

// IsActive reports whether the shipment currently occupies its driver
// (assigned or in transit).
func (s *Shipment) IsActive() bool {
	return s.status.IsActive()
}

// Assign binds the shipment to a driver with a stop sequence and moves it to
// Assigned. Valid only from Pending; the route order must be positive.
func (s *Shipment) Assign(driverID kernel.UUID, routeOrder int) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if routeOrder < 1 {
		return errs.NewValueIsOutOfRangeError("routeOrder", routeOrder, 1, routeOrder)
	}

	newStatus, err := s.status.Assign()
	if err != nil {
		return err
	}

	s.status = newStatus
	s.driverID = &driverID
	s.routeOrder = &routeOrder
	s.touch()
	return nil
}

// StartTransit moves the shipment to InTransit on the bound driver's pickup
// confirmation. Rejected with a transition error when the shipment is not
// assigned or when the reporting driver is not the bound one; in both cases
// nothing is mutated.
func (s *Shipment) StartTransit(driverID kernel.UUID) error {
	if err := s.checkOwnership(driverID, InTransit); err != nil {
		return err
	}

	newStatus, err := s.status.StartTransit()
	if err != nil {
		return err
	}

	s.status = newStatus
	s.touch()
	return nil
}

// Complete moves the shipment to Delivered on the bound driver's delivery
// confirmation. Rejected with a transition error when the shipment is not in
// transit or when the reporting driver is not the bound one.
func (s *Shipment) Complete(driverID kernel.UUID) error {
	if err := s.checkOwnership(driverID, Delivered); err != nil {
		return err
	}

	newStatus, err := s.status.Complete()
	if err != nil {
		return err
	}

	s.status = newStatus
	s.touch()
	return nil
}

// ResetToPending forces the shipment back to Pending, clearing the driver
// binding and route order. This is the administrative escape hatch used by the
// operational reset; it deliberately bypasses the forward-only transition set
// and must not be called from the regular dispatch flow.
func (s *Shipment) ResetToPending() {
	s.status = Pending
	s.driverID = nil
	s.routeOrder = nil
	s.touch()
}

// checkOwnership verifies the reporting driver is the bound one.
func (s *Shipment) checkOwnership(driverID kernel.UUID, target Status) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if s.driverID == nil || !s.driverID.IsEqual(driverID) {
		return errs.NewInvalidTransitionError("shipment", s.status.String(), target.String())
	}
	return nil
}

// touch bumps the updatedAt timestamp.
func (s *Shipment) touch() {
	s.updatedAt = time.Now().UTC()
}

// setID sets the shipment's unique identifier with validation.
func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	s.id = id
	return nil
}

// setTrackingID sets the tracking code with validation.
func (s *Shipment) setTrackingID(trackingID TrackingID) error {
	if err := trackingID.Validate(); err != nil {
		return err
	}

	s.trackingID = trackingID
	return nil
}

// setOriginAddress sets the origin address with validation.
func (s *Shipment) setOriginAddress(originAddress string) error {
	if originAddress == "" {
		return ErrOriginAddressIsRequired
	}

	s.originAddress = originAddress
	return nil
}

// setDestinationAddress sets the destination address with validation.
func (s *Shipment) setDestinationAddress(destinationAddress string) error {
	if destinationAddress == "" {
		return ErrDestinationAddressIsRequired
	}

	s.destinationAddress = destinationAddress
	return nil
}

// setDestination sets the delivery coordinate with validation.
func (s *Shipment) setDestination(destination kernel.GeoPoint) error {
	if err := destination.Validate(); err != nil {
		return err
	}

	s.destination = destination
	return nil
}

// setWeightKg sets the package weight with validation.
func (s *Shipment) setWeightKg(weightKg float64) error {
	if weightKg <= 0 {
		return errs.NewValueIsOutOfRangeError("weightKg", weightKg, 0, weightKg)
	}

	s.weightKg = weightKg
	return nil
}

// setPrice sets the order total with validation.
func (s *Shipment) setPrice(price float64) error {
	if price < 0 {
		return errs.NewValueIsOutOfRangeError("price", price, 0, price)
	}

	s.price = price
	return nil
}
