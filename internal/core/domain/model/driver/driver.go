package driver

import (
	"errors"

	"nexus/internal/core/domain/model/kernel"
	"nexus/internal/pkg/errs"
	"nexus/internal/pkg/guard"
)

// Domain errors for driver operations.
var (
	// ErrNameIsRequired is returned when attempting to create a driver without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrDriverIsNotConstructed is returned when using an improperly initialized Driver.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")
)

// Driver represents a delivery driver in the fleet.
// It is an aggregate root that owns the driver's identity, vehicle class,
// availability status, and last reported position.
//
// Key responsibilities:
//   - Enforcing the idle/busy/offline status machine
//   - Answering payload-capacity questions during assignment
//   - Recording driver-reported positions (advisory, not authoritative)
//
// Business rules:
//   - A driver is created Idle at the depot position
//   - Busy means the driver owns at least one active shipment; the transition
//     back to Idle happens only when the last active shipment is delivered
//   - A busy driver cannot go offline
//   - The administrative reset is the only bypass of the status machine
type Driver struct {
	// id uniquely identifies the driver
	id kernel.UUID
	// name is the driver's display name
	name string
	// vehicle determines the maximum payload the driver may carry
	vehicle VehicleClass
	// status is the driver's availability for dispatch
	status Status
	// position is the last driver-reported location
	position kernel.GeoPoint
	// phone is an optional contact number
	phone string
	// guard ensures the driver was properly constructed
	guard guard.ConstructorGuard
}

// NewDriver creates a new Driver with the specified parameters.
// The driver starts Idle at the given position. Name must be non-empty, the
// vehicle class and position must be valid. Returns aggregated validation
// errors when multiple parameters are invalid.
func NewDriver(
	id kernel.UUID,
	name string,
	vehicle VehicleClass,
	position kernel.GeoPoint,
	phone string,
) (*Driver, error) {
	d := &Driver{
		status: Idle,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
		d.setVehicle(vehicle),
		d.setPosition(position),
	); err != nil {
		return nil, err
	}

	d.phone = phone
	return d, nil
}

// RestoreDriver reconstructs a Driver aggregate from persistent storage,
// including its persisted status. The restored driver behaves identically to
// one created through normal domain operations.
func RestoreDriver(
	id kernel.UUID,
	name string,
	vehicle VehicleClass,
	status Status,
	position kernel.GeoPoint,
	phone string,
) (*Driver, error) {
	d, err := NewDriver(id, name, vehicle, position, phone)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	d.status = status
	return d, nil
}

// Validate checks if the Driver was properly constructed via its constructor.
func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

// IsEqual compares two drivers by their unique identifiers.
func (d *Driver) IsEqual(other *Driver) bool {
	if other == nil {
		return false
	}
	return d.id.IsEqual(other.id)
}

// ID returns the unique identifier of the driver.
func (d *Driver) ID() kernel.UUID {
	return d.id
}

// Name returns the driver's display name.
func (d *Driver) Name() string {
	return d.name
}

// Vehicle returns the driver's vehicle class.
func (d *Driver) Vehicle() VehicleClass {
	return d.vehicle
}

// Status returns the driver's current availability status.
func (d *Driver) Status() Status {
	return d.status
}

// Position returns the last driver-reported location.
func (d *Driver) Position() kernel.GeoPoint {
	return d.position
}

// Phone returns the driver's contact number, if any.
func (d *Driver) Phone() string {
	return d.phone
}

// CanCarry reports whether the driver's vehicle payload ceiling covers the
// given weight in kilograms.
func (d *Driver) CanCarry(weightKg float64) bool {
	return weightKg > 0 && weightKg <= d.vehicle.MaxPayloadKg()
}

// MarkBusy transitions the driver to Busy on shipment assignment.
// Idempotent when the driver is already busy.
func (d *Driver) MarkBusy() error {
	newStatus, err := d.status.MarkBusy()
	if err != nil {
		return err
	}

	d.status = newStatus
	return nil
}

// MarkIdle transitions the driver back to Idle after their last active
// shipment is delivered.
func (d *Driver) MarkIdle() error {
	newStatus, err := d.status.MarkIdle()
	if err != nil {
		return err
	}

	d.status = newStatus
	return nil
}

// MarkOffline takes the driver out of dispatch rotation.
// Rejected while the driver is busy.
func (d *Driver) MarkOffline() error {
	newStatus, err := d.status.MarkOffline()
	if err != nil {
		return err
	}

	d.status = newStatus
	return nil
}

// ReportPosition records a driver-reported location update.
// The position is advisory: it feeds observers and route computation but is
// never authoritative for billing.
func (d *Driver) ReportPosition(position kernel.GeoPoint) error {
	return d.setPosition(position)
}

// ResetToIdle forces the driver back to Idle regardless of current status.
// This is the administrative escape hatch used by the operational reset; it
// deliberately bypasses the status machine and must not be called from the
// regular dispatch flow.
func (d *Driver) ResetToIdle() {
	d.status = Idle
}

// setID sets the driver's unique identifier with validation.
func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	d.id = id
	return nil
}

// setName sets the driver's name with validation.
func (d *Driver) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	d.name = name
	return nil
}

// setVehicle sets the vehicle class with validation.
func (d *Driver) setVehicle(vehicle VehicleClass) error {
	if err := vehicle.Validate(); err != nil {
		return err
	}

	d.vehicle = vehicle
	return nil
}

// setPosition sets the driver's position with validation.
func (d *Driver) setPosition(position kernel.GeoPoint) error {
	if err := position.Validate(); err != nil {
		return err
	}

	d.position = position
	return nil
}
