package driver

import (
	"fmt"

	"nexus/internal/pkg/errs"
)

// VehicleClass categorizes a driver's vehicle and determines the maximum
// payload mass the driver may carry in one run. The payload ceilings are hard
// assignment constraints, not advisory values.
type VehicleClass int

const (
	// VehicleUnknown represents an invalid or undefined vehicle class.
	VehicleUnknown VehicleClass = iota

	// Motor is a motorcycle courier, limited to small parcels.
	Motor

	// Van is a light delivery van.
	Van

	// Truck is a box truck for heavy freight.
	Truck
)

// Maximum payload per vehicle class, in kilograms.
const (
	MotorMaxPayloadKg = 20.0
	VanMaxPayloadKg   = 100.0
	TruckMaxPayloadKg = 500.0
)

// VehicleClassFromString parses the wire-level vehicle class name.
// Returns an error for anything other than "motor", "van", or "truck".
func VehicleClassFromString(s string) (VehicleClass, error) {
	switch s {
	case "motor":
		return Motor, nil
	case "van":
		return Van, nil
	case "truck":
		return Truck, nil
	default:
		return VehicleUnknown, errs.NewValueIsInvalidErrorWithCause(
			"vehicleClass", fmt.Errorf("%q is not a valid vehicle class", s))
	}
}

// Validate checks if the VehicleClass value is one of the defined classes.
func (v VehicleClass) Validate() error {
	switch v {
	case Motor, Van, Truck:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"vehicleClass", fmt.Errorf("%d is not a valid vehicle class", v))
	}
}

// MaxPayloadKg returns the payload ceiling for the vehicle class in kilograms.
// An unknown class carries nothing.
func (v VehicleClass) MaxPayloadKg() float64 {
	switch v {
	case Motor:
		return MotorMaxPayloadKg
	case Van:
		return VanMaxPayloadKg
	case Truck:
		return TruckMaxPayloadKg
	default:
		return 0
	}
}

// String returns the wire-level name of the vehicle class.
// Implements the fmt.Stringer interface.
func (v VehicleClass) String() string {
	switch v {
	case Motor:
		return "motor"
	case Van:
		return "van"
	case Truck:
		return "truck"
	default:
		return "unknown"
	}
}
