package shipment

import (
	"fmt"

	"nexus/internal/pkg/errs"
)

// Status represents the lifecycle state of a shipment.
// It implements a strictly forward state machine:
//
//	Pending ──> Assigned ──> InTransit ──> Delivered
//
// No backward transition exists in the machine; the administrative reset is a
// distinct operation on the aggregate, deliberately kept outside this
// transition table so the regular flow can never legitimize it.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// Pending is the initial status: the shipment awaits driver assignment.
	Pending

	// Assigned means a driver has been paired with the shipment.
	Assigned

	// InTransit means the driver has picked up the shipment and is on the road.
	InTransit

	// Delivered means the shipment reached its destination. Terminal.
	Delivered
)

// StatusFromString parses the wire-level status name.
func StatusFromString(s string) (Status, error) {
	switch s {
	case "pending":
		return Pending, nil
	case "assigned":
		return Assigned, nil
	case "in_transit":
		return InTransit, nil
	case "delivered":
		return Delivered, nil
	default:
		return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%q is not a valid shipment status", s))
	}
}

// Validate checks if the Status value is one of the defined statuses.
func (s Status) Validate() error {
	switch s {
	case Pending, Assigned, InTransit, Delivered:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid shipment status", s))
	}
}

// String returns the wire-level name of the status.
// Implements the fmt.Stringer interface.
func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Assigned:
		return "assigned"
	case InTransit:
		return "in_transit"
	case Delivered:
		return "delivered"
	default:
		return "unknown"
	}
}

// IsActive reports whether the shipment currently occupies a driver:
// Assigned and InTransit count, Pending and Delivered do not.
func (s Status) IsActive() bool {
	return s == Assigned || s == InTransit
}

// Assign transitions the status to Assigned.
// Valid only from Pending; this is the primary guard against assigning a
// shipment twice.
func (s Status) Assign() (Status, error) {
	if s != Pending {
		return 0, errs.NewInvalidTransitionError("shipment", s.String(), Assigned.String())
	}

	return Assigned, nil
}

// StartTransit transitions the status to InTransit.
// Valid only from Assigned; a duplicate "start delivery" submission hits this
// guard and is rejected without side effects.
func (s Status) StartTransit() (Status, error) {
	if s != Assigned {
		return 0, errs.NewInvalidTransitionError("shipment", s.String(), InTransit.String())
	}

	return InTransit, nil
}

// Complete transitions the status to Delivered, the terminal state.
// Valid only from InTransit.
func (s Status) Complete() (Status, error) {
	if s != InTransit {
		return 0, errs.NewInvalidTransitionError("shipment", s.String(), Delivered.String())
	}

	return Delivered, nil
}
