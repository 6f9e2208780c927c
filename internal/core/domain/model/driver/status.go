package driver

import (
	"fmt"

	"nexus/internal/pkg/errs"
)

// Status represents a driver's availability for dispatch.
// It implements a small state machine:
//
//	Idle ──> Busy ──> Idle
//	  │
//	  └──> Offline ──> Idle
//
// Busy drivers cannot go offline: a busy driver by definition owns at least
// one active shipment, and abandoning active shipments without an explicit
// administrative action is disallowed.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// Idle means the driver is available for new assignments.
	Idle

	// Busy means the driver owns at least one assigned or in-transit shipment.
	Busy

	// Offline means the driver is unavailable for dispatch.
	Offline
)

// StatusFromString parses the wire-level status name.
func StatusFromString(s string) (Status, error) {
	switch s {
	case "idle":
		return Idle, nil
	case "busy":
		return Busy, nil
	case "offline":
		return Offline, nil
	default:
		return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%q is not a valid driver status", s))
	}
}

// Validate checks if the Status value is one of the defined statuses.
func (s Status) Validate() error {
	switch s {
	case Idle, Busy, Offline:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid driver status", s))
	}
}

// String returns the wire-level name of the status.
// Implements the fmt.Stringer interface.
func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Busy:
		return "busy"
	case Offline:
		return "offline"
	default:
		return "unknown"
	}
}

// MarkBusy transitions the status to Busy.
// Valid from Idle (first assignment) and from Busy (additional shipment or a
// repeated transit report; the transition is idempotent).
func (s Status) MarkBusy() (Status, error) {
	if s != Idle && s != Busy {
		return 0, errs.NewInvalidTransitionError("driver", s.String(), Busy.String())
	}

	return Busy, nil
}

// MarkIdle transitions the status back to Idle.
// Valid only from Busy, when the driver's last active shipment is delivered.
func (s Status) MarkIdle() (Status, error) {
	if s != Busy {
		return 0, errs.NewInvalidTransitionError("driver", s.String(), Idle.String())
	}

	return Idle, nil
}

// MarkOffline transitions the status to Offline.
// Valid only from Idle: a busy driver still owns active shipments and must
// deliver them (or be administratively reset) first.
func (s Status) MarkOffline() (Status, error) {
	if s != Idle {
		return 0, errs.NewInvalidTransitionError("driver", s.String(), Offline.String())
	}

	return Offline, nil
}
