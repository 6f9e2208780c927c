package services

import (
	"errors"
	"sort"

	"nexus/internal/core/domain/model/driver"
	"nexus/internal/core/domain/model/kernel"
	"nexus/internal/core/domain/model/shipment"
	"nexus/internal/pkg/errs"
)

// MaxShipmentsPerDriver bounds a single driver's multi-stop run.
const MaxShipmentsPerDriver = 3

// DefaultClosenessKm is the default destination-closeness threshold: stops
// grouped into one run must pairwise lie within this distance of each other.
const DefaultClosenessKm = 5.0

// Dispatch validation errors.
var (
	// ErrDriverIsNotIdle is returned when a proposal targets a driver who is
	// busy or offline.
	ErrDriverIsNotIdle = errors.New("driver is not idle")
	// ErrShipmentIsNotPending is returned when a proposal includes a shipment
	// that already left the pending state.
	ErrShipmentIsNotPending = errors.New("shipment is not pending")
	// ErrTooManyShipments is returned when a proposal exceeds the per-driver
	// stop limit.
	ErrTooManyShipments = errors.New("too many shipments for one driver")
	// ErrDestinationsTooFarApart is returned when a proposal groups stops
	// beyond the closeness threshold.
	ErrDestinationsTooFarApart = errors.New("shipment destinations are too far apart")
	// ErrEmptyProposal is returned when a proposal carries no shipments.
	ErrEmptyProposal = errors.New("proposal has no shipments")
)

// Proposal pairs one idle driver with the pending shipments a strategy wants
// to hand them, in no particular stop order.
type Proposal struct {
	Driver    *driver.Driver
	Shipments []*shipment.Shipment
}

// Dispatcher is a domain service that validates assignment proposals against
// the dispatch constraints and applies the valid ones to the aggregates.
//
// Constraints enforced per proposal:
//   - The driver is idle
//   - Every shipment is pending
//   - At most MaxShipmentsPerDriver shipments per driver
//   - The cumulative weight fits the driver's vehicle payload
//   - Destinations lie pairwise within the closeness threshold
//
// A proposal either applies in full or is rejected without mutating any
// aggregate; the caller decides whether one rejected proposal fails the whole
// batch or only that driver's slice of it.
//
// Stop ordering is the dispatcher's job, not the strategy's: Apply walks the
// stops nearest-neighbor from the driver's current position and numbers them
// densely from 1.
type Dispatcher struct {
	closenessKm float64
}

// NewDispatcher creates a Dispatcher with the given closeness threshold in
// kilometers. The threshold must be positive.
func NewDispatcher(closenessKm float64) (Dispatcher, error) {
	if closenessKm <= 0 {
		return Dispatcher{}, errs.NewValueIsOutOfRangeError("closenessKm", closenessKm, 0, closenessKm)
	}
	return Dispatcher{closenessKm: closenessKm}, nil
}

// Validate checks a proposal against the dispatch constraints without
// mutating anything.
func (d Dispatcher) Validate(p Proposal) error {
	if err := p.Driver.Validate(); err != nil {
		return err
	}
	if len(p.Shipments) == 0 {
		return ErrEmptyProposal
	}
	if len(p.Shipments) > MaxShipmentsPerDriver {
		return ErrTooManyShipments
	}
	if p.Driver.Status() != driver.Idle {
		return ErrDriverIsNotIdle
	}

	var totalWeightKg float64
	for _, s := range p.Shipments {
		if err := s.Validate(); err != nil {
			return err
		}
		if s.Status() != shipment.Pending {
			return ErrShipmentIsNotPending
		}
		totalWeightKg += s.WeightKg()
		if !p.Driver.CanCarry(totalWeightKg) {
			return errs.NewCapacityExceededError(
				p.Driver.ID().String(), s.ID().String(),
				p.Driver.Vehicle().MaxPayloadKg(), s.WeightKg())
		}
	}

	for i := range p.Shipments {
		for j := i + 1; j < len(p.Shipments); j++ {
			distance, err := p.Shipments[i].Destination().DistanceKm(p.Shipments[j].Destination())
			if err != nil {
				return err
			}
			if distance > d.closenessKm {
				return ErrDestinationsTooFarApart
			}
		}
	}

	return nil
}

// Apply validates the proposal and, if valid, assigns every shipment to the
// driver with a dense nearest-neighbor stop order and marks the driver busy.
// On a validation error no aggregate is mutated.
func (d Dispatcher) Apply(p Proposal) error {
	if err := d.Validate(p); err != nil {
		return err
	}

	ordered, err := orderStops(p.Driver.Position(), p.Shipments)
	if err != nil {
		return err
	}
	for i, s := range ordered {
		if err := s.Assign(p.Driver.ID(), i+1); err != nil {
			return err
		}
	}

	return p.Driver.MarkBusy()
}

// orderStops sequences shipments nearest-neighbor starting from the driver's
// position: each next stop is the remaining destination closest to the
// previous one. Distance ties break on ascending shipment id so the order is
// deterministic.
func orderStops(from kernel.GeoPoint, shipments []*shipment.Shipment) ([]*shipment.Shipment, error) {
	remaining := make([]*shipment.Shipment, len(shipments))
	copy(remaining, shipments)
	sort.Slice(remaining, func(i, j int) bool {
		return remaining[i].ID().String() < remaining[j].ID().String()
	})

	ordered := make([]*shipment.Shipment, 0, len(remaining))
	position := from
	for len(remaining) > 0 {
		best := -1
		var bestDistance float64
		for i, s := range remaining {
			distance, err := position.DistanceKm(s.Destination())
			if err != nil {
				return nil, err
			}
			if best == -1 || distance < bestDistance {
				best = i
				bestDistance = distance
			}
		}
		next := remaining[best]
		ordered = append(ordered, next)
		position = next.Destination()
		remaining = append(remaining[:best], remaining[best+1:]...)
	}

	return ordered, nil
}
