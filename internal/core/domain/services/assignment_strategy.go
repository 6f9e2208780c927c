package services

import (
	"context"
	"sort"

	"nexus/internal/core/domain/model/driver"
	"nexus/internal/core/domain/model/shipment"
	"nexus/internal/pkg/errs"
)

// AssignmentStrategy decides which pending shipments each idle driver should
// take. Implementations only pair aggregates; the Dispatcher re-validates and
// applies the pairings, so a sloppy strategy cannot corrupt state.
//
// Propose must honor ctx: the dispatch cycle runs strategies under a deadline
// and treats a context error as a timed-out delegate.
type AssignmentStrategy interface {
	Propose(ctx context.Context, pending []*shipment.Shipment, idle []*driver.Driver) ([]Proposal, error)
}

// GreedyNearestStrategy is the default assignment strategy. It walks idle
// drivers in order and greedily builds each one a run: the pending shipment
// nearest to the driver first, then up to MaxShipmentsPerDriver-1 more stops
// that stay within the closeness threshold of every stop already picked and
// within the vehicle's remaining payload.
//
// Greedy means locally optimal only. A shipment skipped for one driver remains
// pending for the next driver or the next cycle; the strategy never fails a
// cycle just because some shipments could not be placed.
type GreedyNearestStrategy struct {
	closenessKm float64
}

// NewGreedyNearestStrategy creates the default strategy with the given
// closeness threshold in kilometers.
func NewGreedyNearestStrategy(closenessKm float64) (GreedyNearestStrategy, error) {
	if closenessKm <= 0 {
		return GreedyNearestStrategy{}, errs.NewValueIsOutOfRangeError("closenessKm", closenessKm, 0, closenessKm)
	}
	return GreedyNearestStrategy{closenessKm: closenessKm}, nil
}

// Propose pairs idle drivers with pending shipments. Each shipment appears in
// at most one proposal; drivers with nothing placeable are omitted. Returns
// ctx.Err() as soon as the context is done.
func (g GreedyNearestStrategy) Propose(
	ctx context.Context,
	pending []*shipment.Shipment,
	idle []*driver.Driver,
) ([]Proposal, error) {
	remaining := make([]*shipment.Shipment, len(pending))
	copy(remaining, pending)
	sort.Slice(remaining, func(i, j int) bool {
		return remaining[i].ID().String() < remaining[j].ID().String()
	})

	var proposals []Proposal
	for _, d := range idle {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(remaining) == 0 {
			break
		}

		picked, rest, err := g.buildRun(d, remaining)
		if err != nil {
			return nil, err
		}
		if len(picked) == 0 {
			continue
		}

		remaining = rest
		proposals = append(proposals, Proposal{Driver: d, Shipments: picked})
	}

	return proposals, nil
}

// buildRun greedily picks a driver's stops from the remaining shipments and
// returns the picks plus the shipments left over.
func (g GreedyNearestStrategy) buildRun(
	d *driver.Driver,
	remaining []*shipment.Shipment,
) ([]*shipment.Shipment, []*shipment.Shipment, error) {
	var picked []*shipment.Shipment
	var loadKg float64
	position := d.Position()

	rest := make([]*shipment.Shipment, len(remaining))
	copy(rest, remaining)

	for len(picked) < MaxShipmentsPerDriver {
		best := -1
		var bestDistance float64
		for i, s := range rest {
			if !d.CanCarry(loadKg + s.WeightKg()) {
				continue
			}
			isClose, err := g.closeToAll(s, picked)
			if err != nil {
				return nil, nil, err
			}
			if !isClose {
				continue
			}
			distance, err := position.DistanceKm(s.Destination())
			if err != nil {
				return nil, nil, err
			}
			if best == -1 || distance < bestDistance {
				best = i
				bestDistance = distance
			}
		}
		if best == -1 {
			break
		}

		next := rest[best]
		picked = append(picked, next)
		loadKg += next.WeightKg()
		position = next.Destination()
		rest = append(rest[:best], rest[best+1:]...)
	}

	return picked, rest, nil
}

// closeToAll reports whether the candidate's destination lies within the
// closeness threshold of every already-picked stop.
func (g GreedyNearestStrategy) closeToAll(
	candidate *shipment.Shipment,
	picked []*shipment.Shipment,
) (bool, error) {
	for _, s := range picked {
		distance, err := candidate.Destination().DistanceKm(s.Destination())
		if err != nil {
			return false, err
		}
		if distance > g.closenessKm {
			return false, nil
		}
	}
	return true, nil
}
