package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"nexus/internal/core/domain/model/driver"
	"nexus/internal/core/domain/model/shipment"
	"nexus/internal/core/domain/services"
	"nexus/internal/core/ports"
	"nexus/internal/pkg/errs"
)

var (
	ErrNoPendingShipments = errors.New("no pending shipments found")
	ErrNoIdleDrivers      = errors.New("no idle drivers found")
)

// AssignShipmentsResult summarizes one dispatch cycle.
type AssignShipmentsResult struct {
	// AssignedShipments is how many shipments got a driver this cycle.
	AssignedShipments int
	// BusyDrivers is how many drivers received a run this cycle.
	BusyDrivers int
	// RejectedProposals is how many strategy proposals failed validation
	// and were dropped.
	RejectedProposals int
}

// AssignShipmentsCommandHandler orchestrates one dispatch cycle. Pending
// shipments and idle drivers are loaded under row locks, the pluggable
// strategy proposes pairings under a deadline, and the domain dispatcher
// validates and applies each proposal. The whole cycle commits atomically.
//
// Failure containment:
//   - A strategy that overruns its deadline aborts the cycle as a no-op with
//     a DelegateTimeoutError; no aggregate is touched.
//   - An invalid proposal is logged and skipped; the remaining proposals
//     still apply. A strategy bug degrades throughput, never consistency.
//
// Example:
//
//	handler := NewAssignShipmentsCommandHandler(uowFactory, strategy, dispatcher, publisher, 2*time.Second)
//	result, err := handler.Handle(ctx, NewAssignShipmentsCommand())
//	switch {
//	case errors.Is(err, ErrNoPendingShipments), errors.Is(err, ErrNoIdleDrivers):
//	    // Quiet cycle
//	case err != nil:
//	    log.Printf("Dispatch failed: %v", err)
//	default:
//	    log.Printf("Assigned %d shipments", result.AssignedShipments)
//	}
type AssignShipmentsCommandHandler struct {
	uowFactory      FleetUoWFactory
	strategy        services.AssignmentStrategy
	dispatcher      services.Dispatcher
	publisher       ports.EventPublisher
	strategyTimeout time.Duration
}

// NewAssignShipmentsCommandHandler creates a handler for dispatch cycles.
// The strategy timeout bounds how long one Propose call may run.
func NewAssignShipmentsCommandHandler(
	uowFactory FleetUoWFactory,
	strategy services.AssignmentStrategy,
	dispatcher services.Dispatcher,
	publisher ports.EventPublisher,
	strategyTimeout time.Duration,
) AssignShipmentsCommandHandler {
	return AssignShipmentsCommandHandler{
		uowFactory:      uowFactory,
		strategy:        strategy,
		dispatcher:      dispatcher,
		publisher:       publisher,
		strategyTimeout: strategyTimeout,
	}
}

// Handle processes one dispatch cycle.
// Returns ErrNoPendingShipments or ErrNoIdleDrivers when there is nothing to
// do, and DelegateTimeoutError when the strategy overran its deadline. In all
// three cases no aggregate is mutated.
func (h AssignShipmentsCommandHandler) Handle(
	ctx context.Context,
	command AssignShipmentsCommand,
) (AssignShipmentsResult, error) {
	if err := command.Validate(); err != nil {
		return AssignShipmentsResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AssignShipmentsResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()
	driverRepo := uow.DriverRepository()

	pending, err := shipmentRepo.GetAllPending(ctx)
	if err != nil {
		return AssignShipmentsResult{}, err
	}
	if len(pending) == 0 {
		return AssignShipmentsResult{}, ErrNoPendingShipments
	}

	idle, err := driverRepo.GetAllIdle(ctx)
	if err != nil {
		return AssignShipmentsResult{}, err
	}
	if len(idle) == 0 {
		return AssignShipmentsResult{}, ErrNoIdleDrivers
	}

	proposals, err := h.propose(ctx, pending, idle)
	if err != nil {
		return AssignShipmentsResult{}, err
	}

	var result AssignShipmentsResult
	for _, proposal := range proposals {
		if err = h.dispatcher.Apply(proposal); err != nil {
			slog.WarnContext(ctx, "rejected assignment proposal",
				slog.String("driverId", proposal.Driver.ID().String()),
				slog.Any("error", err))
			result.RejectedProposals++
			continue
		}

		for _, s := range proposal.Shipments {
			if err = shipmentRepo.Update(ctx, s); err != nil {
				return AssignShipmentsResult{}, err
			}
		}
		if err = driverRepo.Update(ctx, proposal.Driver); err != nil {
			return AssignShipmentsResult{}, err
		}

		result.AssignedShipments += len(proposal.Shipments)
		result.BusyDrivers++
	}

	if err = uow.Commit(ctx); err != nil {
		return AssignShipmentsResult{}, err
	}

	if result.AssignedShipments > 0 {
		publishEvent(ctx, h.publisher, EventAssignmentCompleted, map[string]any{
			"assignedShipments": result.AssignedShipments,
			"busyDrivers":       result.BusyDrivers,
			"rejectedProposals": result.RejectedProposals,
		})
	}

	return result, nil
}

// propose runs the strategy under its deadline. A deadline overrun comes back
// as a DelegateTimeoutError so the caller treats the cycle as a no-op.
func (h AssignShipmentsCommandHandler) propose(
	ctx context.Context,
	pending []*shipment.Shipment,
	idle []*driver.Driver,
) ([]services.Proposal, error) {
	proposeCtx, cancel := context.WithTimeout(ctx, h.strategyTimeout)
	defer cancel()

	proposals, err := h.strategy.Propose(proposeCtx, pending, idle)
	if errors.Is(err, context.DeadlineExceeded) {
		return nil, errs.NewDelegateTimeoutError("assignment strategy", err)
	}
	if err != nil {
		return nil, err
	}

	return proposals, nil
}
