package commands

import (
	"context"

	"nexus/internal/core/ports"
)

// StartTransitCommandHandler processes a driver's pickup confirmation.
// Resolves the scanned tracking id to a shipment under a row lock, moves it
// to in_transit and records the driver's reported position. A duplicate scan,
// an unassigned shipment or a driver who does not own the shipment is rejected
// without side effects; an unknown tracking id comes back as
// ObjectNotFoundError.
//
// Example:
//
//	handler := NewStartTransitCommandHandler(uowFactory, publisher)
//	cmd, _ := NewStartTransitCommand(token.TrackingID, driverID, position)
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrInvalidTransition) {
//	    log.Println("Scan rejected: wrong state or wrong driver")
//	}
type StartTransitCommandHandler struct {
	uowFactory FleetUoWFactory
	publisher  ports.EventPublisher
}

// NewStartTransitCommandHandler creates a handler for pickup confirmations.
func NewStartTransitCommandHandler(
	uowFactory FleetUoWFactory,
	publisher ports.EventPublisher,
) StartTransitCommandHandler {
	return StartTransitCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the pickup confirmation command.
func (h StartTransitCommandHandler) Handle(ctx context.Context, command StartTransitCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()

	aggregate, err := shipmentRepo.GetByTrackingID(ctx, command.TrackingID())
	if err != nil {
		return err
	}

	if err = aggregate.StartTransit(command.DriverID()); err != nil {
		return err
	}

	if err = shipmentRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = h.reportDriverPosition(ctx, uow, command); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishEvent(ctx, h.publisher, EventShipmentInTransit, map[string]any{
		"trackingId": command.TrackingID().String(),
		"driverId":   command.DriverID().String(),
		"status":     aggregate.Status().String(),
	})

	return nil
}

// reportDriverPosition records where the driver scanned from.
func (h StartTransitCommandHandler) reportDriverPosition(
	ctx context.Context,
	uow FleetUoW,
	command StartTransitCommand,
) error {
	driverRepo := uow.DriverRepository()

	aggregate, err := driverRepo.GetForUpdate(ctx, command.DriverID())
	if err != nil {
		return err
	}

	if err = aggregate.ReportPosition(command.Position()); err != nil {
		return err
	}

	return driverRepo.Update(ctx, aggregate)
}
