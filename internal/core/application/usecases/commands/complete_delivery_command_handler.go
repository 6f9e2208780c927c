package commands

import (
	"context"

	"nexus/internal/core/ports"
)

// CompleteDeliveryCommandHandler processes a driver's delivery confirmation.
// Moves the shipment to delivered under a row lock, records the driver's
// reported position and, when that was the driver's last active shipment,
// returns the driver to idle. The shipment and driver updates commit in one
// transaction.
//
// Example:
//
//	handler := NewCompleteDeliveryCommandHandler(uowFactory, publisher)
//	cmd, _ := NewCompleteDeliveryCommand(token.TrackingID, driverID, position)
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    log.Println("Unknown tracking id")
//	}
type CompleteDeliveryCommandHandler struct {
	uowFactory FleetUoWFactory
	publisher  ports.EventPublisher
}

// NewCompleteDeliveryCommandHandler creates a handler for delivery confirmations.
func NewCompleteDeliveryCommandHandler(
	uowFactory FleetUoWFactory,
	publisher ports.EventPublisher,
) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the delivery confirmation command.
func (h CompleteDeliveryCommandHandler) Handle(ctx context.Context, command CompleteDeliveryCommand) error {
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

	if err = aggregate.Complete(command.DriverID()); err != nil {
		return err
	}

	if err = shipmentRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	driverIdle, err := h.updateDriver(ctx, uow, command)
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishEvent(ctx, h.publisher, EventShipmentDelivered, map[string]any{
		"trackingId": command.TrackingID().String(),
		"driverId":   command.DriverID().String(),
		"driverIdle": driverIdle,
	})

	return nil
}

// updateDriver records the driver's reported position and returns the driver
// to idle when no assigned or in-transit shipment remains on them. Reports
// whether the driver went idle.
func (h CompleteDeliveryCommandHandler) updateDriver(
	ctx context.Context,
	uow FleetUoW,
	command CompleteDeliveryCommand,
) (bool, error) {
	hasActive, err := uow.ShipmentRepository().HasActiveShipments(ctx, command.DriverID())
	if err != nil {
		return false, err
	}

	driverRepo := uow.DriverRepository()
	aggregate, err := driverRepo.GetForUpdate(ctx, command.DriverID())
	if err != nil {
		return false, err
	}

	if err = aggregate.ReportPosition(command.Position()); err != nil {
		return false, err
	}

	if !hasActive {
		if err = aggregate.MarkIdle(); err != nil {
			return false, err
		}
	}

	if err = driverRepo.Update(ctx, aggregate); err != nil {
		return false, err
	}

	return !hasActive, nil
}
