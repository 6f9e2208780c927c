package commands

import (
	"context"

	"nexus/internal/core/ports"
)

// ResetOperationsCommandHandler wipes the operational state in one
// transaction: all shipments back to pending, all drivers back to idle.
// Publishes a system.reset event so live views drop their state too.
type ResetOperationsCommandHandler struct {
	uowFactory FleetUoWFactory
	publisher  ports.EventPublisher
}

// NewResetOperationsCommandHandler creates a handler for operational resets.
func NewResetOperationsCommandHandler(
	uowFactory FleetUoWFactory,
	publisher ports.EventPublisher,
) ResetOperationsCommandHandler {
	return ResetOperationsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the reset command.
func (h ResetOperationsCommandHandler) Handle(ctx context.Context, command ResetOperationsCommand) error {
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

	if err := uow.ShipmentRepository().ResetAllToPending(ctx); err != nil {
		return err
	}

	driverRepo := uow.DriverRepository()
	drivers, err := driverRepo.GetAll(ctx)
	if err != nil {
		return err
	}

	for _, aggregate := range drivers {
		aggregate.ResetToIdle()
		if err = driverRepo.Update(ctx, aggregate); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishEvent(ctx, h.publisher, EventSystemReset, map[string]any{
		"drivers": len(drivers),
	})

	return nil
}
