package commands

import (
	"errors"

	"nexus/internal/pkg/guard"
)

var ErrAssignShipmentsCommandIsNotConstructed = errors.New(
	"AssignShipmentsCommand must be created via NewAssignShipmentsCommand constructor",
)

// AssignShipmentsCommand triggers one dispatch cycle: pairing pending
// shipments with idle drivers. Cycles are triggered on demand through the API
// and periodically by the dispatch job; both issue this same command.
//
// Example:
//
//	cmd := NewAssignShipmentsCommand()
//	handler := NewAssignShipmentsCommandHandler(uowFactory, strategy, dispatcher, publisher, timeout)
//	result, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrNoPendingShipments) {
//	    log.Println("Nothing to dispatch")
//	}
type AssignShipmentsCommand struct {
	guard guard.ConstructorGuard
}

// NewAssignShipmentsCommand creates a command to trigger a dispatch cycle.
// This is a parameterless command that initiates the shipment-driver matching process.
func NewAssignShipmentsCommand() AssignShipmentsCommand {
	return AssignShipmentsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignShipmentsCommandIsNotConstructed if validation fails.
func (c *AssignShipmentsCommand) Validate() error {
	return c.guard.Validate(
		ErrAssignShipmentsCommandIsNotConstructed,
	)
}
