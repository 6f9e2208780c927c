package commands

import (
	"errors"

	"nexus/internal/core/domain/model/kernel"
	"nexus/internal/pkg/guard"
)

var ErrSetDriverOfflineCommandIsNotConstructed = errors.New(
	"SetDriverOfflineCommand must be created via NewSetDriverOfflineCommand constructor",
)

// SetDriverOfflineCommand represents a request to take a driver off shift.
// Only idle drivers can go offline; a driver carrying active shipments is
// rejected.
type SetDriverOfflineCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewSetDriverOfflineCommand creates a command to take a driver off shift.
func NewSetDriverOfflineCommand(driverID kernel.UUID) (SetDriverOfflineCommand, error) {
	command := SetDriverOfflineCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setDriverID(driverID); err != nil {
		return SetDriverOfflineCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSetDriverOfflineCommandIsNotConstructed if validation fails.
func (c SetDriverOfflineCommand) Validate() error {
	return c.guard.Validate(ErrSetDriverOfflineCommandIsNotConstructed)
}

// DriverID returns the driver ID from the command.
func (c SetDriverOfflineCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c *SetDriverOfflineCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.driverID = driverID
	return nil
}
