package commands

import (
	"errors"

	"nexus/internal/core/domain/model/driver"
	"nexus/internal/core/domain/model/kernel"
	"nexus/internal/pkg/guard"
)

var (
	ErrRegisterDriverCommandIsNotConstructed = errors.New(
		"RegisterDriverCommand must be created via NewRegisterDriverCommand constructor",
	)
	ErrDriverNameIsRequired = errors.New("driver name is required")
)

// RegisterDriverCommand represents a request to add a new driver to the fleet.
// New drivers start idle at the given position, typically the depot.
//
// Example:
//
//	depot, _ := kernel.NewGeoPoint(-6.2, 106.8166)
//	cmd, err := NewRegisterDriverCommand("Budi Santoso", driver.Van, depot, "+62-811-1234")
//	if err != nil {
//	    return fmt.Errorf("invalid driver data: %w", err)
//	}
//
//	handler := NewRegisterDriverCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to register driver: %w", err)
//	}
//	fmt.Printf("Registered driver %s", cmd.DriverID())
type RegisterDriverCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID
	name     string
	vehicle  driver.VehicleClass
	position kernel.GeoPoint
	phone    string

	guard guard.ConstructorGuard
}

// NewRegisterDriverCommand creates a command to register a new driver.
// Automatically generates a unique ID for the driver.
// Validates that the name is set, the vehicle class is known and the position
// is a valid coordinate.
func NewRegisterDriverCommand(
	name string,
	vehicle driver.VehicleClass,
	position kernel.GeoPoint,
	phone string,
) (RegisterDriverCommand, error) {
	command := RegisterDriverCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setDriverID(kernel.NewUUID()),
		command.setName(name),
		command.setVehicle(vehicle),
		command.setPosition(position),
	); err != nil {
		return RegisterDriverCommand{}, err
	}

	command.phone = phone
	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRegisterDriverCommandIsNotConstructed if validation fails.
func (c RegisterDriverCommand) Validate() error {
	return c.guard.Validate(ErrRegisterDriverCommandIsNotConstructed)
}

// DriverID returns the driver ID from the command.
func (c RegisterDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Name returns the driver name from the command.
func (c RegisterDriverCommand) Name() string {
	return c.name
}

// Vehicle returns the vehicle class from the command.
func (c RegisterDriverCommand) Vehicle() driver.VehicleClass {
	return c.vehicle
}

// Position returns the starting position from the command.
func (c RegisterDriverCommand) Position() kernel.GeoPoint {
	return c.position
}

// Phone returns the contact phone from the command.
func (c RegisterDriverCommand) Phone() string {
	return c.phone
}

func (c *RegisterDriverCommand) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.driverID = id
	return nil
}

func (c *RegisterDriverCommand) setName(name string) error {
	if name == "" {
		return ErrDriverNameIsRequired
	}

	c.name = name
	return nil
}

func (c *RegisterDriverCommand) setVehicle(vehicle driver.VehicleClass) error {
	if err := vehicle.Validate(); err != nil {
		return err
	}

	c.vehicle = vehicle
	return nil
}

func (c *RegisterDriverCommand) setPosition(position kernel.GeoPoint) error {
	if err := position.Validate(); err != nil {
		return err
	}

	c.position = position
	return nil
}
