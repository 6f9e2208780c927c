package commands

import (
	"errors"

	"nexus/internal/core/domain/model/kernel"
	"nexus/internal/core/domain/model/shipment"
	"nexus/internal/pkg/guard"
)

var ErrStartTransitCommandIsNotConstructed = errors.New(
	"StartTransitCommand must be created via NewStartTransitCommand constructor",
)

// StartTransitCommand represents a driver confirming pickup of an assigned
// shipment by scanning its handover label at the warehouse.
//
// Example:
//
//	token, _ := shipment.ParseHandoverToken(scanned)
//	cmd, err := NewStartTransitCommand(token.TrackingID, driverID, position)
//	if err != nil {
//	    return fmt.Errorf("invalid handover: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("pickup rejected: %w", err)
//	}
type StartTransitCommand struct { //nolint:recvcheck //using for validation
	trackingID shipment.TrackingID
	driverID   kernel.UUID
	position   kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewStartTransitCommand creates a command for a driver's pickup confirmation.
// Validates the tracking id format, the driver id and the reported position.
func NewStartTransitCommand(
	trackingID shipment.TrackingID,
	driverID kernel.UUID,
	position kernel.GeoPoint,
) (StartTransitCommand, error) {
	command := StartTransitCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setTrackingID(trackingID),
		command.setDriverID(driverID),
		command.setPosition(position),
	); err != nil {
		return StartTransitCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrStartTransitCommandIsNotConstructed if validation fails.
func (c StartTransitCommand) Validate() error {
	return c.guard.Validate(ErrStartTransitCommandIsNotConstructed)
}

// TrackingID returns the scanned tracking code from the command.
func (c StartTransitCommand) TrackingID() shipment.TrackingID {
	return c.trackingID
}

// DriverID returns the confirming driver's id from the command.
func (c StartTransitCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Position returns the driver-reported position at the time of the scan.
func (c StartTransitCommand) Position() kernel.GeoPoint {
	return c.position
}

func (c *StartTransitCommand) setTrackingID(trackingID shipment.TrackingID) error {
	if err := trackingID.Validate(); err != nil {
		return err
	}

	c.trackingID = trackingID
	return nil
}

func (c *StartTransitCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.driverID = driverID
	return nil
}

func (c *StartTransitCommand) setPosition(position kernel.GeoPoint) error {
	if err := position.Validate(); err != nil {
		return err
	}

	c.position = position
	return nil
}
