package commands

import (
	"errors"

	"nexus/internal/core/domain/model/kernel"
	"nexus/internal/core/domain/model/shipment"
	"nexus/internal/pkg/guard"
)

var ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
	"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
)

// CompleteDeliveryCommand represents a driver confirming delivery of an
// in-transit shipment by scanning its handover label at the destination.
//
// Example:
//
//	token, _ := shipment.ParseHandoverToken(scanned)
//	cmd, err := NewCompleteDeliveryCommand(token.TrackingID, driverID, position)
//	if err != nil {
//	    return fmt.Errorf("invalid handover: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("delivery rejected: %w", err)
//	}
type CompleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	trackingID shipment.TrackingID
	driverID   kernel.UUID
	position   kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewCompleteDeliveryCommand creates a command for a driver's delivery confirmation.
// Validates the tracking id format, the driver id and the reported position.
func NewCompleteDeliveryCommand(
	trackingID shipment.TrackingID,
	driverID kernel.UUID,
	position kernel.GeoPoint,
) (CompleteDeliveryCommand, error) {
	command := CompleteDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setTrackingID(trackingID),
		command.setDriverID(driverID),
		command.setPosition(position),
	); err != nil {
		return CompleteDeliveryCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCompleteDeliveryCommandIsNotConstructed if validation fails.
func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

// TrackingID returns the scanned tracking code from the command.
func (c CompleteDeliveryCommand) TrackingID() shipment.TrackingID {
	return c.trackingID
}

// DriverID returns the confirming driver's id from the command.
func (c CompleteDeliveryCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Position returns the driver-reported position at the time of the scan.
func (c CompleteDeliveryCommand) Position() kernel.GeoPoint {
	return c.position
}

func (c *CompleteDeliveryCommand) setTrackingID(trackingID shipment.TrackingID) error {
	if err := trackingID.Validate(); err != nil {
		return err
	}

	c.trackingID = trackingID
	return nil
}

func (c *CompleteDeliveryCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.driverID = driverID
	return nil
}

func (c *CompleteDeliveryCommand) setPosition(position kernel.GeoPoint) error {
	if err := position.Validate(); err != nil {
		return err
	}

	c.position = position
	return nil
}
