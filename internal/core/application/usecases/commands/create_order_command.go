package commands

import (
	"errors"

	"nexus/internal/core/domain/model/kernel"
	"nexus/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrDestinationAddressIsRequired = errors.New("destination address is required")
	ErrOrderLinesAreRequired        = errors.New("at least one order line is required")
	ErrOrderLineSKUIsRequired       = errors.New("order line sku is required")
	ErrOrderLineQuantityIsInvalid   = errors.New("order line quantity must be greater than 0")
)

// OrderLine is one requested SKU quantity within an order.
type OrderLine struct {
	SKU      string
	Quantity int
}

// CreateOrderCommand represents a customer order arriving at intake: a
// destination plus the requested SKU quantities. Accepting it reserves stock
// and creates one shipment covering all lines.
//
// Example:
//
//	destination, _ := kernel.NewGeoPoint(-6.1751, 106.8650)
//	cmd, err := NewCreateOrderCommand("Jl. Kemang Raya No. 8", destination,
//	    []OrderLine{{SKU: "K-001", Quantity: 2}})
//	if err != nil {
//	    return fmt.Errorf("invalid order: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, publisher, originAddress)
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
//	fmt.Printf("Created shipment %s", result.TrackingID)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	shipmentID         kernel.UUID
	destinationAddress string
	destination        kernel.GeoPoint
	lines              []OrderLine

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to accept a customer order.
// Automatically generates a unique ID for the resulting shipment.
// Validates that the destination is set and every line carries a SKU and a
// positive quantity.
func NewCreateOrderCommand(
	destinationAddress string,
	destination kernel.GeoPoint,
	lines []OrderLine,
) (CreateOrderCommand, error) {
	command := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setShipmentID(kernel.NewUUID()),
		command.setDestinationAddress(destinationAddress),
		command.setDestination(destination),
		command.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// ShipmentID returns the pre-generated ID of the shipment to create.
func (c CreateOrderCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// DestinationAddress returns the delivery address from the command.
func (c CreateOrderCommand) DestinationAddress() string {
	return c.destinationAddress
}

// Destination returns the delivery coordinate from the command.
func (c CreateOrderCommand) Destination() kernel.GeoPoint {
	return c.destination
}

// Lines returns the order lines from the command.
func (c CreateOrderCommand) Lines() []OrderLine {
	return c.lines
}

func (c *CreateOrderCommand) setShipmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.shipmentID = id
	return nil
}

func (c *CreateOrderCommand) setDestinationAddress(destinationAddress string) error {
	if destinationAddress == "" {
		return ErrDestinationAddressIsRequired
	}

	c.destinationAddress = destinationAddress
	return nil
}

func (c *CreateOrderCommand) setDestination(destination kernel.GeoPoint) error {
	if err := destination.Validate(); err != nil {
		return err
	}

	c.destination = destination
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return ErrOrderLinesAreRequired
	}
	for _, line := range lines {
		if line.SKU == "" {
			return ErrOrderLineSKUIsRequired
		}
		if line.Quantity <= 0 {
			return ErrOrderLineQuantityIsInvalid
		}
	}

	c.lines = lines
	return nil
}
