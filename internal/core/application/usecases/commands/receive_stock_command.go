package commands

import (
	"errors"

	"nexus/internal/core/domain/model/kernel"
	"nexus/internal/pkg/guard"
)

var (
	ErrReceiveStockCommandIsNotConstructed = errors.New(
		"ReceiveStockCommand must be created via NewReceiveStockCommand constructor",
	)
	ErrSKUIsRequired         = errors.New("sku is required")
	ErrProductNameIsRequired = errors.New("product name is required")
	ErrQuantityIsInvalid     = errors.New("quantity must be greater than 0")
	ErrUnitPriceIsInvalid    = errors.New("unit price must not be negative")
)

// ReceiveStockCommand represents an inbound stock receipt for one SKU.
// Receiving is an upsert: a known SKU gains stock, an unknown SKU becomes
// a new product.
//
// Example:
//
//	cmd, err := NewReceiveStockCommand("K-001", "Mechanical Keyboard", 50, 150000, "Rak A-1")
//	if err != nil {
//	    return fmt.Errorf("invalid receipt: %w", err)
//	}
//
//	handler := NewReceiveStockCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to receive stock: %w", err)
//	}
type ReceiveStockCommand struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	sku       string
	name      string
	quantity  int
	unitPrice float64
	location  string

	guard guard.ConstructorGuard
}

// NewReceiveStockCommand creates a command to receive inbound stock.
// Automatically generates an ID in case the SKU turns out to be new.
// Validates that the SKU and name are set, the quantity is positive and the
// unit price is not negative.
func NewReceiveStockCommand(
	sku string,
	name string,
	quantity int,
	unitPrice float64,
	location string,
) (ReceiveStockCommand, error) {
	command := ReceiveStockCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setProductID(kernel.NewUUID()),
		command.setSKU(sku),
		command.setName(name),
		command.setQuantity(quantity),
		command.setUnitPrice(unitPrice),
	); err != nil {
		return ReceiveStockCommand{}, err
	}

	command.location = location
	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrReceiveStockCommandIsNotConstructed if validation fails.
func (c ReceiveStockCommand) Validate() error {
	return c.guard.Validate(ErrReceiveStockCommandIsNotConstructed)
}

// ProductID returns the pre-generated ID used when the SKU is new.
func (c ReceiveStockCommand) ProductID() kernel.UUID {
	return c.productID
}

// SKU returns the SKU from the command.
func (c ReceiveStockCommand) SKU() string {
	return c.sku
}

// Name returns the product name from the command.
func (c ReceiveStockCommand) Name() string {
	return c.name
}

// Quantity returns the received quantity from the command.
func (c ReceiveStockCommand) Quantity() int {
	return c.quantity
}

// UnitPrice returns the unit price from the command.
func (c ReceiveStockCommand) UnitPrice() float64 {
	return c.unitPrice
}

// Location returns the warehouse location from the command.
func (c ReceiveStockCommand) Location() string {
	return c.location
}

func (c *ReceiveStockCommand) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.productID = id
	return nil
}

func (c *ReceiveStockCommand) setSKU(sku string) error {
	if sku == "" {
		return ErrSKUIsRequired
	}

	c.sku = sku
	return nil
}

func (c *ReceiveStockCommand) setName(name string) error {
	if name == "" {
		return ErrProductNameIsRequired
	}

	c.name = name
	return nil
}

func (c *ReceiveStockCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrQuantityIsInvalid
	}

	c.quantity = quantity
	return nil
}

func (c *ReceiveStockCommand) setUnitPrice(unitPrice float64) error {
	if unitPrice < 0 {
		return ErrUnitPriceIsInvalid
	}

	c.unitPrice = unitPrice
	return nil
}
