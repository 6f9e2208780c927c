package product

import (
	"errors"

	"nexus/internal/core/domain/model/kernel"
	"nexus/internal/pkg/errs"
	"nexus/internal/pkg/guard"
)

// Domain errors for product operations.
var (
	// ErrSKUIsRequired is returned when attempting to create a product without a SKU.
	ErrSKUIsRequired = errs.NewValueIsRequiredError("sku")
	// ErrNameIsRequired is returned when attempting to create a product without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrProductIsNotConstructed is returned when using an improperly initialized Product.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")
)

// Product represents a stock-keeping unit held in the warehouse.
// It is an aggregate root that owns the quantity on hand for one SKU.
//
// The central invariant is that stock never goes negative: every decrement
// passes through Reserve, which checks availability first and fails with a
// typed error naming the SKU when the request cannot be satisfied. Increments
// arrive either as a Release (compensation for a failed downstream step) or as
// a Receive (inbound goods).
//
// The stock status (active / low_stock / out_of_stock) is derived from the
// counter on read, never stored, so it cannot drift.
type Product struct {
	// id uniquely identifies the product
	id kernel.UUID
	// sku is the external stock-keeping unit code, unique across the catalog
	sku string
	// name is the human-readable product name
	name string
	// stock is the quantity on hand, never negative
	stock int
	// unitPrice is the selling price per unit
	unitPrice float64
	// location is the warehouse shelf/zone label
	location string
	// guard ensures the product was properly constructed
	guard guard.ConstructorGuard
}

// NewProduct creates a new Product with the specified attributes.
// SKU and name must be non-empty, stock and unit price must be non-negative.
// Returns aggregated validation errors when multiple attributes are invalid.
func NewProduct(
	id kernel.UUID,
	sku string,
	name string,
	stock int,
	unitPrice float64,
	location string,
) (*Product, error) {
	p := &Product{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setSKU(sku),
		p.setName(name),
		p.setStock(stock),
		p.setUnitPrice(unitPrice),
	); err != nil {
		return nil, err
	}

	p.location = location
	return p, nil
}

// RestoreProduct reconstructs a Product aggregate from persistent storage.
// The restored product behaves identically to one created through NewProduct.
func RestoreProduct(
	id kernel.UUID,
	sku string,
	name string,
	stock int,
	unitPrice float64,
	location string,
) (*Product, error) {
	return NewProduct(id, sku, name, stock, unitPrice, location)
}

// Validate checks if the Product was properly constructed via its constructor.
func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

// IsEqual compares two products by their unique identifiers.
func (p *Product) IsEqual(other *Product) bool {
	if other == nil {
		return false
	}
	return p.id.IsEqual(other.id)
}

// ID returns the unique identifier of the product.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// SKU returns the stock-keeping unit code.
func (p *Product) SKU() string {
	return p.sku
}

// Name returns the human-readable product name.
func (p *Product) Name() string {
	return p.name
}

// Stock returns the quantity currently on hand.
func (p *Product) Stock() int {
	return p.stock
}

// UnitPrice returns the selling price per unit.
func (p *Product) UnitPrice() float64 {
	return p.unitPrice
}

// Location returns the warehouse shelf/zone label.
func (p *Product) Location() string {
	return p.location
}

// Status returns the stock status derived from the current quantity on hand.
func (p *Product) Status() Status {
	return StatusForStock(p.stock)
}

// Reserve decrements the stock by qty for an order being created.
//
// Reserve is the only operation that lowers the counter. It rejects
// non-positive quantities and fails with an InsufficientStockError naming the
// SKU when the quantity on hand cannot cover the request, leaving the stock
// untouched. Serialization of concurrent reservations against the same SKU is
// the responsibility of the caller's transaction boundary (a row lock around
// the read-check-write sequence).
func (p *Product) Reserve(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsOutOfRangeError("qty", qty, 1, p.stock)
	}

	if p.stock < qty {
		return errs.NewInsufficientStockError(p.sku, qty, p.stock)
	}

	p.stock -= qty
	return nil
}

// Release returns previously reserved quantity to the shelf. It is the
// compensating action for a reservation whose downstream step failed, so it
// only ever adds back and cannot fail for stock reasons.
func (p *Product) Release(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsOutOfRangeError("qty", qty, 1, qty)
	}

	p.stock += qty
	return nil
}

// Receive adds inbound quantity arriving at the warehouse.
func (p *Product) Receive(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsOutOfRangeError("qty", qty, 1, qty)
	}

	p.stock += qty
	return nil
}

// setID sets the product's unique identifier with validation.
func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	p.id = id
	return nil
}

// setSKU sets the product's SKU with validation.
func (p *Product) setSKU(sku string) error {
	if sku == "" {
		return ErrSKUIsRequired
	}

	p.sku = sku
	return nil
}

// setName sets the product's name with validation.
func (p *Product) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	p.name = name
	return nil
}

// setStock sets the initial stock with validation.
func (p *Product) setStock(stock int) error {
	if stock < 0 {
		return errs.NewValueIsOutOfRangeError("stock", stock, 0, stock)
	}

	p.stock = stock
	return nil
}

// setUnitPrice sets the unit price with validation.
func (p *Product) setUnitPrice(unitPrice float64) error {
	if unitPrice < 0 {
		return errs.NewValueIsOutOfRangeError("unitPrice", unitPrice, 0, unitPrice)
	}

	p.unitPrice = unitPrice
	return nil
}
