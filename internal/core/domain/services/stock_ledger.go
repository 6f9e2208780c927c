package services

import (
	"nexus/internal/core/domain/model/product"
	"nexus/internal/pkg/errs"
)

// ReservationLine is one requested quantity of a SKU within a reservation.
type ReservationLine struct {
	SKU      string
	Quantity int
}

// StockLedger is a domain service applying multi-line stock reservations
// atomically across Product aggregates.
//
// Business rules:
//   - A reservation either applies in full or not at all: if any line cannot
//     be satisfied, no product is mutated
//   - Lines referencing the same SKU are summed before checking availability
//   - An unknown SKU fails the whole reservation
//
// The ledger operates on aggregates already loaded (and row-locked) by the
// caller's transaction; it owns the all-or-nothing semantics, not the
// persistence.
type StockLedger struct{}

// NewStockLedger creates a new StockLedger instance.
func NewStockLedger() StockLedger {
	return StockLedger{}
}

// Reserve decrements stock for every line, all-or-nothing.
// Returns InsufficientStockError naming the first SKU that cannot be
// satisfied, or ObjectNotFoundError for a SKU absent from products. On any
// error no product is mutated.
func (l StockLedger) Reserve(products []*product.Product, lines []ReservationLine) error {
	wanted, err := l.sumBySKU(lines)
	if err != nil {
		return err
	}

	bySKU := make(map[string]*product.Product, len(products))
	for _, p := range products {
		if err = p.Validate(); err != nil {
			return err
		}
		bySKU[p.SKU()] = p
	}

	// Check every line before touching any counter.
	for _, line := range lines {
		p, ok := bySKU[line.SKU]
		if !ok {
			return errs.NewObjectNotFoundError("sku", line.SKU)
		}
		if p.Stock() < wanted[line.SKU] {
			return errs.NewInsufficientStockError(line.SKU, wanted[line.SKU], p.Stock())
		}
	}

	for sku, qty := range wanted {
		if err = bySKU[sku].Reserve(qty); err != nil {
			return err
		}
	}

	return nil
}

// Release returns previously reserved stock to every line's SKU. Used as the
// compensation step when shipment creation fails after a successful reserve.
func (l StockLedger) Release(products []*product.Product, lines []ReservationLine) error {
	wanted, err := l.sumBySKU(lines)
	if err != nil {
		return err
	}

	bySKU := make(map[string]*product.Product, len(products))
	for _, p := range products {
		if err = p.Validate(); err != nil {
			return err
		}
		bySKU[p.SKU()] = p
	}

	for sku, qty := range wanted {
		p, ok := bySKU[sku]
		if !ok {
			return errs.NewObjectNotFoundError("sku", sku)
		}
		if err = p.Release(qty); err != nil {
			return err
		}
	}

	return nil
}

// sumBySKU aggregates line quantities per SKU, validating each line.
func (l StockLedger) sumBySKU(lines []ReservationLine) (map[string]int, error) {
	if len(lines) == 0 {
		return nil, errs.NewValueIsRequiredError("lines")
	}

	wanted := make(map[string]int, len(lines))
	for _, line := range lines {
		if line.SKU == "" {
			return nil, errs.NewValueIsRequiredError("sku")
		}
		if line.Quantity <= 0 {
			return nil, errs.NewValueIsOutOfRangeError("quantity", line.Quantity, 1, line.Quantity)
		}
		wanted[line.SKU] += line.Quantity
	}
	return wanted, nil
}
