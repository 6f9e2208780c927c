package product

// LowStockThreshold is the stock level below which a product is flagged as
// running low. At zero the product is out of stock.
const LowStockThreshold = 10

// Status reflects how much stock a product has left. It is fully derived from
// the stock counter and never stored independently, so it can never disagree
// with the quantity on hand.
//
// Derivation:
//
//	stock == 0              -> OutOfStock
//	0 < stock < threshold   -> LowStock
//	stock >= threshold      -> Active
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Active means the product has comfortable stock levels.
	Active

	// LowStock means the product is close to running out.
	LowStock

	// OutOfStock means the product cannot be ordered until restocked.
	OutOfStock
)

// StatusForStock derives the status for a given stock quantity.
func StatusForStock(stock int) Status {
	switch {
	case stock <= 0:
		return OutOfStock
	case stock < LowStockThreshold:
		return LowStock
	default:
		return Active
	}
}

// String returns the wire-level name of the status.
func (s Status) String() string {
	switch s {
	case Active:
		return "active"
	case LowStock:
		return "low_stock"
	case OutOfStock:
		return "out_of_stock"
	default:
		return "unknown"
	}
}
