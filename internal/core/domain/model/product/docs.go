// Package product contains the Product aggregate: one warehouse SKU with its
// quantity on hand. Stock never goes negative; the status (active, low_stock,
// out_of_stock) is derived from the counter on read.
package product
