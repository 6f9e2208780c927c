// Package shipment contains the Shipment aggregate: one outbound delivery
// with a forward-only lifecycle (pending -> assigned -> in_transit ->
// delivered), the NEX-NNNNN tracking code it is addressed by, and the scanned
// handover token that drives transit transitions.
package shipment
