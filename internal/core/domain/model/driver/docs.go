// Package driver contains the Driver aggregate and its supporting value
// objects: the vehicle class with its payload ceiling and the idle/busy/offline
// availability state machine.
//
// The aggregate enforces that a busy driver (one owning active shipments)
// cannot go offline, and that the only bypass of the state machine is the
// clearly-labeled administrative reset.
package driver
