package ports

import (
	"context"
)

// MapChannel is the stream consumed by the live operations map.
const MapChannel = "map-channel"

// Event is one domain notification pushed to downstream consumers (live map,
// dashboards). Payload must be JSON-serializable.
type Event struct {
	// Channel is the logical stream the event goes out on.
	Channel string
	// Type names what happened, e.g. "shipment.created".
	Type string
	// Payload carries the event body.
	Payload any
}

// EventPublisher pushes domain events to the outside world. Delivery is
// best-effort and strictly after commit: callers publish once their
// transaction succeeded, log a publish failure and never propagate it into
// the business result.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
