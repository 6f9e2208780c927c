package commands

import (
	"context"
	"log/slog"

	"nexus/internal/core/ports"
)

// Event types emitted by command handlers.
const (
	EventShipmentCreated     = "shipment.created"
	EventAssignmentCompleted = "assignment.completed"
	EventShipmentInTransit   = "shipment.in_transit"
	EventShipmentDelivered   = "shipment.delivered"
	EventSystemReset         = "system.reset"
	EventStockReceived       = "stock.received"
)

// publishEvent pushes a domain event after a successful commit. Publishing is
// best-effort: a failure is logged and never surfaces to the caller, because
// the business operation already succeeded.
func publishEvent(ctx context.Context, publisher ports.EventPublisher, eventType string, payload any) {
	if publisher == nil {
		return
	}

	event := ports.Event{
		Channel: ports.MapChannel,
		Type:    eventType,
		Payload: payload,
	}
	if err := publisher.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to publish event",
			slog.String("type", eventType),
			slog.Any("error", err))
	}
}
