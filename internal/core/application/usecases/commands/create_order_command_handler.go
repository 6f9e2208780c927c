package commands

import (
	"context"
	"errors"
	"log/slog"

	"nexus/internal/core/domain/model/product"
	"nexus/internal/core/domain/model/shipment"
	"nexus/internal/core/domain/services"
	"nexus/internal/core/ports"
)

// WeightPerUnitKg converts an ordered quantity into package weight.
const WeightPerUnitKg = 1.5

// maxTrackingIDAttempts bounds tracking id regeneration on collision.
const maxTrackingIDAttempts = 5

// ErrTrackingIDSpaceExhausted is returned when tracking id generation keeps
// colliding with existing shipments.
var ErrTrackingIDSpaceExhausted = errors.New("could not generate a unique tracking id")

// CreateOrderResult is the outcome of accepted order intake.
type CreateOrderResult struct {
	TrackingID shipment.TrackingID
	WeightKg   float64
	Price      float64
}

// CreateOrderCommandHandler orchestrates order intake: it reserves stock for
// every line atomically (all-or-nothing per SKU set, under row locks) and then
// creates the shipment in a second transaction. If shipment creation fails,
// the reservation is compensated by releasing the stock, so a failed order
// never leaks reserved inventory.
//
// The two-step shape is deliberate: the reservation commits before the
// shipment exists, keeping the lock window on hot product rows short. The gap
// is observable (stock dips until the compensation lands) and accepted.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, publisher, "Gudang Pusat (Nexus One)")
//	cmd, _ := NewCreateOrderCommand(address, destination, lines)
//	result, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrInsufficientStock) {
//	    log.Println("Order rejected: not enough stock")
//	}
type CreateOrderCommandHandler struct {
	uowFactory    UoWFactory
	publisher     ports.EventPublisher
	originAddress string
}

// NewCreateOrderCommandHandler creates a handler for order intake.
// The origin address is stamped on every created shipment.
func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	originAddress string,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:    uowFactory,
		publisher:     publisher,
		originAddress: originAddress,
	}
}

// Handle processes the order intake command.
// Reserves stock for all lines, creates the shipment, and publishes a
// shipment.created event. Returns InsufficientStockError when any line cannot
// be satisfied (no stock is touched in that case) and ObjectNotFoundError for
// an unknown SKU.
func (h CreateOrderCommandHandler) Handle(
	ctx context.Context,
	command CreateOrderCommand,
) (CreateOrderResult, error) {
	if err := command.Validate(); err != nil {
		return CreateOrderResult{}, err
	}

	weightKg, price, err := h.reserveStock(ctx, command)
	if err != nil {
		return CreateOrderResult{}, err
	}

	trackingID, err := h.createShipment(ctx, command, weightKg, price)
	if err != nil {
		h.releaseStock(ctx, command)
		return CreateOrderResult{}, err
	}

	publishEvent(ctx, h.publisher, EventShipmentCreated, map[string]any{
		"trackingId": trackingID.String(),
		"status":     shipment.Pending.String(),
		"address":    command.DestinationAddress(),
		"lat":        command.Destination().Lat(),
		"lng":        command.Destination().Lng(),
		"weightKg":   weightKg,
		"price":      price,
	})

	return CreateOrderResult{TrackingID: trackingID, WeightKg: weightKg, Price: price}, nil
}

// reserveStock decrements stock for every line in one transaction and returns
// the order's package weight and total price.
func (h CreateOrderCommandHandler) reserveStock(
	ctx context.Context,
	command CreateOrderCommand,
) (weightKg float64, price float64, err error) {
	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return 0, 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	productRepo := uow.ProductRepository()
	products, err := productRepo.GetForUpdateBySKUs(ctx, skusOf(command.Lines()))
	if err != nil {
		return 0, 0, err
	}

	if err = services.NewStockLedger().Reserve(products, reservationLinesOf(command.Lines())); err != nil {
		return 0, 0, err
	}

	bySKU := make(map[string]*product.Product, len(products))
	for _, p := range products {
		bySKU[p.SKU()] = p
	}
	for _, line := range command.Lines() {
		weightKg += float64(line.Quantity) * WeightPerUnitKg
		price += float64(line.Quantity) * bySKU[line.SKU].UnitPrice()
	}

	for _, p := range products {
		if err = productRepo.Update(ctx, p); err != nil {
			return 0, 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, 0, err
	}

	return weightKg, price, nil
}

// createShipment creates the pending shipment in its own transaction,
// retrying tracking id generation on collision.
func (h CreateOrderCommandHandler) createShipment(
	ctx context.Context,
	command CreateOrderCommand,
	weightKg float64,
	price float64,
) (shipment.TrackingID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()

	var trackingID shipment.TrackingID
	for attempt := 0; ; attempt++ {
		if attempt == maxTrackingIDAttempts {
			return "", ErrTrackingIDSpaceExhausted
		}

		trackingID = shipment.NewRandomTrackingID()
		exists, err := shipmentRepo.ExistsTrackingID(ctx, trackingID)
		if err != nil {
			return "", err
		}
		if !exists {
			break
		}
	}

	aggregate, err := shipment.NewShipment(
		command.ShipmentID(),
		trackingID,
		h.originAddress,
		command.DestinationAddress(),
		command.Destination(),
		weightKg,
		price,
	)
	if err != nil {
		return "", err
	}

	if err = shipmentRepo.Add(ctx, aggregate); err != nil {
		return "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	return trackingID, nil
}

// releaseStock compensates a committed reservation after shipment creation
// failed. A compensation failure is logged: the original intake error still
// reaches the caller, and the discrepancy needs operator attention.
func (h CreateOrderCommandHandler) releaseStock(ctx context.Context, command CreateOrderCommand) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to begin stock compensation", slog.Any("error", err))
		return
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	productRepo := uow.ProductRepository()
	products, err := productRepo.GetForUpdateBySKUs(ctx, skusOf(command.Lines()))
	if err == nil {
		err = services.NewStockLedger().Release(products, reservationLinesOf(command.Lines()))
	}
	if err == nil {
		for _, p := range products {
			if err = productRepo.Update(ctx, p); err != nil {
				break
			}
		}
	}
	if err == nil {
		err = uow.Commit(ctx)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to release reserved stock",
			slog.String("shipmentId", command.ShipmentID().String()),
			slog.Any("error", err))
	}
}

// skusOf collects the distinct SKUs of the lines, preserving first-seen order.
func skusOf(lines []OrderLine) []string {
	seen := make(map[string]struct{}, len(lines))
	skus := make([]string, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.SKU]; ok {
			continue
		}
		seen[line.SKU] = struct{}{}
		skus = append(skus, line.SKU)
	}
	return skus
}

// reservationLinesOf converts order lines into ledger reservation lines.
func reservationLinesOf(lines []OrderLine) []services.ReservationLine {
	reservations := make([]services.ReservationLine, 0, len(lines))
	for _, line := range lines {
		reservations = append(reservations, services.ReservationLine{SKU: line.SKU, Quantity: line.Quantity})
	}
	return reservations
}
