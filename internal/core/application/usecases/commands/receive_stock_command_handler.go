package commands

import (
	"context"

	"nexus/internal/core/domain/model/product"
	"nexus/internal/core/ports"
)

// ReceiveStockCommandHandler processes inbound stock receipts.
// Upserts by SKU under a row lock: an existing product gains stock, an
// unknown SKU becomes a new product with the received quantity.
//
// Example:
//
//	handler := NewReceiveStockCommandHandler(uowFactory, publisher)
//	cmd, _ := NewReceiveStockCommand("K-001", "Mechanical Keyboard", 50, 150000, "Rak A-1")
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("Receipt failed: %v", err)
//	}
type ReceiveStockCommandHandler struct {
	uowFactory ProductUoWFactory
	publisher  ports.EventPublisher
}

// NewReceiveStockCommandHandler creates a handler for inbound stock receipts.
func NewReceiveStockCommandHandler(
	uowFactory ProductUoWFactory,
	publisher ports.EventPublisher,
) ReceiveStockCommandHandler {
	return ReceiveStockCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the stock receipt command.
func (h ReceiveStockCommandHandler) Handle(ctx context.Context, command ReceiveStockCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	productRepo := uow.ProductRepository()

	existing, err := productRepo.GetForUpdateBySKUs(ctx, []string{command.SKU()})
	if err != nil {
		return err
	}

	if len(existing) > 0 {
		aggregate := existing[0]
		if err = aggregate.Receive(command.Quantity()); err != nil {
			return err
		}
		if err = productRepo.Update(ctx, aggregate); err != nil {
			return err
		}
	} else {
		aggregate, newErr := product.NewProduct(
			command.ProductID(),
			command.SKU(),
			command.Name(),
			command.Quantity(),
			command.UnitPrice(),
			command.Location(),
		)
		if newErr != nil {
			return newErr
		}
		if err = productRepo.Add(ctx, aggregate); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishEvent(ctx, h.publisher, EventStockReceived, map[string]any{
		"sku":      command.SKU(),
		"quantity": command.Quantity(),
	})

	return nil
}
