package commands

import (
	"context"

	"nexus/internal/core/domain/model/driver"
)

// RegisterDriverCommandHandler processes driver registrations.
// Creates the driver aggregate in idle status and persists it.
//
// Example:
//
//	handler := NewRegisterDriverCommandHandler(uowFactory)
//	cmd, _ := NewRegisterDriverCommand("Budi Santoso", driver.Van, depot, "+62-811-1234")
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("Registration failed: %v", err)
//	}
type RegisterDriverCommandHandler struct {
	uowFactory DriverUoWFactory
}

// NewRegisterDriverCommandHandler creates a handler for driver registrations.
func NewRegisterDriverCommandHandler(uowFactory DriverUoWFactory) RegisterDriverCommandHandler {
	return RegisterDriverCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the driver registration command.
func (h RegisterDriverCommandHandler) Handle(ctx context.Context, command RegisterDriverCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	aggregate, err := driver.NewDriver(
		command.DriverID(),
		command.Name(),
		command.Vehicle(),
		command.Position(),
		command.Phone(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.DriverRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
