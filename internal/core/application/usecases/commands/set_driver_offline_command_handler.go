package commands

import (
	"context"
)

// SetDriverOfflineCommandHandler takes a driver off shift.
// Loads the driver under a row lock and moves them to offline; a busy driver
// is rejected with an InvalidTransitionError.
type SetDriverOfflineCommandHandler struct {
	uowFactory DriverUoWFactory
}

// NewSetDriverOfflineCommandHandler creates a handler for off-shift requests.
func NewSetDriverOfflineCommandHandler(uowFactory DriverUoWFactory) SetDriverOfflineCommandHandler {
	return SetDriverOfflineCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the off-shift command.
func (h SetDriverOfflineCommandHandler) Handle(ctx context.Context, command SetDriverOfflineCommand) error {
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

	driverRepo := uow.DriverRepository()

	aggregate, err := driverRepo.GetForUpdate(ctx, command.DriverID())
	if err != nil {
		return err
	}

	if err = aggregate.MarkOffline(); err != nil {
		return err
	}

	if err = driverRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
