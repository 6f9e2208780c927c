package commands_test

import (
	"testing"

	"nexus/internal/core/application/usecases/commands"
	"nexus/internal/core/domain/model/driver"
	"nexus/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegisterDriverCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRegisterDriverCommand(
		"Budi Santoso", driver.Van, testGeoPoint(t, -6.2, 106.8166), "+62-811-1234")
	require.NoError(t, err)

	driverRepo := new(MockDriverRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		driverRepo.On("Add", ctx, mock.MatchedBy(func(d *driver.Driver) bool {
			return d.ID().IsEqual(cmd.DriverID()) && d.Status() == driver.Idle
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDriverUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRegisterDriverCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	driverRepo.AssertExpectations(t)
}

func TestRegisterDriverCommand_Validation(t *testing.T) {
	position := testGeoPoint(t, -6.2, 106.8166)

	t.Run("should reject empty name", func(t *testing.T) {
		_, err := commands.NewRegisterDriverCommand("", driver.Van, position, "")
		require.ErrorIs(t, err, commands.ErrDriverNameIsRequired)
	})

	t.Run("should reject unknown vehicle class", func(t *testing.T) {
		_, err := commands.NewRegisterDriverCommand("Budi Santoso", driver.VehicleUnknown, position, "")
		require.Error(t, err)
	})
}

func TestSetDriverOfflineCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	d := testDriver(t, driver.Motor)

	cmd, err := commands.NewSetDriverOfflineCommand(d.ID())
	require.NoError(t, err)

	driverRepo := new(MockDriverRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		driverRepo.On("GetForUpdate", ctx, d.ID()).Return(d, nil).Once(),
		driverRepo.On("Update", ctx, d).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDriverUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSetDriverOfflineCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, driver.Offline, d.Status())
}

func TestSetDriverOfflineCommandHandler_Handle_BusyDriverRejected(t *testing.T) {
	ctx := t.Context()
	d := testDriver(t, driver.Motor)
	require.NoError(t, d.MarkBusy())

	cmd, err := commands.NewSetDriverOfflineCommand(d.ID())
	require.NoError(t, err)

	driverRepo := new(MockDriverRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		driverRepo.On("GetForUpdate", ctx, d.ID()).Return(d, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDriverUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSetDriverOfflineCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Equal(t, driver.Busy, d.Status())
	driverRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
