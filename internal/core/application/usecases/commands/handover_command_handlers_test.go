package commands_test

import (
	"testing"

	"nexus/internal/core/application/usecases/commands"
	"nexus/internal/core/domain/model/driver"
	"nexus/internal/core/domain/model/kernel"
	"nexus/internal/core/domain/model/shipment"
	"nexus/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func assignedShipmentFor(t *testing.T, driverID kernel.UUID) *shipment.Shipment {
	t.Helper()
	s := testPendingShipment(t, 10)
	require.NoError(t, s.Assign(driverID, 1))
	return s
}

func TestStartTransitCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	d := testDriver(t, driver.Van)
	require.NoError(t, d.MarkBusy())
	s := assignedShipmentFor(t, d.ID())

	scannedAt := testGeoPoint(t, -6.195, 106.81)
	cmd, err := commands.NewStartTransitCommand(s.TrackingID(), d.ID(), scannedAt)
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	driverRepo := new(MockDriverRepository)
	uow := new(MockUoW)
	publisher := new(MockEventPublisher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("GetByTrackingID", ctx, s.TrackingID()).Return(s, nil).Once(),
		shipmentRepo.On("Update", ctx, s).Return(nil).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		driverRepo.On("GetForUpdate", ctx, d.ID()).Return(d, nil).Once(),
		driverRepo.On("Update", ctx, d).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
		publisher.On("Publish", ctx, mock.AnythingOfType("ports.Event")).Return(nil).Once(),
	)

	factory := new(MockFleetUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewStartTransitCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, shipment.InTransit, s.Status())
	assert.Equal(t, scannedAt, d.Position())
	shipmentRepo.AssertExpectations(t)
	driverRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestStartTransitCommandHandler_Handle_UnknownTrackingID(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewStartTransitCommand("NEX-48213", kernel.NewUUID(), testGeoPoint(t, -6.2, 106.8166))
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("GetByTrackingID", ctx, shipment.TrackingID("NEX-48213")).
			Return(nil, errs.NewObjectNotFoundError("trackingId", "NEX-48213")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockFleetUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewStartTransitCommandHandler(factory, new(MockEventPublisher))
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	shipmentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestStartTransitCommandHandler_Handle_WrongDriver(t *testing.T) {
	ctx := t.Context()
	s := assignedShipmentFor(t, kernel.NewUUID())

	cmd, err := commands.NewStartTransitCommand(s.TrackingID(), kernel.NewUUID(), testGeoPoint(t, -6.2, 106.8166))
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("GetByTrackingID", ctx, s.TrackingID()).Return(s, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockFleetUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewStartTransitCommandHandler(factory, new(MockEventPublisher))
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Equal(t, shipment.Assigned, s.Status())
	shipmentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCompleteDeliveryCommandHandler_Handle_LastShipmentReleasesDriver(t *testing.T) {
	ctx := t.Context()
	d := testDriver(t, driver.Van)
	require.NoError(t, d.MarkBusy())

	s := assignedShipmentFor(t, d.ID())
	require.NoError(t, s.StartTransit(d.ID()))

	droppedAt := testGeoPoint(t, -6.21, 106.82)
	cmd, err := commands.NewCompleteDeliveryCommand(s.TrackingID(), d.ID(), droppedAt)
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	driverRepo := new(MockDriverRepository)
	uow := new(MockUoW)
	publisher := new(MockEventPublisher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("GetByTrackingID", ctx, s.TrackingID()).Return(s, nil).Once(),
		shipmentRepo.On("Update", ctx, s).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("HasActiveShipments", ctx, d.ID()).Return(false, nil).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		driverRepo.On("GetForUpdate", ctx, d.ID()).Return(d, nil).Once(),
		driverRepo.On("Update", ctx, d).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
		publisher.On("Publish", ctx, mock.AnythingOfType("ports.Event")).Return(nil).Once(),
	)

	factory := new(MockFleetUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCompleteDeliveryCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, shipment.Delivered, s.Status())
	assert.Equal(t, driver.Idle, d.Status())
	assert.Equal(t, droppedAt, d.Position(), "driver parks where the drop-off was reported")
	shipmentRepo.AssertExpectations(t)
	driverRepo.AssertExpectations(t)
}

func TestCompleteDeliveryCommandHandler_Handle_DriverStaysBusyWithRemainingStops(t *testing.T) {
	ctx := t.Context()
	d := testDriver(t, driver.Van)
	require.NoError(t, d.MarkBusy())

	s := assignedShipmentFor(t, d.ID())
	require.NoError(t, s.StartTransit(d.ID()))

	droppedAt := testGeoPoint(t, -6.21, 106.82)
	cmd, err := commands.NewCompleteDeliveryCommand(s.TrackingID(), d.ID(), droppedAt)
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	driverRepo := new(MockDriverRepository)
	uow := new(MockUoW)
	publisher := new(MockEventPublisher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("GetByTrackingID", ctx, s.TrackingID()).Return(s, nil).Once(),
		shipmentRepo.On("Update", ctx, s).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("HasActiveShipments", ctx, d.ID()).Return(true, nil).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		driverRepo.On("GetForUpdate", ctx, d.ID()).Return(d, nil).Once(),
		driverRepo.On("Update", ctx, d).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
		publisher.On("Publish", ctx, mock.AnythingOfType("ports.Event")).Return(nil).Once(),
	)

	factory := new(MockFleetUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCompleteDeliveryCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, driver.Busy, d.Status())
	assert.Equal(t, droppedAt, d.Position())
	shipmentRepo.AssertExpectations(t)
	driverRepo.AssertExpectations(t)
}
