package services_test

import (
	"testing"

	"nexus/internal/core/domain/model/driver"
	"nexus/internal/core/domain/model/kernel"
	"nexus/internal/core/domain/model/shipment"
	"nexus/internal/core/domain/services"
	"nexus/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geoPoint(t *testing.T, lat, lng float64) kernel.GeoPoint {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	return point
}

func createIdleDriver(t *testing.T, vehicle driver.VehicleClass, lat, lng float64) *driver.Driver {
	t.Helper()
	d, err := driver.NewDriver(kernel.NewUUID(), "Budi", vehicle, geoPoint(t, lat, lng), "+62-811")
	require.NoError(t, err)
	return d
}

func createShipmentAt(t *testing.T, lat, lng, weightKg float64) *shipment.Shipment {
	t.Helper()
	s, err := shipment.NewShipment(
		kernel.NewUUID(),
		shipment.NewRandomTrackingID(),
		"Gudang Pusat (Nexus One)",
		"Jl. Kemang Raya No. 8",
		geoPoint(t, lat, lng),
		weightKg,
		150000,
	)
	require.NoError(t, err)
	return s
}

func createDispatcher(t *testing.T) services.Dispatcher {
	t.Helper()
	dispatcher, err := services.NewDispatcher(services.DefaultClosenessKm)
	require.NoError(t, err)
	return dispatcher
}

func TestDispatcher_Apply(t *testing.T) {
	t.Run("should assign a single shipment and mark the driver busy", func(t *testing.T) {
		dispatcher := createDispatcher(t)
		d := createIdleDriver(t, driver.Motor, -6.2, 106.8166)
		s := createShipmentAt(t, -6.21, 106.82, 7.5)

		err := dispatcher.Apply(services.Proposal{Driver: d, Shipments: []*shipment.Shipment{s}})

		require.NoError(t, err)
		assert.Equal(t, driver.Busy, d.Status())
		assert.Equal(t, shipment.Assigned, s.Status())
		require.NotNil(t, s.Driver())
		assert.True(t, s.Driver().IsEqual(d.ID()))
		require.NotNil(t, s.RouteOrder())
		assert.Equal(t, 1, *s.RouteOrder())
	})

	t.Run("should order multiple stops nearest neighbor from the driver", func(t *testing.T) {
		dispatcher := createDispatcher(t)
		d := createIdleDriver(t, driver.Van, -6.2, 106.8166)
		// roughly 1.1km, 2.2km and 3.3km north of the driver
		near := createShipmentAt(t, -6.19, 106.8166, 10)
		middle := createShipmentAt(t, -6.18, 106.8166, 10)
		far := createShipmentAt(t, -6.17, 106.8166, 10)

		err := dispatcher.Apply(services.Proposal{
			Driver:    d,
			Shipments: []*shipment.Shipment{far, near, middle},
		})

		require.NoError(t, err)
		assert.Equal(t, 1, *near.RouteOrder())
		assert.Equal(t, 2, *middle.RouteOrder())
		assert.Equal(t, 3, *far.RouteOrder())
	})

	t.Run("should reject a run exceeding the vehicle payload", func(t *testing.T) {
		dispatcher := createDispatcher(t)
		d := createIdleDriver(t, driver.Motor, -6.2, 106.8166)
		first := createShipmentAt(t, -6.21, 106.82, 12)
		second := createShipmentAt(t, -6.211, 106.821, 12)

		err := dispatcher.Apply(services.Proposal{
			Driver:    d,
			Shipments: []*shipment.Shipment{first, second},
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrCapacityExceeded)
		assert.Equal(t, driver.Idle, d.Status())
		assert.Equal(t, shipment.Pending, first.Status())
		assert.Equal(t, shipment.Pending, second.Status())
	})

	t.Run("should reject more than three shipments per driver", func(t *testing.T) {
		dispatcher := createDispatcher(t)
		d := createIdleDriver(t, driver.Truck, -6.2, 106.8166)
		shipments := []*shipment.Shipment{
			createShipmentAt(t, -6.201, 106.817, 5),
			createShipmentAt(t, -6.202, 106.818, 5),
			createShipmentAt(t, -6.203, 106.819, 5),
			createShipmentAt(t, -6.204, 106.82, 5),
		}

		err := dispatcher.Apply(services.Proposal{Driver: d, Shipments: shipments})

		require.Error(t, err)
		require.ErrorIs(t, err, services.ErrTooManyShipments)
		assert.Equal(t, driver.Idle, d.Status())
	})

	t.Run("should reject destinations beyond the closeness threshold", func(t *testing.T) {
		dispatcher := createDispatcher(t)
		d := createIdleDriver(t, driver.Van, -6.2, 106.8166)
		// about 11km apart
		south := createShipmentAt(t, -6.25, 106.8166, 10)
		north := createShipmentAt(t, -6.15, 106.8166, 10)

		err := dispatcher.Apply(services.Proposal{
			Driver:    d,
			Shipments: []*shipment.Shipment{south, north},
		})

		require.Error(t, err)
		require.ErrorIs(t, err, services.ErrDestinationsTooFarApart)
		assert.Equal(t, shipment.Pending, south.Status())
	})

	t.Run("should reject a busy driver", func(t *testing.T) {
		dispatcher := createDispatcher(t)
		d := createIdleDriver(t, driver.Van, -6.2, 106.8166)
		require.NoError(t, d.MarkBusy())
		s := createShipmentAt(t, -6.21, 106.82, 10)

		err := dispatcher.Apply(services.Proposal{Driver: d, Shipments: []*shipment.Shipment{s}})

		require.Error(t, err)
		require.ErrorIs(t, err, services.ErrDriverIsNotIdle)
		assert.Equal(t, shipment.Pending, s.Status())
	})

	t.Run("should reject a shipment that already left pending", func(t *testing.T) {
		dispatcher := createDispatcher(t)
		first := createIdleDriver(t, driver.Van, -6.2, 106.8166)
		second := createIdleDriver(t, driver.Van, -6.2, 106.8166)
		s := createShipmentAt(t, -6.21, 106.82, 10)
		require.NoError(t, dispatcher.Apply(services.Proposal{Driver: first, Shipments: []*shipment.Shipment{s}}))

		err := dispatcher.Apply(services.Proposal{Driver: second, Shipments: []*shipment.Shipment{s}})

		require.Error(t, err)
		require.ErrorIs(t, err, services.ErrShipmentIsNotPending)
		assert.Equal(t, driver.Idle, second.Status())
	})

	t.Run("should reject an empty proposal", func(t *testing.T) {
		dispatcher := createDispatcher(t)
		d := createIdleDriver(t, driver.Van, -6.2, 106.8166)

		err := dispatcher.Apply(services.Proposal{Driver: d})

		require.Error(t, err)
		require.ErrorIs(t, err, services.ErrEmptyProposal)
	})
}
