package driver_test

import (
	"testing"

	"nexus/internal/core/domain/model/driver"
	"nexus/internal/core/domain/model/kernel"
	"nexus/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func depotPosition(t *testing.T) kernel.GeoPoint {
	t.Helper()
	position, err := kernel.NewGeoPoint(-6.2, 106.8166)
	require.NoError(t, err)
	return position
}

func createValidDriver(t *testing.T, vehicle driver.VehicleClass) *driver.Driver {
	t.Helper()
	d, err := driver.NewDriver(kernel.NewUUID(), "Budi", vehicle, depotPosition(t), "+62-811")
	require.NoError(t, err)
	require.NotNil(t, d)
	return d
}

func TestNewDriver(t *testing.T) {
	t.Run("should create idle driver with valid parameters", func(t *testing.T) {
		id := kernel.NewUUID()
		position := depotPosition(t)

		d, err := driver.NewDriver(id, "Budi", driver.Van, position, "+62-811")

		require.NoError(t, err)
		require.NoError(t, d.Validate())
		assert.True(t, d.ID().IsEqual(id))
		assert.Equal(t, "Budi", d.Name())
		assert.Equal(t, driver.Van, d.Vehicle())
		assert.Equal(t, driver.Idle, d.Status())
		assert.Equal(t, position, d.Position())
		assert.Equal(t, "+62-811", d.Phone())
	})

	t.Run("should return error for empty name", func(t *testing.T) {
		d, err := driver.NewDriver(kernel.NewUUID(), "", driver.Van, depotPosition(t), "")

		require.Error(t, err)
		assert.Nil(t, d)
		assert.Contains(t, err.Error(), "name")
	})

	t.Run("should return error for unknown vehicle class", func(t *testing.T) {
		d, err := driver.NewDriver(kernel.NewUUID(), "Budi", driver.VehicleUnknown, depotPosition(t), "")

		require.Error(t, err)
		assert.Nil(t, d)
	})

	t.Run("should return error for unconstructed position", func(t *testing.T) {
		var position kernel.GeoPoint

		d, err := driver.NewDriver(kernel.NewUUID(), "Budi", driver.Van, position, "")

		require.Error(t, err)
		assert.Nil(t, d)
	})
}

func TestRestoreDriver(t *testing.T) {
	t.Run("restores persisted status", func(t *testing.T) {
		d, err := driver.RestoreDriver(
			kernel.NewUUID(), "Budi", driver.Truck, driver.Busy, depotPosition(t), "")

		require.NoError(t, err)
		assert.Equal(t, driver.Busy, d.Status())
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		d, err := driver.RestoreDriver(
			kernel.NewUUID(), "Budi", driver.Truck, driver.StatusUnknown, depotPosition(t), "")

		require.Error(t, err)
		assert.Nil(t, d)
	})
}

func TestVehicleClass(t *testing.T) {
	t.Run("payload ceilings", func(t *testing.T) {
		assert.InDelta(t, 20.0, driver.Motor.MaxPayloadKg(), 1e-9)
		assert.InDelta(t, 100.0, driver.Van.MaxPayloadKg(), 1e-9)
		assert.InDelta(t, 500.0, driver.Truck.MaxPayloadKg(), 1e-9)
		assert.InDelta(t, 0.0, driver.VehicleUnknown.MaxPayloadKg(), 1e-9)
	})

	t.Run("parses wire names", func(t *testing.T) {
		for name, expected := range map[string]driver.VehicleClass{
			"motor": driver.Motor,
			"van":   driver.Van,
			"truck": driver.Truck,
		} {
			v, err := driver.VehicleClassFromString(name)
			require.NoError(t, err)
			assert.Equal(t, expected, v)
			assert.Equal(t, name, v.String())
		}
	})

	t.Run("rejects unknown wire name", func(t *testing.T) {
		_, err := driver.VehicleClassFromString("bicycle")
		require.Error(t, err)
	})
}

func TestDriver_CanCarry(t *testing.T) {
	t.Run("motor cannot carry above its ceiling", func(t *testing.T) {
		d := createValidDriver(t, driver.Motor)

		assert.True(t, d.CanCarry(20))
		assert.False(t, d.CanCarry(20.5))
	})

	t.Run("zero weight is rejected", func(t *testing.T) {
		d := createValidDriver(t, driver.Truck)

		assert.False(t, d.CanCarry(0))
	})
}

func TestDriver_StatusTransitions(t *testing.T) {
	t.Run("idle to busy on assignment", func(t *testing.T) {
		d := createValidDriver(t, driver.Van)

		require.NoError(t, d.MarkBusy())

		assert.Equal(t, driver.Busy, d.Status())
	})

	t.Run("marking busy twice is idempotent", func(t *testing.T) {
		d := createValidDriver(t, driver.Van)
		require.NoError(t, d.MarkBusy())

		require.NoError(t, d.MarkBusy())

		assert.Equal(t, driver.Busy, d.Status())
	})

	t.Run("busy back to idle after last delivery", func(t *testing.T) {
		d := createValidDriver(t, driver.Van)
		require.NoError(t, d.MarkBusy())

		require.NoError(t, d.MarkIdle())

		assert.Equal(t, driver.Idle, d.Status())
	})

	t.Run("idle driver cannot be marked idle again", func(t *testing.T) {
		d := createValidDriver(t, driver.Van)

		err := d.MarkIdle()

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, driver.Idle, d.Status())
	})

	t.Run("idle driver can go offline", func(t *testing.T) {
		d := createValidDriver(t, driver.Van)

		require.NoError(t, d.MarkOffline())

		assert.Equal(t, driver.Offline, d.Status())
	})

	t.Run("busy driver cannot go offline", func(t *testing.T) {
		d := createValidDriver(t, driver.Van)
		require.NoError(t, d.MarkBusy())

		err := d.MarkOffline()

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, driver.Busy, d.Status())
	})

	t.Run("offline driver cannot be assigned", func(t *testing.T) {
		d := createValidDriver(t, driver.Van)
		require.NoError(t, d.MarkOffline())

		err := d.MarkBusy()

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("administrative reset forces idle from any status", func(t *testing.T) {
		offline := createValidDriver(t, driver.Van)
		require.NoError(t, offline.MarkOffline())
		busy := createValidDriver(t, driver.Van)
		require.NoError(t, busy.MarkBusy())

		offline.ResetToIdle()
		busy.ResetToIdle()

		assert.Equal(t, driver.Idle, offline.Status())
		assert.Equal(t, driver.Idle, busy.Status())
	})
}

func TestDriver_ReportPosition(t *testing.T) {
	t.Run("updates the advisory position", func(t *testing.T) {
		d := createValidDriver(t, driver.Van)
		next, err := kernel.NewGeoPoint(-6.17, 106.82)
		require.NoError(t, err)

		require.NoError(t, d.ReportPosition(next))

		assert.Equal(t, next, d.Position())
	})

	t.Run("rejects unconstructed position", func(t *testing.T) {
		d := createValidDriver(t, driver.Van)
		var invalid kernel.GeoPoint

		require.Error(t, d.ReportPosition(invalid))
	})
}
