package services_test

import (
	"context"
	"testing"

	"nexus/internal/core/domain/model/driver"
	"nexus/internal/core/domain/model/shipment"
	"nexus/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createStrategy(t *testing.T) services.GreedyNearestStrategy {
	t.Helper()
	strategy, err := services.NewGreedyNearestStrategy(services.DefaultClosenessKm)
	require.NoError(t, err)
	return strategy
}

func TestGreedyNearestStrategy_Propose(t *testing.T) {
	t.Run("should group close shipments onto one driver", func(t *testing.T) {
		strategy := createStrategy(t)
		d := createIdleDriver(t, driver.Van, -6.2, 106.8166)
		shipments := []*shipment.Shipment{
			createShipmentAt(t, -6.19, 106.8166, 10),
			createShipmentAt(t, -6.18, 106.8166, 10),
			createShipmentAt(t, -6.17, 106.8166, 10),
		}

		proposals, err := strategy.Propose(t.Context(), shipments, []*driver.Driver{d})

		require.NoError(t, err)
		require.Len(t, proposals, 1)
		assert.True(t, proposals[0].Driver.IsEqual(d))
		assert.Len(t, proposals[0].Shipments, 3)
	})

	t.Run("should cap a run at three stops", func(t *testing.T) {
		strategy := createStrategy(t)
		d := createIdleDriver(t, driver.Truck, -6.2, 106.8166)
		spare := createIdleDriver(t, driver.Truck, -6.2, 106.8166)
		shipments := []*shipment.Shipment{
			createShipmentAt(t, -6.201, 106.817, 5),
			createShipmentAt(t, -6.202, 106.818, 5),
			createShipmentAt(t, -6.203, 106.819, 5),
			createShipmentAt(t, -6.204, 106.82, 5),
		}

		proposals, err := strategy.Propose(t.Context(), shipments, []*driver.Driver{d, spare})

		require.NoError(t, err)
		require.Len(t, proposals, 2)
		assert.Len(t, proposals[0].Shipments, 3)
		assert.Len(t, proposals[1].Shipments, 1)
	})

	t.Run("should respect the vehicle payload when grouping", func(t *testing.T) {
		strategy := createStrategy(t)
		motor := createIdleDriver(t, driver.Motor, -6.2, 106.8166)
		heavy := createShipmentAt(t, -6.201, 106.817, 15)
		light := createShipmentAt(t, -6.202, 106.818, 15)

		proposals, err := strategy.Propose(t.Context(),
			[]*shipment.Shipment{heavy, light}, []*driver.Driver{motor})

		require.NoError(t, err)
		require.Len(t, proposals, 1)
		assert.Len(t, proposals[0].Shipments, 1)
	})

	t.Run("should skip a shipment no driver can carry", func(t *testing.T) {
		strategy := createStrategy(t)
		motor := createIdleDriver(t, driver.Motor, -6.2, 106.8166)
		oversized := createShipmentAt(t, -6.201, 106.817, 50)

		proposals, err := strategy.Propose(t.Context(),
			[]*shipment.Shipment{oversized}, []*driver.Driver{motor})

		require.NoError(t, err)
		assert.Empty(t, proposals)
	})

	t.Run("should not group far apart destinations", func(t *testing.T) {
		strategy := createStrategy(t)
		d := createIdleDriver(t, driver.Van, -6.2, 106.8166)
		near := createShipmentAt(t, -6.21, 106.8166, 10)
		far := createShipmentAt(t, -6.35, 106.8166, 10)

		proposals, err := strategy.Propose(t.Context(),
			[]*shipment.Shipment{near, far}, []*driver.Driver{d})

		require.NoError(t, err)
		require.Len(t, proposals, 1)
		require.Len(t, proposals[0].Shipments, 1)
		assert.True(t, proposals[0].Shipments[0].IsEqual(near))
	})

	t.Run("should place each shipment on at most one driver", func(t *testing.T) {
		strategy := createStrategy(t)
		first := createIdleDriver(t, driver.Van, -6.2, 106.8166)
		second := createIdleDriver(t, driver.Van, -6.2, 106.8166)
		s := createShipmentAt(t, -6.21, 106.82, 10)

		proposals, err := strategy.Propose(t.Context(),
			[]*shipment.Shipment{s}, []*driver.Driver{first, second})

		require.NoError(t, err)
		require.Len(t, proposals, 1)
		assert.True(t, proposals[0].Driver.IsEqual(first))
	})

	t.Run("should return the context error when cancelled", func(t *testing.T) {
		strategy := createStrategy(t)
		d := createIdleDriver(t, driver.Van, -6.2, 106.8166)
		s := createShipmentAt(t, -6.21, 106.82, 10)

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		proposals, err := strategy.Propose(ctx, []*shipment.Shipment{s}, []*driver.Driver{d})

		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, proposals)
	})
}
