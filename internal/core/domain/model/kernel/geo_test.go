package kernel_test

import (
	"testing"

	"nexus/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	t.Run("should create point with valid coordinates", func(t *testing.T) {
		point, err := kernel.NewGeoPoint(-6.2, 106.8166)

		require.NoError(t, err)
		require.NoError(t, point.Validate())
		assert.InDelta(t, -6.2, point.Lat(), 1e-9)
		assert.InDelta(t, 106.8166, point.Lng(), 1e-9)
	})

	t.Run("should accept boundary coordinates", func(t *testing.T) {
		testCases := []struct {
			name     string
			lat, lng float64
		}{
			{"north pole", 90, 0},
			{"south pole", -90, 0},
			{"date line east", 0, 180},
			{"date line west", 0, -180},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				point, err := kernel.NewGeoPoint(tc.lat, tc.lng)
				require.NoError(t, err)
				require.NoError(t, point.Validate())
			})
		}
	})

	t.Run("should return error for out of range coordinates", func(t *testing.T) {
		testCases := []struct {
			name     string
			lat, lng float64
		}{
			{"latitude too high", 90.001, 0},
			{"latitude too low", -91, 0},
			{"longitude too high", 0, 181},
			{"longitude too low", 0, -180.5},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := kernel.NewGeoPoint(tc.lat, tc.lng)
				require.Error(t, err)
			})
		}
	})
}

func TestGeoPoint_Validate(t *testing.T) {
	t.Run("zero value fails validation", func(t *testing.T) {
		var point kernel.GeoPoint

		err := point.Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "geo point must be created")
	})
}

func TestGeoPoint_IsEqual(t *testing.T) {
	t.Run("equal coordinates", func(t *testing.T) {
		p1, _ := kernel.NewGeoPoint(-6.2, 106.8166)
		p2, _ := kernel.NewGeoPoint(-6.2, 106.8166)

		equal, err := p1.IsEqual(p2)

		require.NoError(t, err)
		assert.True(t, equal)
	})

	t.Run("different coordinates", func(t *testing.T) {
		p1, _ := kernel.NewGeoPoint(-6.2, 106.8166)
		p2, _ := kernel.NewGeoPoint(-6.3, 106.8166)

		equal, err := p1.IsEqual(p2)

		require.NoError(t, err)
		assert.False(t, equal)
	})

	t.Run("unconstructed point fails", func(t *testing.T) {
		p1, _ := kernel.NewGeoPoint(-6.2, 106.8166)
		var p2 kernel.GeoPoint

		_, err := p1.IsEqual(p2)

		require.Error(t, err)
	})
}

func TestGeoPoint_DistanceKm(t *testing.T) {
	t.Run("distance to itself is zero", func(t *testing.T) {
		point, _ := kernel.NewGeoPoint(-6.2, 106.8166)

		km, err := point.DistanceKm(point)

		require.NoError(t, err)
		assert.InDelta(t, 0, km, 1e-9)
	})

	t.Run("distance is symmetric", func(t *testing.T) {
		p1, _ := kernel.NewGeoPoint(-6.2, 106.8166)
		p2, _ := kernel.NewGeoPoint(-6.1745, 106.8227)

		d1, err := p1.DistanceKm(p2)
		require.NoError(t, err)
		d2, err := p2.DistanceKm(p1)
		require.NoError(t, err)

		assert.InDelta(t, d1, d2, 1e-9)
	})

	t.Run("known distance across Jakarta", func(t *testing.T) {
		// Monas to Kota Tua is roughly 4.5km as the crow flies.
		monas, _ := kernel.NewGeoPoint(-6.1754, 106.8272)
		kotaTua, _ := kernel.NewGeoPoint(-6.1352, 106.8133)

		km, err := monas.DistanceKm(kotaTua)

		require.NoError(t, err)
		assert.InDelta(t, 4.7, km, 0.5)
	})

	t.Run("one degree of latitude is about 111km", func(t *testing.T) {
		p1, _ := kernel.NewGeoPoint(0, 0)
		p2, _ := kernel.NewGeoPoint(1, 0)

		km, err := p1.DistanceKm(p2)

		require.NoError(t, err)
		assert.InDelta(t, 111.2, km, 1.0)
	})

	t.Run("unconstructed point fails", func(t *testing.T) {
		p1, _ := kernel.NewGeoPoint(0, 0)
		var p2 kernel.GeoPoint

		_, err := p1.DistanceKm(p2)

		require.Error(t, err)
	})
}

func TestGeoPoint_String(t *testing.T) {
	point, _ := kernel.NewGeoPoint(-6.2, 106.8166)
	assert.Equal(t, "GeoPoint(-6.200000,106.816600)", point.String())
}
