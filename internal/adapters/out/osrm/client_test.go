package osrm

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"nexus/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWaypoints(t *testing.T) []kernel.GeoPoint {
	t.Helper()

	start, err := kernel.NewGeoPoint(-6.2, 106.8166)
	require.NoError(t, err)
	end, err := kernel.NewGeoPoint(-6.17, 106.82)
	require.NoError(t, err)

	return []kernel.GeoPoint{start, end}
}

func TestGetRoute(t *testing.T) {
	t.Run("should parse route geometry from GeoJSON response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Contains(t, r.URL.Path, "/route/v1/driving/106.816600,-6.200000;106.820000,-6.170000")
			assert.Equal(t, "full", r.URL.Query().Get("overview"))
			assert.Equal(t, "geojson", r.URL.Query().Get("geometries"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"code": "Ok",
				"routes": [{
					"geometry": {"coordinates": [[106.8166, -6.2], [106.818, -6.185], [106.82, -6.17]]},
					"distance": 4120.5,
					"duration": 612.3
				}]
			}`))
		}))
		defer server.Close()

		client := NewClient(server.URL)
		route, err := client.GetRoute(t.Context(), testWaypoints(t))

		require.NoError(t, err)
		require.Len(t, route.Geometry, 3)
		assert.InDelta(t, -6.185, route.Geometry[1].Lat(), 1e-9)
		assert.InDelta(t, 106.818, route.Geometry[1].Lng(), 1e-9)
		assert.InDelta(t, 4120.5, route.DistanceMeters, 1e-9)
		assert.InDelta(t, 612.3, route.DurationSeconds, 1e-9)
	})

	t.Run("should fail when engine reports no route", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"code": "NoRoute", "routes": []}`))
		}))
		defer server.Close()

		client := NewClient(server.URL)
		_, err := client.GetRoute(t.Context(), testWaypoints(t))

		assert.Error(t, err)
	})

	t.Run("should fail on non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := NewClient(server.URL)
		_, err := client.GetRoute(t.Context(), testWaypoints(t))

		assert.Error(t, err)
	})

	t.Run("should require at least two waypoints", func(t *testing.T) {
		client := NewClient("http://localhost:5000")

		_, err := client.GetRoute(t.Context(), testWaypoints(t)[:1])

		assert.Error(t, err)
	})
}
