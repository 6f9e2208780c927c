// Package osrm provides the OSRM-backed implementation of the route geometry
// port. The routing engine is consulted read-only for map display; it never
// participates in assignment decisions, so a failing engine degrades the map
// and nothing else.
package osrm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"nexus/internal/core/domain/model/kernel"
	"nexus/internal/core/ports"
)

// DefaultTimeout bounds one routing engine round trip.
const DefaultTimeout = 5 * time.Second

// Client calls an OSRM instance for drivable route geometry.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates an OSRM client for the given base URL, for example
// "https://router.project-osrm.org".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: DefaultTimeout},
	}
}

// NewClientWithHTTPClient allows injecting a custom http.Client.
func NewClientWithHTTPClient(baseURL string, client *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// routeResponse mirrors the OSRM route service response. Coordinates arrive
// in GeoJSON order: longitude first.
type routeResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"routes"`
}

// GetRoute retrieves the drivable route visiting the waypoints in order.
// At least two waypoints are required.
func (c *Client) GetRoute(ctx context.Context, waypoints []kernel.GeoPoint) (ports.Route, error) {
	if len(waypoints) < 2 {
		return ports.Route{}, fmt.Errorf("route requires at least 2 waypoints, got %d", len(waypoints))
	}

	url := fmt.Sprintf("%s/route/v1/driving/%s?overview=full&geometries=geojson",
		c.baseURL, formatWaypoints(waypoints))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ports.Route{}, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return ports.Route{}, fmt.Errorf("routing engine request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ports.Route{}, fmt.Errorf("routing engine returned status %d", resp.StatusCode)
	}

	var decoded routeResponse
	if err = json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.Route{}, fmt.Errorf("routing engine response is not valid JSON: %w", err)
	}

	if decoded.Code != "Ok" || len(decoded.Routes) == 0 {
		return ports.Route{}, fmt.Errorf("routing engine returned code %q with %d routes",
			decoded.Code, len(decoded.Routes))
	}

	best := decoded.Routes[0]
	geometry := make([]kernel.GeoPoint, 0, len(best.Geometry.Coordinates))
	for _, coordinate := range best.Geometry.Coordinates {
		if len(coordinate) < 2 {
			return ports.Route{}, fmt.Errorf("routing engine returned malformed coordinate %v", coordinate)
		}

		point, pointErr := kernel.NewGeoPoint(coordinate[1], coordinate[0])
		if pointErr != nil {
			return ports.Route{}, pointErr
		}
		geometry = append(geometry, point)
	}

	return ports.Route{
		Geometry:        geometry,
		DistanceMeters:  best.Distance,
		DurationSeconds: best.Duration,
	}, nil
}

// formatWaypoints renders the waypoint path segment in OSRM's
// longitude,latitude order, semicolon separated.
func formatWaypoints(waypoints []kernel.GeoPoint) string {
	parts := make([]string, 0, len(waypoints))
	for _, point := range waypoints {
		parts = append(parts, fmt.Sprintf("%f,%f", point.Lng(), point.Lat()))
	}
	return strings.Join(parts, ";")
}
