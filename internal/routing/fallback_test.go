package routing

import (
	"context"
	"errors"
	"testing"

	"github.com/draymaster/tripplanner/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGeocoder struct {
	coords map[string]Coordinate
}

func (s *stubGeocoder) Geocode(_ context.Context, address string) (Coordinate, error) {
	c, ok := s.coords[address]
	if !ok {
		return Coordinate{}, errors.New("no match")
	}
	return c, nil
}

type stubRouter struct {
	summary RouteSummary
	err     error
}

func (s *stubRouter) Route(_ context.Context, _, _ Coordinate) (RouteSummary, error) {
	return s.summary, s.err
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	l, err := logger.New("tripplanner-test", "test", "error")
	require.NoError(t, err)
	return l
}

func TestResolve_AssumeDistanceOverride(t *testing.T) {
	r := NewResolver(&stubGeocoder{}, &stubRouter{}, 50.0, 500.0, newTestLogger(t))
	assume := 300.0
	trip := r.Resolve(context.Background(), "a", "b", "c", &assume)

	assert.Equal(t, 300.0, trip.Loaded.DistanceMi)
	assert.Equal(t, 6.0, trip.Loaded.DurationHr)
	assert.Zero(t, trip.PrePickup.DistanceMi)
}

func TestResolve_RouterSuccess(t *testing.T) {
	geocoder := &stubGeocoder{coords: map[string]Coordinate{
		"current": {Lat: 34.0, Lng: -118.0},
		"pickup":  {Lat: 34.1, Lng: -118.1},
		"dropoff": {Lat: 36.0, Lng: -120.0},
	}}
	router := &stubRouter{summary: RouteSummary{DistanceMi: 250, DurationHr: 5}}

	r := NewResolver(geocoder, router, 50.0, 500.0, newTestLogger(t))
	trip := r.Resolve(context.Background(), "current", "pickup", "dropoff", nil)

	assert.Equal(t, 250.0, trip.Loaded.DistanceMi)
	assert.Equal(t, 5.0, trip.Loaded.DurationHr)
	assert.Equal(t, 250.0, trip.PrePickup.DistanceMi)
}

func TestResolve_RouterFailsFallsBackToHaversine(t *testing.T) {
	geocoder := &stubGeocoder{coords: map[string]Coordinate{
		"pickup":  {Lat: 34.0, Lng: -118.0},
		"dropoff": {Lat: 34.0, Lng: -118.0},
	}}
	router := &stubRouter{err: errors.New("ors down")}

	r := NewResolver(geocoder, router, 50.0, 500.0, newTestLogger(t))
	trip := r.Resolve(context.Background(), "current", "pickup", "dropoff", nil)

	assert.InDelta(t, 0.0, trip.Loaded.DistanceMi, 0.001)
}

func TestResolve_NoGeocodeFallsBackToFixedDistance(t *testing.T) {
	r := NewResolver(&stubGeocoder{}, &stubRouter{}, 50.0, 500.0, newTestLogger(t))
	trip := r.Resolve(context.Background(), "current", "pickup", "dropoff", nil)

	assert.Equal(t, 500.0, trip.Loaded.DistanceMi)
	assert.Equal(t, 10.0, trip.Loaded.DurationHr)
}

func TestHaversineMiles_KnownDistance(t *testing.T) {
	la := Coordinate{Lat: 34.0522, Lng: -118.2437}
	sf := Coordinate{Lat: 37.7749, Lng: -122.4194}
	dist := haversineMiles(la, sf)
	assert.InDelta(t, 347.4, dist, 5)
}

func TestLeg_PrePickupDriveMin(t *testing.T) {
	leg := Leg{DurationHr: 1.5}
	assert.Equal(t, 90, leg.PrePickupDriveMin())
}
