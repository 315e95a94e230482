package routing

import (
	"context"
	"math"

	"github.com/draymaster/tripplanner/internal/platform/logger"
)

const earthRadiusMi = 3958.7613

// haversineMiles computes great-circle distance between two coordinates.
func haversineMiles(a, b Coordinate) float64 {
	lat1, lon1 := a.Lat*math.Pi/180, a.Lng*math.Pi/180
	lat2, lon2 := b.Lat*math.Pi/180, b.Lng*math.Pi/180
	dlat, dlon := lat2-lat1, lon2-lon1
	h := math.Pow(math.Sin(dlat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dlon/2), 2)
	return 2 * earthRadiusMi * math.Asin(math.Sqrt(h))
}

// Leg is one resolved driving leg of the overall trip.
type Leg struct {
	DistanceMi float64
	DurationHr float64
	Polyline   *string
}

// Trip is the fully resolved route used to seed the HOS planner: the
// pre-pickup leg (current location to pickup) and the loaded leg (pickup
// to dropoff). Only the loaded leg's distance/duration/polyline are echoed
// back to the caller (spec's route echo); the pre-pickup leg solely seeds
// PrePickupDriveMin.
type Trip struct {
	PrePickup Leg
	Loaded    Leg
}

// Resolver resolves addresses to a full trip route, following the fallback
// ladder: assumed distance override → geocode+ORS directions → haversine
// between geocoded points → fixed default distance.
type Resolver struct {
	Geocoder        Geocoder
	Router          Router
	DefaultSpeedMPH float64
	FallbackMiles   float64
	Log             *logger.Logger
}

// NewResolver builds a Resolver with the given collaborators and defaults.
func NewResolver(geocoder Geocoder, router Router, defaultSpeedMPH, fallbackMiles float64, log *logger.Logger) *Resolver {
	return &Resolver{Geocoder: geocoder, Router: router, DefaultSpeedMPH: defaultSpeedMPH, FallbackMiles: fallbackMiles, Log: log}
}

// Resolve computes the pre-pickup and loaded legs for a trip. assumeMi, if
// non-nil and positive, short-circuits both geocoding and routing entirely
// for the loaded leg and yields a zero pre-pickup leg, matching the
// original assume_distance_mi override.
func (r *Resolver) Resolve(ctx context.Context, current, pickup, dropoff string, assumeMi *float64) Trip {
	if assumeMi != nil && *assumeMi > 0 {
		return Trip{
			Loaded: Leg{DistanceMi: *assumeMi, DurationHr: *assumeMi / r.DefaultSpeedMPH},
		}
	}

	currentCoord, currentOK := r.tryGeocode(ctx, current)
	pickupCoord, pickupOK := r.tryGeocode(ctx, pickup)
	dropoffCoord, dropoffOK := r.tryGeocode(ctx, dropoff)

	loaded := r.resolveLeg(ctx, pickupCoord, pickupOK, dropoffCoord, dropoffOK)

	var prePickup Leg
	if currentOK && pickupOK {
		prePickup = r.resolveLeg(ctx, currentCoord, currentOK, pickupCoord, pickupOK)
	}

	return Trip{PrePickup: prePickup, Loaded: loaded}
}

func (r *Resolver) tryGeocode(ctx context.Context, address string) (Coordinate, bool) {
	coord, err := r.Geocoder.Geocode(ctx, address)
	if err != nil {
		r.Log.Warnf("geocode failed for %q: %v", address, err)
		return Coordinate{}, false
	}
	return coord, true
}

func (r *Resolver) resolveLeg(ctx context.Context, from Coordinate, fromOK bool, to Coordinate, toOK bool) Leg {
	if fromOK && toOK {
		if summary, err := r.Router.Route(ctx, from, to); err == nil {
			return Leg{DistanceMi: summary.DistanceMi, DurationHr: summary.DurationHr, Polyline: summary.Polyline}
		} else {
			r.Log.Warnf("router failed, falling back to haversine: %v", err)
		}
		dist := haversineMiles(from, to)
		return Leg{DistanceMi: dist, DurationHr: dist / r.DefaultSpeedMPH}
	}
	return Leg{DistanceMi: r.FallbackMiles, DurationHr: r.FallbackMiles / r.DefaultSpeedMPH}
}

// PrePickupDriveMin converts a pre-pickup leg's duration into whole minutes
// for the HOS planner.
func (l Leg) PrePickupDriveMin() int {
	return int(l.DurationHr*60 + 0.5)
}
