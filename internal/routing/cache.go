package routing

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedGeocoder wraps a Geocoder with a Redis-backed cache keyed on the
// address string, avoiding repeat Nominatim lookups for addresses reused
// across trips (a common case: yards and terminals recur constantly).
// Entries expire after ttl so stale geocodes eventually fall back to a
// fresh lookup and the keyspace does not grow unbounded.
type CachedGeocoder struct {
	inner  Geocoder
	client *redis.Client
	ttl    time.Duration
}

// NewCachedGeocoder wraps inner with a Redis cache whose entries expire
// after ttl.
func NewCachedGeocoder(inner Geocoder, client *redis.Client, ttl time.Duration) *CachedGeocoder {
	return &CachedGeocoder{inner: inner, client: client, ttl: ttl}
}

func geocodeCacheKey(address string) string {
	return fmt.Sprintf("tripplanner:geocode:%s", address)
}

// Geocode returns the cached coordinate for address if present, otherwise
// resolves it via inner and caches the result. Cache misses and Redis
// errors fall through to inner rather than failing the request.
func (c *CachedGeocoder) Geocode(ctx context.Context, address string) (Coordinate, error) {
	key := geocodeCacheKey(address)

	fields, err := c.client.HGetAll(ctx, key).Result()
	if err == nil && len(fields) == 2 {
		var lat, lng float64
		if _, scanErr := fmt.Sscanf(fields["lat"], "%f", &lat); scanErr == nil {
			if _, scanErr := fmt.Sscanf(fields["lng"], "%f", &lng); scanErr == nil {
				return Coordinate{Lat: lat, Lng: lng}, nil
			}
		}
	}

	coord, err := c.inner.Geocode(ctx, address)
	if err != nil {
		return Coordinate{}, err
	}

	c.client.HSet(ctx, key, map[string]interface{}{
		"lat": fmt.Sprintf("%f", coord.Lat),
		"lng": fmt.Sprintf("%f", coord.Lng),
	})
	c.client.Expire(ctx, key, c.ttl)

	return coord, nil
}
