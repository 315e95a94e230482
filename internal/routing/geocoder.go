// Package routing resolves a trip's street addresses to coordinates and a
// driving distance/duration, with a fallback ladder matching the upstream
// services the teacher's client packages wrap (spec's Route Resolver).
package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/draymaster/tripplanner/internal/platform/apperr"
	"github.com/draymaster/tripplanner/internal/platform/logger"
)

// Coordinate is a resolved lat/lng pair.
type Coordinate struct {
	Lat float64
	Lng float64
}

// Geocoder resolves a free-text address into a coordinate.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (Coordinate, error)
}

// NominatimGeocoder queries the OpenStreetMap Nominatim search API.
type NominatimGeocoder struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// NewNominatimGeocoder builds a client against baseURL (normally
// https://nominatim.openstreetmap.org).
func NewNominatimGeocoder(baseURL string, timeout time.Duration, log *logger.Logger) *NominatimGeocoder {
	return &NominatimGeocoder{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode calls Nominatim's /search endpoint and returns the first match.
func (g *NominatimGeocoder) Geocode(ctx context.Context, address string) (Coordinate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/search", nil)
	if err != nil {
		return Coordinate{}, apperr.Upstream("nominatim", err)
	}
	q := req.URL.Query()
	q.Set("format", "json")
	q.Set("q", address)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("User-Agent", "tripplanner/1.0")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return Coordinate{}, apperr.Upstream("nominatim", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		g.log.Warnf("nominatim geocode %q returned status %d", address, resp.StatusCode)
		return Coordinate{}, apperr.Upstream("nominatim", fmt.Errorf("status %d", resp.StatusCode))
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return Coordinate{}, apperr.Upstream("nominatim", err)
	}
	if len(results) == 0 {
		return Coordinate{}, apperr.Upstream("nominatim", fmt.Errorf("no match for %q", address))
	}

	var lat, lng float64
	if _, err := fmt.Sscanf(results[0].Lat, "%f", &lat); err != nil {
		return Coordinate{}, apperr.Upstream("nominatim", err)
	}
	if _, err := fmt.Sscanf(results[0].Lon, "%f", &lng); err != nil {
		return Coordinate{}, apperr.Upstream("nominatim", err)
	}
	return Coordinate{Lat: lat, Lng: lng}, nil
}
