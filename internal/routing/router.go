package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/draymaster/tripplanner/internal/platform/apperr"
	"github.com/draymaster/tripplanner/internal/platform/logger"
)

// RouteSummary is a resolved driving leg between two coordinates.
type RouteSummary struct {
	DistanceMi float64
	DurationHr float64
	Polyline   *string
}

// Router computes a driving route between two coordinates.
type Router interface {
	Route(ctx context.Context, from, to Coordinate) (RouteSummary, error)
}

// ORSRouter queries the OpenRouteService Directions API (driving-car
// profile).
type ORSRouter struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *logger.Logger
}

// NewORSRouter builds a client against baseURL (normally
// https://api.openrouteservice.org/v2/directions/driving-car).
func NewORSRouter(baseURL, apiKey string, timeout time.Duration, log *logger.Logger) *ORSRouter {
	return &ORSRouter{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

type orsRequest struct {
	Coordinates [][2]float64 `json:"coordinates"`
}

type orsSummary struct {
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
}

type orsRoute struct {
	Summary  orsSummary `json:"summary"`
	Geometry *string    `json:"geometry"`
}

type orsFeatureProperties struct {
	Summary orsSummary `json:"summary"`
}

type orsFeature struct {
	Properties orsFeatureProperties `json:"properties"`
}

type orsResponse struct {
	Routes   []orsRoute   `json:"routes"`
	Features []orsFeature `json:"features"`
}

const metersPerMile = 0.000621371

// Route calls ORS Directions and normalizes both its JSON and GeoJSON reply
// shapes into miles/hours.
func (r *ORSRouter) Route(ctx context.Context, from, to Coordinate) (RouteSummary, error) {
	body, err := json.Marshal(orsRequest{Coordinates: [][2]float64{
		{from.Lng, from.Lat},
		{to.Lng, to.Lat},
	}})
	if err != nil {
		return RouteSummary{}, apperr.Upstream("ors", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL, bytes.NewReader(body))
	if err != nil {
		return RouteSummary{}, apperr.Upstream("ors", err)
	}
	req.Header.Set("Authorization", r.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return RouteSummary{}, apperr.Upstream("ors", err)
	}
	defer resp.Body.Close()

	var parsed orsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return RouteSummary{}, apperr.Upstream("ors", err)
	}

	if len(parsed.Routes) > 0 {
		s := parsed.Routes[0].Summary
		r.log.Debugf("ors route resolved (json): %.1f mi, %.2f hr", s.Distance*metersPerMile, s.Duration/3600)
		return RouteSummary{
			DistanceMi: s.Distance * metersPerMile,
			DurationHr: s.Duration / 3600,
			Polyline:   parsed.Routes[0].Geometry,
		}, nil
	}
	if len(parsed.Features) > 0 {
		s := parsed.Features[0].Properties.Summary
		r.log.Debugf("ors route resolved (geojson): %.1f mi, %.2f hr", s.Distance*metersPerMile, s.Duration/3600)
		return RouteSummary{
			DistanceMi: s.Distance * metersPerMile,
			DurationHr: s.Duration / 3600,
		}, nil
	}

	return RouteSummary{}, apperr.Upstream("ors", fmt.Errorf("response missing routes/features (status %d)", resp.StatusCode))
}
