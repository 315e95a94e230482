package api

import "github.com/draymaster/tripplanner/internal/hos"

// planTripRequest is the wire shape of POST /v1/trips/plan.
type planTripRequest struct {
	CurrentLocation       string   `json:"current_location" binding:"required"`
	PickupLocation        string   `json:"pickup_location" binding:"required"`
	DropoffLocation       string   `json:"dropoff_location" binding:"required"`
	CurrentCycleUsedHours float64  `json:"current_cycle_used_hours" binding:"min=0"`
	AssumeDistanceMi      *float64 `json:"assume_distance_mi,omitempty" binding:"omitempty,min=0"`
}

// planTripResponse is the wire shape of a successful plan — the HOS core's
// assembled output, echoed as-is.
type planTripResponse struct {
	ID    string            `json:"id"`
	Route hos.RouteEcho     `json:"route"`
	Stops []hos.Stop        `json:"stops"`
	Days  []hos.RenderedDay `json:"days"`
}
