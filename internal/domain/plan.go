package domain

import (
	"time"

	"github.com/google/uuid"
)

// PlanStatus represents the lifecycle state of a persisted trip plan.
type PlanStatus string

const (
	PlanStatusComputed PlanStatus = "COMPUTED"
	PlanStatusFailed   PlanStatus = "FAILED"
)

// Location is a free-text address with optional coordinates. The planning
// service stores locations as the request gave them: coordinates resolved
// by the geocoder are not written back, so Lat and Lng stay nil unless the
// caller set them.
type Location struct {
	Address string   `json:"address" db:"address"`
	Lat     *float64 `json:"lat,omitempty" db:"lat"`
	Lng     *float64 `json:"lng,omitempty" db:"lng"`
}

// TripRequest is the validated input to a planning run (spec §1/§3).
type TripRequest struct {
	CurrentLocation       Location
	PickupLocation        Location
	DropoffLocation       Location
	CurrentCycleUsedHours float64
	AssumeDistanceMi      *float64
}

// TripPlan is a persisted planning result: the resolved route echo, the
// segment and day counts of the duty schedule, and bookkeeping fields. The
// segments, stops and day plans themselves are not stored.
type TripPlan struct {
	ID                    uuid.UUID  `json:"id" db:"id"`
	Status                PlanStatus `json:"status" db:"status"`
	CurrentLocation       Location   `json:"current_location" db:"-"`
	PickupLocation        Location   `json:"pickup_location" db:"-"`
	DropoffLocation       Location   `json:"dropoff_location" db:"-"`
	CurrentCycleUsedHours float64    `json:"current_cycle_used_hours" db:"current_cycle_used_hours"`
	DistanceMi            float64    `json:"distance_mi" db:"distance_mi"`
	DurationHr            float64    `json:"duration_hr" db:"duration_hr"`
	Polyline              *string    `json:"polyline,omitempty" db:"polyline"`
	SegmentCount          int        `json:"segment_count" db:"segment_count"`
	DayCount              int        `json:"day_count" db:"day_count"`
	CreatedAt             time.Time  `json:"created_at" db:"created_at"`
}
