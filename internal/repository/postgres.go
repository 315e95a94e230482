package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/draymaster/tripplanner/internal/domain"
	"github.com/draymaster/tripplanner/internal/platform/apperr"
	"github.com/draymaster/tripplanner/internal/platform/database"
)

// PostgresTripPlanRepository persists trip plans to the trip_plans table.
type PostgresTripPlanRepository struct {
	db *database.DB
}

// NewPostgresTripPlanRepository builds a repository over db.
func NewPostgresTripPlanRepository(db *database.DB) *PostgresTripPlanRepository {
	return &PostgresTripPlanRepository{db: db}
}

const insertTripPlanSQL = `
INSERT INTO trip_plans (
	id, status, current_location, pickup_location, dropoff_location,
	current_cycle_used_hours, distance_mi, duration_hr, polyline,
	segment_count, day_count, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now())
RETURNING created_at`

// Create inserts a computed trip plan.
func (r *PostgresTripPlanRepository) Create(ctx context.Context, plan *domain.TripPlan) error {
	currentJSON, err := json.Marshal(plan.CurrentLocation)
	if err != nil {
		return apperr.Database("marshal current_location", err)
	}
	pickupJSON, err := json.Marshal(plan.PickupLocation)
	if err != nil {
		return apperr.Database("marshal pickup_location", err)
	}
	dropoffJSON, err := json.Marshal(plan.DropoffLocation)
	if err != nil {
		return apperr.Database("marshal dropoff_location", err)
	}

	row := r.db.Pool.QueryRow(ctx, insertTripPlanSQL,
		plan.ID, plan.Status, currentJSON, pickupJSON, dropoffJSON,
		plan.CurrentCycleUsedHours, plan.DistanceMi, plan.DurationHr, plan.Polyline,
		plan.SegmentCount, plan.DayCount,
	)
	if err := row.Scan(&plan.CreatedAt); err != nil {
		return apperr.Database("insert trip_plans", err)
	}
	return nil
}

const selectTripPlanSQL = `
SELECT id, status, current_location, pickup_location, dropoff_location,
	current_cycle_used_hours, distance_mi, duration_hr, polyline,
	segment_count, day_count, created_at
FROM trip_plans WHERE id = $1`

// GetByID fetches a trip plan by ID, returning apperr.ErrNotFound when
// absent.
func (r *PostgresTripPlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.TripPlan, error) {
	var plan domain.TripPlan
	var currentJSON, pickupJSON, dropoffJSON []byte

	err := r.db.Pool.QueryRow(ctx, selectTripPlanSQL, id).Scan(
		&plan.ID, &plan.Status, &currentJSON, &pickupJSON, &dropoffJSON,
		&plan.CurrentCycleUsedHours, &plan.DistanceMi, &plan.DurationHr, &plan.Polyline,
		&plan.SegmentCount, &plan.DayCount, &plan.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, apperr.NotFound("trip_plan", id.String())
	}
	if err != nil {
		return nil, apperr.Database("select trip_plans", err)
	}

	if err := json.Unmarshal(currentJSON, &plan.CurrentLocation); err != nil {
		return nil, apperr.Database("unmarshal current_location", err)
	}
	if err := json.Unmarshal(pickupJSON, &plan.PickupLocation); err != nil {
		return nil, apperr.Database("unmarshal pickup_location", err)
	}
	if err := json.Unmarshal(dropoffJSON, &plan.DropoffLocation); err != nil {
		return nil, apperr.Database("unmarshal dropoff_location", err)
	}

	return &plan, nil
}
