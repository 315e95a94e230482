package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/draymaster/tripplanner/internal/domain"
)

// TripPlanRepository defines trip plan persistence.
type TripPlanRepository interface {
	Create(ctx context.Context, plan *domain.TripPlan) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TripPlan, error)
}
