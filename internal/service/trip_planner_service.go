package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/draymaster/tripplanner/internal/domain"
	"github.com/draymaster/tripplanner/internal/hos"
	"github.com/draymaster/tripplanner/internal/platform/apperr"
	"github.com/draymaster/tripplanner/internal/platform/kafka"
	"github.com/draymaster/tripplanner/internal/platform/logger"
	"github.com/draymaster/tripplanner/internal/repository"
	"github.com/draymaster/tripplanner/internal/routing"
)

// EventPublisher publishes a domain event to a topic. kafka.Producer
// satisfies this; tests substitute a stub.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event *kafka.Event) error
}

// TripPlannerService orchestrates a planning request end to end: resolve
// the route, run the HOS simulation core, persist the result, and publish
// the outcome.
type TripPlannerService struct {
	planRepo      repository.TripPlanRepository
	resolver      *routing.Resolver
	eventProducer EventPublisher
	logger        *logger.Logger
}

// NewTripPlannerService wires a TripPlannerService's collaborators.
func NewTripPlannerService(
	planRepo repository.TripPlanRepository,
	resolver *routing.Resolver,
	eventProducer EventPublisher,
	log *logger.Logger,
) *TripPlannerService {
	return &TripPlannerService{
		planRepo:      planRepo,
		resolver:      resolver,
		eventProducer: eventProducer,
		logger:        log,
	}
}

// Plan resolves req's route, runs the HOS core, persists the plan, and
// publishes a tripplanner.plan.created event plus one
// restart/daily-reset/break event per matching segment the core emitted.
// The returned output is ready for a transport layer to marshal directly.
func (s *TripPlannerService) Plan(ctx context.Context, req domain.TripRequest) (hos.PlanOutput, *domain.TripPlan, error) {
	if err := validateRequest(req); err != nil {
		return hos.PlanOutput{}, nil, err
	}

	trip := s.resolver.Resolve(ctx,
		req.CurrentLocation.Address, req.PickupLocation.Address, req.DropoffLocation.Address,
		req.AssumeDistanceMi,
	)

	result, err := hos.Plan(hos.Input{
		DistanceMi:            trip.Loaded.DistanceMi,
		DurationHr:            trip.Loaded.DurationHr,
		CurrentCycleUsedHours: req.CurrentCycleUsedHours,
		PrePickupDriveMin:     trip.PrePickup.PrePickupDriveMin(),
	})
	if err != nil {
		return hos.PlanOutput{}, nil, err
	}

	output := hos.Assemble(trip.Loaded.DistanceMi, trip.Loaded.Polyline, result)

	plan := &domain.TripPlan{
		ID:                    uuid.New(),
		Status:                domain.PlanStatusComputed,
		CurrentLocation:       req.CurrentLocation,
		PickupLocation:        req.PickupLocation,
		DropoffLocation:       req.DropoffLocation,
		CurrentCycleUsedHours: req.CurrentCycleUsedHours,
		DistanceMi:            output.Route.DistanceMi,
		DurationHr:            output.Route.DurationHr,
		Polyline:              output.Route.Polyline,
		SegmentCount:          len(result.Segments),
		DayCount:              len(result.Days),
	}

	if err := s.planRepo.Create(ctx, plan); err != nil {
		s.logger.WithError(err).Error("failed to persist trip plan")
		return hos.PlanOutput{}, nil, err
	}

	event := kafka.NewEvent(kafka.EventTripPlanCreated, "tripplanner", map[string]interface{}{
		"trip_plan_id": plan.ID.String(),
		"distance_mi":  plan.DistanceMi,
		"day_count":    plan.DayCount,
	})
	if err := s.eventProducer.Publish(ctx, kafka.Topics.TripPlanCreated, event); err != nil {
		s.logger.WithError(err).Warn("failed to publish trip plan created event")
	}

	s.publishSegmentEvents(ctx, plan, result)

	return output, plan, nil
}

// publishSegmentEvents scans the emitted segment sequence for the three
// schedule-altering labels (34h Restart, Off Duty (reset), 30m Break) and
// publishes one domain event per occurrence, matching SPEC_FULL.md §3's
// restart/daily-reset/break event registry.
func (s *TripPlannerService) publishSegmentEvents(ctx context.Context, plan *domain.TripPlan, result *hos.Result) {
	for _, seg := range result.Segments {
		var eventType, topic string
		switch seg.Label {
		case hos.LabelCycleRestart:
			eventType, topic = kafka.EventTripPlanRestart, kafka.Topics.TripPlanRestart
		case hos.LabelDailyReset:
			eventType, topic = kafka.EventTripPlanDailyReset, kafka.Topics.TripPlanDailyReset
		case hos.LabelBreak:
			eventType, topic = kafka.EventTripPlanBreakInserted, kafka.Topics.TripPlanBreakInserted
		default:
			continue
		}

		event := kafka.NewEvent(eventType, "tripplanner", map[string]interface{}{
			"trip_plan_id": plan.ID.String(),
			"start_at":     seg.Start,
			"duration_min": seg.DurationMin(),
		})
		if err := s.eventProducer.Publish(ctx, topic, event); err != nil {
			s.logger.WithError(err).Warnw("failed to publish segment event", "event_type", eventType)
		}
	}
}

// GetPlan fetches a previously computed trip plan by ID.
func (s *TripPlannerService) GetPlan(ctx context.Context, id uuid.UUID) (*domain.TripPlan, error) {
	return s.planRepo.GetByID(ctx, id)
}

func validateRequest(req domain.TripRequest) error {
	if req.CurrentLocation.Address == "" {
		return apperr.InvalidInput("current_location is required")
	}
	if req.PickupLocation.Address == "" {
		return apperr.InvalidInput("pickup_location is required")
	}
	if req.DropoffLocation.Address == "" {
		return apperr.InvalidInput("dropoff_location is required")
	}
	if req.CurrentCycleUsedHours < 0 {
		return apperr.InvalidInput("current_cycle_used_hours must be non-negative")
	}
	if req.AssumeDistanceMi != nil && *req.AssumeDistanceMi < 0 {
		return apperr.InvalidInput("assume_distance_mi must be non-negative")
	}
	return nil
}
