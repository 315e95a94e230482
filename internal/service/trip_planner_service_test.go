package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draymaster/tripplanner/internal/domain"
	"github.com/draymaster/tripplanner/internal/platform/kafka"
	"github.com/draymaster/tripplanner/internal/platform/logger"
	"github.com/draymaster/tripplanner/internal/routing"
)

type mockPlanRepo struct {
	plans     map[uuid.UUID]*domain.TripPlan
	createErr error
}

func newMockPlanRepo() *mockPlanRepo {
	return &mockPlanRepo{plans: make(map[uuid.UUID]*domain.TripPlan)}
}

func (m *mockPlanRepo) Create(_ context.Context, plan *domain.TripPlan) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.plans[plan.ID] = plan
	return nil
}

func (m *mockPlanRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.TripPlan, error) {
	p, ok := m.plans[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

type mockPublisher struct {
	published []string
	err       error
}

func (m *mockPublisher) Publish(_ context.Context, topic string, _ *kafka.Event) error {
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, topic)
	return nil
}

type stubGeocoder struct{ coord routing.Coordinate }

func (s *stubGeocoder) Geocode(_ context.Context, _ string) (routing.Coordinate, error) {
	return s.coord, nil
}

type stubRouter struct{ summary routing.RouteSummary }

func (s *stubRouter) Route(_ context.Context, _, _ routing.Coordinate) (routing.RouteSummary, error) {
	return s.summary, nil
}

func newTestService(t *testing.T, repo *mockPlanRepo, pub *mockPublisher) *TripPlannerService {
	t.Helper()
	log, err := logger.New("tripplanner-test", "test", "error")
	require.NoError(t, err)

	resolver := routing.NewResolver(
		&stubGeocoder{coord: routing.Coordinate{Lat: 34.0, Lng: -118.0}},
		&stubRouter{summary: routing.RouteSummary{DistanceMi: 200, DurationHr: 4}},
		50.0, 500.0, log,
	)
	return NewTripPlannerService(repo, resolver, pub, log)
}

func TestTripPlannerService_Plan(t *testing.T) {
	repo := newMockPlanRepo()
	pub := &mockPublisher{}
	svc := newTestService(t, repo, pub)

	req := domain.TripRequest{
		CurrentLocation:       domain.Location{Address: "Los Angeles, CA"},
		PickupLocation:        domain.Location{Address: "Bakersfield, CA"},
		DropoffLocation:       domain.Location{Address: "Fresno, CA"},
		CurrentCycleUsedHours: 10,
	}

	output, plan, err := svc.Plan(context.Background(), req)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, plan.ID)
	assert.Equal(t, domain.PlanStatusComputed, plan.Status)
	assert.NotEmpty(t, output.Days)
	assert.NotEmpty(t, output.Stops)
	assert.Contains(t, pub.published, kafka.Topics.TripPlanCreated)

	stored, err := repo.GetByID(context.Background(), plan.ID)
	require.NoError(t, err)
	assert.Equal(t, plan.DistanceMi, stored.DistanceMi)
}

func TestTripPlannerService_Plan_ValidationError(t *testing.T) {
	svc := newTestService(t, newMockPlanRepo(), &mockPublisher{})

	_, _, err := svc.Plan(context.Background(), domain.TripRequest{})
	assert.Error(t, err)
}

func TestTripPlannerService_Plan_RepoErrorPropagates(t *testing.T) {
	repo := newMockPlanRepo()
	repo.createErr = errors.New("db down")
	svc := newTestService(t, repo, &mockPublisher{})

	req := domain.TripRequest{
		CurrentLocation: domain.Location{Address: "a"},
		PickupLocation:  domain.Location{Address: "b"},
		DropoffLocation: domain.Location{Address: "c"},
	}
	_, _, err := svc.Plan(context.Background(), req)
	assert.Error(t, err)
}

func TestTripPlannerService_Plan_PublishFailureDoesNotFailRequest(t *testing.T) {
	repo := newMockPlanRepo()
	pub := &mockPublisher{err: errors.New("broker unreachable")}
	svc := newTestService(t, repo, pub)

	req := domain.TripRequest{
		CurrentLocation: domain.Location{Address: "a"},
		PickupLocation:  domain.Location{Address: "b"},
		DropoffLocation: domain.Location{Address: "c"},
	}
	_, plan, err := svc.Plan(context.Background(), req)
	require.NoError(t, err)
	assert.NotNil(t, plan)
}

func TestTripPlannerService_GetPlan(t *testing.T) {
	repo := newMockPlanRepo()
	svc := newTestService(t, repo, &mockPublisher{})

	existing := &domain.TripPlan{ID: uuid.New(), Status: domain.PlanStatusComputed}
	repo.plans[existing.ID] = existing

	got, err := svc.GetPlan(context.Background(), existing.ID)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, got.ID)
}
