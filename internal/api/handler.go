package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/draymaster/tripplanner/internal/domain"
	"github.com/draymaster/tripplanner/internal/platform/apperr"
	"github.com/draymaster/tripplanner/internal/platform/logger"
	"github.com/draymaster/tripplanner/internal/service"
)

// Handler exposes the trip planner over HTTP.
type Handler struct {
	svc *service.TripPlannerService
	log *logger.Logger
}

// NewHandler builds a Handler over svc.
func NewHandler(svc *service.TripPlannerService, log *logger.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Register wires the handler's routes onto engine.
func (h *Handler) Register(engine *gin.Engine) {
	engine.GET("/healthz", h.healthz)
	v1 := engine.Group("/v1")
	v1.POST("/trips/plan", h.planTrip)
	v1.GET("/trips/:id", h.getTrip)
}

func (h *Handler) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// planTrip handles POST /v1/trips/plan (spec.md §6, SPEC_FULL.md §5):
// resolve the route, run the HOS core, persist and publish the result.
func (h *Handler) planTrip(c *gin.Context) {
	var req planTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	output, plan, err := h.svc.Plan(c.Request.Context(), domain.TripRequest{
		CurrentLocation:       domain.Location{Address: req.CurrentLocation},
		PickupLocation:        domain.Location{Address: req.PickupLocation},
		DropoffLocation:       domain.Location{Address: req.DropoffLocation},
		CurrentCycleUsedHours: req.CurrentCycleUsedHours,
		AssumeDistanceMi:      req.AssumeDistanceMi,
	})
	if err != nil {
		h.log.WithError(err).Warn("trip plan failed")
		errorResponse(c, errToStatus(err), "failed to plan trip", err)
		return
	}

	successResponse(c, http.StatusOK, "trip planned", planTripResponse{
		ID:    plan.ID.String(),
		Route: output.Route,
		Stops: output.Stops,
		Days:  output.Days,
	})
}

// getTrip handles GET /v1/trips/:id, retrieving a previously computed and
// persisted plan (SPEC_FULL.md §5).
func (h *Handler) getTrip(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid trip id", err)
		return
	}

	plan, err := h.svc.GetPlan(c.Request.Context(), id)
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			errorResponse(c, errToStatus(err), "failed to fetch trip plan", err)
			return
		}
		errorResponse(c, http.StatusInternalServerError, "failed to fetch trip plan", err)
		return
	}

	successResponse(c, http.StatusOK, "trip plan found", plan)
}
