package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/draymaster/tripplanner/internal/platform/logger"
	"github.com/draymaster/tripplanner/internal/service"
)

// NewRouter builds the HTTP engine for the trip planner service: request
// logging, panic recovery, and the handler's routes.
func NewRouter(svc *service.TripPlannerService, log *logger.Logger) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(log))

	NewHandler(svc, log).Register(engine)
	return engine
}

// requestLogger logs each request's method, path, status, and latency at
// info level, matching the structured fields the teacher's gRPC
// interceptors log.
func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Infow("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
