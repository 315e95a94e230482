// Package grpcserver runs the operational control plane every service in
// the teacher's fleet stands up alongside its HTTP API: health checks and
// reflection behind a logging/recovery interceptor chain. No planning RPC
// is defined here — the HOS core's contract is the HTTP surface (spec.md
// §6); this plane exists purely so load balancers and orchestrators have
// the gRPC health probe the rest of the fleet exposes.
package grpcserver

import (
	"context"
	"runtime/debug"
	"time"

	grpcmiddleware "github.com/grpc-ecosystem/go-grpc-middleware/v2"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/draymaster/tripplanner/internal/platform/logger"
)

const serviceName = "tripplanner"

// Server bundles the gRPC server with its health service handle so the
// caller can flip serving status on shutdown.
type Server struct {
	*grpc.Server
	health *health.Server
}

// New builds a gRPC server exposing only the standard health/reflection
// services, serving SERVING for serviceName as soon as it is constructed
// (the service has no async warm-up: the HOS core is ready the instant the
// process starts).
func New(log *logger.Logger) *Server {
	grpcServer := grpc.NewServer(
		grpcmiddleware.WithUnaryServerChain(recoveryInterceptor(log), loggingInterceptor(log)),
	)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(serviceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(grpcServer)

	return &Server{Server: grpcServer, health: healthServer}
}

// StopServing marks the health service NOT_SERVING so a load balancer
// stops routing new traffic while GracefulStop drains in-flight RPCs.
func (s *Server) StopServing() {
	s.health.SetServingStatus(serviceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
}

// loggingInterceptor logs every unary RPC's method, outcome, and latency.
func loggingInterceptor(log *logger.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		duration := time.Since(start)

		if err != nil {
			log.Errorw("grpc request failed", "method", info.FullMethod, "duration_ms", duration.Milliseconds(), "error", err)
		} else {
			log.Infow("grpc request completed", "method", info.FullMethod, "duration_ms", duration.Milliseconds())
		}
		return resp, err
	}
}

// recoveryInterceptor turns a handler panic into an Internal status instead
// of crashing the process.
func recoveryInterceptor(log *logger.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("panic recovered in grpc handler", "method", info.FullMethod, "panic", r, "stack", string(debug.Stack()))
				err = status.Error(codes.Internal, "internal server error")
			}
		}()
		return handler(ctx, req)
	}
}
