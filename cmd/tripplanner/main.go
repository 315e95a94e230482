package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/draymaster/tripplanner/internal/api"
	"github.com/draymaster/tripplanner/internal/grpcserver"
	"github.com/draymaster/tripplanner/internal/platform/config"
	"github.com/draymaster/tripplanner/internal/platform/database"
	"github.com/draymaster/tripplanner/internal/platform/kafka"
	"github.com/draymaster/tripplanner/internal/platform/logger"
	"github.com/draymaster/tripplanner/internal/repository"
	"github.com/draymaster/tripplanner/internal/routing"
	"github.com/draymaster/tripplanner/internal/service"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	cfg := config.Load()
	cfg.Service.Name = "tripplanner"

	log, err := logger.New(cfg.Service.Name, cfg.Service.Environment, cfg.Service.LogLevel)
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Infow("starting trip planner service",
		"service", cfg.Service.Name, "version", Version, "buildTime", BuildTime, "environment", cfg.Service.Environment)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.New(ctx, cfg.Database)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()
	log.Info("database connected")

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr(), Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warnw("redis unavailable, geocode caching disabled cache-miss-through", "error", err)
	}
	defer redisClient.Close()

	kafkaProducer := kafka.NewProducer(cfg.Kafka.Brokers, log)
	defer kafkaProducer.Close()
	log.Info("kafka producer initialized")

	planRepo := repository.NewPostgresTripPlanRepository(db)

	geocoder := routing.NewCachedGeocoder(
		routing.NewNominatimGeocoder(cfg.Routing.NominatimBaseURL, cfg.Routing.HTTPTimeout, log),
		redisClient,
		cfg.Redis.CacheTTL,
	)
	router := routing.NewORSRouter(cfg.Routing.ORSBaseURL+"/v2/directions/driving-car", cfg.Routing.ORSAPIKey, cfg.Routing.HTTPTimeout, log)
	resolver := routing.NewResolver(geocoder, router, cfg.Routing.DefaultSpeedMPH, cfg.Routing.FallbackMiles, log)

	plannerSvc := service.NewTripPlannerService(planRepo, resolver, kafkaProducer, log)

	if cfg.Service.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:      api.NewRouter(plannerSvc, log),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	grpcSrv := grpcserver.New(log)
	grpcListener, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.GRPCPort))
	if err != nil {
		log.Fatalw("failed to listen on grpc port", "port", cfg.Server.GRPCPort, "error", err)
	}

	go func() {
		log.Infow("grpc server listening", "port", cfg.Server.GRPCPort)
		if err := grpcSrv.Serve(grpcListener); err != nil {
			log.Fatalw("grpc server failed", "error", err)
		}
	}()

	go func() {
		log.Infow("http server listening", "port", cfg.Server.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("http server failed", "error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("shutting down trip planner service")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	grpcSrv.StopServing()
	grpcSrv.GracefulStop()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Errorw("http server shutdown error", "error", err)
	}
	cancel()

	log.Info("trip planner service stopped")
}
