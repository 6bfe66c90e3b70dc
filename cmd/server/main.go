package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"ridehail/internal/app"
	"ridehail/internal/config"
	"ridehail/internal/handler"
	internalredis "ridehail/internal/redis"
	"ridehail/internal/repository/postgres"
	"ridehail/internal/service"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s", cfg.NewRelic.AppName)
		}
	}

	// Initialize database with New Relic instrumentation.
	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to PostgreSQL")

	// Initialize Redis with New Relic instrumentation.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Connected to Redis")

	// Wire dependencies.
	server := wireServer(db, redisClient, nrApp, cfg)

	// Start server in goroutine.
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config) *http.Server {
	// Redis stores.
	locationStore := internalredis.NewLocationStore(redisClient)
	cacheStore := internalredis.NewCacheStore(redisClient)

	// Repositories.
	riderRepo := postgres.NewRiderRepository(db)
	captainRepo := postgres.NewCaptainRepository(db)
	rideRepo := postgres.NewRideRepository(db)

	// Collaborators.
	routeProvider := service.NewGoogleRouteProvider(os.Getenv("GOOGLE_MAPS_API_KEY"))
	gateway := service.NewRazorpayGateway(cfg.Gateway.KeyID, cfg.Gateway.KeySecret, cfg.Gateway.BaseURL)

	// Services.
	notificationService := service.NewNotificationService()
	fareService := service.NewFareService(routeProvider, service.DefaultFareConfig())
	otpIssuer := service.NewOtpIssuer(cfg.OTP.Digits)
	rideService := service.NewRideService(rideRepo, captainRepo, fareService, otpIssuer, notificationService)
	captainService := service.NewCaptainService(locationStore, cacheStore, captainRepo)
	dispatchService := service.NewDispatchService(locationStore, cacheStore, captainRepo, cfg.Dispatch.SearchRadiusKm)
	paymentService := service.NewPaymentService(rideRepo, captainRepo, gateway, cfg.Gateway.KeyID, cfg.Gateway.KeySecret, cfg.Gateway.Currency)

	// Handlers.
	riderHandler := handler.NewRiderHandler(riderRepo)
	rideHandler := handler.NewRideHandler(rideService, fareService)
	captainHandler := handler.NewCaptainHandler(captainService, dispatchService, rideService, captainRepo)
	paymentHandler := handler.NewPaymentHandler(paymentService)

	// Router.
	router := app.NewRouter(app.RouterDeps{
		RideHandler:    rideHandler,
		CaptainHandler: captainHandler,
		RiderHandler:   riderHandler,
		PaymentHandler: paymentHandler,
		RedisClient:    redisClient,
		NewRelicApp:    nrApp,
	})

	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
