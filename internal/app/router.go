package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"ridehail/internal/handler"
	"ridehail/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	RideHandler    *handler.RideHandler
	CaptainHandler *handler.CaptainHandler
	RiderHandler   *handler.RiderHandler
	PaymentHandler *handler.PaymentHandler
	RedisClient    *redis.Client
	NewRelicApp    *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Rider routes.
		riders := v1.Group("/riders")
		{
			riders.POST("/register", deps.RiderHandler.Register)
			riders.GET("", deps.RiderHandler.GetAll)
			riders.GET("/:id", deps.RiderHandler.Get)
		}

		// Ride routes.
		rides := v1.Group("/rides")
		{
			rides.GET("/fare", deps.RideHandler.QuoteFare)
			rides.POST("", deps.RideHandler.CreateRide)
			rides.GET("/:id", deps.RideHandler.GetRide)
			rides.POST("/:id/accept", deps.RideHandler.AcceptRide)
			rides.POST("/:id/start", deps.RideHandler.StartRide)
			rides.POST("/:id/end", deps.RideHandler.EndRide)
		}

		// Captain routes.
		captains := v1.Group("/captains")
		{
			captains.POST("/register", deps.CaptainHandler.Register)
			captains.GET("", deps.CaptainHandler.GetAll)
			captains.GET("/nearby", deps.CaptainHandler.Nearby)
			captains.POST("/:id/location", deps.CaptainHandler.UpdateLocation)
			captains.POST("/:id/offline", deps.CaptainHandler.SetOffline)
			captains.GET("/:id/rides", deps.CaptainHandler.Rides)
		}

		// Payment routes.
		payments := v1.Group("/payments")
		{
			payments.POST("/order", deps.PaymentHandler.CreateOrder)
			payments.POST("/verify", deps.PaymentHandler.VerifyPayment)
		}
	}

	return router
}
