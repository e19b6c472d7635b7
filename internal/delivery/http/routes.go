package http

import (
	"github.com/gin-gonic/gin"
	"github.com/riderbuilder/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	if cfg.RateLimit.PerIPRPS > 0 {
		router.Use(RateLimitMiddleware(cfg.RateLimit.PerIPRPS, cfg.RateLimit.Burst))
	}

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		rider := v1.Group("/rider")
		{
			rider.POST("/parse", handler.ParseRider)
		}

		v1.POST("/recommendations", handler.Recommendations)

		celebrities := v1.Group("/celebrities")
		{
			celebrities.GET("", handler.ListCelebrities)
			celebrities.GET("/:id", handler.GetCelebrity)
			celebrities.POST("/:id/match", handler.MatchCelebrity)
		}

		cart := v1.Group("/cart")
		{
			cart.POST("/balance", handler.CartBalance)
		}
	}

	return router
}
