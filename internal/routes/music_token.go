package routes

import (
	"musicmarket/internal/handlers"
	"musicmarket/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupMusicTokenRoutes sets up all routes related to music token management
func SetupMusicTokenRoutes(r *gin.Engine) {
	tokens := r.Group("/tokens")
	{
		tokens.GET("", handlers.ListMusicTokens)
		tokens.GET("/trending", handlers.GetTrendingTokens)
		tokens.GET("/by-status/:status", handlers.ListMusicTokensByStatus)
		tokens.GET("/:id", handlers.GetMusicToken)
		tokens.GET("/:id/roi-projection", handlers.GetROIProjection)
		tokens.GET("/:id/lifetime-volume", handlers.GetLifetimeVolume)
		tokens.POST("", handlers.CreateMusicToken)
		tokens.POST("/:id/trade", middleware.RateLimiter(middleware.TradeLimitConfig), handlers.ExecuteTrade)
	}
}
