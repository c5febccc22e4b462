package routes

import (
	"musicmarket/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupMarketRoutes sets up market-wide stats, reset and streaming routes
func SetupMarketRoutes(r *gin.Engine) {
	marketGroup := r.Group("/market")
	{
		marketGroup.GET("/stats", handlers.GetMarketStats)
		marketGroup.POST("/reset", handlers.ResetMarketData)
		marketGroup.GET("/stream", handlers.StreamMarket)
	}

	// Archive reads (require the Postgres archive to be configured)
	r.GET("/snapshots", handlers.ListMarketSnapshots)
	r.GET("/market-events", handlers.ListMarketEvents)
}

// SetupMarketEventRoutes sets up routes that trigger simulated market events
func SetupMarketEventRoutes(r *gin.Engine) {
	events := r.Group("/events")
	{
		events.POST("/:id/tour-announcement", handlers.TriggerTourAnnouncement)
		events.POST("/:id/graduate", handlers.TriggerExchangeGraduation)
		events.POST("/:id/exchange-demand", handlers.TriggerExchangeDemand)
	}

	admin := r.Group("/admin")
	{
		admin.POST("/:id/instant-graduate", handlers.InstantGraduate)
	}
}
