package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-placement-indexer/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Placement endpoints (public read access)
		v1.GET("/placements/:asset_id", handler.GetPlacement)
		v1.GET("/placements", handler.ListPlacements)

		// Sync trigger (open, rate limited)
		v1.POST("/sync", handler.TriggerSync)

		// Meta transaction relay (open, the payload is signed by the user)
		v1.POST("/relay/execute", handler.ExecuteMetaTransaction)

		// Nonce resync (requires authentication)
		v1.POST("/relay/nonce/resync", middleware.Auth(authCfg), handler.ResyncNonce)
	}
}
