package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/metanet-market/marketd/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Browse and details (public read access)
		v1.GET("/listings", handler.ListListings)
		v1.GET("/listings/:outpoint", handler.GetListing)

		// Publishing (requires authentication)
		v1.POST("/listings", middleware.Auth(authCfg), handler.PublishListing)

		// Purchase flow (open; payment is the gate, not the API)
		v1.POST("/listings/:outpoint/purchase", handler.PurchaseListing)
		v1.POST("/receipts/:id/capability", handler.RetryCapability)
		v1.GET("/receipts/:id/content", handler.DownloadContent)
		v1.DELETE("/receipts/:id", handler.AbandonReceipt)

		// Creator account (requires authentication)
		v1.GET("/account", middleware.Auth(authCfg), handler.GetAccount)
		v1.POST("/account/withdraw", middleware.Auth(authCfg), handler.Withdraw)
		v1.POST("/account/expired/:outpoint/remove", middleware.Auth(authCfg), handler.RemoveExpired)
	}
}
