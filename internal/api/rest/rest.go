package rest

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler) {
	// Health check endpoint (no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Collection import endpoints
		v1.POST("/imports", handler.SubmitImport)
		v1.GET("/imports/:job_id", handler.GetImportStatus)

		// Item endpoints (public read access)
		v1.GET("/items/:contract/:token_number", handler.GetItem)
		v1.GET("/items/:contract/:token_number/activity", handler.GetItemActivity)

		// Listing endpoints (public read access)
		v1.GET("/listings", handler.ListListings)
		v1.GET("/listings/:listing_id", handler.GetListing)
	}
}
