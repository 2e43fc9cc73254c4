// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"lavka/internal/domain/inventory"
	"lavka/internal/domain/orders"
	"lavka/internal/domain/profile"
	"lavka/internal/domain/reports"
	"lavka/internal/infrastructure/export"
	"lavka/internal/infrastructure/http/v1/handlers"
	"lavka/internal/infrastructure/http/v1/middleware"
	"lavka/pkg/logger"
)

// RouterConfig holds dependencies for the HTTP API.
type RouterConfig struct {
	// Logger for request logging
	Logger *logger.Logger

	// Profiles is the profile catalog service
	Profiles *profile.Service

	// Inventory posts stock movements
	Inventory *inventory.Service

	// Orders commits order drafts
	Orders *orders.Processor

	// Reports serves read-only queries
	Reports *reports.Service

	// Exporter produces compressed document dumps
	Exporter *export.Exporter
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	base := handlers.NewBaseHandler()

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(cfg.Profiles)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// API v1
	apiV1 := router.Group("/api/v1")
	{
		profileHandler := handlers.NewProfileHandler(base, cfg.Profiles)
		apiV1.GET("/profiles", profileHandler.List)
		apiV1.POST("/profiles", profileHandler.Create)

		exportHandler := handlers.NewExportHandler(base, cfg.Exporter)
		apiV1.GET("/export", exportHandler.Dump)

		prof := apiV1.Group("/profiles/:profile")
		{
			prof.GET("", profileHandler.Get)
			prof.DELETE("", profileHandler.Delete)

			productHandler := handlers.NewProductHandler(base, cfg.Profiles)
			prof.GET("/products", productHandler.List)
			prof.POST("/products", productHandler.Create)
			prof.PUT("/products/:name", productHandler.Update)
			prof.DELETE("/products/:name", productHandler.Delete)

			stockHandler := handlers.NewStockHandler(base, cfg.Profiles, cfg.Inventory, cfg.Reports)
			prof.GET("/stock", stockHandler.List)
			prof.POST("/stock/restock", stockHandler.Restock)
			prof.POST("/stock/adjust", stockHandler.Adjust)
			prof.GET("/stock/:name/history", stockHandler.History)

			orderHandler := handlers.NewOrderHandler(base, cfg.Profiles, cfg.Orders, cfg.Reports)
			prof.POST("/orders", orderHandler.Create)
			prof.GET("/orders", orderHandler.List)
			prof.GET("/orders/range", orderHandler.Range)

			reportsHandler := handlers.NewReportsHandler(base, cfg.Reports)
			prof.GET("/stats/daily", reportsHandler.DailyStats)
			prof.GET("/sales", reportsHandler.Sales)
		}
	}

	return router
}
