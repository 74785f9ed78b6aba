// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stockflow/stockflow-backend/internal/config"
	"github.com/stockflow/stockflow-backend/internal/handlers"
	"github.com/stockflow/stockflow-backend/internal/middleware"
	"github.com/stockflow/stockflow-backend/internal/report"
	"github.com/stockflow/stockflow-backend/internal/store"
)

func Initialize(st *store.Store, cfg *config.Config) *gin.Engine {
	// Initialize services
	reportService := report.NewService(cfg.Report)

	// Initialize handlers
	inventoryHandler := handlers.NewInventoryHandler(st)
	shareHandler := handlers.NewShareHandler(st)
	reportHandler := handlers.NewReportHandler(st, reportService)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"mode":   st.Mode(),
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		products := v1.Group("/products")
		{
			products.GET("", inventoryHandler.ListProducts)
			products.POST("", inventoryHandler.CreateProduct)
			products.PUT("/:id", inventoryHandler.UpdateProduct)
			products.DELETE("/:id", inventoryHandler.DeleteProduct)
		}

		transactions := v1.Group("/transactions")
		{
			transactions.GET("", inventoryHandler.ListTransactions)
			transactions.POST("", inventoryHandler.CreateTransaction)
		}

		v1.POST("/adjustments", inventoryHandler.AdjustStock)
		v1.GET("/stats", inventoryHandler.GetStats)
		v1.GET("/share", shareHandler.GetShareURL)

		reports := v1.Group("/reports")
		reports.Use(middleware.ReportRateLimit())
		{
			reports.POST("/ai", reportHandler.GenerateReport)
			reports.POST("/pdf", reportHandler.DownloadPDF)
		}
	}

	return r
}
