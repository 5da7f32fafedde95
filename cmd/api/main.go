package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"stockfinder/internal/config"
	"stockfinder/internal/dataset"
	"stockfinder/internal/handlers"
	"stockfinder/internal/logger"
	"stockfinder/internal/middleware"
	"stockfinder/internal/services"
	"stockfinder/internal/validator"
)

// @title           StockFinder API
// @version         1.0
// @description     StockFinder is a password-gated stock dashboard: per-instrument metrics and trends, plus a multi-criteria screener that ranks and narrates matching stocks.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Load the dataset once. A failed load is fatal: the dashboard never
	// serves partial views.
	store := dataset.NewStore(appConfig.DatasetPath)
	if err := store.Load(); err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	log.Infow("dataset loaded",
		"path", appConfig.DatasetPath,
		"records", len(store.Records()),
		"instruments", len(store.Names()),
		"sectors", len(store.Sectors()),
	)

	// Initialize services
	authService := services.NewAuthService(appConfig.Credentials)
	insightService := services.NewInsightService(store)
	screenerService := services.NewScreenerService(store, appConfig.ValuationYear)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	insightHandler := handlers.NewInsightHandler(insightService)
	screenerHandler := handlers.NewScreenerHandler(screenerService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/login", authHandler.Login)

	// Protected routes: every view sits behind the credential gate.
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// Feature menu: the two dashboard views.
	protected.GET("/features", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"features": []gin.H{
				{"id": "instrument-insights", "name": "Instrument Insights Dashboard"},
				{"id": "stock-filter", "name": "Stock Filter Analysis"},
			},
		})
	})

	// Instrument insights routes
	instruments := protected.Group("/instruments")
	instruments.GET("", insightHandler.ListInstruments)
	instruments.GET("/insights", insightHandler.GetInsights)

	// Screener routes
	screener := protected.Group("/screener")
	screener.GET("/options", screenerHandler.GetOptions)
	screener.POST("/search", screenerHandler.Search)

	log.Infof("Starting StockFinder backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
