package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/flusk-cnc/flusk-admin-api/config"
	"github.com/flusk-cnc/flusk-admin-api/controllers"
	"github.com/flusk-cnc/flusk-admin-api/middleware"
	"github.com/flusk-cnc/flusk-admin-api/models"
	"github.com/flusk-cnc/flusk-admin-api/services"
)

func main() {
	// Basic logging
	log.Println("Starting Flusk CNC admin API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.Order{},
		&models.LineItem{},
		&models.Material{},
		&models.StatusChange{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Initialize the exchange-rate cache
	services.InitCurrencyService(services.NewRateService(cfg), cfg.RateCacheDuration)

	// Initialize preview storage (S3 when a bucket is configured, local otherwise)
	if _, err := services.InitPreviewService(cfg); err != nil {
		log.Fatalf("Failed to initialize preview service: %v", err)
	}

	router := setupRouter(cfg)

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter builds the Gin engine with CORS, the public endpoints, and the
// flag-gated admin endpoints
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.DashboardOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus)

		// Login flag management
		v1.POST("/login", controllers.Login)
		v1.POST("/logout", controllers.Logout)

		// Locally stored preview SVGs (S3 previews use presigned URLs)
		v1.GET("/uploads/:filename", controllers.GetUploadedPreview)

		// Admin routes, gated on the authenticated flag
		admin := v1.Group("")
		admin.Use(middleware.RequireAuthenticated())
		{
			admin.GET("/orders", controllers.ListOrders)
			admin.GET("/orders/:id", controllers.GetOrder)
			admin.PUT("/orders/:id/status", controllers.UpdateOrderStatus)
			admin.POST("/orders/:id/items/:itemID/preview", controllers.UploadLineItemPreview)

			admin.GET("/materials", controllers.ListMaterials)
			admin.POST("/materials", controllers.CreateMaterial)
			admin.PUT("/materials/:id", controllers.UpdateMaterial)
			admin.DELETE("/materials/:id", controllers.DeleteMaterial)
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Flusk CNC admin API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	// Get list of tables
	var tables []string
	if err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
