package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"beauty-clinic-server/config"
	"beauty-clinic-server/database"
	"beauty-clinic-server/jobs"
	"beauty-clinic-server/middleware"
	"beauty-clinic-server/routes"
	ws "beauty-clinic-server/websocket"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	config.Load()

	// Initialize database
	if err := database.Initialize(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Seed catalog and bootstrap admin when requested
	if config.AppConfig.SeedData {
		seedServices()
		seedAdmin()
	}

	// Set Gin mode
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()

	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Disable automatic redirects for trailing slashes
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	// Security headers (must be first)
	router.Use(middleware.SecurityHeadersMiddleware())

	// Input validation
	router.Use(middleware.InputValidationMiddleware())

	// Rate limiting
	router.Use(middleware.RateLimitMiddleware())

	// CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     config.AppConfig.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Audit logging
	router.Use(middleware.AuditLogMiddleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Beauty Clinic Server is running",
			"time":    time.Now().UTC(),
		})
	})

	// Live booking feed for the back office
	bookingFeed := ws.NewHub()
	go bookingFeed.Run()
	routes.SetBookingFeed(bookingFeed)
	feedHandler := ws.NewAdminFeedHandler(bookingFeed)

	// API routes
	api := router.Group("/api/v1")
	{
		// Public catalog
		serviceRoutes := api.Group("/services")
		routes.RegisterServiceRoutes(serviceRoutes)

		// Public booking form
		bookingRoutes := api.Group("/bookings")
		routes.RegisterBookingRoutes(bookingRoutes)

		// Client portal auth - with strict rate limiting
		clientAuth := api.Group("/client")
		clientAuth.Use(middleware.AuthRateLimitMiddleware())
		routes.RegisterClientAuthRoutes(clientAuth)

		// Client portal (protected)
		clientPortal := api.Group("/client")
		clientPortal.Use(middleware.ClientAuthMiddleware())
		{
			routes.RegisterClientBookingRoutes(clientPortal)
			routes.RegisterClientTreatmentRoutes(clientPortal)
			routes.RegisterDiscountRoutes(clientPortal)
		}

		// Admin authentication routes (no authentication required)
		adminAuth := api.Group("/admin/auth")
		adminAuth.Use(middleware.AuthRateLimitMiddleware())
		routes.RegisterAdminAuthRoutes(adminAuth)

		// Admin routes (protected with admin authentication)
		adminRoutes := api.Group("/admin")
		adminRoutes.Use(middleware.AdminAuthMiddleware())
		{
			routes.RegisterAdminRoutes(adminRoutes)
			routes.RegisterAdminServiceRoutes(adminRoutes)
			routes.RegisterAdminBookingRoutes(adminRoutes)
			routes.RegisterAdminTreatmentRoutes(adminRoutes)
			routes.RegisterAdminDiscountRoutes(adminRoutes)
			routes.RegisterAdminMediaRoutes(adminRoutes)

			adminRoutes.GET("/ws/bookings", feedHandler.HandleFeed)
		}
	}

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Start background jobs
	sweeperJob := jobs.NewSweeperJob()
	sweeperJob.Start()
	defer sweeperJob.Stop()

	log.Printf("Server starting on port %s", port)
	if err := router.Run("0.0.0.0:" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
