package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Manowcrm/Helnay/internal/config"
	"github.com/Manowcrm/Helnay/internal/database"
	"github.com/Manowcrm/Helnay/internal/handlers"
	"github.com/Manowcrm/Helnay/internal/middleware"
	"github.com/Manowcrm/Helnay/internal/services"
	"github.com/Manowcrm/Helnay/pkg/jwt"
	"github.com/Manowcrm/Helnay/pkg/mailer"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting Helnay Booking Backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Set log level
	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database connection
	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize repositories
	listingRepo := database.NewListingRepository(db)
	bookingRepo := database.NewBookingRepository(db)
	contactRepo := database.NewContactRepository(db)
	userRepo := database.NewUserRepository(db)
	activityLogRepo := database.NewActivityLogRepository(db)
	filterRepo := database.NewFilterServiceRepository(db)
	categoryRepo := database.NewBrowseCategoryRepository(db)

	// Initialize services
	logger.Info("Initializing services...")
	jwtService := jwt.NewService(
		cfg.JWT.Secret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	var mailGateway mailer.Gateway
	if cfg.SMTP.Mode == "production" {
		mailGateway = mailer.NewSMTPGateway(mailer.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			FromName: cfg.SMTP.FromName,
		})
		logger.Info("SMTP gateway configured")
	} else {
		mailGateway = mailer.NewDevGateway(logger)
		logger.Warn("SMTP in dev mode, emails will be logged instead of sent")
	}
	notifier := services.NewEmailNotifier(mailGateway, cfg.SMTP.AdminEmail, logger)

	paymentGateway := services.NewStripeGateway(&cfg.Stripe, logger)
	if !paymentGateway.IsConfigured() {
		logger.Warn("Stripe keys missing, payment intents will fail until configured")
	}

	activityService := services.NewActivityService(activityLogRepo, cfg.Security.EnableActivityLog, logger)
	authService := services.NewAuthService(userRepo, jwtService, cfg.Security.BcryptCost, logger)
	bookingService := services.NewBookingService(bookingRepo, listingRepo, notifier, logger)
	paymentService := services.NewPaymentService(bookingRepo, listingRepo, paymentGateway, cfg.Stripe.Currency, logger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, activityService, logger)
	listingHandler := handlers.NewListingHandler(listingRepo, activityService, logger)
	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	paymentHandler := handlers.NewPaymentHandler(paymentService, logger)
	contactHandler := handlers.NewContactHandler(contactRepo, notifier, logger)
	adminBookingHandler := handlers.NewAdminBookingHandler(bookingService, activityService, contactRepo, logger)
	teamHandler := handlers.NewTeamHandler(authService, activityService, logger)
	filterHandler := handlers.NewFilterHandler(filterRepo, categoryRepo, activityService, logger)
	activityHandler := handlers.NewActivityHandler(activityService, logger)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Security.EnableRequestLog {
		router.Use(requestLogger(logger))
	}

	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", healthCheckHandler(db))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public catalog routes
		v1.GET("/listings", listingHandler.Search)
		v1.GET("/listings/:id", listingHandler.Get)
		v1.GET("/filters", filterHandler.ListFilters)
		v1.GET("/categories", filterHandler.ListCategories)

		// Public booking and payment routes
		v1.POST("/bookings", bookingHandler.Create)
		v1.GET("/bookings/:id", bookingHandler.Get)
		v1.POST("/bookings/:id/payment-intent", paymentHandler.CreateIntent)
		v1.POST("/webhooks/stripe", paymentHandler.Webhook)

		// Public contact form
		v1.POST("/contact", contactHandler.Create)

		// Admin routes
		admin := v1.Group("/admin")
		{
			// Authentication (public)
			admin.POST("/login", authHandler.Login)
			admin.POST("/refresh", authHandler.Refresh)

			// Everything else requires an authenticated admin
			protected := admin.Group("")
			protected.Use(middleware.AuthMiddleware(jwtService))
			protected.Use(middleware.RequireAdmin())
			{
				protected.GET("/profile", authHandler.Profile)
				protected.PUT("/profile/password", authHandler.ChangePassword)
				protected.POST("/logout", authHandler.Logout)
				protected.GET("/dashboard", adminBookingHandler.Dashboard)

				protected.GET("/listings/:id", listingHandler.AdminGet)
				protected.POST("/listings", listingHandler.Create)
				protected.PUT("/listings/:id", listingHandler.Update)
				protected.DELETE("/listings/:id", listingHandler.Delete)

				protected.GET("/bookings", adminBookingHandler.List)
				protected.GET("/bookings/:id", adminBookingHandler.Get)
				protected.PUT("/bookings/:id/status", adminBookingHandler.UpdateStatus)
				protected.PUT("/bookings/:id/approve", adminBookingHandler.Approve)
				protected.PUT("/bookings/:id/deny", adminBookingHandler.Deny)
				protected.PUT("/bookings/:id/cancel", adminBookingHandler.Cancel)
				protected.PUT("/bookings/:id/dates", adminBookingHandler.UpdateDates)

				protected.GET("/contact", contactHandler.List)
				protected.PUT("/contact/:id/read", contactHandler.MarkRead)
				protected.DELETE("/contact/:id", contactHandler.Delete)

				protected.GET("/filters", filterHandler.AdminListFilters)
				protected.POST("/filters", filterHandler.CreateFilter)
				protected.PUT("/filters/:id", filterHandler.UpdateFilter)
				protected.DELETE("/filters/:id", filterHandler.DeleteFilter)

				protected.GET("/categories", filterHandler.AdminListCategories)
				protected.POST("/categories", filterHandler.CreateCategory)
				protected.PUT("/categories/:id", filterHandler.UpdateCategory)
				protected.DELETE("/categories/:id", filterHandler.DeleteCategory)

				protected.GET("/activity", activityHandler.List)
				protected.GET("/activity/stats", activityHandler.Stats)

				// Team management (super admin only)
				team := protected.Group("/users")
				team.Use(middleware.RequireSuperAdmin())
				{
					team.GET("", teamHandler.List)
					team.POST("", teamHandler.Create)
					team.PUT("/:id/active", teamHandler.SetActive)
				}
			}
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// requestLogger middleware for logging HTTP requests
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		fields := logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"query":      query,
			"ip":         c.ClientIP(),
			"latency_ms": latency.Milliseconds(),
			"user_agent": c.Request.UserAgent(),
		}

		if userID, exists := c.Get("user_id"); exists {
			fields["user_id"] = userID
		}

		entry := logger.WithFields(fields)

		status := c.Writer.Status()
		switch {
		case status >= 500:
			entry.Error("Request completed with server error")
		case status >= 400:
			entry.Warn("Request completed with client error")
		default:
			entry.Info("Request completed successfully")
		}
	}
}

// healthCheckHandler returns a health check endpoint
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unhealthy",
				"error":    err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  "healthy",
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	}
}
