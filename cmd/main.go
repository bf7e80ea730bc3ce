package main

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/sshperkin/travel-agency/internal/handler"
	"github.com/sshperkin/travel-agency/internal/middleware"
	"github.com/sshperkin/travel-agency/internal/service"
	"github.com/sshperkin/travel-agency/pkg/config"
	"github.com/sshperkin/travel-agency/pkg/database"
	"github.com/sshperkin/travel-agency/pkg/jwtutil"
	"github.com/sshperkin/travel-agency/pkg/logger"
	"github.com/sshperkin/travel-agency/prometheus"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting travel agency service...", zap.String("environment", cfg.Server.Env))

	// Initialize database
	if err := database.InitDB(cfg, log); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Initialize session tokens
	jwtutil.Initialize(&cfg.JWT)
	log.Info("Session token utility initialized")

	db := database.GetDB()

	// Build services
	authService := service.NewAuthService(db, cfg.Auth.BcryptCost)
	clientService := service.NewClientService(db)
	tourService := service.NewTourService(db)
	bookingService := service.NewBookingService(db)
	employeeService := service.NewEmployeeService(db)
	paymentService := service.NewPaymentService(db)
	reviewService := service.NewReviewService(db)
	reportService := service.NewReportService(db)
	exportService := service.NewExportService(db, clientService)
	catalogService := service.NewCatalogService(db)

	// Bootstrap admin account on an empty user table
	if err := authService.EnsureAdmin(cfg.Auth.BootstrapUser, cfg.Auth.BootstrapPass); err != nil {
		log.Fatal("Failed to bootstrap admin account", zap.Error(err))
	}

	// Build handlers
	authHandler := handler.NewAuthHandler(authService)
	clientHandler := handler.NewClientHandler(clientService, exportService)
	tourHandler := handler.NewTourHandler(tourService, reviewService)
	bookingHandler := handler.NewBookingHandler(bookingService, paymentService)
	employeeHandler := handler.NewEmployeeHandler(employeeService)
	reportHandler := handler.NewReportHandler(reportService)
	catalogHandler := handler.NewCatalogHandler(catalogService)

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	// Authentication routes
	auth := e.Group("/auth")
	auth.POST("/login", authHandler.Login)

	// API routes - all require authentication
	api := e.Group("/api")
	api.Use(middleware.AuthMiddleware)

	// Session account
	api.GET("/me", authHandler.Me)
	api.POST("/change-password", authHandler.ChangePassword)

	// User management - admin only
	users := api.Group("/users")
	users.Use(middleware.RequireAdmin)
	users.POST("", authHandler.Register)

	// Clients
	clients := api.Group("/clients")
	clients.POST("", clientHandler.Create)
	clients.GET("", clientHandler.List)
	clients.GET("/export", clientHandler.ExportCSV)
	clients.POST("/import", clientHandler.ImportCSV)
	clients.GET("/:id", clientHandler.Get)
	clients.PATCH("/:id", clientHandler.Update)
	clients.DELETE("/:id", clientHandler.Delete)

	// Tours and reviews
	tours := api.Group("/tours")
	tours.POST("", tourHandler.Create)
	tours.GET("", tourHandler.List)
	tours.GET("/:id", tourHandler.Get)
	tours.PATCH("/:id", tourHandler.Update)
	tours.DELETE("/:id", tourHandler.Delete)
	tours.POST("/:id/reviews", tourHandler.CreateReview)
	tours.GET("/:id/reviews", tourHandler.ListReviews)
	tours.POST("/:id/hotels", catalogHandler.AttachHotel)
	tours.GET("/:id/hotels", catalogHandler.ListTourHotels)
	tours.DELETE("/:id/hotels/:hotelID", catalogHandler.DetachHotel)

	// Reference data
	countries := api.Group("/countries")
	countries.POST("", catalogHandler.CreateCountry)
	countries.GET("", catalogHandler.ListCountries)
	countries.GET("/:id", catalogHandler.GetCountry)
	countries.PATCH("/:id", catalogHandler.UpdateCountry)
	countries.DELETE("/:id", catalogHandler.DeleteCountry)

	cities := api.Group("/cities")
	cities.POST("", catalogHandler.CreateCity)
	cities.GET("", catalogHandler.ListCities)
	cities.GET("/:id", catalogHandler.GetCity)
	cities.PATCH("/:id", catalogHandler.UpdateCity)
	cities.DELETE("/:id", catalogHandler.DeleteCity)

	hotels := api.Group("/hotels")
	hotels.POST("", catalogHandler.CreateHotel)
	hotels.GET("", catalogHandler.ListHotels)
	hotels.GET("/:id", catalogHandler.GetHotel)
	hotels.PATCH("/:id", catalogHandler.UpdateHotel)
	hotels.DELETE("/:id", catalogHandler.DeleteHotel)

	tourTypes := api.Group("/tour-types")
	tourTypes.POST("", catalogHandler.CreateTourType)
	tourTypes.GET("", catalogHandler.ListTourTypes)
	tourTypes.PATCH("/:id", catalogHandler.UpdateTourType)
	tourTypes.DELETE("/:id", catalogHandler.DeleteTourType)

	// Bookings and payments
	bookings := api.Group("/bookings")
	bookings.POST("", bookingHandler.Create)
	bookings.GET("", bookingHandler.List)
	bookings.GET("/:id", bookingHandler.Get)
	bookings.POST("/:id/confirm", bookingHandler.Confirm)
	bookings.POST("/:id/cancel", bookingHandler.Cancel)
	bookings.DELETE("/:id", bookingHandler.Delete)
	bookings.POST("/:id/payments", bookingHandler.RecordPayment)
	bookings.GET("/:id/payments", bookingHandler.ListPayments)

	// Employees - admin only
	employees := api.Group("/employees")
	employees.Use(middleware.RequireAdmin)
	employees.POST("", employeeHandler.Create)
	employees.GET("", employeeHandler.List)
	employees.GET("/:id", employeeHandler.Get)
	employees.PATCH("/:id", employeeHandler.Update)
	employees.DELETE("/:id", employeeHandler.Delete)

	// Reports
	api.GET("/reports/:kind", reportHandler.Generate)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
