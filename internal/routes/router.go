package routes

import (
	"net/http"

	"stocky-backend/internal/config"
	"stocky-backend/internal/delivery/http/handler"
	"stocky-backend/internal/infrastructure/database/sqlite"
	"stocky-backend/internal/logger"
	"stocky-backend/internal/middleware"
	"stocky-backend/internal/usecase/auth"
	"stocky-backend/internal/usecase/inventory"
	"stocky-backend/internal/usecase/scanner"
	"stocky-backend/internal/usecase/shoppinglist"
	"stocky-backend/internal/usecase/user"
	"stocky-backend/internal/ws"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(cfg *config.Config, db *sqlite.DB, hub *ws.Hub) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware in order: recovery, request ID, logging, security headers,
	// CORS, request size limit, general rate limit.
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	userRepository := sqlite.NewUserRepository(db)
	itemRepository := sqlite.NewItemRepository(db)
	locationRepository := sqlite.NewLocationRepository(db)
	skuRepository := sqlite.NewSKURepository(db)
	alertRepository := sqlite.NewAlertRepository(db)
	listRepository := sqlite.NewShoppingListRepository(db)
	scannerStore := sqlite.NewScannerRepository(db)
	backupService := sqlite.NewBackupService(db, cfg.Database.BackupDir)

	authService := auth.NewService(userRepository, cfg.JWT)
	userService := user.NewService(userRepository)
	inventoryService := inventory.NewService(itemRepository, locationRepository, skuRepository, alertRepository)
	listService := shoppinglist.NewService(listRepository, itemRepository, hub)
	scannerService := scanner.NewService(itemRepository, skuRepository, scannerStore)

	authHandler := handler.NewAuthHandler(authService, cfg.Cookie)
	userHandler := handler.NewUserHandler(userService)
	itemHandler := handler.NewItemHandler(inventoryService)
	locationHandler := handler.NewLocationHandler(inventoryService)
	skuHandler := handler.NewSKUHandler(inventoryService)
	alertHandler := handler.NewAlertHandler(inventoryService)
	listHandler := handler.NewShoppingListHandler(listService, hub)
	scannerHandler := handler.NewScannerHandler(scannerService)
	backupHandler := handler.NewBackupHandler(backupService)

	v1 := router.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)

		// Scans accept anonymous callers; a bearer token or API key only
		// attaches an identity to the scan log.
		optional := v1.Group("")
		optional.Use(middleware.OptionalAuthMiddleware(userRepository, cfg))
		{
			scannerHandler.RegisterScanRoute(optional)
		}

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(userRepository, cfg))
		{
			authHandler.RegisterProtectedRoutes(protected)
			userHandler.RegisterRoutes(protected)
			itemHandler.RegisterRoutes(protected)
			locationHandler.RegisterRoutes(protected)
			skuHandler.RegisterRoutes(protected)
			alertHandler.RegisterRoutes(protected)
			listHandler.RegisterRoutes(protected)
			scannerHandler.RegisterRoutes(protected)
			backupHandler.RegisterRoutes(protected)
		}
	}

	logger.Info("All routes initialized")
	return router
}
