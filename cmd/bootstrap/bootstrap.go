package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tienda/config"
	"tienda/internal/converter"
	deliveryHttp "tienda/internal/delivery/http"
	"tienda/internal/delivery/http/handler"
	"tienda/internal/delivery/http/middleware"
	"tienda/internal/infrastructure/cache"
	"tienda/internal/infrastructure/database"
	"tienda/internal/infrastructure/storage"
	"tienda/internal/repository"
	"tienda/internal/service"
	"tienda/internal/usecase"
	"tienda/pkg/jwt"
	"tienda/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize asset storage
	disk, err := storage.NewDisk(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	logrus.Infof("Storage initialized (driver=%s)", cfg.Storage.Driver)

	// Initialize all layers
	server := initializeServer(cfg, db, redisClient, disk)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, disk storage.Disk) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	productRepo := repository.NewProductRepository()
	colorRepo := repository.NewProductColorRepository()
	cartRepo := repository.NewCartRepository()
	orderRepo := repository.NewOrderRepository()

	// Initialize domain services
	assetService := service.NewAssetService(disk, log)
	stockService := service.NewStockService(log, productRepo, colorRepo)
	variantService := service.NewVariantService(log, colorRepo, assetService, stockService)
	skuGenerator := service.NewSKUGenerator(productRepo)
	shopCache := service.NewShopCache(redisClient, log)

	// Initialize converters
	productConverter := converter.NewProductConverter(assetService)
	cartConverter := converter.NewCartConverter(assetService)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, jwtService, redisClient)
	catalogUsecase := usecase.NewCatalogUsecase(db, log, productRepo, colorRepo, variantService, assetService, stockService, skuGenerator, shopCache, productConverter)
	colorUsecase := usecase.NewColorUsecase(db, log, productRepo, colorRepo, variantService, assetService, shopCache, productConverter)
	shopUsecase := usecase.NewShopUsecase(db, log, productRepo, shopCache, productConverter)
	cartUsecase := usecase.NewCartUsecase(db, log, cartRepo, productRepo, colorRepo, cartConverter)
	orderUsecase := usecase.NewOrderUsecase(db, log, orderRepo, cartRepo, productRepo, colorRepo, userRepo, stockService, shopCache)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	productHandler := handler.NewProductHandler(catalogUsecase, customValidator)
	colorHandler := handler.NewColorHandler(colorUsecase)
	shopHandler := handler.NewShopHandler(shopUsecase, customValidator)
	cartHandler := handler.NewCartHandler(cartUsecase, customValidator)
	orderHandler := handler.NewOrderHandler(orderUsecase, customValidator)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(authHandler, productHandler, colorHandler, shopHandler, cartHandler, orderHandler, authMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
