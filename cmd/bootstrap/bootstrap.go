package bootstrap

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medikeep/config"
	deliveryHttp "medikeep/internal/delivery/http"
	"medikeep/internal/delivery/http/handler"
	"medikeep/internal/delivery/http/middleware"
	"medikeep/internal/infrastructure/cache"
	"medikeep/internal/infrastructure/database"
	"medikeep/internal/repository"
	"medikeep/internal/service"
	"medikeep/internal/usecase"
	"medikeep/pkg/jwt"
	"medikeep/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Hub         *service.Hub
	Scheduler   *service.ReminderScheduler
	Server      *http.Server

	// cancels the server base context so open event streams end during
	// shutdown
	stopStreams context.CancelFunc
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

	if err := database.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	logrus.Info("Database migrations applied")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	app.initializeServer()

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer wires repositories, services, usecases and handlers into
// the HTTP server
func (app *App) initializeServer() {
	cfg := app.Config
	db := app.DB
	redisClient := app.RedisClient

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	profileRepo := repository.NewProfileRepository()
	familyRepo := repository.NewFamilyRepository()
	friendRequestRepo := repository.NewFriendRequestRepository()
	medicationRepo := repository.NewMedicationRepository()
	storedMedicineRepo := repository.NewStoredMedicineRepository()
	adherenceLogRepo := repository.NewAdherenceLogRepository()
	inventoryRepo := repository.NewInventoryRepository()
	medicationRequestRepo := repository.NewMedicationRequestRepository()
	chatRepo := repository.NewChatRepository()
	messageRepo := repository.NewMessageRepository()

	// Initialize services
	hub := service.NewHub(redisClient, log)
	app.Hub = hub

	extractorClient := service.NewExtractorClient(cfg.Extractor, log)

	adherenceUsecase := usecase.NewAdherenceUsecase(db, log, adherenceLogRepo, familyRepo)

	scheduler := service.NewReminderScheduler(cfg.Reminder, service.NewHubNotifier(hub), adherenceUsecase, log)
	app.Scheduler = scheduler

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, jwtService, redisClient)
	profileUsecase := usecase.NewProfileUsecase(db, log, userRepo, profileRepo, familyRepo)
	connectionUsecase := usecase.NewConnectionUsecase(db, log, profileRepo, familyRepo, friendRequestRepo, hub)
	medicationUsecase := usecase.NewMedicationUsecase(db, log, medicationRepo, storedMedicineRepo, familyRepo, scheduler)
	inventoryUsecase := usecase.NewInventoryUsecase(db, log, inventoryRepo)
	requestUsecase := usecase.NewRequestUsecase(db, log, profileRepo, medicationRequestRepo, inventoryRepo, storedMedicineRepo, hub)
	chatUsecase := usecase.NewChatUsecase(db, log, chatRepo, messageRepo, profileRepo, familyRepo, hub)
	reminderUsecase := usecase.NewReminderUsecase(db, log, medicationRepo, scheduler)
	extractionUsecase := usecase.NewExtractionUsecase(db, log, extractorClient, inventoryRepo, storedMedicineRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator, jwtService)
	profileHandler := handler.NewProfileHandler(profileUsecase, customValidator)
	connectionHandler := handler.NewConnectionHandler(connectionUsecase, customValidator)
	qrHandler := handler.NewQRHandler(profileUsecase, connectionUsecase, requestUsecase, customValidator)
	medicationHandler := handler.NewMedicationHandler(medicationUsecase, customValidator)
	storageHandler := handler.NewStorageHandler(medicationUsecase, customValidator)
	inventoryHandler := handler.NewInventoryHandler(inventoryUsecase, customValidator)
	requestHandler := handler.NewRequestHandler(requestUsecase, customValidator)
	chatHandler := handler.NewChatHandler(chatUsecase, customValidator)
	reminderHandler := handler.NewReminderHandler(reminderUsecase, adherenceUsecase, customValidator)
	extractionHandler := handler.NewExtractionHandler(extractionUsecase, customValidator)
	eventsHandler := handler.NewEventsHandler(hub, chatUsecase, log)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	profileMiddleware := middleware.NewProfileMiddleware(db, profileRepo)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		profileHandler,
		connectionHandler,
		qrHandler,
		medicationHandler,
		storageHandler,
		inventoryHandler,
		requestHandler,
		chatHandler,
		reminderHandler,
		extractionHandler,
		eventsHandler,
		authMiddleware,
		profileMiddleware,
		corsMiddleware,
	)
	httpRouter := router.Setup()

	// Event-stream requests inherit the base context, so cancelling it
	// unblocks them during shutdown.
	baseCtx, cancel := context.WithCancel(context.Background())
	app.stopStreams = cancel

	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	app.Server = &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
		BaseContext: func(net.Listener) context.Context {
			return baseCtx
		},
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

	// Unblock open event streams, then drain the rest
	if app.stopStreams != nil {
		app.stopStreams()
	}

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

// Close closes all connections (database, redis, scheduler, etc.)
func (app *App) Close() {
	if app.Scheduler != nil {
		app.Scheduler.Stop()
	}

	if app.Hub != nil {
		app.Hub.Stop()
	}

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
