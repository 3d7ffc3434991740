package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/incorgnihealth/api/config"
	deliveryHttp "github.com/incorgnihealth/api/internal/delivery/http"
	"github.com/incorgnihealth/api/internal/delivery/http/handler"
	"github.com/incorgnihealth/api/internal/delivery/http/middleware"
	"github.com/incorgnihealth/api/internal/delivery/ws"
	"github.com/incorgnihealth/api/internal/infrastructure/cache"
	"github.com/incorgnihealth/api/internal/infrastructure/database"
	"github.com/incorgnihealth/api/internal/repository"
	"github.com/incorgnihealth/api/internal/service"
	"github.com/incorgnihealth/api/internal/usecase"
	"github.com/incorgnihealth/api/pkg/jwt"
	"github.com/incorgnihealth/api/pkg/validator"

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

	// Apply pending schema migrations
	if err := database.RunMigrations(cfg.DB); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

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

	// Initialize all layers
	server := initializeServer(cfg, db, redisClient)
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
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	consultationRepo := repository.NewConsultationRepository()
	messageRepo := repository.NewMessageRepository()
	prescriptionRepo := repository.NewPrescriptionRepository()
	orderRepo := repository.NewOrderRepository()
	notificationRepo := repository.NewNotificationRepository()
	transactionRepo := repository.NewTransactionRepository()

	// Initialize services
	notifier := service.NewNotifier(db, log, notificationRepo, userRepo)
	otpStore := service.NewOTPStore(redisClient, cfg.OTP.Expiry)
	triageService := service.NewTriageService()

	// Initialize websocket hub
	hub := ws.NewHub(log)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, cfg, userRepo, jwtService, redisClient, otpStore)
	userUsecase := usecase.NewUserUsecase(db, log, userRepo, consultationRepo, orderRepo)
	consultationUsecase := usecase.NewConsultationUsecase(db, log, consultationRepo, notifier)
	doctorUsecase := usecase.NewDoctorUsecase(db, log, userRepo, consultationRepo, transactionRepo)
	prescriptionUsecase := usecase.NewPrescriptionUsecase(db, log, prescriptionRepo, orderRepo, messageRepo, consultationRepo, notifier, triageService, hub)
	orderUsecase := usecase.NewOrderUsecase(db, log, orderRepo, notifier)
	notificationUsecase := usecase.NewNotificationUsecase(db, log, notificationRepo)
	paymentUsecase := usecase.NewPaymentUsecase(db, log, userRepo, transactionRepo, notifier)
	adminUsecase := usecase.NewAdminUsecase(db, log, userRepo, consultationRepo, orderRepo, transactionRepo)
	chatUsecase := usecase.NewChatUsecase(db, log, messageRepo, consultationRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	userHandler := handler.NewUserHandler(userUsecase, customValidator)
	consultationHandler := handler.NewConsultationHandler(consultationUsecase)
	doctorHandler := handler.NewDoctorHandler(doctorUsecase, customValidator)
	prescriptionHandler := handler.NewPrescriptionHandler(prescriptionUsecase, customValidator)
	orderHandler := handler.NewOrderHandler(orderUsecase, customValidator)
	notificationHandler := handler.NewNotificationHandler(notificationUsecase)
	paymentHandler := handler.NewPaymentHandler(paymentUsecase, customValidator)
	adminHandler := handler.NewAdminHandler(adminUsecase)
	wsHandler := ws.NewHandler(hub, log, jwtService, redisClient, chatUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigin)
	apiRateLimiter := middleware.NewRateLimiter(redisClient, "api", 100, 15*time.Minute)
	authRateLimiter := middleware.NewRateLimiter(redisClient, "auth", 10, 15*time.Minute)
	sensitiveRateLimiter := middleware.NewRateLimiter(redisClient, "sensitive", 20, 5*time.Minute)

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		userHandler,
		consultationHandler,
		doctorHandler,
		prescriptionHandler,
		orderHandler,
		notificationHandler,
		paymentHandler,
		adminHandler,
		wsHandler,
		authMiddleware,
		corsMiddleware,
		apiRateLimiter,
		authRateLimiter,
		sensitiveRateLimiter,
	)
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
