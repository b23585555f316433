package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "crewvar-backend/internal/api/http"
	"crewvar-backend/internal/config"
	"crewvar-backend/internal/logger"
	"crewvar-backend/internal/obs"
	"crewvar-backend/internal/presence"
	"crewvar-backend/internal/repository/postgres"
	"crewvar-backend/internal/security"
	"crewvar-backend/internal/service"
	"crewvar-backend/internal/storage"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Crewvar Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret)

	// Initialize Redis-backed presence and session tracking
	tracker := presence.NewTracker(
		cfg.Redis.Addr,
		cfg.Redis.Password,
		cfg.Redis.DB,
		time.Duration(cfg.Presence.OnlineTTLSeconds)*time.Second,
	)
	defer tracker.Close()

	// Initialize Metrics
	obs.Init()

	// Initialize Storage Service
	var storageService storage.StorageInterface
	var mockStorage *storage.MockStorageService
	if cfg.Storage.Type == "" || cfg.Storage.Type == "mock" {
		logger.Info("Using mock storage (local filesystem)", "upload_dir", cfg.Storage.UploadDir)
		mockStorage, err = storage.NewMockStorageService(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
		if err != nil {
			logger.Error("Failed to initialize mock storage", "error", err)
			log.Fatalf("Failed to initialize mock storage: %v", err)
		}
		storageService = mockStorage
	} else {
		logger.Error("Unsupported storage type", "type", cfg.Storage.Type)
		log.Fatalf("Storage type '%s' not yet implemented", cfg.Storage.Type)
	}

	// Initialize Push Sender (optional)
	var pushSender service.PushSender
	if cfg.Firebase.Enabled {
		pushSender, err = service.NewFCMPushSender(context.Background(), cfg.Firebase.CredentialsFile)
		if err != nil {
			logger.Error("Failed to initialize FCM, continuing without push", "error", err)
			pushSender = nil
		} else {
			logger.Info("FCM push sender initialized")
		}
	}

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.SendGrid)
	onboardingSvc := service.NewOnboardingService(store.OnboardingRepository)
	authSvc := service.NewAuthService(store.UserRepository, onboardingSvc, emailSvc, tokenManager, tracker)
	userSvc := service.NewUserService(store.UserRepository, store.ShipRepository, onboardingSvc)
	noteSvc := service.NewNotificationService(store.NotificationRepository, store.DeviceTokenRepository, pushSender)
	connSvc := service.NewConnectionService(store.ConnectionRepository, store.UserRepository, noteSvc)
	visibilitySvc := service.NewVisibilityService(store.UserRepository, store.ShipRepository, store.ConnectionRepository, tracker)
	rosterSvc := service.NewRosterService(store.UserRepository, store.ShipRepository, store.ConnectionRepository, tracker)
	shipSvc := service.NewShipService(store.ShipRepository)
	photoSvc := service.NewPhotoService(store.UserRepository, onboardingSvc, storageService)

	// Initialize HTTP layer
	middleware := httpapi.NewMiddleware(tokenManager, onboardingSvc, tracker)
	router := httpapi.NewRouter(httpapi.Handlers{
		Auth:         httpapi.NewAuthHandler(authSvc),
		User:         httpapi.NewUserHandler(userSvc, visibilitySvc, photoSvc),
		Onboarding:   httpapi.NewOnboardingHandler(onboardingSvc),
		Connection:   httpapi.NewConnectionHandler(connSvc),
		Roster:       httpapi.NewRosterHandler(rosterSvc, shipSvc),
		Notification: httpapi.NewNotificationHandler(noteSvc),
		Middleware:   middleware,
		MockStorage:  mockStorage,
	})

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
