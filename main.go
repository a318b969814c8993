package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/NH-Portal/portal-service/internal/cache"
	"github.com/NH-Portal/portal-service/internal/config"
	"github.com/NH-Portal/portal-service/internal/events"
	"github.com/NH-Portal/portal-service/internal/handlers"
	"github.com/NH-Portal/portal-service/internal/identity"
	"github.com/NH-Portal/portal-service/internal/identity/casdoor"
	"github.com/NH-Portal/portal-service/internal/recordstore"
	pgstore "github.com/NH-Portal/portal-service/internal/recordstore/postgres"
	redisstore "github.com/NH-Portal/portal-service/internal/recordstore/redis"
	"github.com/NH-Portal/portal-service/internal/repositories/store"
	"github.com/NH-Portal/portal-service/internal/services"
	"github.com/NH-Portal/portal-service/internal/session"
	"github.com/NH-Portal/portal-service/internal/utils"
	"github.com/NH-Portal/portal-service/internal/validator"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	slogLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	logger := utils.NewSlogLogger(slogLogger)

	// Sessions always live in Redis regardless of the record store driver
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient := redis.NewClient(redisOpts)

	// Initialize the record store
	recordStore, err := newRecordStore(cfg, redisClient)
	if err != nil {
		log.Fatalf("Failed to initialize record store: %v", err)
	}
	repo := store.NewRepository(recordStore)

	sessions := session.NewStore(cache.NewCacheHelper(redisClient, "session:"), cfg.SessionTTL)

	// Identity service is optional; the account store remains the source
	// of truth either way
	var identityClient identity.Client
	if cfg.Casdoor.Endpoint != "" {
		identityClient = casdoor.NewClient(cfg.Casdoor, cfg.AccountDomain)
	} else {
		identityClient = identity.NewNoopClient()
		logger.Warn("no identity service configured, mirroring disabled")
	}

	// Event publisher
	var publisher events.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err = events.NewKafkaEventPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, slogLogger)
		if err != nil {
			log.Fatalf("Failed to initialize event publisher: %v", err)
		}
	} else {
		publisher = events.NewNoopEventPublisher(slogLogger)
		logger.Warn("no Kafka brokers configured, events disabled")
	}

	// Initialize services
	serviceManager := services.NewServiceManager(services.Dependencies{
		Repo:      repo,
		Sessions:  sessions,
		Identity:  identityClient,
		Publisher: publisher,
		Logger:    slogLogger,
		Validator: validator.New(),
	})

	// Initialize handlers
	handlerManager := handlers.NewHandlerManager(serviceManager, sessions, identityClient, repo.Account(), logger)

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handlers.SetupMiddleware(router, logger)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment, "store_driver", cfg.StoreDriver)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if err := serviceManager.Shutdown(ctx); err != nil {
		log.Printf("Failed to shutdown services: %v", err)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Failed to close Redis connection: %v", err)
	}

	logger.Info("Server exited")
}

func newRecordStore(cfg *config.Config, redisClient *redis.Client) (recordstore.Store, error) {
	switch cfg.StoreDriver {
	case "postgres":
		return pgstore.New(cfg.DatabaseURL)
	default:
		return redisstore.NewStore(redisClient), nil
	}
}
