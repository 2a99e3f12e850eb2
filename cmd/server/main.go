package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	classifyapp "github.com/brownstreet/backend/internal/application/classify"
	"github.com/brownstreet/backend/internal/application/exhibition"
	"github.com/brownstreet/backend/internal/domain/catalog"
	"github.com/brownstreet/backend/internal/domain/classify"
	"github.com/brownstreet/backend/internal/infrastructure/auth"
	"github.com/brownstreet/backend/internal/infrastructure/cache"
	"github.com/brownstreet/backend/internal/infrastructure/commerce"
	"github.com/brownstreet/backend/internal/infrastructure/config"
	"github.com/brownstreet/backend/internal/infrastructure/logger"
	"github.com/brownstreet/backend/internal/infrastructure/persistence"
	"github.com/brownstreet/backend/internal/infrastructure/scheduler"
	"github.com/brownstreet/backend/internal/infrastructure/vision"
	"github.com/brownstreet/backend/internal/interfaces/http/handler"
	"github.com/brownstreet/backend/internal/interfaces/http/middleware"
	"github.com/brownstreet/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting classification and sync engine",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Lifecycle thresholds drive both classification and the rebalance sweep
	thresholds := catalog.LifecycleThresholds{
		NewDays:     cfg.Lifecycle.NewDays,
		CuratedDays: cfg.Lifecycle.CuratedDays,
		ArchiveDays: cfg.Lifecycle.ArchiveDays,
	}

	// Initialize repositories
	itemRepo := persistence.NewGormItemRepository(db.DB, thresholds)
	attemptRepo := persistence.NewGormSyncAttemptRepository(db.DB)
	signalRepo := persistence.NewGormVisionSignalRepository(db.DB)
	brandRepo := persistence.NewGormBrandRepository(db.DB)

	// Commerce gateway client and token cache
	commerceClient, err := commerce.NewClient(&commerce.CommerceConfig{
		ClientID:       cfg.Commerce.ClientID,
		ClientSecret:   cfg.Commerce.ClientSecret,
		APIBaseURL:     cfg.Commerce.APIBaseURL,
		GatewayKey:     cfg.Commerce.GatewayKey,
		TimeoutSeconds: cfg.Commerce.TimeoutSeconds,
	})
	if err != nil {
		log.Fatal("Failed to create commerce client", zap.Error(err))
	}

	credentialStore, err := cache.NewCredentialStoreFactory(cfg.Redis, cache.WithLogger(log)).Create()
	if err != nil {
		log.Fatal("Failed to create credential store", zap.Error(err))
	}
	tokenSource := cache.NewTokenSource(commerceClient, credentialStore, log)

	// Vision collaborator client
	visionClient, err := vision.NewClient(&vision.Config{
		BaseURL:        cfg.Vision.BaseURL,
		APIKey:         cfg.Vision.APIKey,
		TimeoutSeconds: cfg.Vision.TimeoutSeconds,
	})
	if err != nil {
		log.Fatal("Failed to create vision client", zap.Error(err))
	}

	// Display-category routing table from configuration
	displayTable := catalog.DisplayCategoryTable{}
	for name, id := range cfg.Commerce.DisplayCategories {
		category, err := catalog.ParseCategory(name)
		if err != nil {
			log.Warn("Skipping unknown display category mapping",
				zap.String("category", name), zap.String("id", id))
			continue
		}
		displayTable[category] = id
	}

	// Initialize application services
	classifier := classify.NewClassifier(classify.DefaultRuleSet())
	classificationService := classifyapp.NewClassificationService(
		itemRepo, signalRepo, brandRepo, visionClient, classifier, thresholds,
	)
	syncService := exhibition.NewSyncService(
		commerceClient, tokenSource, attemptRepo, itemRepo, displayTable,
		exhibition.Config{
			BatchSize:  cfg.Sync.BatchSize,
			BatchDelay: cfg.Sync.BatchDelay,
		},
		log,
	)

	jwtService := auth.NewJWTService(cfg.JWT)

	// Lifecycle rebalance scheduler (if enabled)
	if cfg.Scheduler.Enabled {
		rebalanceScheduler := scheduler.NewRebalanceScheduler(
			scheduler.RebalanceConfig{
				Enabled:       cfg.Scheduler.Enabled,
				CheckInterval: cfg.Scheduler.CheckInterval,
				JobTimeout:    cfg.Scheduler.JobTimeout,
			},
			itemRepo,
			syncService,
			thresholds,
			log,
		)
		if err := rebalanceScheduler.Start(context.Background()); err != nil {
			log.Fatal("Failed to start rebalance scheduler", zap.Error(err))
		}
		defer func() {
			if err := rebalanceScheduler.Stop(context.Background()); err != nil {
				log.Error("Error stopping rebalance scheduler", zap.Error(err))
			}
		}()
		log.Info("Rebalance scheduler started",
			zap.Duration("check_interval", cfg.Scheduler.CheckInterval),
			zap.Duration("job_timeout", cfg.Scheduler.JobTimeout),
		)
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Report JSON field names in binding errors
	middleware.SetupValidator()

	// Initialize HTTP handlers and router
	engine := router.New(router.Dependencies{
		Logger:      log,
		JWTService:  jwtService,
		CORS:        middleware.DefaultCORSConfig(),
		MaxBodySize: cfg.HTTP.MaxBodySize,
		Health:      handler.NewHealthHandler(db, version),
		Auth:        handler.NewAuthHandler(jwtService, cfg.Commerce.GatewayKey),
		Exhibition:  handler.NewExhibitionHandler(syncService),
		Classify:    handler.NewClassifyHandler(classificationService),
		Gateway:     handler.NewGatewayHandler(commerceClient, tokenSource),
	})

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in a goroutine so shutdown can be handled gracefully
	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
