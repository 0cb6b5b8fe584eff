// Package main provides the entry point for the DealScout tracking service.
//
//	@title			DealScout Tracking API
//	@version		1.0.0
//	@description	Affiliate click and conversion tracking for the DealScout storefront and admin console.
//
//	@contact.name	DealScout Support
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT Authorization header. Format: "Bearer {token}"
package main

import (
	"DealScout-Backend/internal/analytics"
	"DealScout-Backend/internal/auth"
	"DealScout-Backend/internal/cache"
	"DealScout-Backend/internal/config"
	"DealScout-Backend/internal/database"
	"DealScout-Backend/internal/feed"
	httpHandler "DealScout-Backend/internal/handler/http"
	"DealScout-Backend/internal/repository"
	"DealScout-Backend/internal/repository/memory"
	"DealScout-Backend/internal/repository/postgres"
	"DealScout-Backend/internal/scheduler"
	"DealScout-Backend/internal/scraper"
	"DealScout-Backend/internal/service"
	"DealScout-Backend/pkg/logger"
	"DealScout-Backend/pkg/useragent"
	"context"
	lg "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "DealScout-Backend/docs" // Import swagger docs
)

const version = "1.0.0"

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env, logger.FileConfig{
		Path:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	defer func() {
		if err := log.Sync(); err != nil {
			lg.Printf("ERROR: failed to sync zap logger: %v\n", err)
		}
	}()

	log.Info("starting DealScout tracking service",
		zap.String("env", cfg.Env),
		zap.String("storage", cfg.Storage.Driver))

	storage, closeStorage := initStorage(cfg, log)
	defer closeStorage()

	// User-Agent parser: встроенные regexes из uap-go
	devices, err := useragent.New("", log)
	if err != nil {
		log.Warn("failed to initialize User-Agent parser, device details disabled", zap.Error(err))
	}

	settingsCache := initCache(cfg, log)
	defer func() {
		if err := settingsCache.Close(); err != nil {
			log.Warn("failed to close cache", zap.Error(err))
		}
	}()

	// Live feed: процессор раздает записанные клики websocket клиентам
	hub := feed.NewHub(cfg.HTTPServer.AllowedOrigins, log)
	processor := analytics.NewProcessor(log, analytics.ProcessorConfig{
		WorkerCount:     cfg.Tracking.FeedWorkers,
		BufferSize:      cfg.Tracking.FeedBufferSize,
		DeliveryTimeout: 5 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}, hub)
	if err := processor.Start(); err != nil {
		log.Fatal("failed to start click event processor", zap.Error(err))
	}

	activityService := service.NewActivityService(storage, cfg.Tracking.ActivityCap, log)
	roleService := service.NewRoleService(storage, activityService, log)
	if err := roleService.Bootstrap(context.Background(), cfg.Auth.BootstrapAdmins); err != nil {
		log.Fatal("failed to bootstrap super admins", zap.Error(err))
	}
	settingsService := service.NewSettingsService(storage, settingsCache, cfg.Cache.TTL, activityService, log)

	var deviceParser service.DeviceParser
	if devices != nil {
		deviceParser = devices
	}
	trackingService := service.NewTrackingService(storage, activityService, processor, deviceParser, cfg.Tracking, log)

	digest := scheduler.NewDigest(trackingService, activityService, cfg.Digest.Window, log)
	if cfg.Digest.Enabled {
		if err := digest.Start(cfg.Digest.Schedule); err != nil {
			log.Fatal("failed to schedule tracking digest", zap.Error(err))
		}
	}

	jwtService := auth.NewJWTService(&auth.JWTConfig{
		SecretKey: []byte(cfg.Auth.JWTSecret),
		Issuer:    cfg.Auth.Issuer,
		Audience:  cfg.Auth.Audience,
	})

	apiServer := httpHandler.NewServer(httpHandler.Dependencies{
		Storage:        storage,
		Tracking:       trackingService,
		Settings:       settingsService,
		Roles:          roleService,
		Activity:       activityService,
		Products:       scraper.NewFetcher(cfg.Scraper.Timeout, cfg.Scraper.UserAgent, log),
		Feed:           hub,
		Processor:      processor,
		JWT:            jwtService,
		AllowedOrigins: cfg.HTTPServer.AllowedOrigins,
		Version:        version,
	}, log)

	httpServer := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      apiServer.SetupRoutes(),
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	log.Info("starting HTTP server", zap.String("address", cfg.HTTPServer.Address))

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server failed", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down DealScout tracking service...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown HTTP server", zap.Error(err))
	} else {
		log.Info("HTTP server stopped")
	}

	digest.Stop()
	if err := processor.Stop(); err != nil {
		log.Warn("click event processor did not stop cleanly", zap.Error(err))
	}
	hub.Close()
}

// initStorage выбирает хранилище по конфигурации
func initStorage(cfg *config.Config, log *zap.Logger) (repository.Storage, func()) {
	if cfg.Storage.Driver == "memory" {
		log.Warn("using in-memory storage, data will be lost on restart")
		store := memory.New()
		if cfg.Database.SeedData {
			defaults := make(map[string]*string, len(database.DefaultSettings))
			for _, key := range database.DefaultSettings {
				defaults[key] = nil
			}
			if err := store.UpsertSettings(context.Background(), defaults); err != nil {
				log.Fatal("failed to seed in-memory settings", zap.Error(err))
			}
		}
		return store, func() {}
	}

	db, err := database.NewConnection(&cfg.Database, cfg.Env, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	prepareDatabase(db, cfg, log)

	return postgres.New(db, log), func() {
		if err := database.Close(db, log); err != nil {
			log.Error("failed to close database connection", zap.Error(err))
		}
	}
}

func prepareDatabase(db *gorm.DB, cfg *config.Config, log *zap.Logger) {
	if cfg.Database.AutoMigrate {
		log.Info("running database migrations (auto_migrate: true)")
		if err := database.AutoMigrate(db, log); err != nil {
			log.Fatal("failed to run database migrations", zap.Error(err))
		}
	} else {
		log.Info("skipping database migrations (auto_migrate: false)")
	}

	if cfg.Database.SeedData {
		log.Info("seeding default site settings (seed_data: true)")
		if err := database.SeedData(db, log); err != nil {
			log.Fatal("failed to seed database", zap.Error(err))
		}
	}
}

// initCache подключает Redis, при ошибке работает без кеша
func initCache(cfg *config.Config, log *zap.Logger) cache.Cache {
	if !cfg.Cache.Enabled {
		return cache.Noop{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c, err := cache.NewRedis(ctx, cfg.Cache.RedisURL, cfg.Cache.Prefix, log)
	if err != nil {
		log.Warn("redis unavailable, settings cache disabled", zap.Error(err))
		return cache.Noop{}
	}
	return c
}
