// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/garcj88/supplychain-assistant/internal/api"
	"github.com/garcj88/supplychain-assistant/internal/api/handlers"
	"github.com/garcj88/supplychain-assistant/internal/cache"
	"github.com/garcj88/supplychain-assistant/internal/config"
	"github.com/garcj88/supplychain-assistant/internal/export"
	"github.com/garcj88/supplychain-assistant/internal/repository/sqldb"
	"github.com/garcj88/supplychain-assistant/internal/service"
	"github.com/garcj88/supplychain-assistant/internal/storage"
	"github.com/garcj88/supplychain-assistant/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := sqldb.Open(&cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Initialize cache (noop unless enabled)
	summaryCache, err := cache.NewSummaryCache(cfg.Cache)
	if err != nil {
		log.Fatalf("Failed to initialize cache: %v", err)
	}

	// Initialize object storage (nil unless configured)
	objects, err := storage.NewMinioClient(cfg.Export)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}

	// Initialize repositories and services
	repo := sqldb.NewDailyRepository(db)
	inventorySvc := service.NewInventoryService(repo, summaryCache)
	forecastSvc := service.NewForecastService(repo)
	generatorSvc := service.NewGeneratorService(repo, inventorySvc)
	summarySvc := service.NewSummaryService(repo, summaryCache)

	var objectStore storage.ObjectStorage
	if objects != nil {
		objectStore = objects
	}
	exporter := export.NewXLSXExporter(repo, cfg.Export.Dir, objectStore)

	// Initialize HTTP server
	router := api.NewRouter(&api.Services{
		Inventory: inventorySvc,
		Forecast:  forecastSvc,
		Generator: generatorSvc,
		Summary:   summarySvc,
		Daily:     handlers.NewDailyHandler(repo, inventorySvc, forecastSvc, generatorSvc, summarySvc, exporter),
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
