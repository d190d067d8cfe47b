// cmd/toolserver/main.go
//
// Line-delimited JSON-RPC tool server over stdio. Stdout carries the
// protocol, so all logging goes to stderr.
package main

import (
	"context"

	"github.com/garcj88/supplychain-assistant/internal/cache"
	"github.com/garcj88/supplychain-assistant/internal/config"
	"github.com/garcj88/supplychain-assistant/internal/repository/sqldb"
	"github.com/garcj88/supplychain-assistant/internal/service"
	"github.com/garcj88/supplychain-assistant/internal/tools"
	"github.com/garcj88/supplychain-assistant/pkg/logger"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.Server.Mode)
	log.Logger = logger.Log

	db, err := sqldb.Open(&cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	repo := sqldb.NewDailyRepository(db)
	inventorySvc := service.NewInventoryService(repo, cache.NewNoopSummaryCache())
	forecastSvc := service.NewForecastService(repo)
	generatorSvc := service.NewGeneratorService(repo, inventorySvc)
	summarySvc := service.NewSummaryService(repo, cache.NewNoopSummaryCache())

	srv := tools.NewServer(repo, inventorySvc, forecastSvc, generatorSvc, summarySvc)
	if err := srv.Serve(); err != nil {
		log.Fatal().Err(err).Msg("Tool server stopped")
	}
}
