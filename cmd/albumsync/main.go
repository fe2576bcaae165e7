package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/photark/albumsync/internal/adapter"
	"github.com/photark/albumsync/internal/config"
	httphandler "github.com/photark/albumsync/internal/handler/http"
	"github.com/photark/albumsync/internal/logger"
	"github.com/photark/albumsync/internal/runlock"
	"github.com/photark/albumsync/internal/server"
	"github.com/photark/albumsync/internal/service"
	"github.com/photark/albumsync/internal/store"
	"github.com/photark/albumsync/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("albumsync")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to metadata database")
	}

	storages, err := store.NewStorages(
		ctx,
		db,
		filepath.Join(cfg.Sync.ExportRoot, "progress.json"),
		cfg.Sync.ProgressInterval,
		log,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	lock := runlock.New(filepath.Join(cfg.Sync.ExportRoot, ".albumsync.lock"))
	notifier := adapter.NewWebhookNotifier(adapter.WebhookConfig{
		URL:     cfg.Adapter.WebhookURL,
		Token:   cfg.Adapter.WebhookToken,
		Timeout: cfg.Adapter.RequestTimeout,
	})

	services := service.NewServices(db, storages, lock, notifier, cfg.Sync, buildVersion, log)
	handler := httphandler.NewHandler(services, log)

	scheduled := workers.NewWorkers(
		workers.NewScheduleWorker(services.Coordinator, cfg.Workers.SyncInterval, log),
	)
	scheduled.Run()

	srv, err := server.NewServer(handler, cfg.Server, log, scheduled.Stop)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
