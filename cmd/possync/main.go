package main

import (
	"fmt"

	"github.com/MKhiriev/go-pos-sync/internal/adapter"
	"github.com/MKhiriev/go-pos-sync/internal/config"
	handler "github.com/MKhiriev/go-pos-sync/internal/handler/http"
	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/MKhiriev/go-pos-sync/internal/server"
	"github.com/MKhiriev/go-pos-sync/internal/service"
	"github.com/MKhiriev/go-pos-sync/internal/store"
	"github.com/MKhiriev/go-pos-sync/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("go-pos-sync")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	storages, err := store.NewStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	remote, err := adapter.NewRESTRemoteService(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating remote data service adapter")
	}

	services := service.NewServices(storages, remote,
		cfg.Workers.SyncInterval, cfg.Workers.DebounceDelay, log)

	workers.NewWorkers(services, cfg.Workers, cfg.App.StoreID, log).Run()

	handlers := handler.NewHandler(services, cfg.App, log)

	srv, err := server.NewServer(handlers.Init(), cfg.Server, log)
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
