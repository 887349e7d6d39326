package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/energy-keeper/internal/config"
	"github.com/MKhiriev/energy-keeper/internal/handler"
	"github.com/MKhiriev/energy-keeper/internal/logger"
	"github.com/MKhiriev/energy-keeper/internal/server"
	"github.com/MKhiriev/energy-keeper/internal/service"
	"github.com/MKhiriev/energy-keeper/internal/store"
	"github.com/MKhiriev/energy-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := printBuildInfo()

	log := logger.NewLogger("energy-server")
	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	logger.SetLevel(cfg.Log.Level)

	if cfg.App.Version == "" {
		cfg.App.Version = buildInfo.BuildVersion()
	}

	log.Debug().
		Str("driver", cfg.Storage.Driver).
		Str("address", cfg.Server.HTTPAddress).
		Dur("session_restore_timeout", cfg.App.SessionRestoreTimeout).
		Msg("received configs")

	kv, err := store.NewKVStore(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating kv store")
	}

	repositories := store.NewRepositories(kv, log)
	defer func() {
		if err := repositories.Close(); err != nil {
			log.Err(err).Msg("error closing kv store")
		}
	}()

	services, err := service.NewServices(repositories, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() models.AppBuildInfo {
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

	return models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
}
