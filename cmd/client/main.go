package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/energy-keeper/internal/adapter"
	"github.com/MKhiriev/energy-keeper/internal/app"
	"github.com/MKhiriev/energy-keeper/internal/config"
	"github.com/MKhiriev/energy-keeper/internal/logger"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	cfg, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if len(cfg.Command) > 0 && cfg.Command[0] == "build-info" {
		printBuildInfo()
		return
	}

	log := logger.NewFileLogger("energy-client", cfg.LogFile)
	logger.SetLevel(cfg.LogLevel)

	authAdapter, err := adapter.NewHTTPAuthAdapter(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create http adapter")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := app.NewClient(authAdapter, app.NewTerminalPasswordReader(os.Stdin, os.Stderr), os.Stdout, log)
	if err = client.Run(ctx, cfg.Command); err != nil {
		stop()
		os.Exit(1)
	}
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
