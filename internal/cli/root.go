package cli

import (
	"log"
	"net/http"

	"solar-match/internal/app"
	"solar-match/internal/config"
	"solar-match/internal/logger"
	"solar-match/pkg/metrics"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const appName = "solar-match"

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Candidate-to-job matching engine for solar technician placement",
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

// bootstrap loads environment configuration and wires the container.
// Shared by every command that touches the database.
func bootstrap() (*app.Container, *zap.Logger) {
	// A .env file is a local-development convenience; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	lg, err := logger.New(cfg.App.LogJSON, cfg.App.LogDebug)
	if err != nil {
		log.Fatalf("creating a logger: %v", err)
	}

	container, err := app.NewContainer(cfg, lg)
	if err != nil {
		lg.Fatal("wiring dependencies", zap.Error(err))
	}

	if cfg.Metrics.Enabled && container.Recorder != nil {
		go func() {
			addr := ":" + cfg.Metrics.Port
			lg.Info("serving metrics", zap.String("addr", addr))
			if err := http.ListenAndServe(addr, metrics.Handler()); err != nil {
				lg.Warn("metrics listener stopped", zap.Error(err))
			}
		}()
	}

	return container, lg
}
