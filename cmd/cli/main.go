package main

import (
	"fmt"
	"os"

	"github.com/nitishagar/bharatdcim/internal/data"
	"github.com/nitishagar/bharatdcim/internal/logging"
	"github.com/nitishagar/bharatdcim/internal/tariff"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	catalogPath  string
	catalogToken string
	defaultState string
	logLevel     string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bharatdcim",
	Short: "Time-of-Day electricity bill estimator for Indian data centers",
	Long: `bharatdcim estimates monthly HT industrial electricity bills for data
centers under state Time-of-Day tariffs.

Tariffs:
  bharatdcim states                 # List supported states
  bharatdcim show KA                # Full schedule for a state
  bharatdcim slot MH 19             # Slot and rate in force at an hour

Estimates:
  bharatdcim bill --scenario mumbai-colocation-50-racks
  bharatdcim bill --config examples/scenarios/chennai-edge.yaml
  bharatdcim hourly --state TS --it-load 720000 --pf 0.95 --contracted 1500 --out hourly.csv
  bharatdcim compare --it-load 180000 --pf 0.95 --contracted 400 --peak 34 --normal 41 --off-peak 25

The catalog defaults to the builtin one; use --catalog or TARIFF_CATALOG_FILE
to load a YAML/JSON file or an http(s) URL.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", data.GetDefaultCatalogPath(), "tariff catalog file or URL (default: builtin)")
	rootCmd.PersistentFlags().StringVar(&catalogToken, "catalog-token", os.Getenv("TARIFF_CATALOG_TOKEN"), "bearer token for a remote catalog")
	rootCmd.PersistentFlags().StringVar(&defaultState, "default-state", os.Getenv("DEFAULT_STATE"), "fallback state for unknown lookups")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error")
}

func logger() zerolog.Logger {
	return logging.New("development", logLevel)
}

func openRegistry(cmd *cobra.Command) (*tariff.Registry, error) {
	client := data.NewCatalogClient(catalogToken, logger())
	reg, err := data.OpenRegistry(cmd.Context(), catalogPath, defaultState, client)
	if err != nil {
		return nil, fmt.Errorf("open tariff catalog: %w", err)
	}
	return reg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
