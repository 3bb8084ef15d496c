package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/nitishagar/bharatdcim/internal/api"
	"github.com/nitishagar/bharatdcim/internal/config"
	"github.com/nitishagar/bharatdcim/internal/logging"

	"github.com/spf13/cobra"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API. Settings come from the environment, as for cmd/api:

  API_PORT               - listen port (default 8080)
  API_ENV                - production enables release mode and JSON logs
  LOG_LEVEL              - debug, info, warn, error
  TARIFF_CATALOG_FILE    - catalog file or URL (default: builtin)
  TARIFF_CATALOG_TOKEN   - bearer token for a remote catalog
  DEFAULT_STATE          - fallback state for unknown lookups
  SCENARIO_DIR           - scenario YAML directory (default ./examples/scenarios)
  CORS_ALLOWED_ORIGINS   - comma-separated origins (default *)

Global --catalog, --catalog-token and --default-state flags override the
environment.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := config.FromEnv()
		if servePort != "" {
			settings.Port = servePort
		}
		settings.CatalogFile = catalogPath
		settings.CatalogToken = catalogToken
		settings.DefaultState = defaultState
		if cmd.Flags().Changed("log-level") {
			settings.LogLevel = logLevel
		}
		log := logging.New(settings.Env, settings.LogLevel)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return api.Serve(ctx, settings, log)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&servePort, "port", "", "listen port (overrides API_PORT)")
}
