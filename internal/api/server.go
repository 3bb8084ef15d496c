package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/nitishagar/bharatdcim/internal/config"
	"github.com/nitishagar/bharatdcim/internal/data"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	sweepInterval   = 5 * time.Minute
	shutdownTimeout = 10 * time.Second
)

// Serve opens the tariff catalog and runs the HTTP API until ctx is
// cancelled, then drains in-flight requests.
func Serve(ctx context.Context, s config.Settings, log zerolog.Logger) error {
	client := data.NewCatalogClient(s.CatalogToken, log)
	reg, err := data.OpenRegistry(ctx, s.CatalogFile, s.DefaultState, client)
	if err != nil {
		return fmt.Errorf("open tariff catalog: %w", err)
	}
	source := s.CatalogFile
	if source == "" {
		source = "builtin"
	}
	log.Info().
		Str("catalog", source).
		Int("states", reg.Len()).
		Str("default_state", reg.Default().State).
		Msg("tariff registry loaded")

	if s.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	cache := data.NewEstimateCache(data.DefaultEstimateTTL)
	go cache.Run(ctx, sweepInterval)

	srv := &http.Server{
		Addr: ":" + s.Port,
		Handler: NewRouter(Options{
			Registry:    reg,
			Cache:       cache,
			ScenarioDir: s.ScenarioDir,
			CORSOrigins: s.CORSOrigins,
			Log:         log,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting API server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
