// Package api wires the HTTP surface: middleware, handlers and routes.
package api

import (
	"net/http"

	"github.com/nitishagar/bharatdcim/internal/api/handlers"
	"github.com/nitishagar/bharatdcim/internal/api/middleware"
	"github.com/nitishagar/bharatdcim/internal/api/models"
	"github.com/nitishagar/bharatdcim/internal/data"
	"github.com/nitishagar/bharatdcim/internal/tariff"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type Options struct {
	Registry    *tariff.Registry
	Cache       *data.EstimateCache
	ScenarioDir string
	CORSOrigins []string
	Log         zerolog.Logger
}

// NewRouter builds the gin engine. The caller sets the gin mode.
func NewRouter(opts Options) *gin.Engine {
	router := gin.New()

	// Apply middleware
	router.Use(middleware.CORS(opts.CORSOrigins))
	router.Use(middleware.Logger(opts.Log))
	router.Use(middleware.ErrorHandler(opts.Log))

	// Initialize handlers
	statesHandler := handlers.NewStatesHandler(opts.Registry)
	billHandler := handlers.NewBillHandler(opts.Registry, opts.Cache)
	compareHandler := handlers.NewCompareHandler(opts.Registry)
	scenarioHandler := handlers.NewScenarioHandler(billHandler, opts.ScenarioDir)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":        "ok",
			"states":        opts.Registry.Len(),
			"default_state": opts.Registry.Default().State,
			"estimates":     opts.Cache.Len(),
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := router.Group("/api/v1")
	{
		api.GET("/states", statesHandler.ListStates)
		api.GET("/states/:state", statesHandler.GetState)
		api.GET("/states/:state/slots/:hour", statesHandler.GetSlot)
		api.GET("/states/:state/spread", statesHandler.GetSpread)

		api.POST("/bill", billHandler.Bill)
		api.POST("/bill/hourly", billHandler.BillHourly)
		api.GET("/estimates/:id", billHandler.GetEstimate)
		api.GET("/estimates/:id/hourly.csv", billHandler.GetHourlyCSV)

		api.POST("/compare", compareHandler.Compare)
		api.POST("/shift", compareHandler.Shift)

		api.GET("/scenarios", scenarioHandler.ListScenarios)
		api.GET("/scenarios/:id/bill", scenarioHandler.BillScenario)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.NewError(handlers.CodeNotFound, "route not found"))
	})

	return router
}
