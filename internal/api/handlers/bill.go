package handlers

import (
	"net/http"

	"github.com/nitishagar/bharatdcim/internal/api/models"
	"github.com/nitishagar/bharatdcim/internal/billing"
	"github.com/nitishagar/bharatdcim/internal/data"
	"github.com/nitishagar/bharatdcim/internal/estimator"
	"github.com/nitishagar/bharatdcim/internal/tariff"

	"github.com/gin-gonic/gin"
)

// BillHandler handles bill estimates and their retrieval
type BillHandler struct {
	reg   *tariff.Registry
	cache *data.EstimateCache
}

// NewBillHandler creates a new bill handler. cache may be nil, in which
// case estimates are not retrievable afterwards.
func NewBillHandler(reg *tariff.Registry, cache *data.EstimateCache) *BillHandler {
	return &BillHandler{reg: reg, cache: cache}
}

// Bill handles POST /api/v1/bill. A load_curve in the body switches to the
// hourly path.
func (h *BillHandler) Bill(c *gin.Context) {
	h.estimate(c, false)
}

// BillHourly handles POST /api/v1/bill/hourly. Without a load_curve the
// default colocation curve is used.
func (h *BillHandler) BillHourly(c *gin.Context) {
	h.estimate(c, true)
}

func (h *BillHandler) estimate(c *gin.Context, hourly bool) {
	var req models.BillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}
	if _, err := averagingMode(req.Averaging); err != nil {
		abort(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}

	cfg := req.Config()
	if hourly && cfg.LoadCurve == nil {
		curve := billing.DefaultLoadCurve()
		cfg.LoadCurve = curve[:]
	}
	if err := cfg.Validate(); err != nil {
		abort(c, http.StatusBadRequest, CodeInvalidProfile, err.Error())
		return
	}

	in := estimator.FromConfig(cfg)
	in.Hourly = hourly
	h.respond(c, estimator.Estimate(h.reg, in))
}

// respond stores and renders an estimate. Non-finite bills cannot be
// encoded as JSON and are rejected instead.
func (h *BillHandler) respond(c *gin.Context, est data.Estimate) {
	if !billing.IsFinite(est.Bill) {
		abort(c, http.StatusUnprocessableEntity, CodeNonFinite,
			"bill is not finite; check power_factor and that it_load_kwh or dg_kwh is positive")
		return
	}
	h.cache.Set(est)
	c.JSON(http.StatusOK, models.NewEstimateResponse(est))
}

// GetEstimate handles GET /api/v1/estimates/:id
func (h *BillHandler) GetEstimate(c *gin.Context) {
	est, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.NewEstimateResponse(est))
}

// GetHourlyCSV handles GET /api/v1/estimates/:id/hourly.csv
func (h *BillHandler) GetHourlyCSV(c *gin.Context) {
	est, ok := h.lookup(c)
	if !ok {
		return
	}
	if len(est.Hourly) == 0 {
		abortf(c, http.StatusNotFound, CodeNoLedger, "estimate %s was computed without an hourly ledger", est.ID)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+est.ID+`-hourly.csv"`)
	c.Status(http.StatusOK)
	if err := billing.WriteHourlyCSV(c.Writer, est.Hourly); err != nil {
		_ = c.Error(err)
	}
}

func (h *BillHandler) lookup(c *gin.Context) (data.Estimate, bool) {
	id := c.Param("id")
	est, ok := h.cache.Get(id)
	if !ok {
		abortf(c, http.StatusNotFound, CodeNotFound, "estimate %q not found or expired", id)
	}
	return est, ok
}
