package handlers

import (
	"net/http"
	"strings"

	"github.com/nitishagar/bharatdcim/internal/analysis"
	"github.com/nitishagar/bharatdcim/internal/api/models"
	"github.com/nitishagar/bharatdcim/internal/billing"
	"github.com/nitishagar/bharatdcim/internal/estimator"
	"github.com/nitishagar/bharatdcim/internal/format"
	"github.com/nitishagar/bharatdcim/internal/metrics"
	"github.com/nitishagar/bharatdcim/internal/model"
	"github.com/nitishagar/bharatdcim/internal/tariff"

	"github.com/gin-gonic/gin"
)

// CompareHandler handles cross-state comparisons and load-shift what-ifs
type CompareHandler struct {
	reg *tariff.Registry
}

// NewCompareHandler creates a new compare handler
func NewCompareHandler(reg *tariff.Registry) *CompareHandler {
	return &CompareHandler{reg: reg}
}

type scheduleList []model.TariffSchedule

func (l scheduleList) States() []model.TariffSchedule { return l }

// Compare handles POST /api/v1/compare
func (h *CompareHandler) Compare(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}
	mode, err := averagingMode(req.Averaging)
	if err != nil {
		abort(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}
	pc := req.Profile.ToConfig()
	if err := pc.Validate(false); err != nil {
		abort(c, http.StatusBadRequest, CodeInvalidProfile, err.Error())
		return
	}

	var lister analysis.StateLister = h.reg
	var unknown []string
	if len(req.States) > 0 {
		var list scheduleList
		seen := map[string]bool{}
		for _, name := range req.States {
			s, ok := h.reg.Schedule(name)
			if !ok {
				unknown = append(unknown, name)
				continue
			}
			if !seen[s.State] {
				seen[s.State] = true
				list = append(list, s)
			}
		}
		if len(list) == 0 {
			abortf(c, http.StatusBadRequest, CodeUnknownStates, "no known states in %s", strings.Join(req.States, ", "))
			return
		}
		lister = list
	}

	calc := &billing.Calculator{Averaging: mode}
	ranked := analysis.RankByEffectiveRate(analysis.CompareStates(calc, lister, pc.ToProfile()))
	for _, r := range ranked {
		if !billing.IsFinite(r.Bill) {
			abort(c, http.StatusUnprocessableEntity, CodeNonFinite,
				"bill is not finite; check that it_load_kwh or dg_kwh is positive")
			return
		}
		metrics.ObserveEstimate(r.State, string(r.BillingUnit), estimator.PathPattern, r.Bill.EffectiveRate)
	}

	c.JSON(http.StatusOK, models.CompareResponse{
		Rankings: ranked,
		Cheapest: ranked[0].State,
		Unknown:  unknown,
	})
}

// Shift handles POST /api/v1/shift
func (h *CompareHandler) Shift(c *gin.Context) {
	var req models.ShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}
	mode, err := averagingMode(req.Averaging)
	if err != nil {
		abort(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}
	if req.Points < 0 || req.Points > 100 {
		abortf(c, http.StatusBadRequest, CodeInvalidRequest, "points must be in [0, 100], got %v", req.Points)
		return
	}
	pc := req.Profile.ToConfig()
	if err := pc.Validate(false); err != nil {
		abort(c, http.StatusBadRequest, CodeInvalidProfile, err.Error())
		return
	}

	s, matched := h.reg.Schedule(req.State)
	metrics.ObserveLookup(matched)

	shift := analysis.ShiftPeakToOffPeak(&billing.Calculator{Averaging: mode}, s, pc.ToProfile(), req.Points)
	if !billing.IsFinite(shift.Before) || !billing.IsFinite(shift.After) {
		abort(c, http.StatusUnprocessableEntity, CodeNonFinite,
			"bill is not finite; check that it_load_kwh or dg_kwh is positive")
		return
	}
	c.JSON(http.StatusOK, models.ShiftResponse{
		State:          s.State,
		Matched:        matched,
		LoadShift:      shift,
		SavingsDisplay: format.INR(shift.Savings),
	})
}
