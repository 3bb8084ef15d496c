package handlers

import (
	"net/http"
	"strconv"

	"github.com/nitishagar/bharatdcim/internal/analysis"
	"github.com/nitishagar/bharatdcim/internal/api/models"
	"github.com/nitishagar/bharatdcim/internal/metrics"
	"github.com/nitishagar/bharatdcim/internal/tariff"

	"github.com/gin-gonic/gin"
)

// StatesHandler serves the tariff registry
type StatesHandler struct {
	reg *tariff.Registry
}

// NewStatesHandler creates a new states handler
func NewStatesHandler(reg *tariff.Registry) *StatesHandler {
	return &StatesHandler{reg: reg}
}

// ListStates handles GET /api/v1/states
func (h *StatesHandler) ListStates(c *gin.Context) {
	def := h.reg.Default().State
	schedules := h.reg.States()
	resp := models.StatesResponse{States: make([]models.StateSummary, 0, len(schedules))}
	for _, s := range schedules {
		resp.States = append(resp.States, models.NewStateSummary(s, s.State == def))
	}
	c.JSON(http.StatusOK, resp)
}

// GetState handles GET /api/v1/states/:state. Unknown states get the
// default schedule with matched=false rather than a 404.
func (h *StatesHandler) GetState(c *gin.Context) {
	name := c.Param("state")
	s, ok := h.reg.Schedule(name)
	metrics.ObserveLookup(ok)
	c.JSON(http.StatusOK, models.ScheduleResponse{Requested: name, Matched: ok, Schedule: s})
}

// GetSlot handles GET /api/v1/states/:state/slots/:hour
func (h *StatesHandler) GetSlot(c *gin.Context) {
	hour, err := strconv.Atoi(c.Param("hour"))
	if err != nil || hour < 0 || hour > 23 {
		abortf(c, http.StatusBadRequest, CodeInvalidHour, "hour must be an integer in [0, 23], got %q", c.Param("hour"))
		return
	}

	s, ok := h.reg.Schedule(c.Param("state"))
	metrics.ObserveLookup(ok)

	resp := models.SlotResponse{
		State:    s.State,
		Matched:  ok,
		Hour:     hour,
		Category: tariff.CategoryForHour(s, hour),
		Rate:     tariff.RateForHour(s, hour),
	}
	if slot, found := tariff.SlotForHour(s, hour); found {
		resp.Slot = &slot
	}
	c.JSON(http.StatusOK, resp)
}

// GetSpread handles GET /api/v1/states/:state/spread?averaging=
func (h *StatesHandler) GetSpread(c *gin.Context) {
	mode, err := averagingMode(c.Query("averaging"))
	if err != nil {
		abort(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}
	s, ok := h.reg.Schedule(c.Param("state"))
	metrics.ObserveLookup(ok)
	c.JSON(http.StatusOK, models.SpreadResponse{Matched: ok, RateSpread: analysis.ComputeSpread(s, mode)})
}
