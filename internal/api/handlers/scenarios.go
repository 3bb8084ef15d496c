package handlers

import (
	"net/http"

	"github.com/nitishagar/bharatdcim/internal/api/models"
	"github.com/nitishagar/bharatdcim/internal/data"
	"github.com/nitishagar/bharatdcim/internal/estimator"

	"github.com/gin-gonic/gin"
)

// ScenarioHandler serves the builtin example scenarios plus any YAML
// scenarios found in a directory
type ScenarioHandler struct {
	bills *BillHandler
	dir   string
}

// NewScenarioHandler creates a new scenario handler. Estimates are stored
// through bills.
func NewScenarioHandler(bills *BillHandler, dir string) *ScenarioHandler {
	return &ScenarioHandler{bills: bills, dir: dir}
}

// load reads the scenario directory on every call so that edited files
// show up without a restart. Builtins come first and win on ID clashes.
func (h *ScenarioHandler) load() ([]data.Scenario, map[string]error, error) {
	all := data.BuiltinScenarios()
	if h.dir == "" {
		return all, nil, nil
	}
	fromDir, skipped, err := data.LoadScenarioDir(h.dir)
	if err != nil {
		return nil, nil, err
	}
	return append(all, fromDir...), skipped, nil
}

// ListScenarios handles GET /api/v1/scenarios?state=
func (h *ScenarioHandler) ListScenarios(c *gin.Context) {
	all, skipped, err := h.load()
	if err != nil {
		abort(c, http.StatusInternalServerError, CodeScenarioDir, err.Error())
		return
	}
	if state := c.Query("state"); state != "" {
		all = h.filterState(all, state)
	}

	resp := models.ScenariosResponse{Scenarios: all}
	if resp.Scenarios == nil {
		resp.Scenarios = []data.Scenario{}
	}
	for name, err := range skipped {
		if resp.Skipped == nil {
			resp.Skipped = map[string]string{}
		}
		resp.Skipped[name] = err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

// filterState keeps scenarios whose state resolves to the same schedule as
// state. An unknown state matches nothing.
func (h *ScenarioHandler) filterState(all []data.Scenario, state string) []data.Scenario {
	want, ok := h.bills.reg.Schedule(state)
	if !ok {
		return nil
	}
	var out []data.Scenario
	for _, sc := range all {
		if got, ok := h.bills.reg.Schedule(sc.State); ok && got.State == want.State {
			out = append(out, sc)
		}
	}
	return out
}

// BillScenario handles GET /api/v1/scenarios/:id/bill?hourly=true
func (h *ScenarioHandler) BillScenario(c *gin.Context) {
	all, _, err := h.load()
	if err != nil {
		abort(c, http.StatusInternalServerError, CodeScenarioDir, err.Error())
		return
	}
	id := c.Param("id")
	s, ok := data.FindScenario(all, id)
	if !ok {
		abortf(c, http.StatusNotFound, CodeNotFound, "scenario %q not found", id)
		return
	}

	in := estimator.FromScenario(s)
	in.Hourly = c.Query("hourly") == "true"
	h.bills.respond(c, estimator.Estimate(h.bills.reg, in))
}
