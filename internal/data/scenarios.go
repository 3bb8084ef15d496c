package data

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nitishagar/bharatdcim/internal/billing"
	"github.com/nitishagar/bharatdcim/internal/config"
	"github.com/nitishagar/bharatdcim/internal/model"
)

// Scenario is a named, ready-to-bill facility profile.
type Scenario struct {
	ID          string                   `json:"id"`
	Name        string                   `json:"name"`
	Description string                   `json:"description,omitempty"`
	State       string                   `json:"state"`
	Source      string                   `json:"source"`
	Profile     model.ConsumptionProfile `json:"profile"`
	// DGHours is informational; billing uses Profile.DGKWh.
	DGHours float64 `json:"dg_hours,omitempty"`
	// LoadCurve, when set, replaces Profile.Pattern through the hourly path.
	LoadCurve []float64 `json:"load_curve,omitempty"`
	Averaging string    `json:"averaging,omitempty"`
}

// BuiltinScenarios returns the two reference facilities followed by one
// demo profile per catalog state.
func BuiltinScenarios() []Scenario {
	return []Scenario{
		{
			ID:          "mumbai-colocation-50-racks",
			Name:        "Mumbai Colocation - 50 Racks",
			Description: "Mid-sized colocation facility in Mumbai with a typical enterprise load pattern; business hours push peak consumption up.",
			State:       "Maharashtra",
			Source:      "builtin",
			DGHours:     12,
			Profile: model.ConsumptionProfile{
				ITLoadKWh: 180000, PUE: 1.65, ContractedDemandKVA: 400, RecordedDemandKVA: 380,
				PowerFactor: 0.92, DGKWh: 3000,
				Pattern: model.Pattern{PeakPercent: 45, NormalPercent: 30, OffPeakPercent: 25},
			},
		},
		{
			ID:          "hyderabad-hyperscale-200-racks",
			Name:        "Hyderabad Hyperscale - 200 Racks",
			Description: "Large hyperscale facility in Hyderabad that shifts batch work into night hours.",
			State:       "Telangana",
			Source:      "builtin",
			DGHours:     6,
			Profile: model.ConsumptionProfile{
				ITLoadKWh: 720000, PUE: 1.45, ContractedDemandKVA: 1500, RecordedDemandKVA: 1420,
				PowerFactor: 0.95, DGKWh: 5000,
				Pattern: model.Pattern{PeakPercent: 25, NormalPercent: 35, OffPeakPercent: 40},
			},
		},
		demo("Maharashtra", model.ConsumptionProfile{
			ITLoadKWh: 180000, PUE: 1.62, ContractedDemandKVA: 400, RecordedDemandKVA: 380,
			PowerFactor: 0.95, DGKWh: 3200,
			Pattern: model.Pattern{PeakPercent: 34, NormalPercent: 41, OffPeakPercent: 25},
		}),
		demo("Tamil Nadu", model.ConsumptionProfile{
			ITLoadKWh: 220000, PUE: 1.58, ContractedDemandKVA: 520, RecordedDemandKVA: 500,
			PowerFactor: 0.94, DGKWh: 2800,
			Pattern: model.Pattern{PeakPercent: 36, NormalPercent: 44, OffPeakPercent: 20},
		}),
		demo("Karnataka", model.ConsumptionProfile{
			ITLoadKWh: 190000, PUE: 1.55, ContractedDemandKVA: 430, RecordedDemandKVA: 410,
			PowerFactor: 0.96, DGKWh: 2200,
			Pattern: model.Pattern{PeakPercent: 28, NormalPercent: 47, OffPeakPercent: 25},
		}),
		demo("Telangana", model.ConsumptionProfile{
			ITLoadKWh: 240000, PUE: 1.57, ContractedDemandKVA: 560, RecordedDemandKVA: 535,
			PowerFactor: 0.97, DGKWh: 2600,
			Pattern: model.Pattern{PeakPercent: 33, NormalPercent: 50, OffPeakPercent: 17},
		}),
	}
}

func demo(state string, p model.ConsumptionProfile) Scenario {
	return Scenario{
		ID:      "demo-" + slug(state),
		Name:    state + " demo facility",
		State:   state,
		Source:  "builtin",
		Profile: p,
	}
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	dash := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// LoadScenarioDir loads every *.yaml / *.yml scenario in dir, sorted by
// file name. A missing directory yields no scenarios. Files that fail to
// load are reported in skipped rather than aborting the listing.
func LoadScenarioDir(dir string) (scenarios []Scenario, skipped map[string]error, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		name := entry.Name()
		ext := filepath.Ext(name)
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, name)
		c, err := config.Load(path)
		if err != nil {
			if skipped == nil {
				skipped = map[string]error{}
			}
			skipped[name] = err
			continue
		}
		scenarios = append(scenarios, ScenarioFromConfig(strings.TrimSuffix(name, ext), path, c))
	}
	return scenarios, skipped, nil
}

// ScenarioFromConfig converts a loaded scenario file. The ID is the file
// name without extension.
func ScenarioFromConfig(id, source string, c *config.Config) Scenario {
	name := c.Name
	if name == "" {
		name = id
	}
	return Scenario{
		ID:        id,
		Name:      name,
		State:     c.State,
		Source:    source,
		Profile:   c.Profile.ToProfile(),
		LoadCurve: c.LoadCurve,
		Averaging: c.Averaging,
	}
}

// Curve returns the scenario's load curve when it has a full 24 values.
func (s Scenario) Curve() (billing.LoadCurve, bool) {
	c := config.Config{LoadCurve: s.LoadCurve}
	return c.Curve()
}

// Calculator returns a calculator for the scenario's averaging mode.
func (s Scenario) Calculator() *billing.Calculator {
	c := config.Config{Averaging: s.Averaging}
	return c.Calculator()
}

// FindScenario looks up a scenario by ID.
func FindScenario(all []Scenario, id string) (Scenario, bool) {
	for _, s := range all {
		if s.ID == id {
			return s, true
		}
	}
	return Scenario{}, false
}

// GroupByState splits scenarios into state-keyed slices, preserving order.
func GroupByState(all []Scenario) map[string][]Scenario {
	out := map[string][]Scenario{}
	for _, s := range all {
		out[s.State] = append(out[s.State], s)
	}
	return out
}
