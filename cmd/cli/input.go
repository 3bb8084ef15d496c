package main

import (
	"fmt"

	"github.com/nitishagar/bharatdcim/internal/billing"
	"github.com/nitishagar/bharatdcim/internal/config"
	"github.com/nitishagar/bharatdcim/internal/data"
	"github.com/nitishagar/bharatdcim/internal/estimator"
	"github.com/nitishagar/bharatdcim/internal/model"

	"github.com/spf13/cobra"
)

// profileFlags are the facility inputs shared by bill, hourly, compare and
// shift. A --config or --scenario replaces the inline flags, except that an
// explicit --state or --averaging still overrides.
type profileFlags struct {
	configPath  string
	scenarioID  string
	scenarioDir string

	state     string
	averaging string
	profile   config.ProfileConfig
	pattern   model.Pattern
}

func (f *profileFlags) bind(cmd *cobra.Command, withState bool) {
	fl := cmd.Flags()
	fl.StringVar(&f.configPath, "config", "", "scenario YAML file")
	fl.StringVar(&f.scenarioID, "scenario", "", "builtin or --scenario-dir scenario id")
	fl.StringVar(&f.scenarioDir, "scenario-dir", config.FromEnv().ScenarioDir, "directory of scenario YAML files")
	if withState {
		fl.StringVar(&f.state, "state", "", "state name or code")
	}
	fl.StringVar(&f.averaging, "averaging", "", "category averaging: slot_count (default) or duration")

	fl.Float64Var(&f.profile.ITLoadKWh, "it-load", 0, "monthly IT load, kWh")
	fl.Float64Var(&f.profile.PUE, "pue", 0, "power usage effectiveness (default 1)")
	fl.Float64Var(&f.profile.ContractedDemandKVA, "contracted", 0, "contracted demand, kVA")
	fl.Float64Var(&f.profile.RecordedDemandKVA, "recorded", 0, "recorded maximum demand, kVA (default: contracted)")
	fl.Float64Var(&f.profile.PowerFactor, "pf", 0, "average power factor, (0, 1]")
	fl.Float64Var(&f.profile.DGKWh, "dg", 0, "diesel generator output, kWh")
	fl.Float64Var(&f.pattern.PeakPercent, "peak", 0, "peak share of consumption, %")
	fl.Float64Var(&f.pattern.NormalPercent, "normal", 0, "normal share of consumption, %")
	fl.Float64Var(&f.pattern.OffPeakPercent, "off-peak", 0, "off-peak share of consumption, %")
}

func (f *profileFlags) patternSet(cmd *cobra.Command) bool {
	fl := cmd.Flags()
	return fl.Changed("peak") || fl.Changed("normal") || fl.Changed("off-peak")
}

// input resolves the flags into an estimator input. On the hourly path the
// inline pattern is optional.
func (f *profileFlags) input(cmd *cobra.Command, hourly bool) (estimator.Input, error) {
	var in estimator.Input

	switch {
	case f.scenarioID != "":
		s, err := f.findScenario()
		if err != nil {
			return in, err
		}
		in = estimator.FromScenario(s)
	case f.configPath != "":
		cfg, err := config.Load(f.configPath)
		if err != nil {
			return in, err
		}
		in = estimator.FromConfig(cfg)
	default:
		cfg := &config.Config{State: f.state, Profile: f.profile}
		if f.patternSet(cmd) {
			p := f.pattern
			cfg.Profile.Pattern = &p
		}
		cfg.ApplyDefaults()
		if err := cfg.Profile.Validate(hourly); err != nil {
			return in, fmt.Errorf("profile invalid: %w", err)
		}
		in = estimator.FromConfig(cfg)
	}

	if cmd.Flags().Changed("state") {
		in.State = f.state
	}
	if cmd.Flags().Changed("averaging") {
		mode := billing.AveragingMode(f.averaging)
		if !mode.Valid() {
			return in, fmt.Errorf("averaging must be %q or %q, got %q",
				billing.AveragingSlotCount, billing.AveragingDuration, f.averaging)
		}
		in.Averaging = mode
	}
	in.Hourly = hourly
	return in, nil
}

func (f *profileFlags) findScenario() (data.Scenario, error) {
	all := data.BuiltinScenarios()
	fromDir, _, err := data.LoadScenarioDir(f.scenarioDir)
	if err != nil {
		return data.Scenario{}, err
	}
	all = append(all, fromDir...)
	s, ok := data.FindScenario(all, f.scenarioID)
	if !ok {
		return data.Scenario{}, fmt.Errorf("scenario %q not found (see 'bharatdcim scenarios')", f.scenarioID)
	}
	return s, nil
}
