package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/nitishagar/bharatdcim/internal/billing"
	"github.com/nitishagar/bharatdcim/internal/model"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk scenario shape (YAML).
type Config struct {
	Name string `yaml:"name"`
	// Optional: load a base scenario from a separate YAML (e.g. examples/scenarios/*.yaml).
	// Fields set here override the base.
	ScenarioFile string        `yaml:"scenario_file"`
	State        string        `yaml:"state"`
	Averaging    string        `yaml:"averaging"`
	Profile      ProfileConfig `yaml:"profile"`
	// LoadCurve, when present, must hold 24 hourly values and replaces
	// profile.pattern with a pattern derived from the curve.
	LoadCurve []float64 `yaml:"load_curve"`
}

type ProfileConfig struct {
	ITLoadKWh           float64 `yaml:"it_load_kwh"`
	PUE                 float64 `yaml:"pue"`
	ContractedDemandKVA float64 `yaml:"contracted_demand_kva"`
	RecordedDemandKVA   float64 `yaml:"recorded_demand_kva"`
	PowerFactor         float64 `yaml:"power_factor"`
	DGKWh               float64 `yaml:"dg_kwh"`
	// Pattern is a pointer so that an explicit 100/0/0 split survives merging.
	Pattern *model.Pattern `yaml:"pattern"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it or fill
// defaults. Useful for printing partial scenarios.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if c.ScenarioFile != "" {
		basePath := c.ScenarioFile
		if !filepath.IsAbs(basePath) {
			// Prefer paths relative to the config file, then fall back to cwd.
			cand := filepath.Join(filepath.Dir(path), basePath)
			if _, err := os.Stat(cand); err == nil {
				basePath = cand
			}
		}
		base, err := loadBaseFile(basePath)
		if err != nil {
			return nil, fmt.Errorf("scenario_file %s: %w", c.ScenarioFile, err)
		}
		merged := MergeConfig(*base, *c)
		c = &merged
	}
	return c, nil
}

// Parse decodes a single scenario document without following scenario_file.
func Parse(raw []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func loadBaseFile(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}

// ApplyDefaults fills PUE = 1 and recorded demand = contracted demand when
// they are omitted.
func (c *Config) ApplyDefaults() {
	if c.Profile.PUE == 0 {
		c.Profile.PUE = 1
	}
	if c.Profile.RecordedDemandKVA == 0 {
		c.Profile.RecordedDemandKVA = c.Profile.ContractedDemandKVA
	}
	if c.Averaging == "" {
		c.Averaging = string(billing.AveragingSlotCount)
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.State == "" {
		return errors.New("state is required")
	}
	if c.Averaging != "" && !billing.AveragingMode(c.Averaging).Valid() {
		return fmt.Errorf("averaging must be %q or %q, got %q",
			billing.AveragingSlotCount, billing.AveragingDuration, c.Averaging)
	}
	if err := c.Profile.Validate(c.LoadCurve != nil); err != nil {
		return fmt.Errorf("profile invalid: %w", err)
	}
	if c.LoadCurve != nil {
		if len(c.LoadCurve) != 24 {
			return fmt.Errorf("load_curve must have 24 values, got %d", len(c.LoadCurve))
		}
		for h, v := range c.LoadCurve {
			if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("load_curve[%d] must be a non-negative number, got %v", h, v)
			}
		}
	}
	return nil
}

// Validate checks the caller-side preconditions the calculator itself does
// not enforce. The pattern sum is not checked; see PatternWarning.
func (p ProfileConfig) Validate(patternOptional bool) error {
	if !(p.PowerFactor > 0 && p.PowerFactor <= 1) {
		return fmt.Errorf("power_factor must be in (0, 1], got %v", p.PowerFactor)
	}
	if !(p.PUE > 0) {
		return fmt.Errorf("pue must be positive, got %v", p.PUE)
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"it_load_kwh", p.ITLoadKWh},
		{"contracted_demand_kva", p.ContractedDemandKVA},
		{"recorded_demand_kva", p.RecordedDemandKVA},
		{"dg_kwh", p.DGKWh},
	} {
		if f.v < 0 {
			return fmt.Errorf("%s must not be negative, got %v", f.name, f.v)
		}
	}
	if p.Pattern == nil {
		if patternOptional {
			return nil
		}
		return errors.New("pattern is required")
	}
	return ValidatePattern(*p.Pattern)
}

// ValidatePattern checks that each share lies in [0, 100].
func ValidatePattern(p model.Pattern) error {
	for _, c := range model.Categories {
		if v := p.Share(c); v < 0 || v > 100 {
			return fmt.Errorf("pattern %s must be in [0, 100], got %v", c, v)
		}
	}
	return nil
}

// PatternWarning describes a pattern that does not sum to 100, or returns
// "" when it does. Such patterns are billed as given.
func PatternWarning(p model.Pattern) string {
	if sum := p.Sum(); math.Abs(sum-100) > 1e-9 {
		return fmt.Sprintf("pattern sums to %.2f%%, not 100%%; energy charges scale accordingly", sum)
	}
	return ""
}

// ToProfile converts to the calculator's input. A missing pattern becomes
// the zero pattern.
func (p ProfileConfig) ToProfile() model.ConsumptionProfile {
	out := model.ConsumptionProfile{
		ITLoadKWh:           p.ITLoadKWh,
		PUE:                 p.PUE,
		ContractedDemandKVA: p.ContractedDemandKVA,
		RecordedDemandKVA:   p.RecordedDemandKVA,
		PowerFactor:         p.PowerFactor,
		DGKWh:               p.DGKWh,
	}
	if p.Pattern != nil {
		out.Pattern = *p.Pattern
	}
	return out
}

// Curve returns the configured load curve, if any.
func (c *Config) Curve() (billing.LoadCurve, bool) {
	var lc billing.LoadCurve
	if len(c.LoadCurve) != 24 {
		return lc, false
	}
	copy(lc[:], c.LoadCurve)
	return lc, true
}

// Calculator builds a calculator for the configured averaging mode.
func (c *Config) Calculator() *billing.Calculator {
	calc := billing.New()
	if m := billing.AveragingMode(c.Averaging); m.Valid() {
		calc.Averaging = m
	}
	return calc
}

// MergeConfig overlays the set fields of override onto base.
func MergeConfig(base, override Config) Config {
	out := base
	out.ScenarioFile = override.ScenarioFile
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.State != "" {
		out.State = override.State
	}
	if override.Averaging != "" {
		out.Averaging = override.Averaging
	}
	if override.LoadCurve != nil {
		out.LoadCurve = append([]float64(nil), override.LoadCurve...)
	}
	out.Profile = MergeProfile(base.Profile, override.Profile)
	return out
}

// MergeProfile overlays non-zero fields from override onto base. The
// pattern is replaced as a whole when override sets one.
func MergeProfile(base, override ProfileConfig) ProfileConfig {
	out := base
	if override.ITLoadKWh != 0 {
		out.ITLoadKWh = override.ITLoadKWh
	}
	if override.PUE != 0 {
		out.PUE = override.PUE
	}
	if override.ContractedDemandKVA != 0 {
		out.ContractedDemandKVA = override.ContractedDemandKVA
	}
	if override.RecordedDemandKVA != 0 {
		out.RecordedDemandKVA = override.RecordedDemandKVA
	}
	if override.PowerFactor != 0 {
		out.PowerFactor = override.PowerFactor
	}
	// Note: DG energy is commonly 0 in overrides, so 0 cannot clear a base value.
	if override.DGKWh != 0 {
		out.DGKWh = override.DGKWh
	}
	if override.Pattern != nil {
		p := *override.Pattern
		out.Pattern = &p
	}
	return out
}
