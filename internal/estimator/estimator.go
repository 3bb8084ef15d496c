// Package estimator runs a bill estimate end to end: resolve the schedule,
// pick the pattern or hourly path, calculate, and record metrics. It is the
// shared entry point for the HTTP API and the CLI.
package estimator

import (
	"fmt"
	"time"

	"github.com/nitishagar/bharatdcim/internal/billing"
	"github.com/nitishagar/bharatdcim/internal/config"
	"github.com/nitishagar/bharatdcim/internal/data"
	"github.com/nitishagar/bharatdcim/internal/metrics"
	"github.com/nitishagar/bharatdcim/internal/model"
	"github.com/nitishagar/bharatdcim/internal/tariff"

	"github.com/google/uuid"
)

const (
	PathPattern = "pattern"
	PathHourly  = "hourly"
)

// Input is one estimate request. When Curve is set (or Hourly is true) the
// category split is derived from the curve and Profile.Pattern is ignored.
type Input struct {
	State     string
	Averaging billing.AveragingMode
	Profile   model.ConsumptionProfile
	Curve     *billing.LoadCurve
	Hourly    bool
}

// FromScenario builds an input from a stored scenario.
func FromScenario(s data.Scenario) Input {
	in := Input{
		State:     s.State,
		Averaging: s.Calculator().Averaging,
		Profile:   s.Profile,
	}
	if c, ok := s.Curve(); ok {
		in.Curve = &c
	}
	return in
}

// FromConfig builds an input from a loaded scenario file.
func FromConfig(c *config.Config) Input {
	in := Input{
		State:     c.State,
		Averaging: c.Calculator().Averaging,
		Profile:   c.Profile.ToProfile(),
	}
	if lc, ok := c.Curve(); ok {
		in.Curve = &lc
	}
	return in
}

// Estimate runs the calculator. It never fails: an unknown state is billed
// under the registry default and reported through Matched and Warnings.
func Estimate(reg *tariff.Registry, in Input) data.Estimate {
	schedule, matched := reg.Schedule(in.State)
	metrics.ObserveLookup(matched)

	calc := billing.New()
	if in.Averaging.Valid() {
		calc.Averaging = in.Averaging
	}

	est := data.Estimate{
		ID:             uuid.NewString(),
		CreatedAt:      time.Now().UTC(),
		RequestedState: in.State,
		State:          schedule.State,
		Matched:        matched,
		Averaging:      string(calc.Averaging),
	}
	if !matched {
		est.Warnings = append(est.Warnings,
			fmt.Sprintf("state %q not found; billed under %s", in.State, schedule.State))
	}

	if in.Curve != nil || in.Hourly {
		curve := billing.DefaultLoadCurve()
		if in.Curve != nil {
			curve = *in.Curve
		}
		est.Path = PathHourly
		est.Bill, est.Hourly = calc.Hourly(schedule, in.Profile, curve)
		est.Profile = in.Profile
		est.Profile.Pattern = billing.PatternFromCurve(schedule, curve)
	} else {
		est.Path = PathPattern
		est.Profile = in.Profile
		est.Bill = calc.Calculate(schedule, in.Profile)
		if w := config.PatternWarning(in.Profile.Pattern); w != "" {
			est.Warnings = append(est.Warnings, w)
		}
	}

	if !billing.IsFinite(est.Bill) {
		est.Warnings = append(est.Warnings, "bill contains non-finite values; check power factor")
	}

	metrics.ObserveEstimate(schedule.State, string(schedule.BillingUnit), est.Path, est.Bill.EffectiveRate)
	return est
}
