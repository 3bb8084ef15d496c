package analysis

import (
	"math"
	"sort"

	"github.com/nitishagar/bharatdcim/internal/billing"
	"github.com/nitishagar/bharatdcim/internal/model"
	"github.com/nitishagar/bharatdcim/internal/tariff"
)

// RateSpread summarizes how much a schedule's hourly energy rate moves over
// the day. It looks only at slot rates, not at any particular profile.
type RateSpread struct {
	State     string `json:"state"`
	StateCode string `json:"state_code"`

	MinRate  float64 `json:"min_rate"`
	MaxRate  float64 `json:"max_rate"`
	MeanRate float64 `json:"mean_rate"`
	P10Rate  float64 `json:"p10_rate"`
	P90Rate  float64 `json:"p90_rate"`

	PeakHours    int `json:"peak_hours"`
	NormalHours  int `json:"normal_hours"`
	OffPeakHours int `json:"off_peak_hours"`

	// ShiftValue is the energy-charge saving per billed unit moved from the
	// peak category to the off-peak category, at the calculator's averaged
	// category rates.
	ShiftValue float64 `json:"shift_value_per_unit"`
}

// ComputeSpread rates each of the 24 hours through the slot lookup (with
// the usual no-slot fallback) and summarizes the distribution.
func ComputeSpread(s model.TariffSchedule, mode billing.AveragingMode) RateSpread {
	sp := RateSpread{State: s.State, StateCode: s.StateCode}

	sum := 0.0
	minv := math.Inf(1)
	maxv := math.Inf(-1)
	vals := make([]float64, 0, 24)
	for h := 0; h < 24; h++ {
		v := tariff.RateForHour(s, h)
		vals = append(vals, v)
		sum += v
		if v < minv {
			minv = v
		}
		if v > maxv {
			maxv = v
		}
		switch tariff.CategoryForHour(s, h) {
		case model.CategoryPeak:
			sp.PeakHours++
		case model.CategoryOffPeak:
			sp.OffPeakHours++
		default:
			sp.NormalHours++
		}
	}
	sort.Float64s(vals)
	sp.MinRate = minv
	sp.MaxRate = maxv
	sp.MeanRate = sum / float64(len(vals))
	sp.P10Rate = percentileSorted(vals, 0.10)
	sp.P90Rate = percentileSorted(vals, 0.90)

	sp.ShiftValue = billing.CategoryRate(s, model.CategoryPeak, mode) -
		billing.CategoryRate(s, model.CategoryOffPeak, mode)
	return sp
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// LoadShift is the effect of moving part of the peak share to off-peak.
type LoadShift struct {
	Points   float64             `json:"points"`
	Before   model.BillBreakdown `json:"before"`
	After    model.BillBreakdown `json:"after"`
	Pattern  model.Pattern       `json:"shifted_pattern"`
	Savings  float64             `json:"monthly_savings"`
	RateDrop float64             `json:"effective_rate_drop"`
}

// ShiftPeakToOffPeak moves up to points percentage points of consumption
// from peak to off-peak (never more than the current peak share) and
// reports the resulting bill change.
func ShiftPeakToOffPeak(calc *billing.Calculator, s model.TariffSchedule, p model.ConsumptionProfile, points float64) LoadShift {
	moved := math.Max(0, math.Min(points, p.Pattern.PeakPercent))

	shifted := p
	shifted.Pattern.PeakPercent -= moved
	shifted.Pattern.OffPeakPercent += moved

	before := calc.Calculate(s, p)
	after := calc.Calculate(s, shifted)
	return LoadShift{
		Points:   moved,
		Before:   before,
		After:    after,
		Pattern:  shifted.Pattern,
		Savings:  before.Total - after.Total,
		RateDrop: before.EffectiveRate - after.EffectiveRate,
	}
}
