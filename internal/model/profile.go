package model

import "math"

// Pattern is the share of billed consumption falling in each slot category,
// in percent. The three values are expected to sum to 100 but nothing here
// enforces it.
type Pattern struct {
	PeakPercent    float64 `json:"peak_percent" yaml:"peak"`
	NormalPercent  float64 `json:"normal_percent" yaml:"normal"`
	OffPeakPercent float64 `json:"off_peak_percent" yaml:"off_peak"`
}

func (p Pattern) Sum() float64 {
	return p.PeakPercent + p.NormalPercent + p.OffPeakPercent
}

// Share returns the percent for one category (0 for an unknown category).
func (p Pattern) Share(c SlotCategory) float64 {
	switch c {
	case CategoryPeak:
		return p.PeakPercent
	case CategoryNormal:
		return p.NormalPercent
	case CategoryOffPeak:
		return p.OffPeakPercent
	default:
		return 0
	}
}

func (p *Pattern) set(c SlotCategory, v float64) {
	switch c {
	case CategoryPeak:
		p.PeakPercent = v
	case CategoryNormal:
		p.NormalPercent = v
	case CategoryOffPeak:
		p.OffPeakPercent = v
	}
}

// Rebalance sets one category to value (clamped to [0,100]) and splits the
// remainder over the other two in proportion to their current values,
// rounded to whole percents. When both others are zero the remainder is
// split equally.
func (p Pattern) Rebalance(c SlotCategory, value float64) Pattern {
	if !c.Valid() {
		return p
	}
	v := math.Max(0, math.Min(100, value))
	var others []SlotCategory
	for _, o := range Categories {
		if o != c {
			others = append(others, o)
		}
	}
	remaining := 100 - v
	otherSum := p.Share(others[0]) + p.Share(others[1])

	out := p
	out.set(c, v)
	if otherSum == 0 {
		out.set(others[0], remaining/2)
		out.set(others[1], remaining/2)
		return out
	}
	out.set(others[0], math.Round(remaining*p.Share(others[0])/otherSum))
	out.set(others[1], math.Round(remaining*p.Share(others[1])/otherSum))
	return out
}

// ConsumptionProfile is one month of facility load supplied by the caller.
// Units:
// - ITLoadKWh: IT-equipment energy, kWh
// - PUE: facility energy / IT energy
// - demands: kVA
// - PowerFactor: 0..1
// - DGKWh: diesel-generator energy, kWh
type ConsumptionProfile struct {
	ITLoadKWh           float64 `json:"it_load_kwh" yaml:"it_load_kwh"`
	PUE                 float64 `json:"pue" yaml:"pue"`
	ContractedDemandKVA float64 `json:"contracted_demand_kva" yaml:"contracted_demand_kva"`
	RecordedDemandKVA   float64 `json:"recorded_demand_kva" yaml:"recorded_demand_kva"`
	PowerFactor         float64 `json:"power_factor" yaml:"power_factor"`
	DGKWh               float64 `json:"dg_kwh" yaml:"dg_kwh"`
	Pattern             Pattern `json:"pattern" yaml:"pattern"`
}

// FacilityKWh is the raw grid consumption the bill is rated on: IT load
// scaled by PUE.
func (p ConsumptionProfile) FacilityKWh() float64 {
	return p.ITLoadKWh * p.PUE
}

// BilledDemandKVA is the higher of contracted and recorded demand.
func (p ConsumptionProfile) BilledDemandKVA() float64 {
	return math.Max(p.ContractedDemandKVA, p.RecordedDemandKVA)
}
