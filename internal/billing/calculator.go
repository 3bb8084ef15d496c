// Package billing turns a tariff schedule and a consumption profile into an
// itemized bill estimate. Everything here is pure: no I/O, no shared state.
package billing

import (
	"math"

	"github.com/nitishagar/bharatdcim/internal/model"
	"github.com/nitishagar/bharatdcim/internal/tariff"
)

// TaxRate is the flat GST applied to the subtotal.
const TaxRate = 0.18

// AveragingMode selects how same-category slot rates are combined.
type AveragingMode string

const (
	// AveragingSlotCount averages slot rates unweighted, one vote per slot.
	AveragingSlotCount AveragingMode = "slot_count"
	// AveragingDuration weights each slot rate by the hours it covers.
	AveragingDuration AveragingMode = "duration"
)

func (m AveragingMode) Valid() bool {
	return m == AveragingSlotCount || m == AveragingDuration
}

type Calculator struct {
	Averaging AveragingMode
}

// New returns a calculator with slot-count averaging.
func New() *Calculator { return &Calculator{Averaging: AveragingSlotCount} }

// Calculate estimates a bill with the default calculator.
func Calculate(s model.TariffSchedule, p model.ConsumptionProfile) model.BillBreakdown {
	return New().Calculate(s, p)
}

// Calculate runs the bill pipeline. It does not validate its inputs: a zero
// power factor under kVAh billing yields Inf/NaN, and percentages that do
// not sum to 100 are used as given.
func (c *Calculator) Calculate(s model.TariffSchedule, p model.ConsumptionProfile) model.BillBreakdown {
	raw := p.FacilityKWh()

	billed := raw
	if s.BillingUnit == model.UnitKVAh {
		billed = raw / p.PowerFactor
	}

	rates := model.CategoryRates{
		Peak:    CategoryRate(s, model.CategoryPeak, c.mode()),
		Normal:  CategoryRate(s, model.CategoryNormal, c.mode()),
		OffPeak: CategoryRate(s, model.CategoryOffPeak, c.mode()),
	}

	energy := model.EnergyCharges{
		Peak:    billed * (p.Pattern.PeakPercent / 100) * rates.Peak,
		Normal:  billed * (p.Pattern.NormalPercent / 100) * rates.Normal,
		OffPeak: billed * (p.Pattern.OffPeakPercent / 100) * rates.OffPeak,
	}
	energy.Total = energy.Peak + energy.Normal + energy.OffPeak

	wheeling := billed * s.WheelingCharge
	demandKVA := p.BilledDemandKVA()
	demand := demandKVA * s.DemandCharge

	var fuel float64
	switch s.FuelAdjustment.Kind {
	case model.FuelPercentage:
		fuel = energy.Total * (s.FuelAdjustment.Amount / 100)
	default:
		fuel = billed * s.FuelAdjustment.Amount
	}

	var pfPenalty float64
	if p.PowerFactor < s.PowerFactorPenalty.Threshold {
		shortfall := (s.PowerFactorPenalty.Threshold - p.PowerFactor) * 100
		pfPenalty = raw * s.PowerFactorPenalty.Rate * (shortfall / 10)
	}

	dg := p.DGKWh * s.DGRate
	duty := (energy.Total + wheeling + demand) * s.ElectricityDutyRate

	subtotal := energy.Total + wheeling + demand + fuel + pfPenalty + dg + duty
	tax := subtotal * TaxRate
	total := subtotal + tax

	return model.BillBreakdown{
		RawConsumption:     raw,
		BilledConsumption:  billed,
		BillingUnit:        s.BillingUnit,
		BilledDemandKVA:    demandKVA,
		Rates:              rates,
		EnergyCharges:      energy,
		WheelingCharges:    wheeling,
		DemandCharges:      demand,
		FuelAdjustment:     fuel,
		ElectricityDuty:    duty,
		PowerFactorPenalty: pfPenalty,
		DGCharges:          dg,
		Subtotal:           subtotal,
		Tax:                tax,
		Total:              total,
		EffectiveRate:      total / (raw + p.DGKWh),
	}
}

func (c *Calculator) mode() AveragingMode {
	if c == nil || !c.Averaging.Valid() {
		return AveragingSlotCount
	}
	return c.Averaging
}

// CategoryRate averages the effective rates of a category's slots. A
// category with no slots is rated at the plain base rate.
//
// Slot-count averaging lets a 1-hour slot weigh as much as a 9-hour one;
// AveragingDuration corrects for that.
func CategoryRate(s model.TariffSchedule, c model.SlotCategory, mode AveragingMode) float64 {
	slots := s.SlotsOf(c)
	if len(slots) == 0 {
		return s.BaseEnergyRate
	}
	if mode == AveragingDuration {
		var sum, hours float64
		for _, slot := range slots {
			h := float64(slot.Hours())
			sum += tariff.EffectiveRate(s.BaseEnergyRate, slot) * h
			hours += h
		}
		if hours > 0 {
			return sum / hours
		}
		// every slot is empty; fall through to the unweighted mean
	}
	sum := 0.0
	for _, slot := range slots {
		sum += tariff.EffectiveRate(s.BaseEnergyRate, slot)
	}
	return sum / float64(len(slots))
}

// IsFinite reports whether every currency field of b is a finite number.
// Callers that let a zero power factor through under kVAh billing can use it
// to detect the resulting Inf/NaN.
func IsFinite(b model.BillBreakdown) bool {
	for _, v := range []float64{
		b.BilledConsumption, b.EnergyCharges.Total, b.WheelingCharges, b.DemandCharges,
		b.FuelAdjustment, b.ElectricityDuty, b.PowerFactorPenalty, b.DGCharges,
		b.Subtotal, b.Tax, b.Total, b.EffectiveRate,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
