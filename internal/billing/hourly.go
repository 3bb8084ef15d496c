package billing

import (
	"github.com/nitishagar/bharatdcim/internal/model"
	"github.com/nitishagar/bharatdcim/internal/tariff"
)

// LoadCurve is a relative 24-hour load shape, index = hour of day.
// Only the proportions matter.
type LoadCurve [24]float64

// biHourly is a typical colocation day sampled every two hours from 00:00.
var biHourly = [12]float64{46, 40, 37, 35, 38, 45, 53, 61, 72, 84, 78, 65}

// DefaultLoadCurve expands the two-hourly template to 24 hours.
func DefaultLoadCurve() LoadCurve {
	var c LoadCurve
	for i, v := range biHourly {
		c[2*i] = v
		c[2*i+1] = v
	}
	return c
}

// Weights normalizes the curve to shares that sum to 1. Negative entries
// count as zero. A curve with no positive entries has all-zero weights.
func (c LoadCurve) Weights() [24]float64 {
	var w [24]float64
	sum := 0.0
	for _, v := range c {
		if v > 0 {
			sum += v
		}
	}
	if sum == 0 {
		return w
	}
	for h, v := range c {
		if v > 0 {
			w[h] = v / sum
		}
	}
	return w
}

// PatternFromCurve classifies every hour of the day against the schedule and
// returns the share of the curve falling into each category. Hours outside
// every slot count as normal. A curve with no positive load yields 0/100/0.
func PatternFromCurve(s model.TariffSchedule, curve LoadCurve) model.Pattern {
	w := curve.Weights()
	var p model.Pattern
	total := 0.0
	for h := 0; h < 24; h++ {
		share := w[h] * 100
		total += share
		switch tariff.CategoryForHour(s, h) {
		case model.CategoryPeak:
			p.PeakPercent += share
		case model.CategoryOffPeak:
			p.OffPeakPercent += share
		default:
			p.NormalPercent += share
		}
	}
	if total == 0 {
		return model.Pattern{NormalPercent: 100}
	}
	return p
}

// Hourly bills a profile whose category split comes from a load curve
// instead of the profile's own pattern. The returned ledger spreads the
// month's consumption over the 24 hours of the curve and prices each hour
// at its own slot rate, so its energy column need not add up to the
// breakdown's category-averaged energy charges.
func (c *Calculator) Hourly(s model.TariffSchedule, p model.ConsumptionProfile, curve LoadCurve) (model.BillBreakdown, []model.HourlyRow) {
	p.Pattern = PatternFromCurve(s, curve)
	bill := c.Calculate(s, p)

	w := curve.Weights()
	rows := make([]model.HourlyRow, 0, 24)
	for h := 0; h < 24; h++ {
		row := model.HourlyRow{
			Hour:           h,
			Category:       model.CategoryNormal,
			Rate:           s.BaseEnergyRate,
			LoadWeight:     w[h],
			ConsumptionKWh: bill.RawConsumption * w[h],
			BilledUnits:    bill.BilledConsumption * w[h],
		}
		if slot, ok := tariff.SlotForHour(s, h); ok {
			row.SlotName = slot.Name
			row.Category = slot.Category
			row.MatchedSlot = true
			row.Rate = tariff.EffectiveRate(s.BaseEnergyRate, slot)
		}
		row.EnergyCharge = row.BilledUnits * row.Rate
		rows = append(rows, row)
	}
	return bill, rows
}
