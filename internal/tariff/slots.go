package tariff

import "github.com/nitishagar/bharatdcim/internal/model"

// EffectiveRate applies a slot to a base rate: multiplier first, then the
// additive adjustment. The result is not clamped and may be negative.
func EffectiveRate(base float64, slot model.TimeSlot) float64 {
	return base*slot.RateMultiplier + slot.RateAdder
}

// SlotForHour returns the first slot whose range contains hour (0-23),
// honoring ranges that wrap past midnight.
func SlotForHour(s model.TariffSchedule, hour int) (model.TimeSlot, bool) {
	for _, slot := range s.TimeSlots {
		if slot.Contains(hour) {
			return slot, true
		}
	}
	return model.TimeSlot{}, false
}

// CategoryForHour classifies an hour, treating an unmatched hour as normal.
func CategoryForHour(s model.TariffSchedule, hour int) model.SlotCategory {
	if slot, ok := SlotForHour(s, hour); ok {
		return slot.Category
	}
	return model.CategoryNormal
}

// RateForHour is the effective rate at an hour, or the base rate when no
// slot matches.
func RateForHour(s model.TariffSchedule, hour int) float64 {
	if slot, ok := SlotForHour(s, hour); ok {
		return EffectiveRate(s.BaseEnergyRate, slot)
	}
	return s.BaseEnergyRate
}
