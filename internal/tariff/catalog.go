package tariff

import "github.com/nitishagar/bharatdcim/internal/model"

// DefaultState is the schedule returned for unknown state names by MustBuiltin.
const DefaultState = "Maharashtra"

// Builtin returns the bundled HT industrial/commercial schedules for FY 2025-26.
// Rates are representative figures published by the state commissions
// (MERC, TNERC, KERC, TSERC); actual rates vary by circle and voltage.
// Each call returns fresh slices.
func Builtin() []model.TariffSchedule {
	return []model.TariffSchedule{
		{
			State:          "Maharashtra",
			StateCode:      "MH",
			Utility:        "MSEDCL / MERC",
			Category:       "HT Industrial / Commercial",
			BillingUnit:    model.UnitKVAh,
			BaseEnergyRate: 8.20,
			WheelingCharge: 0.74,
			DemandCharge:   400,
			TimeSlots: []model.TimeSlot{
				{Name: "Off-Peak", StartHour: 0, EndHour: 6, Category: model.CategoryOffPeak, RateMultiplier: 1.0},
				{Name: "Normal", StartHour: 6, EndHour: 9, Category: model.CategoryNormal, RateMultiplier: 1.0},
				{Name: "Solar Hours", StartHour: 9, EndHour: 17, Category: model.CategoryOffPeak, RateMultiplier: 0.85},
				{Name: "Peak", StartHour: 17, EndHour: 24, Category: model.CategoryPeak, RateMultiplier: 1.25},
			},
			FuelAdjustment:      model.FuelAdjustment{Amount: 0.15, Kind: model.FuelAbsolute},
			ElectricityDutyRate: 0.16,
			PowerFactorPenalty:  model.PowerFactorPenalty{Threshold: 0.90, Rate: 0.25},
			DGRate:              22.0,
			Notes:               "Peak hours 17:00-24:00 carry a +25% ToD surcharge. Solar hours (09:00-17:00) receive a 15% rebate. Billed in kVAh, so low power factor raises billed volume directly.",
			DemandBillingRule:   "Billing demand is the higher of actual maximum demand or 75% of contract demand.",
			RegulatoryStatus:    "Approved - MERC MYT order for FY 2025-26",
		},
		{
			State:          "Tamil Nadu",
			StateCode:      "TN",
			Utility:        "TANGEDCO / TNERC",
			Category:       "HT Industrial",
			BillingUnit:    model.UnitKWh,
			BaseEnergyRate: 7.50,
			DemandCharge:   608,
			TimeSlots: []model.TimeSlot{
				{Name: "Night Off-Peak", StartHour: 22, EndHour: 5, Category: model.CategoryOffPeak, RateMultiplier: 0.95},
				{Name: "Normal", StartHour: 5, EndHour: 6, Category: model.CategoryNormal, RateMultiplier: 1.0},
				{Name: "Morning Peak", StartHour: 6, EndHour: 10, Category: model.CategoryPeak, RateMultiplier: 1.25},
				{Name: "Normal", StartHour: 10, EndHour: 18, Category: model.CategoryNormal, RateMultiplier: 1.0},
				{Name: "Evening Peak", StartHour: 18, EndHour: 22, Category: model.CategoryPeak, RateMultiplier: 1.25},
			},
			FuelAdjustment:      model.FuelAdjustment{Amount: 0.12, Kind: model.FuelAbsolute},
			ElectricityDutyRate: 0.05,
			PowerFactorPenalty:  model.PowerFactorPenalty{Threshold: 0.90, Rate: 0.20},
			DGRate:              24.0,
			Notes:               "Dual peak windows (06:00-10:00 and 18:00-22:00) with +25% surcharge. Night hours (22:00-05:00) earn a 5% rebate. Annual revision capped at 6%.",
			DemandBillingRule:   "Billing demand is the higher of recorded demand or 90% of sanctioned demand.",
			RegulatoryStatus:    "Approved - TNERC tariff order 2025",
		},
		{
			State:          "Karnataka",
			StateCode:      "KA",
			Utility:        "BESCOM / KERC",
			Category:       "HT Industrial",
			BillingUnit:    model.UnitKWh,
			BaseEnergyRate: 6.90,
			DemandCharge:   350,
			TimeSlots: []model.TimeSlot{
				{Name: "Night Incentive", StartHour: 22, EndHour: 6, Category: model.CategoryOffPeak, RateMultiplier: 1.0, RateAdder: -1.0},
				{Name: "Morning Peak", StartHour: 6, EndHour: 9, Category: model.CategoryPeak, RateMultiplier: 1.20},
				{Name: "Normal", StartHour: 9, EndHour: 18, Category: model.CategoryNormal, RateMultiplier: 1.0},
				{Name: "Evening Peak", StartHour: 18, EndHour: 22, Category: model.CategoryPeak, RateMultiplier: 1.20},
			},
			FuelAdjustment:      model.FuelAdjustment{Amount: 0.10, Kind: model.FuelAbsolute},
			ElectricityDutyRate: 0.06,
			PowerFactorPenalty:  model.PowerFactorPenalty{Threshold: 0.85, Rate: 0.15},
			DGRate:              20.0,
			Notes:               "Morning peak (06:00-09:00) and evening peak (18:00-22:00) with +20% surcharge. Night consumption incentive of Rs 1/unit. Data centers receive industrial classification as a state incentive.",
			DemandBillingRule:   "Billing demand is the higher of recorded demand or 85% of contract demand.",
			RegulatoryStatus:    "Approved - KERC tariff order 2025",
		},
		{
			State:          "Telangana",
			StateCode:      "TS",
			Utility:        "TSDISCOM / TSERC",
			Category:       "HT Industrial",
			BillingUnit:    model.UnitKWh,
			BaseEnergyRate: 6.60,
			DemandCharge:   320,
			TimeSlots: []model.TimeSlot{
				{Name: "Off-Peak Night", StartHour: 22, EndHour: 6, Category: model.CategoryOffPeak, RateMultiplier: 1.0, RateAdder: -1.50},
				{Name: "Normal Morning", StartHour: 6, EndHour: 9, Category: model.CategoryNormal, RateMultiplier: 1.0},
				{Name: "Normal Day", StartHour: 9, EndHour: 17, Category: model.CategoryNormal, RateMultiplier: 1.0},
				{Name: "Peak", StartHour: 17, EndHour: 22, Category: model.CategoryPeak, RateMultiplier: 1.0, RateAdder: 1.00},
			},
			FuelAdjustment:      model.FuelAdjustment{Amount: 1.5, Kind: model.FuelPercentage},
			ElectricityDutyRate: 0.05,
			PowerFactorPenalty:  model.PowerFactorPenalty{Threshold: 0.90, Rate: 0.15},
			DGRate:              18.0,
			Notes:               "Absolute adders: +Rs 1.00/unit during peak (17:00-22:00) and -Rs 1.50/unit during off-peak night (22:00-06:00). FPPCA levied as a percentage of energy charges.",
			DemandBillingRule:   "Billing demand is the higher of recorded demand or 80% of contract demand.",
			RegulatoryStatus:    "Litigation - FPPCA true-up pending before TSERC",
		},
	}
}
