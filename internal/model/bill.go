package model

// EnergyCharges splits energy charges by slot category.
type EnergyCharges struct {
	Peak    float64 `json:"peak"`
	Normal  float64 `json:"normal"`
	OffPeak float64 `json:"off_peak"`
	Total   float64 `json:"total"`
}

// CategoryRates holds the averaged rate applied to each category's volume.
type CategoryRates struct {
	Peak    float64 `json:"peak"`
	Normal  float64 `json:"normal"`
	OffPeak float64 `json:"off_peak"`
}

// Rate returns the rate for one category.
func (r CategoryRates) Rate(c SlotCategory) float64 {
	switch c {
	case CategoryPeak:
		return r.Peak
	case CategoryOffPeak:
		return r.OffPeak
	default:
		return r.Normal
	}
}

// BillBreakdown is an itemized monthly bill estimate. Currency fields are
// in rupees. Nothing here is clamped: rebates may drive a charge negative.
type BillBreakdown struct {
	// RawConsumption is facility kWh before unit conversion.
	RawConsumption float64 `json:"raw_consumption_kwh"`
	// BilledConsumption is in the schedule's billing unit.
	BilledConsumption float64     `json:"billed_consumption"`
	BillingUnit       BillingUnit `json:"billing_unit"`
	BilledDemandKVA   float64     `json:"billed_demand_kva"`

	Rates         CategoryRates `json:"category_rates"`
	EnergyCharges EnergyCharges `json:"energy_charges"`

	WheelingCharges    float64 `json:"wheeling_charges"`
	DemandCharges      float64 `json:"demand_charges"`
	FuelAdjustment     float64 `json:"fuel_adjustment"`
	ElectricityDuty    float64 `json:"electricity_duty"`
	PowerFactorPenalty float64 `json:"power_factor_penalty"`
	DGCharges          float64 `json:"dg_charges"`

	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`

	// EffectiveRate is rupees per kWh of grid plus DG energy, regardless
	// of billing unit.
	EffectiveRate float64 `json:"effective_rate"`
}

// HourlyRow is one hour of the hourly-curve ledger.
type HourlyRow struct {
	Hour        int          `json:"hour"`
	SlotName    string       `json:"slot_name"`
	Category    SlotCategory `json:"category"`
	MatchedSlot bool         `json:"matched_slot"`
	// Rate is the slot's effective rate, or the base rate when no slot matched.
	Rate float64 `json:"rate"`
	// LoadWeight is the hour's share of the daily curve (0..1).
	LoadWeight     float64 `json:"load_weight"`
	ConsumptionKWh float64 `json:"consumption_kwh"`
	BilledUnits    float64 `json:"billed_units"`
	EnergyCharge   float64 `json:"energy_charge"`
}
