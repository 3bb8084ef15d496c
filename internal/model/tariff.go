package model

import (
	"errors"
	"fmt"
	"strings"
)

// BillingUnit is the unit a schedule's energy rates are quoted in.
type BillingUnit string

const (
	UnitKWh  BillingUnit = "kWh"
	UnitKVAh BillingUnit = "kVAh"
)

func (u BillingUnit) Valid() bool {
	return u == UnitKWh || u == UnitKVAh
}

// FuelAdjustmentKind selects how a FuelAdjustment amount is applied.
type FuelAdjustmentKind string

const (
	// FuelAbsolute is currency per billed unit.
	FuelAbsolute FuelAdjustmentKind = "absolute"
	// FuelPercentage is a percent of energy charges (FPPCA style).
	FuelPercentage FuelAdjustmentKind = "percentage"
)

type FuelAdjustment struct {
	Amount float64            `json:"amount" yaml:"amount"`
	Kind   FuelAdjustmentKind `json:"kind" yaml:"kind"`
}

// PowerFactorPenalty activates when the facility power factor drops below Threshold.
type PowerFactorPenalty struct {
	Threshold float64 `json:"threshold" yaml:"threshold"`
	Rate      float64 `json:"rate" yaml:"rate"`
}

// TimeSlot is an hour range within a day with its own rate adjustment.
//
// StartHour and EndHour are hours of day. When StartHour >= EndHour the slot
// wraps past midnight. EndHour may be written as 24 to mean midnight.
// The slot rate is always BaseEnergyRate*RateMultiplier + RateAdder.
type TimeSlot struct {
	Name           string       `json:"name" yaml:"name"`
	StartHour      int          `json:"start_hour" yaml:"start_hour"`
	EndHour        int          `json:"end_hour" yaml:"end_hour"`
	Category       SlotCategory `json:"category" yaml:"category"`
	RateMultiplier float64      `json:"rate_multiplier" yaml:"rate_multiplier"`
	RateAdder      float64      `json:"rate_adder" yaml:"rate_adder"`
}

// Contains reports whether hour (0-23) falls inside the slot. A slot whose
// start is not before its end wraps past midnight, so start == end covers
// the whole day.
func (s TimeSlot) Contains(hour int) bool {
	if hour < 0 || hour > 23 {
		return false
	}
	start, end := s.StartHour, s.EndHour%24
	if start < end {
		return hour >= start && hour < end
	}
	// wrap
	return hour >= start || hour < end
}

// Hours returns the number of whole hours the slot covers.
func (s TimeSlot) Hours() int {
	n := 0
	for h := 0; h < 24; h++ {
		if s.Contains(h) {
			n++
		}
	}
	return n
}

// TariffSchedule is one state's rate card for a customer category.
//
// Notes, DemandBillingRule and RegulatoryStatus are descriptive text only;
// no calculation reads them.
type TariffSchedule struct {
	State     string `json:"state" yaml:"state"`
	StateCode string `json:"state_code" yaml:"state_code"`
	Utility   string `json:"utility" yaml:"utility"`
	Category  string `json:"category" yaml:"category"`

	BillingUnit    BillingUnit `json:"billing_unit" yaml:"billing_unit"`
	BaseEnergyRate float64     `json:"base_energy_rate" yaml:"base_energy_rate"`
	WheelingCharge float64     `json:"wheeling_charge" yaml:"wheeling_charge"`
	DemandCharge   float64     `json:"demand_charge" yaml:"demand_charge"`

	TimeSlots []TimeSlot `json:"time_slots" yaml:"time_slots"`

	FuelAdjustment      FuelAdjustment     `json:"fuel_adjustment" yaml:"fuel_adjustment"`
	ElectricityDutyRate float64            `json:"electricity_duty_rate" yaml:"electricity_duty_rate"`
	PowerFactorPenalty  PowerFactorPenalty `json:"power_factor_penalty" yaml:"power_factor_penalty"`
	DGRate              float64            `json:"dg_rate" yaml:"dg_rate"`

	Notes             string `json:"notes,omitempty" yaml:"notes,omitempty"`
	DemandBillingRule string `json:"demand_billing_rule,omitempty" yaml:"demand_billing_rule,omitempty"`
	RegulatoryStatus  string `json:"regulatory_status,omitempty" yaml:"regulatory_status,omitempty"`
}

// SlotsOf returns the slots of one category in declaration order.
func (t TariffSchedule) SlotsOf(c SlotCategory) []TimeSlot {
	var out []TimeSlot
	for _, s := range t.TimeSlots {
		if s.Category == c {
			out = append(out, s)
		}
	}
	return out
}

// Clone returns a copy that shares no slices with t.
func (t TariffSchedule) Clone() TariffSchedule {
	out := t
	if t.TimeSlots != nil {
		out.TimeSlots = make([]TimeSlot, len(t.TimeSlots))
		copy(out.TimeSlots, t.TimeSlots)
	}
	return out
}

// ValidatePartition checks that every hour of the day is covered by exactly one slot.
func (t TariffSchedule) ValidatePartition() error {
	if len(t.TimeSlots) == 0 {
		return errors.New("no time slots defined")
	}
	for h := 0; h < 24; h++ {
		var matched []string
		for _, s := range t.TimeSlots {
			if s.Contains(h) {
				matched = append(matched, s.Name)
			}
		}
		switch len(matched) {
		case 0:
			return fmt.Errorf("hour %02d is not covered by any slot", h)
		case 1:
		default:
			return fmt.Errorf("hour %02d is covered by %d slots (%s)", h, len(matched), strings.Join(matched, ", "))
		}
	}
	return nil
}

// Validate checks a schedule before it is admitted to a registry.
func (t TariffSchedule) Validate() error {
	if strings.TrimSpace(t.State) == "" {
		return errors.New("state is required")
	}
	if strings.TrimSpace(t.StateCode) == "" {
		return errors.New("state_code is required")
	}
	if !t.BillingUnit.Valid() {
		return fmt.Errorf("billing_unit must be %q or %q, got %q", UnitKWh, UnitKVAh, t.BillingUnit)
	}
	if t.FuelAdjustment.Kind != FuelAbsolute && t.FuelAdjustment.Kind != FuelPercentage {
		return fmt.Errorf("fuel_adjustment.kind must be %q or %q, got %q", FuelAbsolute, FuelPercentage, t.FuelAdjustment.Kind)
	}
	for i, s := range t.TimeSlots {
		if s.StartHour < 0 || s.StartHour > 23 {
			return fmt.Errorf("time slot %d (%s): start_hour %d out of range 0-23", i, s.Name, s.StartHour)
		}
		if s.EndHour < 0 || s.EndHour > 24 {
			return fmt.Errorf("time slot %d (%s): end_hour %d out of range 0-24", i, s.Name, s.EndHour)
		}
		if !s.Category.Valid() {
			return fmt.Errorf("time slot %d (%s): unknown category %q", i, s.Name, s.Category)
		}
	}
	if err := t.ValidatePartition(); err != nil {
		return fmt.Errorf("time slots: %w", err)
	}
	return nil
}
