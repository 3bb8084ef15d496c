package models

import (
	"github.com/nitishagar/bharatdcim/internal/analysis"
	"github.com/nitishagar/bharatdcim/internal/data"
	"github.com/nitishagar/bharatdcim/internal/format"
	"github.com/nitishagar/bharatdcim/internal/model"
)

// StateSummary is one row of GET /api/v1/states
type StateSummary struct {
	State            string            `json:"state"`
	StateCode        string            `json:"state_code"`
	Utility          string            `json:"utility"`
	Category         string            `json:"category"`
	BillingUnit      model.BillingUnit `json:"billing_unit"`
	BaseEnergyRate   float64           `json:"base_energy_rate"`
	DemandCharge     float64           `json:"demand_charge"`
	SlotCount        int               `json:"slot_count"`
	RegulatoryStatus string            `json:"regulatory_status,omitempty"`
	Default          bool              `json:"default"`
}

func NewStateSummary(s model.TariffSchedule, isDefault bool) StateSummary {
	return StateSummary{
		State:            s.State,
		StateCode:        s.StateCode,
		Utility:          s.Utility,
		Category:         s.Category,
		BillingUnit:      s.BillingUnit,
		BaseEnergyRate:   s.BaseEnergyRate,
		DemandCharge:     s.DemandCharge,
		SlotCount:        len(s.TimeSlots),
		RegulatoryStatus: s.RegulatoryStatus,
		Default:          isDefault,
	}
}

// StatesResponse represents the response from listing states
type StatesResponse struct {
	States []StateSummary `json:"states"`
}

// ScheduleResponse carries a full schedule. Matched is false when the
// requested state was unknown and the default was returned instead.
type ScheduleResponse struct {
	Requested string               `json:"requested"`
	Matched   bool                 `json:"matched"`
	Schedule  model.TariffSchedule `json:"schedule"`
}

// SlotResponse describes the slot in force at one hour
type SlotResponse struct {
	State   string `json:"state"`
	Matched bool   `json:"matched"`
	Hour    int    `json:"hour"`
	// Slot is nil when no slot covers the hour; Category and Rate then
	// carry the normal/base-rate fallback.
	Slot     *model.TimeSlot    `json:"slot"`
	Category model.SlotCategory `json:"category"`
	Rate     float64            `json:"rate"`
}

// BillDisplay holds pre-formatted rupee strings for display
type BillDisplay struct {
	Total         string `json:"total"`
	TotalCompact  string `json:"total_compact"`
	Subtotal      string `json:"subtotal"`
	Tax           string `json:"tax"`
	EnergyCharges string `json:"energy_charges"`
	DemandCharges string `json:"demand_charges"`
	EffectiveRate string `json:"effective_rate"`
	Billed        string `json:"billed_consumption"`
}

func NewBillDisplay(b model.BillBreakdown) BillDisplay {
	return BillDisplay{
		Total:         format.INR(b.Total),
		TotalCompact:  format.INRCompact(b.Total),
		Subtotal:      format.INR(b.Subtotal),
		Tax:           format.INR(b.Tax),
		EnergyCharges: format.INR(b.EnergyCharges.Total),
		DemandCharges: format.INR(b.DemandCharges),
		EffectiveRate: format.Rate(b.EffectiveRate, "kWh"),
		Billed:        format.Units(b.BilledConsumption, string(b.BillingUnit)),
	}
}

// EstimateResponse represents the response from a bill estimate
type EstimateResponse struct {
	data.Estimate
	Display BillDisplay `json:"display"`
}

func NewEstimateResponse(e data.Estimate) EstimateResponse {
	return EstimateResponse{Estimate: e, Display: NewBillDisplay(e.Bill)}
}

// CompareResponse represents the response from a state comparison
type CompareResponse struct {
	Rankings []analysis.StateComparison `json:"rankings"`
	Cheapest string                     `json:"cheapest,omitempty"`
	// Unknown lists requested states that are not in the catalog.
	Unknown []string `json:"unknown,omitempty"`
}

// SpreadResponse represents the intraday rate spread of one schedule
type SpreadResponse struct {
	Matched bool `json:"matched"`
	analysis.RateSpread
}

// ShiftResponse represents the effect of a peak-to-off-peak shift
type ShiftResponse struct {
	State   string `json:"state"`
	Matched bool   `json:"matched"`
	analysis.LoadShift
	SavingsDisplay string `json:"savings_display"`
}

// ScenariosResponse represents the response from listing scenarios
type ScenariosResponse struct {
	Scenarios []data.Scenario `json:"scenarios"`
	// Skipped maps unreadable scenario files to the reason.
	Skipped map[string]string `json:"skipped,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func NewError(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}
