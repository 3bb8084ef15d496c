package models

import (
	"github.com/nitishagar/bharatdcim/internal/config"
	"github.com/nitishagar/bharatdcim/internal/model"
)

// ProfileRequest is one month of facility load.
type ProfileRequest struct {
	ITLoadKWh           float64 `json:"it_load_kwh"`
	PUE                 float64 `json:"pue,omitempty"` // default: 1
	ContractedDemandKVA float64 `json:"contracted_demand_kva"`
	RecordedDemandKVA   float64 `json:"recorded_demand_kva,omitempty"` // default: contracted
	PowerFactor         float64 `json:"power_factor"`
	DGKWh               float64 `json:"dg_kwh,omitempty"`
	// Pattern is required unless the request carries a load curve.
	Pattern *model.Pattern `json:"pattern,omitempty"`
}

// ToConfig converts to the scenario shape with defaults applied.
func (p ProfileRequest) ToConfig() config.ProfileConfig {
	c := config.Config{Profile: config.ProfileConfig{
		ITLoadKWh:           p.ITLoadKWh,
		PUE:                 p.PUE,
		ContractedDemandKVA: p.ContractedDemandKVA,
		RecordedDemandKVA:   p.RecordedDemandKVA,
		PowerFactor:         p.PowerFactor,
		DGKWh:               p.DGKWh,
		Pattern:             p.Pattern,
	}}
	c.ApplyDefaults()
	return c.Profile
}

// BillRequest represents the request body for POST /api/v1/bill and
// POST /api/v1/bill/hourly
type BillRequest struct {
	State     string         `json:"state" binding:"required"`
	Averaging string         `json:"averaging,omitempty"` // "slot_count" (default) or "duration"
	Profile   ProfileRequest `json:"profile"`
	// LoadCurve is 24 relative hourly loads. On /bill it switches to the
	// hourly path; on /bill/hourly it defaults to a typical colocation day.
	LoadCurve []float64 `json:"load_curve,omitempty"`
}

// Config converts to a scenario config for validation.
func (r BillRequest) Config() *config.Config {
	c := &config.Config{
		State:     r.State,
		Averaging: r.Averaging,
		Profile:   r.Profile.ToConfig(),
		LoadCurve: r.LoadCurve,
	}
	if c.Averaging == "" {
		c.Averaging = "slot_count"
	}
	return c
}

// CompareRequest represents a request to bill one profile in every state
type CompareRequest struct {
	Averaging string         `json:"averaging,omitempty"`
	Profile   ProfileRequest `json:"profile"`
	// States limits the comparison; empty means every state.
	States []string `json:"states,omitempty"`
}

// ShiftRequest asks what moving load from peak to off-peak would save
type ShiftRequest struct {
	State     string         `json:"state" binding:"required"`
	Averaging string         `json:"averaging,omitempty"`
	Profile   ProfileRequest `json:"profile"`
	Points    float64        `json:"points"`
}
