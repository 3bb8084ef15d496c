package analysis

import (
	"sort"

	"github.com/nitishagar/bharatdcim/internal/billing"
	"github.com/nitishagar/bharatdcim/internal/model"
)

// StateComparison is one state's bill for a shared profile.
type StateComparison struct {
	State       string              `json:"state"`
	StateCode   string              `json:"state_code"`
	Utility     string              `json:"utility"`
	BillingUnit model.BillingUnit   `json:"billing_unit"`
	Bill        model.BillBreakdown `json:"bill"`

	Rank int `json:"rank"`
	// DeltaVsCheapest is this state's total minus the lowest total in the ranking.
	DeltaVsCheapest float64 `json:"delta_vs_cheapest"`
}

// StateLister is the part of the tariff registry comparisons need.
type StateLister interface {
	States() []model.TariffSchedule
}

// CompareStates bills the same profile under every schedule, in the
// registry's declaration order.
func CompareStates(calc *billing.Calculator, reg StateLister, p model.ConsumptionProfile) []StateComparison {
	states := reg.States()
	out := make([]StateComparison, 0, len(states))
	for _, s := range states {
		out = append(out, StateComparison{
			State:       s.State,
			StateCode:   s.StateCode,
			Utility:     s.Utility,
			BillingUnit: s.BillingUnit,
			Bill:        calc.Calculate(s, p),
		})
	}
	return out
}

// RankByEffectiveRate sorts ascending by effective rate, keeping input order
// for ties, and fills Rank (1-based) and DeltaVsCheapest. Deltas are
// measured from the lowest total, which need not be the first row.
func RankByEffectiveRate(in []StateComparison) []StateComparison {
	out := make([]StateComparison, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Bill.EffectiveRate < out[j].Bill.EffectiveRate
	})
	if len(out) == 0 {
		return out
	}
	cheapest := out[0].Bill.Total
	for _, c := range out[1:] {
		if c.Bill.Total < cheapest {
			cheapest = c.Bill.Total
		}
	}
	for i := range out {
		out[i].Rank = i + 1
		out[i].DeltaVsCheapest = out[i].Bill.Total - cheapest
	}
	return out
}
