package tariff

import (
	"math"
	"testing"

	"github.com/nitishagar/bharatdcim/internal/model"
)

func TestEffectiveRate_MultiplierThenAdder(t *testing.T) {
	tests := []struct {
		base float64
		slot model.TimeSlot
		want float64
	}{
		{6.60, model.TimeSlot{RateMultiplier: 1.0, RateAdder: 1.0}, 6.60*1.0 + 1.0},
		{8.20, model.TimeSlot{RateMultiplier: 1.25}, 8.20 * 1.25},
		{8.20, model.TimeSlot{RateMultiplier: 0.85}, 8.20 * 0.85},
		{6.60, model.TimeSlot{RateMultiplier: 1.0, RateAdder: -1.50}, 6.60 - 1.50},
		{10, model.TimeSlot{RateMultiplier: 2, RateAdder: 3}, 23},
		// No clamping: a large rebate drives the rate negative.
		{1.0, model.TimeSlot{RateMultiplier: 1.0, RateAdder: -5}, -4},
	}
	for _, tt := range tests {
		got := EffectiveRate(tt.base, tt.slot)
		// want is folded exactly at compile time; got rounds at each step.
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("EffectiveRate(%v, %+v) = %v, want %v", tt.base, tt.slot, got, tt.want)
		}
	}
}

func TestSlotForHour_Wraparound(t *testing.T) {
	s := model.TariffSchedule{
		BaseEnergyRate: 6.9,
		TimeSlots: []model.TimeSlot{
			{Name: "Night", StartHour: 22, EndHour: 6, Category: model.CategoryOffPeak},
			{Name: "Day", StartHour: 6, EndHour: 22, Category: model.CategoryNormal},
		},
	}
	for _, h := range []int{22, 23, 0, 3, 5} {
		slot, ok := SlotForHour(s, h)
		if !ok || slot.Name != "Night" {
			t.Errorf("hour %d: expected Night, got %q (ok=%v)", h, slot.Name, ok)
		}
	}
	for _, h := range []int{6, 12, 21} {
		slot, ok := SlotForHour(s, h)
		if !ok || slot.Name != "Day" {
			t.Errorf("hour %d: expected Day, got %q (ok=%v)", h, slot.Name, ok)
		}
	}
}

func TestSlotForHour_StartEqualsEndCoversDay(t *testing.T) {
	s := model.TariffSchedule{
		BaseEnergyRate: 8,
		TimeSlots: []model.TimeSlot{
			{Name: "Flat", StartHour: 6, EndHour: 6, Category: model.CategoryNormal, RateMultiplier: 1.5},
		},
	}
	if err := s.ValidatePartition(); err != nil {
		t.Fatalf("single 06-06 slot should partition the day: %v", err)
	}
	for _, h := range []int{0, 5, 6, 12, 23} {
		slot, ok := SlotForHour(s, h)
		if !ok || slot.Name != "Flat" {
			t.Errorf("hour %d: expected Flat, got %q (ok=%v)", h, slot.Name, ok)
		}
		if r := RateForHour(s, h); r != 12 {
			t.Errorf("hour %d: rate %v, want slot rate 12", h, r)
		}
	}
}

func TestSlotForHour_BuiltinCoversEveryHour(t *testing.T) {
	for _, s := range Builtin() {
		for h := 0; h < 24; h++ {
			slot, ok := SlotForHour(s, h)
			if !ok {
				t.Errorf("%s: hour %d has no slot", s.State, h)
				continue
			}
			if !slot.Contains(h) {
				t.Errorf("%s: slot %q returned for hour %d does not contain it", s.State, slot.Name, h)
			}
		}
	}
}

func TestSlotForHour_FirstMatchWins(t *testing.T) {
	s := model.TariffSchedule{TimeSlots: []model.TimeSlot{
		{Name: "A", StartHour: 8, EndHour: 12},
		{Name: "B", StartHour: 10, EndHour: 14},
	}}
	slot, ok := SlotForHour(s, 11)
	if !ok || slot.Name != "A" {
		t.Fatalf("expected first declared slot A, got %q", slot.Name)
	}
}

func TestHourFallbacks_NoSlot(t *testing.T) {
	s := model.TariffSchedule{
		BaseEnergyRate: 7.5,
		TimeSlots: []model.TimeSlot{
			{Name: "Peak", StartHour: 18, EndHour: 22, Category: model.CategoryPeak, RateMultiplier: 1.25},
		},
	}
	if _, ok := SlotForHour(s, 3); ok {
		t.Fatalf("expected no slot at hour 3")
	}
	if c := CategoryForHour(s, 3); c != model.CategoryNormal {
		t.Errorf("unmatched hour category: want normal got %q", c)
	}
	if r := RateForHour(s, 3); r != 7.5 {
		t.Errorf("unmatched hour rate: want base 7.5 got %v", r)
	}
	if r := RateForHour(s, 19); r != 7.5*1.25 {
		t.Errorf("peak hour rate: want %v got %v", 7.5*1.25, r)
	}
	if _, ok := SlotForHour(s, 24); ok {
		t.Errorf("hour 24 must not match")
	}
}
