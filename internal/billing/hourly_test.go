package billing

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/nitishagar/bharatdcim/internal/model"
	"github.com/nitishagar/bharatdcim/internal/tariff"
)

func TestDefaultLoadCurve_ExpandsTemplate(t *testing.T) {
	c := DefaultLoadCurve()
	checks := map[int]float64{0: 46, 1: 46, 2: 40, 3: 40, 18: 84, 19: 84, 22: 65, 23: 65}
	for h, want := range checks {
		if c[h] != want {
			t.Errorf("hour %d: want %v got %v", h, want, c[h])
		}
	}
}

func TestLoadCurve_Weights(t *testing.T) {
	var c LoadCurve
	c[3] = 1
	c[4] = 3
	c[5] = -7
	w := c.Weights()
	if w[3] != 0.25 || w[4] != 0.75 || w[5] != 0 {
		t.Fatalf("unexpected weights: %v %v %v", w[3], w[4], w[5])
	}

	var zero LoadCurve
	for h, v := range zero.Weights() {
		if v != 0 {
			t.Fatalf("zero curve: hour %d weight %v", h, v)
		}
	}
}

func TestPatternFromCurve(t *testing.T) {
	s := karnatakaLike() // off-peak 22-06, normal 06-18, peak 18-22

	var flat LoadCurve
	for h := range flat {
		flat[h] = 1
	}
	p := PatternFromCurve(s, flat)
	approx(t, "flat off-peak", 100*8.0/24, p.OffPeakPercent)
	approx(t, "flat normal", 100*12.0/24, p.NormalPercent)
	approx(t, "flat peak", 100*4.0/24, p.PeakPercent)

	var evening LoadCurve
	evening[19] = 5
	evening[20] = 5
	if p := PatternFromCurve(s, evening); p != (model.Pattern{PeakPercent: 100}) {
		t.Errorf("evening-only curve: want all peak, got %+v", p)
	}

	if p := PatternFromCurve(s, LoadCurve{}); p != (model.Pattern{NormalPercent: 100}) {
		t.Errorf("zero curve: want 0/100/0, got %+v", p)
	}

	approx(t, "default curve sum", 100, PatternFromCurve(s, DefaultLoadCurve()).Sum())
}

func TestPatternFromCurve_UnmatchedHoursAreNormal(t *testing.T) {
	s := model.TariffSchedule{
		BaseEnergyRate: 7,
		TimeSlots: []model.TimeSlot{
			{Name: "Peak", StartHour: 18, EndHour: 22, Category: model.CategoryPeak, RateMultiplier: 1.2},
		},
	}
	var c LoadCurve
	c[2] = 1
	c[19] = 1
	p := PatternFromCurve(s, c)
	if p.PeakPercent != 50 || p.NormalPercent != 50 || p.OffPeakPercent != 0 {
		t.Fatalf("unexpected pattern %+v", p)
	}
}

func TestHourly_Ledger(t *testing.T) {
	reg := tariff.MustBuiltin()
	s, _ := reg.Schedule("Maharashtra")
	p := scenarioProfile()
	p.PowerFactor = 0.95
	curve := DefaultLoadCurve()

	calc := New()
	bill, rows := calc.Hourly(s, p, curve)

	p.Pattern = PatternFromCurve(s, curve)
	if direct := calc.Calculate(s, p); direct != bill {
		t.Fatalf("hourly bill differs from Calculate with the derived pattern")
	}

	if len(rows) != 24 {
		t.Fatalf("expected 24 rows, got %d", len(rows))
	}
	var kwh, units float64
	for h, r := range rows {
		if r.Hour != h {
			t.Errorf("row %d has hour %d", h, r.Hour)
		}
		if !r.MatchedSlot {
			t.Errorf("hour %d should match a builtin slot", h)
		}
		if want := tariff.RateForHour(s, h); r.Rate != want {
			t.Errorf("hour %d rate: want %v got %v", h, want, r.Rate)
		}
		if r.EnergyCharge != r.BilledUnits*r.Rate {
			t.Errorf("hour %d energy charge mismatch", h)
		}
		kwh += r.ConsumptionKWh
		units += r.BilledUnits
	}
	approx(t, "ledger kWh", bill.RawConsumption, kwh)
	approx(t, "ledger billed units", bill.BilledConsumption, units)

	if rows[18].SlotName != "Peak" || rows[18].Category != model.CategoryPeak {
		t.Errorf("hour 18: expected Peak slot, got %q/%q", rows[18].SlotName, rows[18].Category)
	}
}

func TestHourly_UnmatchedHourUsesBaseRate(t *testing.T) {
	s := model.TariffSchedule{
		BillingUnit:    model.UnitKWh,
		BaseEnergyRate: 7,
		TimeSlots: []model.TimeSlot{
			{Name: "Peak", StartHour: 18, EndHour: 22, Category: model.CategoryPeak, RateMultiplier: 1.2},
		},
	}
	_, rows := New().Hourly(s, scenarioProfile(), DefaultLoadCurve())
	r := rows[3]
	if r.MatchedSlot || r.SlotName != "" {
		t.Errorf("hour 3 should not match a slot: %+v", r)
	}
	if r.Category != model.CategoryNormal || r.Rate != 7 {
		t.Errorf("hour 3 fallback: want normal at 7, got %q at %v", r.Category, r.Rate)
	}
}

func TestWriteHourlyCSV(t *testing.T) {
	s := karnatakaLike()
	_, rows := New().Hourly(s, scenarioProfile(), DefaultLoadCurve())

	var buf bytes.Buffer
	if err := WriteHourlyCSV(&buf, rows); err != nil {
		t.Fatalf("write: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(records) != 25 {
		t.Fatalf("expected header + 24 rows, got %d", len(records))
	}
	if records[0][0] != "hour" || records[0][8] != "energy_charge" {
		t.Errorf("unexpected header %v", records[0])
	}
	if records[1][0] != "00" || records[1][1] != "Night" || records[1][2] != "off-peak" {
		t.Errorf("unexpected first row %v", records[1])
	}
	if records[24][0] != "23" {
		t.Errorf("unexpected last hour %q", records[24][0])
	}
}
