package format

import (
	"math"
	"testing"
)

func TestINR(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "₹0"},
		{999, "₹999"},
		{1000, "₹1,000"},
		{99999.4, "₹99,999"},
		{123456, "₹1,23,456"},
		{1234567, "₹12,34,567"},
		{1056218.0000000002, "₹10,56,218"},
		{123456789, "₹12,34,56,789"},
		{-45210.6, "-₹45,211"},
	}
	for _, tt := range tests {
		if got := INR(tt.in); got != tt.want {
			t.Errorf("INR(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestINRPaise(t *testing.T) {
	if got := INRPaise(1234567.891); got != "₹12,34,567.89" {
		t.Errorf("got %q", got)
	}
	if got := INRPaise(7.6); got != "₹7.60" {
		t.Errorf("got %q", got)
	}
}

func TestINRCompact(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{85000, "₹85,000"},
		{100000, "₹1.00 L"},
		{1056218, "₹10.56 L"},
		{12500000, "₹1.25 Cr"},
		{-250000, "-₹2.50 L"},
	}
	for _, tt := range tests {
		if got := INRCompact(tt.in); got != tt.want {
			t.Errorf("INRCompact(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRateUnitsPercent(t *testing.T) {
	if got := Rate(10.56218, "kWh"); got != "₹10.56/kWh" {
		t.Errorf("Rate: got %q", got)
	}
	if got := Units(180000, "kWh"); got != "1,80,000 kWh" {
		t.Errorf("Units: got %q", got)
	}
	if got := Units(297000.4, ""); got != "2,97,000" {
		t.Errorf("Units without unit: got %q", got)
	}
	if got := Percent(100.0 / 3); got != "33.3%" {
		t.Errorf("Percent: got %q", got)
	}
	if got := Number(-1234.5, 1); got != "-1,234.5" {
		t.Errorf("Number: got %q", got)
	}
}

func TestNonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if INR(v) != Unavailable || INRCompact(v) != Unavailable || Units(v, "kWh") != Unavailable ||
			Rate(v, "kWh") != Unavailable || Percent(v) != Unavailable {
			t.Errorf("expected %q for %v", Unavailable, v)
		}
	}
}

func TestGroupIndian(t *testing.T) {
	tests := map[string]string{
		"1":          "1",
		"123":        "123",
		"1234":       "1,234",
		"12345":      "12,345",
		"123456":     "1,23,456",
		"1234567890": "1,23,45,67,890",
	}
	for in, want := range tests {
		if got := groupIndian(in); got != want {
			t.Errorf("groupIndian(%q) = %q, want %q", in, got, want)
		}
	}
}
