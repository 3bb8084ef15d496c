// Package format renders bill figures for people: rupees with Indian digit
// grouping and lakh/crore shorthand. Nothing in the billing path depends on it.
package format

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	lakh  = 100000
	crore = 10000000
)

// Unavailable is printed for NaN or infinite amounts.
const Unavailable = "n/a"

// INR formats whole rupees with Indian grouping: ₹12,34,567.
func INR(amount float64) string {
	return inr(amount, 0)
}

// INRPaise formats rupees to two decimals: ₹12,34,567.89.
func INRPaise(amount float64) string {
	return inr(amount, 2)
}

// INRCompact abbreviates large amounts as lakh (L) or crore (Cr) with two
// decimals, falling back to INR below one lakh.
func INRCompact(amount float64) string {
	if !finite(amount) {
		return Unavailable
	}
	abs := math.Abs(amount)
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	d := decimal.NewFromFloat(abs)
	switch {
	case abs >= crore:
		return sign + "₹" + d.Div(decimal.NewFromInt(crore)).StringFixed(2) + " Cr"
	case abs >= lakh:
		return sign + "₹" + d.Div(decimal.NewFromInt(lakh)).StringFixed(2) + " L"
	default:
		return INR(amount)
	}
}

// Rate formats a per-unit rate, e.g. ₹7.60/kWh.
func Rate(rate float64, unit string) string {
	if !finite(rate) {
		return Unavailable
	}
	return INRPaise(rate) + "/" + unit
}

// Units formats a quantity with Indian grouping and a unit suffix,
// e.g. 1,80,000 kWh.
func Units(v float64, unit string) string {
	if !finite(v) {
		return Unavailable
	}
	s := Number(v, 0)
	if unit == "" {
		return s
	}
	return s + " " + unit
}

// Number groups v the Indian way with the given number of decimals.
func Number(v float64, places int32) string {
	if !finite(v) {
		return Unavailable
	}
	d := decimal.NewFromFloat(v).Round(places)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	s := d.StringFixed(places)
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	return sign + groupIndian(intPart) + frac
}

// Percent formats a share with one decimal, e.g. 33.3%.
func Percent(v float64) string {
	if !finite(v) {
		return Unavailable
	}
	return decimal.NewFromFloat(v).StringFixed(1) + "%"
}

func inr(amount float64, places int32) string {
	if !finite(amount) {
		return Unavailable
	}
	s := Number(amount, places)
	if strings.HasPrefix(s, "-") {
		return "-₹" + s[1:]
	}
	return "₹" + s
}

// groupIndian inserts separators after the last three digits and then
// every two: 1234567 -> 12,34,567.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
