package model

// SlotCategory classifies an hour for consumption-pattern bucketing.
// Keep these values stable; they appear in catalog files and CSV output.
type SlotCategory string

const (
	CategoryPeak    SlotCategory = "peak"
	CategoryNormal  SlotCategory = "normal"
	CategoryOffPeak SlotCategory = "off-peak"
)

// Categories lists the categories in bill order.
var Categories = []SlotCategory{CategoryPeak, CategoryNormal, CategoryOffPeak}

func (c SlotCategory) Valid() bool {
	switch c {
	case CategoryPeak, CategoryNormal, CategoryOffPeak:
		return true
	default:
		return false
	}
}
