package services

import (
	"strconv"
	"strings"
)

// ParseMoney parses a price field as entered in a form. Price fields are
// frequently blank or half-typed while a proposal is being built, so any
// unparsable value degrades to 0 instead of surfacing an error.
func ParseMoney(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// ParsePercent parses a percentage field ("15" -> 0.15) with the same
// unparsable-to-zero contract as ParseMoney.
func ParsePercent(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v / 100
}

// NormalizeQty clamps a quantity multiplier to at least 1. Omitted or
// invalid multipliers must never zero out an otherwise priced entry.
func NormalizeQty(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}
