package services

import (
	"fmt"
	"strings"
)

// CurrencySymbol maps a display currency code (as stored on proposals,
// lower-case) to its symbol. Unknown codes fall back to the upper-cased
// code plus a space so amounts stay readable.
func CurrencySymbol(code string) string {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "usd":
		return "$"
	case "eur":
		return "€"
	case "try":
		return "₺"
	case "gbp":
		return "£"
	}
	return strings.ToUpper(strings.TrimSpace(code)) + " "
}

// FormatMoney formats an amount with its currency symbol, thousands
// grouping and exactly 2 decimal places, e.g. FormatMoney("usd", 1234.5)
// -> "$1,234.50".
func FormatMoney(code string, amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(raw, ".", 2)
	intPart := parts[0]
	decPart := parts[1]

	result := CurrencySymbol(code) + groupThousands(intPart) + "." + decPart
	if negative {
		result = "-" + result
	}
	return result
}

// groupThousands inserts commas into an integer string every 3 digits
// from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]
	for len(remaining) > 3 {
		result = remaining[len(remaining)-3:] + "," + result
		remaining = remaining[:len(remaining)-3]
	}
	return remaining + "," + result
}
