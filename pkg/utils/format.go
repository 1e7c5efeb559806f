// Package utils provides shared display formatting helpers.
package utils

import "fmt"

// SignedPercent formats a percentage with explicit sign: non-negative
// values get a "+" prefix, negative values keep their natural "-".
func SignedPercent(value float64, decimals int) string {
	if value >= 0 {
		return fmt.Sprintf("+%.*f%%", decimals, value)
	}
	return fmt.Sprintf("%.*f%%", decimals, value)
}

// Percent formats a percentage without a sign prefix.
func Percent(value float64, decimals int) string {
	return fmt.Sprintf("%.*f%%", decimals, value)
}

// Ratio formats a plain ratio value.
func Ratio(value float64, decimals int) string {
	return fmt.Sprintf("%.*f", decimals, value)
}

// Money formats an account-currency amount.
func Money(value float64) string {
	if value < 0 {
		return fmt.Sprintf("-$%.2f", -value)
	}
	return fmt.Sprintf("$%.2f", value)
}
