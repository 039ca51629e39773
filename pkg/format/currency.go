// Package format provides human-readable formatting for amounts and rates.
package format

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Currency returns a currency string with a dollar sign and thousands
// separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	if amount < 0 {
		return printer.Sprintf("-$%.2f", -amount)
	}
	return printer.Sprintf("$%.2f", amount)
}

// Percent renders a fractional annual rate as a percentage (0.06 -> "6.00%").
func Percent(rate float64) string {
	return fmt.Sprintf("%.2f%%", rate*100)
}
