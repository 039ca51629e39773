// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"
)

// ValidateLoan checks the loan invariants: positive principal, annual rate in
// [0, 1), positive term. Violations are fatal configuration errors rather
// than warnings.
func ValidateLoan(name string, principal, rate float64, termMonths int) error {
	if principal <= 0 {
		return fmt.Errorf("loan %q: principal must be positive, got %.2f", name, principal)
	}
	if rate < 0 || rate >= 1 {
		return fmt.Errorf("loan %q: rate must be a fraction in [0, 1), got %.4f", name, rate)
	}
	if termMonths <= 0 {
		return fmt.Errorf("loan %q: term must be positive, got %d", name, termMonths)
	}
	return nil
}

// ValidateMonthAxis warns when the month axis is shorter than the longest
// loan term, since minimum-payment-only strategies would end the run with an
// outstanding balance.
func ValidateMonthAxis(months, longestTermMonths int) []string {
	var warnings []string
	if longestTermMonths > months {
		warnings = append(warnings, fmt.Sprintf(
			"month axis (%d months) is shorter than the longest loan term (%d months) - baseline strategies will not reach payoff",
			months, longestTermMonths))
	}
	return warnings
}
