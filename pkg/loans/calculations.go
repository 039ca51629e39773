// Package loans provides the amortization math for loan payments.
package loans

import (
	"fmt"
	"math"

	"github.com/vcarrera/loan-portfolio/pkg/constants"
)

// DomainError indicates loan parameters outside the domain of the
// amortization formula.
type DomainError struct {
	Op     string
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("loans.%s: %s", e.Op, e.Reason)
}

// MinimumPayment calculates the fixed monthly payment that fully amortizes
// principal over termMonths at the given annual rate. The rate is expressed
// as a fraction, e.g. 0.06 for 6% APR. The standard formula is undefined at
// zero rate, which degenerates to a straight principal/termMonths split.
// The result is intentionally left unrounded; amounts are rounded to cents
// only when they enter a payment record.
func MinimumPayment(principal, annualRate float64, termMonths int) (float64, error) {
	if termMonths <= 0 {
		return 0, &DomainError{Op: "MinimumPayment", Reason: fmt.Sprintf("term must be positive, got %d", termMonths)}
	}
	if principal <= 0 {
		return 0, &DomainError{Op: "MinimumPayment", Reason: fmt.Sprintf("principal must be positive, got %.2f", principal)}
	}
	if annualRate == 0 {
		return principal / float64(termMonths), nil
	}

	periodicRate := annualRate / constants.MonthsPerYear
	power := math.Pow(1.00+periodicRate, float64(termMonths))
	discountFactor := (power - 1.00) / power
	return principal * periodicRate / discountFactor, nil
}

// MonthlyInterest calculates one month of interest accrued on the
// outstanding balance.
func MonthlyInterest(balance, annualRate float64) float64 {
	return balance * annualRate / constants.MonthsPerYear
}
