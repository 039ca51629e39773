// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/vcarrera/loan-portfolio/internal/simulation"
	"github.com/vcarrera/loan-portfolio/pkg/datetime"
)

// PaymentsFor filters payments to one (strategy, loan) pair, preserving
// order.
func PaymentsFor(payments []simulation.Payment, strategyID, loanID int) []simulation.Payment {
	var filtered []simulation.Payment
	for _, p := range payments {
		if p.StrategyID == strategyID && p.LoanID == loanID {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// PaymentAt finds the payment for a (strategy, loan, month) triple.
// Returns a pointer to the payment if found, nil otherwise.
func PaymentAt(payments []simulation.Payment, strategyID, loanID, monthID int) *simulation.Payment {
	for i := range payments {
		if payments[i].StrategyID == strategyID && payments[i].LoanID == loanID && payments[i].MonthID == monthID {
			return &payments[i]
		}
	}
	return nil
}

// Months generates a sequential month axis of the given length for tests.
func Months(count int) []simulation.Month {
	months := make([]simulation.Month, count)
	start := datetime.MustParseTime(datetime.DateTimeLayout, "2019-06")
	for i := 0; i < count; i++ {
		months[i] = simulation.Month{MonthID: i + 1, Date: start.AddDate(0, i, 0)}
	}
	return months
}
