package simulation

import (
	"math"
	"testing"
)

func TestOutstandingBalance(t *testing.T) {
	loan := Loan{LoanID: 1, Principal: 1000}
	other := Loan{LoanID: 2, Principal: 500}

	ledger := NewLedger()
	ledger.Append(Payment{PaymentID: 1, LoanID: 1, MonthID: 1, Principal: 100, AdditionalPrincipal: 50})
	ledger.Append(Payment{PaymentID: 2, LoanID: 2, MonthID: 1, Principal: 75})
	ledger.Append(Payment{PaymentID: 3, LoanID: 1, MonthID: 2, Principal: 100})

	tests := []struct {
		name        string
		loan        Loan
		beforeMonth int
		expected    float64
	}{
		{name: "No history yet", loan: loan, beforeMonth: 1, expected: 1000},
		{name: "After first month", loan: loan, beforeMonth: 2, expected: 850},
		{name: "Strictly before bound", loan: loan, beforeMonth: 3, expected: 750},
		{name: "Other loan unaffected", loan: other, beforeMonth: 3, expected: 425},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ledger.OutstandingBalance(tt.loan, tt.beforeMonth)
			if math.Abs(got-tt.expected) > 0.001 {
				t.Errorf("OutstandingBalance() = %.2f, expected %.2f", got, tt.expected)
			}
		})
	}
}

func TestOutstandingBalanceNeverNegative(t *testing.T) {
	loan := Loan{LoanID: 1, Principal: 100}
	ledger := NewLedger()
	ledger.Append(Payment{PaymentID: 1, LoanID: 1, MonthID: 1, Principal: 100, AdditionalPrincipal: 5})

	if got := ledger.OutstandingBalance(loan, 2); got != 0 {
		t.Errorf("OutstandingBalance() = %.2f, expected 0 when overpaid", got)
	}
}
