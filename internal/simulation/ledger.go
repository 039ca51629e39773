package simulation

// Ledger is the ordered collection of payments produced for one strategy.
// Each strategy simulation owns a private ledger; ledgers are only shared
// after the run merges them into the final read-only payment collection.
type Ledger struct {
	payments []Payment
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Append records a payment.
func (l *Ledger) Append(p Payment) {
	l.payments = append(l.payments, p)
}

// Payments returns the recorded payments in creation order.
func (l *Ledger) Payments() []Payment {
	return l.payments
}

// Len returns the number of recorded payments.
func (l *Ledger) Len() int {
	return len(l.payments)
}

// OutstandingBalance derives a loan's balance before the given month by
// replaying every recorded principal reduction against the original
// principal. Recomputing from history rather than caching a running balance
// keeps the ledger the single source of truth if a month is ever reprocessed;
// ledgers are strategy-local and small, so the O(history) cost is acceptable.
// Never returns a negative balance.
func (l *Ledger) OutstandingBalance(loan Loan, beforeMonth int) float64 {
	paid := 0.0
	for _, p := range l.payments {
		if p.LoanID == loan.LoanID && p.MonthID < beforeMonth {
			paid += p.Principal + p.AdditionalPrincipal
		}
	}

	balance := loan.Principal - paid
	if balance < 0 {
		return 0
	}
	return balance
}
