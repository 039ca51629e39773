package simulation

import (
	"fmt"
	"sort"

	"github.com/vcarrera/loan-portfolio/pkg/mathutil"
	"go.uber.org/zap"
)

// Allocator applies a strategy's extra-principal policy to the payments
// emitted for one month: it orders the loans still carrying balance, computes
// the month's extra budget, and distributes it in a single waterfall pass.
type Allocator struct {
	logger *zap.Logger
}

// NewAllocator creates an allocator with the given logger. If logger is nil,
// it will use a no-op logger to prevent panics.
func NewAllocator(logger *zap.Logger) *Allocator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Allocator{logger: logger}
}

// ExtraBudget computes the extra cash available for the month. plannedSpend
// is the strategy's total monthly spend fixed at strategy start (ExtraPerMonth
// plus every loan's minimum payment); minPaymentsThisMonth is the sum of
// minimum payments for the loans that received a standard payment this month.
// Months at or before the strategy's delay have no extra budget.
func (a *Allocator) ExtraBudget(strategy Strategy, monthID int, plannedSpend, minPaymentsThisMonth float64) (float64, error) {
	if monthID <= strategy.MonthsDelay {
		return 0, nil
	}
	if strategy.ExtraPerMonth <= 0 {
		return 0, nil
	}

	switch strategy.CalcMethod {
	case CalcConstant:
		return plannedSpend - minPaymentsThisMonth, nil
	case CalcMinPaymentPlusExtra:
		return strategy.ExtraPerMonth, nil
	case CalcNotApplicable:
		return 0, nil
	default:
		return 0, &ConfigError{
			StrategyID: strategy.StrategyID,
			Field:      "extraPerMonthCalcMethod",
			Value:      string(strategy.CalcMethod),
		}
	}
}

// OrderLoans returns the waterfall order for extra principal. balance reports
// a loan's outstanding balance after this month's standard payment and is
// only consulted for balance-based orderings. Ties break on ascending LoanID
// so the order is fully deterministic.
func (a *Allocator) OrderLoans(strategy Strategy, loans []Loan, balance func(Loan) float64) ([]Loan, error) {
	ordered := make([]Loan, len(loans))
	copy(ordered, loans)
	grouped := strategy.GroupUsage == UseGroups

	switch strategy.SortOrder {
	case HighestRateFirst, SortOrderNotApplicable:
		sort.SliceStable(ordered, func(i, j int) bool {
			if grouped && ordered[i].SortGroup != ordered[j].SortGroup {
				return ordered[i].SortGroup < ordered[j].SortGroup
			}
			if ordered[i].Rate != ordered[j].Rate {
				return ordered[i].Rate > ordered[j].Rate
			}
			return ordered[i].LoanID < ordered[j].LoanID
		})
	case LowestBalanceFirst:
		sort.SliceStable(ordered, func(i, j int) bool {
			if grouped && ordered[i].SortGroup != ordered[j].SortGroup {
				return ordered[i].SortGroup < ordered[j].SortGroup
			}
			bi, bj := balance(ordered[i]), balance(ordered[j])
			if bi != bj {
				return bi < bj
			}
			return ordered[i].LoanID < ordered[j].LoanID
		})
	default:
		return nil, &ConfigError{
			StrategyID: strategy.StrategyID,
			Field:      "sortOrder",
			Value:      string(strategy.SortOrder),
		}
	}

	return ordered, nil
}

// Distribute walks the ordered loans once, consuming extra against each
// loan's post-payment balance until the budget is exhausted or every loan is
// satisfied. monthPayments holds the standard payments already emitted for
// this month; the returned slice is the same list with AdditionalPrincipal
// applied and balances recomputed, so the caller appends final rows to the
// ledger rather than rewriting history.
func (a *Allocator) Distribute(strategy Strategy, monthID int, extra float64, ordered []Loan, monthPayments []Payment) []Payment {
	byLoan := make(map[int]int, len(monthPayments))
	for i, p := range monthPayments {
		byLoan[p.LoanID] = i
	}

	for _, loan := range ordered {
		if extra <= 0 {
			break
		}
		i, ok := byLoan[loan.LoanID]
		if !ok {
			continue
		}

		balance := monthPayments[i].PrincipalBalance
		if balance <= 0 {
			continue
		}

		allocated := mathutil.Round(mathutil.Min(balance, extra))
		monthPayments[i].AdditionalPrincipal = mathutil.Round(monthPayments[i].AdditionalPrincipal + allocated)
		monthPayments[i].PrincipalBalance = mathutil.Round(balance - allocated)
		extra -= allocated

		a.logger.Debug(fmt.Sprintf("month %d: applying extra principal %.2f to loan %d for strategy %d",
			monthID, allocated, loan.LoanID, strategy.StrategyID),
			zap.String("op", "simulation.Distribute"),
		)
	}

	return monthPayments
}
