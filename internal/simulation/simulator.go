package simulation

import (
	"fmt"

	"github.com/vcarrera/loan-portfolio/pkg/constants"
	"github.com/vcarrera/loan-portfolio/pkg/loans"
	"github.com/vcarrera/loan-portfolio/pkg/mathutil"
	"go.uber.org/zap"
)

// StrategySimulator produces the complete payment ledger for a single
// strategy over the month axis.
type StrategySimulator struct {
	logger      *zap.Logger
	loans       []Loan
	months      []Month
	fudgeFactor float64
	allocator   *Allocator
}

// NewStrategySimulator creates a simulator over the given portfolio and month
// axis. A non-positive fudgeFactor falls back to the default payoff
// tolerance. If logger is nil, it will use a no-op logger to prevent panics.
func NewStrategySimulator(logger *zap.Logger, portfolio []Loan, months []Month, fudgeFactor float64) *StrategySimulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if fudgeFactor <= 0 {
		fudgeFactor = constants.DefaultFudgeFactor
	}
	return &StrategySimulator{
		logger:      logger,
		loans:       portfolio,
		months:      months,
		fudgeFactor: fudgeFactor,
		allocator:   NewAllocator(logger),
	}
}

// Run simulates one strategy and returns its private ledger. The simulation
// always walks the full month axis; months after a loan's payoff simply emit
// no rows for it. PaymentIDs are local to the ledger and are renumbered when
// the run merges ledgers.
func (s *StrategySimulator) Run(strategy Strategy) (*Ledger, error) {
	if err := validateStrategy(strategy); err != nil {
		return nil, err
	}

	ledger := NewLedger()

	// The Constant calc method holds total monthly spend at this level for
	// the life of the strategy.
	plannedSpend := strategy.ExtraPerMonth
	for _, loan := range s.loans {
		plannedSpend += loan.MinPayment
	}

	nextPaymentID := 1
	for _, month := range s.months {
		monthPayments := make([]Payment, 0, len(s.loans))
		active := make([]Loan, 0, len(s.loans))
		minPaymentsThisMonth := 0.0

		// Standard-payment pass in portfolio order; ordering only matters for
		// the extra allocation below.
		for _, loan := range s.loans {
			balance := ledger.OutstandingBalance(loan, month.MonthID)
			if balance <= 0 {
				continue
			}
			minPaymentsThisMonth += loan.MinPayment

			interest := mathutil.Round(loans.MonthlyInterest(balance, loan.Rate))
			principal := mathutil.Round(loan.MinPayment - interest)
			if balance <= principal+s.fudgeFactor {
				// Close to payoff: clear the full balance now instead of
				// carrying a sub-tolerance residual another month.
				principal = balance
			}
			balance = mathutil.Round(balance - principal)

			monthPayments = append(monthPayments, Payment{
				PaymentID:        nextPaymentID,
				LoanID:           loan.LoanID,
				MonthID:          month.MonthID,
				StrategyID:       strategy.StrategyID,
				Interest:         interest,
				Principal:        principal,
				PrincipalBalance: balance,
			})
			nextPaymentID++

			if balance > 0 {
				active = append(active, loan)
			}
		}

		extra, err := s.allocator.ExtraBudget(strategy, month.MonthID, plannedSpend, minPaymentsThisMonth)
		if err != nil {
			return nil, err
		}
		if extra > 0 && len(active) > 0 {
			postPayment := make(map[int]float64, len(monthPayments))
			for _, p := range monthPayments {
				postPayment[p.LoanID] = p.PrincipalBalance
			}
			ordered, err := s.allocator.OrderLoans(strategy, active, func(l Loan) float64 {
				return postPayment[l.LoanID]
			})
			if err != nil {
				return nil, err
			}
			monthPayments = s.allocator.Distribute(strategy, month.MonthID, extra, ordered, monthPayments)
		}

		for _, p := range monthPayments {
			ledger.Append(p)
		}
	}

	s.logger.Debug(fmt.Sprintf("strategy %d (%s) produced %d payments", strategy.StrategyID, strategy.Name, ledger.Len()),
		zap.String("op", "simulation.Run"),
	)
	return ledger, nil
}

// validateStrategy rejects unrecognized enum values before any rows are
// emitted so a misconfigured strategy fails fast.
func validateStrategy(strategy Strategy) error {
	switch strategy.SortOrder {
	case HighestRateFirst, LowestBalanceFirst, SortOrderNotApplicable:
	default:
		return &ConfigError{StrategyID: strategy.StrategyID, Field: "sortOrder", Value: string(strategy.SortOrder)}
	}

	switch strategy.CalcMethod {
	case CalcConstant, CalcMinPaymentPlusExtra, CalcNotApplicable:
	default:
		return &ConfigError{StrategyID: strategy.StrategyID, Field: "extraPerMonthCalcMethod", Value: string(strategy.CalcMethod)}
	}

	switch strategy.GroupUsage {
	case UseGroups, DoNotUseGroups, GroupsNotApplicable:
	default:
		return &ConfigError{StrategyID: strategy.StrategyID, Field: "useSortOrderGroup", Value: string(strategy.GroupUsage)}
	}

	return nil
}
