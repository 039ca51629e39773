// Package simulation implements the strategy simulation engine: it walks a
// fixed loan portfolio forward one month at a time under each repayment
// strategy and produces the complete payment ledger for comparing total
// interest, payoff time, and cash flow across strategies.
package simulation

import (
	"fmt"
	"time"
)

// SortOrder selects the loan ordering used when distributing extra principal.
type SortOrder string

const (
	// HighestRateFirst targets the highest-interest loan first ("avalanche").
	HighestRateFirst SortOrder = "highestRateFirst"
	// LowestBalanceFirst targets the smallest-balance loan first ("snowball").
	LowestBalanceFirst SortOrder = "lowestBalanceFirst"
	// SortOrderNotApplicable is used by strategies that never allocate extra
	// principal; ordering falls back to descending rate if it is ever needed.
	SortOrderNotApplicable SortOrder = "notApplicable"
)

// CalcMethod selects how the monthly extra-principal budget is derived.
type CalcMethod string

const (
	// CalcConstant keeps the total monthly spend constant: as loans pay off,
	// their freed-up minimum payments are redirected into extra principal.
	CalcConstant CalcMethod = "constant"
	// CalcMinPaymentPlusExtra budgets a flat ExtraPerMonth on top of whatever
	// minimum payments remain.
	CalcMinPaymentPlusExtra CalcMethod = "minPaymentPlusExtra"
	// CalcNotApplicable is used by strategies that never allocate extra
	// principal.
	CalcNotApplicable CalcMethod = "notApplicable"
)

// GroupUsage selects whether loan sort groups partition the waterfall order.
type GroupUsage string

const (
	// UseGroups orders loans primarily by ascending SortGroup so each group is
	// paid off as a cohort before the next group is touched.
	UseGroups GroupUsage = "use"
	// DoNotUseGroups ignores SortGroup.
	DoNotUseGroups GroupUsage = "doNotUse"
	// GroupsNotApplicable is used by strategies that never allocate extra
	// principal.
	GroupsNotApplicable GroupUsage = "notApplicable"
)

// Loan is an immutable portfolio entry. MinPayment is derived once from
// Principal, Rate, and TermMonths by the amortization math.
type Loan struct {
	LoanID     int
	Name       string
	Principal  float64
	Rate       float64 // annual, as a fraction (0.06 = 6%)
	TermMonths int
	SortGroup  int
	MinPayment float64
}

// Month is one step of the simulation time axis. MonthIDs are sequential and
// 1-based, in the same order as the calendar dates.
type Month struct {
	MonthID int
	Date    time.Time
}

// Strategy is an immutable repayment configuration. The simulator never
// mutates a strategy.
type Strategy struct {
	StrategyID    int
	Name          string
	SortOrder     SortOrder
	ExtraPerMonth float64
	MonthsDelay   int
	CalcMethod    CalcMethod
	GroupUsage    GroupUsage
}

// Payment is one ledger row: the payment made against one loan in one month
// under one strategy. All amounts are rounded to cents.
type Payment struct {
	PaymentID           int
	LoanID              int
	MonthID             int
	StrategyID          int
	Interest            float64
	Principal           float64
	AdditionalPrincipal float64
	PrincipalBalance    float64
}

// ConfigError indicates an invalid strategy configuration encountered during
// simulation. Strategies are generated internally, so this is treated as a
// programming error: it fails the whole run rather than being recovered.
type ConfigError struct {
	StrategyID int
	Field      string
	Value      string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("strategy %d: unrecognized %s %q", e.StrategyID, e.Field, e.Value)
}
