package simulation

import (
	"reflect"
	"strings"
	"testing"
)

func testStrategies() []Strategy {
	return []Strategy{
		{
			StrategyID: 1, Name: "Base",
			SortOrder: SortOrderNotApplicable, CalcMethod: CalcNotApplicable, GroupUsage: GroupsNotApplicable,
		},
		{
			StrategyID: 2, Name: "HR 100",
			SortOrder: HighestRateFirst, ExtraPerMonth: 100, CalcMethod: CalcMinPaymentPlusExtra, GroupUsage: DoNotUseGroups,
		},
		{
			StrategyID: 3, Name: "LB 100",
			SortOrder: LowestBalanceFirst, ExtraPerMonth: 100, CalcMethod: CalcMinPaymentPlusExtra, GroupUsage: DoNotUseGroups,
		},
		{
			StrategyID: 4, Name: "HR 300",
			SortOrder: HighestRateFirst, ExtraPerMonth: 300, CalcMethod: CalcMinPaymentPlusExtra, GroupUsage: DoNotUseGroups,
		},
	}
}

func TestExecuteMergesWithUniqueIDs(t *testing.T) {
	portfolio := []Loan{
		testLoan(t, 1, "Sample 10 Year", 20000, 0.06, 120, 0),
		testLoan(t, 2, "Sample 5 Year", 10000, 0.04, 60, 0),
	}
	run := NewRun(nil, portfolio, monthAxis(360), testStrategies())

	payments, err := run.Execute()
	if err != nil {
		t.Fatalf("Execute() unexpected error: %v", err)
	}
	if len(payments) == 0 {
		t.Fatalf("Execute() produced no payments")
	}

	for i, p := range payments {
		if p.PaymentID != i+1 {
			t.Fatalf("payment %d has id %d, expected sequential renumbering", i, p.PaymentID)
		}
	}

	// Merge order groups payments by strategy in collection order.
	lastStrategy := 0
	for _, p := range payments {
		if p.StrategyID < lastStrategy {
			t.Fatalf("merge order broken: strategy %d after %d", p.StrategyID, lastStrategy)
		}
		lastStrategy = p.StrategyID
	}
}

// Strategies are independent, so the pool size must not affect the output.
func TestExecuteDeterministicAcrossWorkerCounts(t *testing.T) {
	portfolio := []Loan{
		testLoan(t, 1, "Sample 10 Year", 20000, 0.06, 120, 0),
		testLoan(t, 2, "Sample 5 Year", 10000, 0.04, 60, 0),
	}

	serial := NewRun(nil, portfolio, monthAxis(360), testStrategies())
	serial.Workers = 1
	serialPayments, err := serial.Execute()
	if err != nil {
		t.Fatalf("Execute() unexpected error: %v", err)
	}

	parallel := NewRun(nil, portfolio, monthAxis(360), testStrategies())
	parallel.Workers = 4
	parallelPayments, err := parallel.Execute()
	if err != nil {
		t.Fatalf("Execute() unexpected error: %v", err)
	}

	if !reflect.DeepEqual(serialPayments, parallelPayments) {
		t.Errorf("worker pool size changed the merged output")
	}
}

func TestExecuteFailsRunOnBadStrategy(t *testing.T) {
	portfolio := []Loan{testLoan(t, 1, "Sample", 1000, 0.05, 12, 0)}
	strategies := testStrategies()
	strategies[2].SortOrder = SortOrder("bogus")

	run := NewRun(nil, portfolio, monthAxis(12), strategies)
	_, err := run.Execute()
	if err == nil {
		t.Fatalf("Execute() expected error for invalid strategy")
	}
	if !strings.Contains(err.Error(), "LB 100") {
		t.Errorf("error %q should identify the failed strategy", err.Error())
	}
}

func TestExecuteEmptyStrategies(t *testing.T) {
	run := NewRun(nil, nil, monthAxis(12), nil)
	payments, err := run.Execute()
	if err != nil {
		t.Fatalf("Execute() unexpected error: %v", err)
	}
	if len(payments) != 0 {
		t.Errorf("Execute() = %d payments, expected none", len(payments))
	}
}

// Fewer total interest dollars must be paid as the extra payment grows; this
// is the comparison the whole simulation exists to surface.
func TestLargerExtraReducesTotalInterest(t *testing.T) {
	portfolio := []Loan{
		testLoan(t, 1, "Sample 10 Year", 20000, 0.06, 120, 0),
		testLoan(t, 2, "Sample 5 Year", 10000, 0.04, 60, 0),
	}
	run := NewRun(nil, portfolio, monthAxis(360), testStrategies())
	payments, err := run.Execute()
	if err != nil {
		t.Fatalf("Execute() unexpected error: %v", err)
	}

	interest := make(map[int]float64)
	for _, p := range payments {
		interest[p.StrategyID] += p.Interest
	}
	if interest[2] >= interest[1] {
		t.Errorf("HR 100 interest %.2f should be below Base interest %.2f", interest[2], interest[1])
	}
	if interest[4] >= interest[2] {
		t.Errorf("HR 300 interest %.2f should be below HR 100 interest %.2f", interest[4], interest[2])
	}
}
