package integration

import (
	"testing"
	"time"

	"github.com/vcarrera/loan-portfolio/internal/config"
	"github.com/vcarrera/loan-portfolio/internal/simulation"
	"github.com/vcarrera/loan-portfolio/internal/strategy"
	"github.com/vcarrera/loan-portfolio/pkg/testutil"
	"go.uber.org/zap"
)

// TestLargeStrategySpace checks that a wide strategy sweep completes in a
// reasonable time and that widening the space never changes per-strategy
// results.
func TestLargeStrategySpace(t *testing.T) {
	// Create a no-op logger to avoid debug output during testing
	logger := zap.NewNop()

	conf, err := config.LoadConfiguration("../test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration failed: %v", err)
	}

	portfolio, err := conf.SimulationLoans()
	if err != nil {
		t.Fatalf("SimulationLoans failed: %v", err)
	}
	months := testutil.Months(240)

	strategies := strategy.Generate(strategy.Space{
		SortOrders:   []simulation.SortOrder{simulation.HighestRateFirst, simulation.LowestBalanceFirst},
		ExtraAmounts: []float64{50, 100, 150, 200, 300},
		MonthsDelays: []int{0, 6, 12},
		GroupUsages:  []simulation.GroupUsage{simulation.UseGroups, simulation.DoNotUseGroups},
		IncludeBase:  true,
	})
	if len(strategies) != 61 {
		t.Fatalf("expected 61 strategies, got %d", len(strategies))
	}

	start := time.Now()
	run := simulation.NewRun(logger, portfolio, months, strategies)
	payments, err := run.Execute()
	simTime := time.Since(start)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(payments) == 0 {
		t.Fatal("Execute produced no payments")
	}
	t.Logf("simulated %d strategies producing %d payments in %v",
		len(strategies), len(payments), simTime)

	if simTime > 30*time.Second {
		t.Errorf("simulation took %v, expected under 30s", simTime)
	}

	// A strategy's ledger must not depend on which other strategies ran
	// alongside it.
	soloRun := simulation.NewRun(logger, portfolio, months, strategies[:2])
	soloPayments, err := soloRun.Execute()
	if err != nil {
		t.Fatalf("Execute failed for reduced space: %v", err)
	}
	soloCount := 0
	for _, payment := range soloPayments {
		if payment.StrategyID == 2 {
			soloCount++
		}
	}
	fullCount := 0
	for _, payment := range payments {
		if payment.StrategyID == 2 {
			fullCount++
		}
	}
	if soloCount != fullCount {
		t.Errorf("strategy 2 produced %d payments in the reduced space and %d in the full space",
			soloCount, fullCount)
	}
}
