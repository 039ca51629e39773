package simulation

import (
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/zap"
)

// Run executes every strategy against the same portfolio and month axis and
// merges the per-strategy ledgers into the final payment collection.
// Strategies share no mutable state, so they are scheduled over a bounded
// worker pool and joined afterward.
type Run struct {
	Loans       []Loan
	Months      []Month
	Strategies  []Strategy
	FudgeFactor float64
	// Workers bounds the pool; zero or negative means runtime.NumCPU().
	Workers int

	logger *zap.Logger
}

// NewRun creates a run over the given inputs. If logger is nil, it will use
// a no-op logger to prevent panics.
func NewRun(logger *zap.Logger, portfolio []Loan, months []Month, strategies []Strategy) *Run {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Run{
		Loans:      portfolio,
		Months:     months,
		Strategies: strategies,
		logger:     logger,
	}
}

// Execute simulates all strategies and returns the merged payments with
// globally unique PaymentIDs. The merge is ordered by position in the
// strategy collection, so identical inputs always produce identical output.
// Any strategy failure fails the whole run; the error identifies the
// offending strategy.
func (r *Run) Execute() ([]Payment, error) {
	if len(r.Strategies) == 0 {
		return nil, nil
	}

	workers := r.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(r.Strategies) {
		workers = len(r.Strategies)
	}

	ledgers := make([]*Ledger, len(r.Strategies))
	errs := make([]error, len(r.Strategies))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				sim := NewStrategySimulator(r.logger, r.Loans, r.Months, r.FudgeFactor)
				ledgers[i], errs[i] = sim.Run(r.Strategies[i])
			}
		}()
	}
	for i := range r.Strategies {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("strategy %d (%s): %w", r.Strategies[i].StrategyID, r.Strategies[i].Name, err)
		}
	}

	total := 0
	for _, ledger := range ledgers {
		total += ledger.Len()
	}
	merged := make([]Payment, 0, total)
	for _, ledger := range ledgers {
		merged = append(merged, ledger.Payments()...)
	}
	for i := range merged {
		merged[i].PaymentID = i + 1
	}

	r.logger.Info(fmt.Sprintf("simulated %d strategies over %d months producing %d payments",
		len(r.Strategies), len(r.Months), len(merged)),
		zap.String("op", "simulation.Execute"),
		zap.Int("workers", workers),
	)
	return merged, nil
}
