// Package output provides utilities for formatting and writing simulation
// results.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vcarrera/loan-portfolio/internal/simulation"
	"github.com/vcarrera/loan-portfolio/pkg/format"
)

// Summary aggregates one strategy's ledger into the comparison numbers the
// run is ultimately about: total cost of interest, total principal moved, and
// how long payoff took.
type Summary struct {
	StrategyID               int
	StrategyName             string
	TotalInterest            float64
	TotalPrincipal           float64
	TotalAdditionalPrincipal float64
	PaymentCount             int
	// PayoffMonthID is the last month with a payment row, or 0 when the
	// strategy produced no payments.
	PayoffMonthID int
}

// Summarize aggregates the merged payment collection per strategy, ordered by
// StrategyID.
func Summarize(payments []simulation.Payment, strategies []simulation.Strategy) []Summary {
	byStrategy := make(map[int]*Summary, len(strategies))
	summaries := make([]Summary, 0, len(strategies))
	for _, s := range strategies {
		summaries = append(summaries, Summary{StrategyID: s.StrategyID, StrategyName: s.Name})
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].StrategyID < summaries[j].StrategyID
	})
	for i := range summaries {
		byStrategy[summaries[i].StrategyID] = &summaries[i]
	}

	for _, p := range payments {
		summary, ok := byStrategy[p.StrategyID]
		if !ok {
			continue
		}
		summary.TotalInterest += p.Interest
		summary.TotalPrincipal += p.Principal
		summary.TotalAdditionalPrincipal += p.AdditionalPrincipal
		summary.PaymentCount++
		if p.MonthID > summary.PayoffMonthID {
			summary.PayoffMonthID = p.MonthID
		}
	}

	return summaries
}

// PrettyPortfolio outputs a human-readable listing of the loans under
// simulation with their derived minimum payments.
func PrettyPortfolio(loans []simulation.Loan) {
	fmt.Printf("--- Portfolio ---\n")
	fmt.Printf("Loan                 | Principal     | Rate    | Term | Min Payment\n")
	fmt.Printf("____                 | _________     | ____    | ____ | ___________\n")
	for _, loan := range loans {
		fmt.Printf("%-20s | %-13s | %-7s | %4d | %s\n",
			loan.Name,
			format.Currency(loan.Principal),
			format.Percent(loan.Rate),
			loan.TermMonths,
			format.Currency(loan.MinPayment),
		)
	}
	fmt.Printf("\n")
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(summaries []Summary) {
	fmt.Printf("--- Strategy comparison ---\n")
	fmt.Printf("Strategy             | Interest      | Principal     | Additional    | Payments | Payoff Month\n")
	fmt.Printf("________             | ________      | _________     | __________    | ________ | ____________\n")
	for _, summary := range summaries {
		fmt.Printf("%-20s | %-13s | %-13s | %-13s | %8d | %12d\n",
			summary.StrategyName,
			format.Currency(summary.TotalInterest),
			format.Currency(summary.TotalPrincipal),
			format.Currency(summary.TotalAdditionalPrincipal),
			summary.PaymentCount,
			summary.PayoffMonthID,
		)
	}
}

// CsvString renders the merged payment table in comma-separated value format.
// Rows keep merge order, which is attributable by (StrategyId, LoanId,
// MonthId).
func CsvString(payments []simulation.Payment) string {
	var b strings.Builder
	b.WriteString("PaymentId,LoanId,MonthId,StrategyId,Interest,Principal,AdditionalPrincipal,PrincipalBalance\n")
	for _, p := range payments {
		fmt.Fprintf(&b, "%d,%d,%d,%d,%.2f,%.2f,%.2f,%.2f\n",
			p.PaymentID, p.LoanID, p.MonthID, p.StrategyID,
			p.Interest, p.Principal, p.AdditionalPrincipal, p.PrincipalBalance)
	}
	return b.String()
}

// CsvFormat outputs the merged payment table in comma-separated value format.
func CsvFormat(payments []simulation.Payment) {
	fmt.Print(CsvString(payments))
}

// WriteFiles writes the star-schema flat files (payments plus the loan,
// strategy, and month dimensions) into the given directory for tabular
// consumption.
func WriteFiles(dir string, payments []simulation.Payment, loans []simulation.Loan, strategies []simulation.Strategy, months []simulation.Month) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	if err := writeFile(dir, "payments.csv", CsvString(payments)); err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("LoanId,LoanName,Principal,Rate,TermInMonths,SortGroup,MinPayment\n")
	for _, l := range loans {
		fmt.Fprintf(&b, "%d,%s,%.2f,%.4f,%d,%d,%.2f\n",
			l.LoanID, l.Name, l.Principal, l.Rate, l.TermMonths, l.SortGroup, l.MinPayment)
	}
	if err := writeFile(dir, "loans.csv", b.String()); err != nil {
		return err
	}

	b.Reset()
	b.WriteString("StrategyId,StrategyName,SortOrder,ExtraPerMonth,MonthsDelay,ExtraPerMonthCalcMethod,UseSortOrderGroup\n")
	for _, s := range strategies {
		fmt.Fprintf(&b, "%d,%s,%s,%.2f,%d,%s,%s\n",
			s.StrategyID, s.Name, s.SortOrder, s.ExtraPerMonth, s.MonthsDelay, s.CalcMethod, s.GroupUsage)
	}
	if err := writeFile(dir, "strategies.csv", b.String()); err != nil {
		return err
	}

	b.Reset()
	b.WriteString("MonthId,Date\n")
	for _, m := range months {
		fmt.Fprintf(&b, "%d,%s\n", m.MonthID, m.Date.Format("2006-01-02"))
	}
	return writeFile(dir, "months.csv", b.String())
}

func writeFile(dir, name, content string) error {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
