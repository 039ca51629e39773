// Package strategy generates the strategy space explored by a simulation run.
package strategy

import (
	"fmt"

	"github.com/vcarrera/loan-portfolio/internal/simulation"
)

// Space describes the cross product of strategy parameters to enumerate.
// Empty dimensions fall back to sensible single-element defaults so a minimal
// config still yields a usable space.
type Space struct {
	SortOrders   []simulation.SortOrder
	ExtraAmounts []float64
	MonthsDelays []int
	CalcMethods  []simulation.CalcMethod
	GroupUsages  []simulation.GroupUsage
	IncludeBase  bool
}

// Generate enumerates the strategy space deterministically. When IncludeBase
// is set the no-extra-payment control strategy comes first with id 1; the
// cross product follows in dimension order with sequential ids.
func Generate(space Space) []simulation.Strategy {
	sortOrders := space.SortOrders
	if len(sortOrders) == 0 {
		sortOrders = []simulation.SortOrder{simulation.HighestRateFirst, simulation.LowestBalanceFirst}
	}
	extraAmounts := space.ExtraAmounts
	if len(extraAmounts) == 0 {
		extraAmounts = []float64{0}
	}
	monthsDelays := space.MonthsDelays
	if len(monthsDelays) == 0 {
		monthsDelays = []int{0}
	}
	calcMethods := space.CalcMethods
	if len(calcMethods) == 0 {
		calcMethods = []simulation.CalcMethod{simulation.CalcMinPaymentPlusExtra}
	}
	groupUsages := space.GroupUsages
	if len(groupUsages) == 0 {
		groupUsages = []simulation.GroupUsage{simulation.DoNotUseGroups}
	}

	var strategies []simulation.Strategy
	id := 1
	if space.IncludeBase {
		strategies = append(strategies, simulation.Strategy{
			StrategyID: id,
			Name:       "Base",
			SortOrder:  simulation.SortOrderNotApplicable,
			CalcMethod: simulation.CalcNotApplicable,
			GroupUsage: simulation.GroupsNotApplicable,
		})
		id++
	}

	for _, sortOrder := range sortOrders {
		for _, extra := range extraAmounts {
			for _, delay := range monthsDelays {
				for _, method := range calcMethods {
					for _, groups := range groupUsages {
						strategies = append(strategies, simulation.Strategy{
							StrategyID:    id,
							Name:          name(sortOrder, extra, delay, method, groups),
							SortOrder:     sortOrder,
							ExtraPerMonth: extra,
							MonthsDelay:   delay,
							CalcMethod:    method,
							GroupUsage:    groups,
						})
						id++
					}
				}
			}
		}
	}

	return strategies
}

// name builds a short human-readable label like "HR 100" or
// "LB 200 const grouped delay 6".
func name(sortOrder simulation.SortOrder, extra float64, delay int, method simulation.CalcMethod, groups simulation.GroupUsage) string {
	label := fmt.Sprintf("%s %.0f", abbreviate(sortOrder), extra)
	if method == simulation.CalcConstant {
		label += " const"
	}
	if groups == simulation.UseGroups {
		label += " grouped"
	}
	if delay > 0 {
		label += fmt.Sprintf(" delay %d", delay)
	}
	return label
}

func abbreviate(sortOrder simulation.SortOrder) string {
	switch sortOrder {
	case simulation.HighestRateFirst:
		return "HR"
	case simulation.LowestBalanceFirst:
		return "LB"
	default:
		return "NA"
	}
}
