package engine

import (
	"fmt"

	"dashboard/customerrors"
)

// Rule says how a period finds its comparison observation.
type Rule int

const (
	// RuleTradingDays walks back N valid trading days.
	RuleTradingDays Rule = iota
	// RuleCalendarDays looks up the observation N calendar days back.
	RuleCalendarDays
	// RuleMonths looks up the observation N months back.
	RuleMonths
	// RuleInception compares against the first observation.
	RuleInception
)

const SinceInception = "Since Inception"

type Period struct {
	Label string
	Rule  Rule
	N     int
	// MinPoints is the number of valid points that must lie strictly between
	// the comparison and current dates. Zero disables the check.
	MinPoints int
}

// IndexPeriods is the catalog served by the indices table. The minimum point
// counts are fixed dashboard policy.
var IndexPeriods = []Period{
	{Label: "1D", Rule: RuleTradingDays, N: 1},
	{Label: "2D", Rule: RuleTradingDays, N: 2},
	{Label: "3D", Rule: RuleTradingDays, N: 3},
	{Label: "10D", Rule: RuleTradingDays, N: 10},
	{Label: "1W", Rule: RuleCalendarDays, N: 7},
	{Label: "1M", Rule: RuleMonths, N: 1, MinPoints: 15},
	{Label: "3M", Rule: RuleMonths, N: 3, MinPoints: 45},
	{Label: "6M", Rule: RuleMonths, N: 6, MinPoints: 90},
	{Label: "9M", Rule: RuleMonths, N: 9, MinPoints: 135},
	{Label: "1Y", Rule: RuleMonths, N: 12, MinPoints: 180},
	{Label: "2Y", Rule: RuleMonths, N: 24, MinPoints: 360},
	{Label: "3Y", Rule: RuleMonths, N: 36, MinPoints: 540},
	{Label: "4Y", Rule: RuleMonths, N: 48, MinPoints: 720},
	{Label: "5Y", Rule: RuleMonths, N: 60, MinPoints: 900},
	{Label: SinceInception, Rule: RuleInception},
}

// MonthlyPeriods is the catalog of the month-end report, where a week is
// five trading days.
var MonthlyPeriods = []Period{
	{Label: "1D", Rule: RuleTradingDays, N: 1},
	{Label: "2D", Rule: RuleTradingDays, N: 2},
	{Label: "3D", Rule: RuleTradingDays, N: 3},
	{Label: "10D", Rule: RuleTradingDays, N: 10},
	{Label: "1W", Rule: RuleTradingDays, N: 5},
	{Label: "1M", Rule: RuleMonths, N: 1},
	{Label: "3M", Rule: RuleMonths, N: 3},
	{Label: "6M", Rule: RuleMonths, N: 6},
	{Label: "9M", Rule: RuleMonths, N: 9},
	{Label: "1Y", Rule: RuleMonths, N: 12},
	{Label: "2Y", Rule: RuleMonths, N: 24},
	{Label: "3Y", Rule: RuleMonths, N: 36},
	{Label: "4Y", Rule: RuleMonths, N: 48},
	{Label: "5Y", Rule: RuleMonths, N: 60},
	{Label: SinceInception, Rule: RuleInception},
}

func FindPeriod(catalog []Period, label string) (Period, error) {
	for _, p := range catalog {
		if p.Label == label {
			return p, nil
		}
	}
	return Period{}, fmt.Errorf("%w: %q", customerrors.ErrUnknownPeriod, label)
}

// Labels lists catalog labels in display order.
func Labels(catalog []Period) []string {
	out := make([]string, len(catalog))
	for i, p := range catalog {
		out[i] = p.Label
	}
	return out
}
