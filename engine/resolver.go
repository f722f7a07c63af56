package engine

import (
	"math"
	"time"

	"dashboard/util"
)

// Strategy selects how month based periods locate their comparison point.
type Strategy int

const (
	// NearestPrior picks the latest observation on or before the nominal
	// date, falling back to the first observation. Used by the indices table.
	NearestPrior Strategy = iota
	// MonthEnd only accepts observations in the week ending at the nominal
	// month end. Used by the monthly report.
	MonthEnd
)

// monthEndWindowDays is the width of the MonthEnd candidate window,
// nominal date included.
const monthEndWindowDays = 7

func (s Strategy) String() string {
	switch s {
	case NearestPrior:
		return "nearest-prior"
	case MonthEnd:
		return "month-end"
	}
	return "unknown"
}

// Resolver computes period returns with one lookup strategy and catalog.
type Resolver struct {
	strategy Strategy
	periods  []Period
}

func NewIndexResolver() *Resolver {
	return &Resolver{strategy: NearestPrior, periods: IndexPeriods}
}

func NewMonthlyResolver() *Resolver {
	return &Resolver{strategy: MonthEnd, periods: MonthlyPeriods}
}

func (r *Resolver) Strategy() Strategy { return r.strategy }

func (r *Resolver) Periods() []Period { return r.periods }

// Resolve returns the result for one period label. Only an unknown label is
// an error; missing data yields an unavailable result.
func (r *Resolver) Resolve(s *Series, label string, opts Options) (Result, error) {
	p, err := FindPeriod(r.periods, label)
	if err != nil {
		return Result{}, err
	}
	return r.resolve(s.Until(opts.AsOf).view(), p, opts.Calendar), nil
}

// ResolveAll fills every period of the resolver's catalog.
func (r *Resolver) ResolveAll(s *Series, opts Options) Table {
	points := s.Until(opts.AsOf).view()
	table := make(Table, len(r.periods))
	for _, p := range r.periods {
		table[p.Label] = r.resolve(points, p, opts.Calendar)
	}
	return table
}

func (r *Resolver) resolve(points []Observation, p Period, cal Calendar) Result {
	cur := len(points) - 1
	if cur < 1 {
		return unavailable()
	}
	current := points[cur]

	var (
		idx int
		ok  bool
	)
	switch p.Rule {
	case RuleInception:
		idx, ok = 0, true
	case RuleTradingDays:
		idx, ok = walkBack(points, cur, p.N, cal)
	case RuleCalendarDays:
		idx, ok = priorOnOrBefore(points, cur, current.Date.AddDate(0, 0, -p.N), cal)
	case RuleMonths:
		idx, ok = r.lookup(points, cur, r.nominalMonth(current.Date, p.N), cal)
	}
	if !ok {
		return unavailable()
	}

	if p.MinPoints > 0 && r.strategy == NearestPrior && countBetween(points, idx, cur, cal) < p.MinPoints {
		return unavailable()
	}

	comparison := points[idx]
	value := PeriodReturn(comparison.Value, current.Value, util.YearsBetween(comparison.Date, current.Date))
	if !value.Valid {
		return unavailable()
	}
	date := comparison.Date
	return Result{Value: value, ComparisonDate: &date}
}

func (r *Resolver) nominalMonth(current time.Time, months int) time.Time {
	if r.strategy == MonthEnd {
		return util.MonthEndBefore(current, months)
	}
	return util.AddMonths(current, -months)
}

func (r *Resolver) lookup(points []Observation, cur int, nominal time.Time, cal Calendar) (int, bool) {
	if r.strategy == MonthEnd {
		return monthEndLookup(points, cur, nominal, cal)
	}
	return nearestPrior(points, cur, nominal, cal)
}

// walkBack steps back from cur counting only valid trading days.
func walkBack(points []Observation, cur, n int, cal Calendar) (int, bool) {
	count := 0
	for i := cur - 1; i >= 0; i-- {
		if !cal.Valid(points[i].Date) {
			continue
		}
		count++
		if count == n {
			return i, true
		}
	}
	return 0, false
}

// priorOnOrBefore finds the latest valid point at or before nominal.
func priorOnOrBefore(points []Observation, cur int, nominal time.Time, cal Calendar) (int, bool) {
	for i := cur - 1; i >= 0; i-- {
		if points[i].Date.After(nominal) || !cal.Valid(points[i].Date) {
			continue
		}
		return i, true
	}
	return 0, false
}

func nearestPrior(points []Observation, cur int, nominal time.Time, cal Calendar) (int, bool) {
	if i, ok := priorOnOrBefore(points, cur, nominal, cal); ok {
		return i, true
	}
	// nothing old enough: the series starts after the nominal date
	return 0, true
}

func monthEndLookup(points []Observation, cur int, nominal time.Time, cal Calendar) (int, bool) {
	windowStart := nominal.AddDate(0, 0, -(monthEndWindowDays - 1))
	closest := -1
	for i := cur - 1; i >= 0; i-- {
		d := points[i].Date
		if d.After(nominal) {
			continue
		}
		if d.Before(windowStart) {
			break
		}
		if !cal.Valid(d) {
			continue
		}
		if d.Equal(nominal) {
			return i, true
		}
		if closest < 0 {
			closest = i
		}
	}
	return closest, closest >= 0
}

// countBetween counts valid points dated strictly between points[from] and
// points[to].
func countBetween(points []Observation, from, to int, cal Calendar) int {
	lo, hi := points[from].Date, points[to].Date
	n := 0
	for i := from + 1; i < to; i++ {
		d := points[i].Date
		if d.After(lo) && d.Before(hi) && cal.Valid(d) {
			n++
		}
	}
	return n
}

// PeriodReturn is the simple percentage change for spans up to one year and
// the compound annual growth rate beyond that.
func PeriodReturn(from, to, years float64) Percent {
	if !finite(from) || !finite(to) || from == 0 {
		return Percent{}
	}
	if years <= 1 {
		return NewPercent((to - from) / from * 100)
	}
	return NewPercent((math.Pow(to/from, 1/years) - 1) * 100)
}
