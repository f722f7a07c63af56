package engine

import (
	"fmt"
	"time"

	"dashboard/customerrors"
	"dashboard/util"
)

// CoverageRatio is applied twice to the calendar span of a custom range: a
// range qualifies once its points cover 80% of 80% of the days in it.
const CoverageRatio = 0.8

// ResolveRange returns the change between the first and last observation in
// [from, to]. Sparse ranges are unavailable. opts.AsOf is ignored.
func ResolveRange(s *Series, from, to time.Time, opts Options) (Result, error) {
	from, to = util.Truncate(from), util.Truncate(to)
	if to.Before(from) {
		return Result{}, fmt.Errorf("%w: %s to %s", customerrors.ErrInvalidRange, util.FormatDate(from), util.FormatDate(to))
	}

	var covered []Observation
	for _, o := range s.Between(from, to).view() {
		if opts.Calendar.Valid(o.Date) {
			covered = append(covered, o)
		}
	}
	if len(covered) < 2 {
		return unavailable(), nil
	}

	span := float64(util.DaysBetween(from, to) + 1)
	if float64(len(covered)) < span*CoverageRatio*CoverageRatio {
		return unavailable(), nil
	}

	first, last := covered[0], covered[len(covered)-1]
	value := PeriodReturn(first.Value, last.Value, util.YearsBetween(first.Date, last.Date))
	if !value.Valid {
		return unavailable(), nil
	}
	date := first.Date
	return Result{Value: value, ComparisonDate: &date}, nil
}
