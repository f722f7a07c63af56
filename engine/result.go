package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unavailable is how a missing value is rendered.
const Unavailable = "-"

// Percent is a percentage that may be unavailable. The zero value is
// unavailable.
type Percent struct {
	Value float64
	Valid bool
}

// NewPercent wraps v, treating NaN and infinities as unavailable.
func NewPercent(v float64) Percent {
	if !finite(v) {
		return Percent{}
	}
	return Percent{Value: v, Valid: true}
}

func (p Percent) String() string {
	if !p.Valid {
		return Unavailable
	}
	return decimal.NewFromFloat(p.Value).StringFixed(2)
}

// Result is the return of one period. ComparisonDate is nil when the period
// is unavailable.
type Result struct {
	Value          Percent
	ComparisonDate *time.Time
}

func unavailable() Result {
	return Result{}
}

func (r Result) Available() bool {
	return r.Value.Valid
}

// Table maps period labels to results.
type Table map[string]Result
