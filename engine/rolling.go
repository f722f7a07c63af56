package engine

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"dashboard/customerrors"
)

const TradingDaysPerYear = 252

// RollingStats summarises the annualized returns of every trailing window
// of a fixed length. Valid is false when no window fits in the series.
type RollingStats struct {
	Years   float64
	Windows int
	Average Percent
	High    Percent
	Low     Percent
	Valid   bool
}

// Rolling steps a window of floor(years*252) observations one point at a
// time through the series. Points are treated as consecutive trading days.
func Rolling(s *Series, years float64) (RollingStats, error) {
	if !(years > 0) || math.IsInf(years, 0) {
		return RollingStats{}, fmt.Errorf("%w: %v", customerrors.ErrInvalidWindow, years)
	}
	stats := RollingStats{Years: years}
	points := s.view()
	window := int(math.Floor(years * TradingDaysPerYear))
	if window < 1 || len(points) < window {
		return stats, nil
	}

	returns := make([]float64, 0, len(points)-window)
	for i := window; i < len(points); i++ {
		past, current := points[i-window].Value, points[i].Value
		if !finite(past) || !finite(current) || past <= 0 {
			continue
		}
		r := (math.Pow(current/past, 1/years) - 1) * 100
		if finite(r) {
			returns = append(returns, r)
		}
	}
	if len(returns) == 0 {
		return stats, nil
	}

	stats.Windows = len(returns)
	stats.Average = NewPercent(stat.Mean(returns, nil))
	stats.High = NewPercent(floats.Max(returns))
	stats.Low = NewPercent(floats.Min(returns))
	stats.Valid = true
	return stats, nil
}
