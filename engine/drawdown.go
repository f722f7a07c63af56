package engine

// Drawdown pairs the latest decline from the series peak with the worst
// decline seen along the way.
type Drawdown struct {
	Current Percent
	Max     Percent
}

func Drawdowns(s *Series) Drawdown {
	return Drawdown{Current: CurrentDrawdown(s), Max: MaxDrawdown(s)}
}

// CurrentDrawdown is the distance of the last value below the highest value
// of the whole series, as a non-positive percentage. Only the supplied
// points are considered.
func CurrentDrawdown(s *Series) Percent {
	points := s.view()
	if len(points) == 0 {
		return Percent{}
	}
	last := points[len(points)-1].Value
	if !finite(last) {
		return Percent{}
	}
	peak, ok := 0.0, false
	for _, o := range points {
		if finite(o.Value) && (!ok || o.Value > peak) {
			peak, ok = o.Value, true
		}
	}
	if peak <= 0 {
		return Percent{}
	}
	return NewPercent((last - peak) / peak * 100)
}

// MaxDrawdown scans forward once with a running peak and returns the
// largest decline as a positive percentage. Non-finite values are skipped.
func MaxDrawdown(s *Series) Percent {
	var (
		peak, worst float64
		seen        bool
	)
	for _, o := range s.view() {
		if !finite(o.Value) {
			continue
		}
		if !seen || o.Value > peak {
			peak, seen = o.Value, true
		}
		if peak > 0 {
			if dd := (peak - o.Value) / peak * 100; dd > worst {
				worst = dd
			}
		}
	}
	if !seen || peak <= 0 {
		return Percent{}
	}
	return NewPercent(worst)
}
