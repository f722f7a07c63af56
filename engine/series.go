// Package engine computes trailing returns, drawdowns and rolling statistics
// over daily observation series. Everything here is pure: no I/O, no shared
// state, and input slices are never modified.
package engine

import (
	"fmt"
	"math"
	"slices"
	"time"

	"dashboard/customerrors"
	"dashboard/util"
)

// Observation is one dated value of an instrument. Instrument may be left
// empty when the series name already identifies it.
type Observation struct {
	Instrument string
	Date       time.Time
	Value      float64
}

// Series is an ascending, immutable view of one instrument's observations.
type Series struct {
	Name   string
	points []Observation
}

// NewSeries copies and sorts obs by date. Observations tagged with another
// instrument are rejected.
func NewSeries(name string, obs []Observation) (*Series, error) {
	points := make([]Observation, 0, len(obs))
	for _, o := range obs {
		if o.Instrument != "" && o.Instrument != name {
			return nil, fmt.Errorf("%w: %q in series %q", customerrors.ErrMixedInstruments, o.Instrument, name)
		}
		o.Date = util.Truncate(o.Date)
		points = append(points, o)
	}
	slices.SortStableFunc(points, func(a, b Observation) int {
		return a.Date.Compare(b.Date)
	})
	return &Series{Name: name, points: points}, nil
}

func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return len(s.points)
}

// Points returns a copy of the sorted observations.
func (s *Series) Points() []Observation {
	if s == nil {
		return nil
	}
	return slices.Clone(s.points)
}

// Until bounds the series to observations on or before t. A zero t leaves
// the series unbounded.
func (s *Series) Until(t time.Time) *Series {
	if s == nil || t.IsZero() {
		return s
	}
	limit := util.Truncate(t)
	n, _ := slices.BinarySearchFunc(s.points, limit, func(o Observation, target time.Time) int {
		if o.Date.After(target) {
			return 1
		}
		return -1
	})
	return &Series{Name: s.Name, points: s.points[:n]}
}

// Between bounds the series to observations in [from, to].
func (s *Series) Between(from, to time.Time) *Series {
	bounded := s.Until(to)
	start := util.Truncate(from)
	i := 0
	for i < len(bounded.points) && bounded.points[i].Date.Before(start) {
		i++
	}
	return &Series{Name: s.Name, points: bounded.points[i:]}
}

func (s *Series) view() []Observation {
	if s == nil {
		return nil
	}
	return s.points
}

// Calendar is the set of valid trading days keyed by ISO date. A nil
// Calendar accepts every date.
type Calendar map[string]struct{}

func NewCalendar(dates []time.Time) Calendar {
	c := make(Calendar, len(dates))
	for _, d := range dates {
		c[util.FormatDate(d)] = struct{}{}
	}
	return c
}

// CalendarFromSeries derives a calendar from a benchmark's observation dates.
func CalendarFromSeries(s *Series) Calendar {
	c := make(Calendar, s.Len())
	for _, o := range s.view() {
		c[util.FormatDate(o.Date)] = struct{}{}
	}
	return c
}

func (c Calendar) Valid(t time.Time) bool {
	if c == nil {
		return true
	}
	_, ok := c[util.FormatDate(t)]
	return ok
}

// Options bound a computation. AsOf caps the current observation; the zero
// value means the latest point is current.
type Options struct {
	Calendar Calendar
	AsOf     time.Time
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
