package engine

import (
	"errors"
	"testing"
	"time"

	"dashboard/customerrors"
)

func TestResolveRangeCoverage(t *testing.T) {
	values := make([]float64, 60)
	for i := range values {
		values[i] = 100 + float64(i)
	}
	s := daily(t, date(2024, 1, 1), values)

	res, err := ResolveRange(s, date(2024, 1, 1), date(2024, 1, 31), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Value.String() != "30.00" {
		t.Errorf("expected 30.00 over January, got %s", res.Value)
	}
	if !res.ComparisonDate.Equal(date(2024, 1, 1)) {
		t.Errorf("expected comparison on Jan 1, got %v", res.ComparisonDate)
	}

	// weekdays only: 23 of 31 days is 74%, above the 64% floor
	var weekdays []time.Time
	for d := date(2024, 1, 1); d.Before(date(2024, 2, 1)); d = d.AddDate(0, 0, 1) {
		if d.Weekday() != time.Saturday && d.Weekday() != time.Sunday {
			weekdays = append(weekdays, d)
		}
	}
	res, _ = ResolveRange(s, date(2024, 1, 1), date(2024, 1, 31), Options{Calendar: NewCalendar(weekdays)})
	if !res.Available() {
		t.Errorf("expected weekday coverage to qualify")
	}

	// one point in three is too sparse
	var sparse []time.Time
	for d := date(2024, 1, 1); d.Before(date(2024, 2, 1)); d = d.AddDate(0, 0, 3) {
		sparse = append(sparse, d)
	}
	res, _ = ResolveRange(s, date(2024, 1, 1), date(2024, 1, 31), Options{Calendar: NewCalendar(sparse)})
	if res.Available() {
		t.Errorf("expected sparse coverage to be unavailable, got %s", res.Value)
	}

	res, _ = ResolveRange(s, date(2023, 6, 1), date(2023, 6, 30), Options{})
	if res.Available() {
		t.Errorf("expected a range before the series to be unavailable")
	}
}

func TestResolveRangeInverted(t *testing.T) {
	s := daily(t, date(2024, 1, 1), []float64{100, 101})
	_, err := ResolveRange(s, date(2024, 2, 1), date(2024, 1, 1), Options{})
	if !errors.Is(err, customerrors.ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
}

func TestSeriesBounds(t *testing.T) {
	s := daily(t, date(2024, 1, 1), []float64{1, 2, 3, 4, 5})
	if n := s.Until(date(2024, 1, 3)).Len(); n != 3 {
		t.Errorf("expected 3 points until Jan 3, got %d", n)
	}
	if n := s.Until(time.Time{}).Len(); n != 5 {
		t.Errorf("expected zero bound to keep 5 points, got %d", n)
	}
	if n := s.Until(date(2023, 12, 31)).Len(); n != 0 {
		t.Errorf("expected no points before the series, got %d", n)
	}
	if n := s.Between(date(2024, 1, 2), date(2024, 1, 4)).Len(); n != 3 {
		t.Errorf("expected 3 points between Jan 2 and Jan 4, got %d", n)
	}
	cal := CalendarFromSeries(s)
	if !cal.Valid(date(2024, 1, 5)) || cal.Valid(date(2024, 1, 6)) {
		t.Errorf("calendar does not match series dates")
	}
}
