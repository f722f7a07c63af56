package util

import (
	"math"
	"testing"
	"time"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestAddMonthsClampsToMonthEnd(t *testing.T) {
	cases := []struct {
		in       time.Time
		months   int
		expected time.Time
	}{
		{d(2024, 3, 31), -1, d(2024, 2, 29)},
		{d(2023, 3, 31), -1, d(2023, 2, 28)},
		{d(2024, 3, 15), -1, d(2024, 2, 15)},
		{d(2024, 1, 31), -1, d(2023, 12, 31)},
		{d(2024, 5, 31), -3, d(2024, 2, 29)},
		{d(2024, 2, 29), -12, d(2023, 2, 28)},
		{d(2024, 8, 31), -60, d(2019, 8, 31)},
	}
	for _, c := range cases {
		if got := AddMonths(c.in, c.months); !got.Equal(c.expected) {
			t.Errorf("AddMonths(%s, %d): expected %s, got %s", FormatDate(c.in), c.months, FormatDate(c.expected), FormatDate(got))
		}
	}
}

func TestMonthEndBefore(t *testing.T) {
	cases := []struct {
		in       time.Time
		months   int
		expected time.Time
	}{
		{d(2024, 3, 31), 1, d(2024, 2, 29)},
		{d(2024, 3, 1), 1, d(2024, 2, 29)},
		{d(2024, 1, 31), 1, d(2023, 12, 31)},
		{d(2024, 12, 31), 9, d(2024, 3, 31)},
		{d(2025, 2, 28), 12, d(2024, 2, 29)},
	}
	for _, c := range cases {
		if got := MonthEndBefore(c.in, c.months); !got.Equal(c.expected) {
			t.Errorf("MonthEndBefore(%s, %d): expected %s, got %s", FormatDate(c.in), c.months, FormatDate(c.expected), FormatDate(got))
		}
	}
}

func TestEndOfMonth(t *testing.T) {
	if got := EndOfMonth(2024, time.February); !got.Equal(d(2024, 2, 29)) {
		t.Errorf("expected Feb 29 2024, got %s", FormatDate(got))
	}
	if got := EndOfMonth(2100, time.February); !got.Equal(d(2100, 2, 28)) {
		t.Errorf("expected Feb 28 2100, got %s", FormatDate(got))
	}
}

func TestYearsBetween(t *testing.T) {
	if got := DaysBetween(d(2024, 1, 1), d(2024, 12, 31)); got != 365 {
		t.Errorf("expected 365 days, got %d", got)
	}
	if got := YearsBetween(d(2020, 1, 1), d(2024, 1, 1)); math.Abs(got-1461/365.25) > 1e-12 {
		t.Errorf("expected 4 Julian years, got %f", got)
	}
	withClock := time.Date(2024, 1, 2, 23, 59, 0, 0, time.UTC)
	if got := DaysBetween(d(2024, 1, 1), withClock); got != 1 {
		t.Errorf("expected clock time to be ignored, got %d days", got)
	}
}

func TestParseDate(t *testing.T) {
	for _, raw := range []string{"2024-03-05", " 05-Mar-2024 ", "2024-03-05T10:00:00Z"} {
		got, err := ParseDate(raw)
		if err != nil {
			t.Errorf("ParseDate(%q): %v", raw, err)
			continue
		}
		if !got.Equal(d(2024, 3, 5)) {
			t.Errorf("ParseDate(%q): expected 2024-03-05, got %s", raw, FormatDate(got))
		}
	}
	if _, err := ParseDate("03/05/2024"); err == nil {
		t.Errorf("expected an error for an unsupported layout")
	}
}

func TestNextRun(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, 3, 5, 10, 0, 0, 0, loc)
	if got := NextRun(now, 18, 30, loc); !got.Equal(time.Date(2024, 3, 5, 18, 30, 0, 0, loc)) {
		t.Errorf("expected same day run, got %v", got)
	}
	if got := NextRun(now, 9, 0, loc); !got.Equal(time.Date(2024, 3, 6, 9, 0, 0, 0, loc)) {
		t.Errorf("expected next day run, got %v", got)
	}
	if got := NextRun(now, 10, 0, loc); !got.Equal(time.Date(2024, 3, 6, 10, 0, 0, 0, loc)) {
		t.Errorf("expected a run exactly now to move to tomorrow, got %v", got)
	}
}
