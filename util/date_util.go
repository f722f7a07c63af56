package util

import (
	"fmt"
	"strings"
	"time"
)

var (
	InputLayout  = "02-Jan-2006"
	OutputLayout = "2006-01-02"
	MonthLayout  = "2006-01"
	IstLocation  = loadLocation("Asia/Kolkata", 5*3600+1800)
)

func loadLocation(name string, offset int) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone(name, offset)
	}
	return loc
}

// ParseDate accepts ISO dates and NSE style dates (02-Jan-2006) and returns
// the civil date at midnight UTC.
func ParseDate(raw string) (time.Time, error) {
	clean := strings.TrimSpace(raw)
	for _, layout := range []string{OutputLayout, InputLayout, time.RFC3339} {
		if t, err := time.Parse(layout, clean); err == nil {
			return Truncate(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date format: %q", raw)
}

func FormatDate(t time.Time) string {
	return t.Format(OutputLayout)
}

// Truncate drops the clock and zone, keeping the calendar date the value
// carries in its own location.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func EndOfMonth(year int, month time.Month) time.Time {
	return time.Date(year, month, DaysIn(year, month), 0, 0, 0, 0, time.UTC)
}

// AddMonths shifts t by n months keeping the day of month, clamped to the
// length of the target month: Mar 31 minus one month is Feb 28 (or 29).
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	if last := DaysIn(first.Year(), first.Month()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}

// MonthEndBefore returns the last calendar day of the month n months before t.
func MonthEndBefore(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month()-time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	return EndOfMonth(first.Year(), first.Month())
}

// DaysBetween counts calendar days from a to b, ignoring clock time.
func DaysBetween(a, b time.Time) int {
	return int(Truncate(b).Sub(Truncate(a)).Hours() / 24)
}

// YearsBetween measures elapsed time in Julian years of 365.25 days.
func YearsBetween(a, b time.Time) float64 {
	return float64(DaysBetween(a, b)) / 365.25
}

// NextRun returns the next instant at hour:minute in loc strictly after now.
func NextRun(now time.Time, hour, minute int, loc *time.Location) time.Time {
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, loc)
	if !next.After(local) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
