package util

import (
	"fmt"
	"time"
)

// MonthKey returns the machine-readable calendar month key (YYYY-MM) for t
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// MonthStart returns the first day of t's month at midnight
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// Midnight truncates t to the start of its day. Due-date comparisons are
// date-level, so "today" is always normalized through this first.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// AddMonths advances a month-start date by n calendar months, rolling over
// year boundaries. Callers must pass a first-of-month date; starting from
// day one keeps AddDate from normalizing (e.g. Jan 31 + 1 month = Mar 3).
func AddMonths(monthStart time.Time, n int) time.Time {
	return monthStart.AddDate(0, n, 0)
}

// MonthLabel renders a YYYY-MM key as an abbreviated month name plus year
// ("Jan 2026"). Returns the key unchanged if it does not parse.
func MonthLabel(key string) string {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	return t.Format("Jan 2006")
}
