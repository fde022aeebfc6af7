// Package recurrence computes the next occurrence of a repeating
// reminder. All arithmetic is calendar-aware in the time's own location,
// so an occurrence keeps its wall-clock time across DST transitions.
package recurrence

import (
	"fmt"
	"time"
)

// Interval is the closed set of reminder repeat policies.
type Interval string

const (
	None       Interval = "NONE"
	Daily      Interval = "DAILY"
	Weekdays   Interval = "WEEKDAYS"
	Weekends   Interval = "WEEKENDS"
	Weekly     Interval = "WEEKLY"
	Biweekly   Interval = "BIWEEKLY"
	Monthly    Interval = "MONTHLY"
	Quarterly  Interval = "QUARTERLY"
	Biannually Interval = "BIANNUALLY"
	Yearly     Interval = "YEARLY"
)

// Intervals lists every valid interval in declaration order.
var Intervals = []Interval{
	None, Daily, Weekdays, Weekends, Weekly,
	Biweekly, Monthly, Quarterly, Biannually, Yearly,
}

// Parse converts a stored interval name back into an Interval.
func Parse(s string) (Interval, error) {
	for _, iv := range Intervals {
		if string(iv) == s {
			return iv, nil
		}
	}
	return None, fmt.Errorf("unknown repeat interval %q", s)
}

func (iv Interval) String() string {
	return string(iv)
}

// IsRepeating reports whether the interval produces further occurrences.
func (iv Interval) IsRepeating() bool {
	return iv != None
}

// Next returns the next fire time strictly after t for the given
// interval. It is pure and total: None returns t unchanged, which callers
// must treat as "clear, do not reschedule".
func Next(t time.Time, iv Interval) time.Time {
	switch iv {
	case None:
		return t
	case Daily:
		return addDays(t, 1)
	case Weekly:
		return addDays(t, 7)
	case Biweekly:
		return addDays(t, 14)
	case Monthly:
		return addMonths(t, 1)
	case Quarterly:
		return addMonths(t, 3)
	case Biannually:
		return addMonths(t, 6)
	case Yearly:
		return addMonths(t, 12)
	case Weekdays:
		next := addDays(t, 1)
		for !isWeekday(next.Weekday()) {
			next = addDays(next, 1)
		}
		return next
	case Weekends:
		next := addDays(t, 1)
		for isWeekday(next.Weekday()) {
			next = addDays(next, 1)
		}
		return next
	}
	return t
}

func isWeekday(d time.Weekday) bool {
	return d != time.Saturday && d != time.Sunday
}

// addDays advances by whole calendar days, preserving the wall-clock
// time. time.AddDate normalizes in the value's location, so crossing a
// DST boundary keeps the clock reading rather than adding 24h of
// elapsed time.
func addDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

// addMonths advances by calendar months, clamping the day-of-month to
// the last valid day of the target month. time.AddDate alone would roll
// Jan 31 + 1 month into Mar 2/3; reminders set on month-end days must
// stay on month ends instead.
func addMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()

	m := int(month) + months
	y := year + (m-1)/12
	m = (m-1)%12 + 1

	if last := daysInMonth(y, time.Month(m)); day > last {
		day = last
	}

	hour, min, sec := t.Clock()
	return time.Date(y, time.Month(m), day, hour, min, sec, t.Nanosecond(), t.Location())
}

func daysInMonth(year int, month time.Month) int {
	// Day 0 of the next month normalizes to the last day of this month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
