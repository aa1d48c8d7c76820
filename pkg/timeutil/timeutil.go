// Package timeutil provides date formatting and clock helpers.
// No external dependencies - uses only standard library.
package timeutil

import (
	"time"
)

// Layouts used across the service.
const (
	// DateLayout is the calendar-day layout, e.g. "2024-03-15".
	DateLayout = "2006-01-02"

	// DateTimeLayout is the display layout, e.g. "2024-03-15 9:05 PM".
	DateTimeLayout = "2006-01-02 3:04 PM"
)

// FormatDate formats t as YYYY-MM-DD using t's own calendar fields.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatDateTime formats t as "YYYY-MM-DD h:mm AM/PM" in t's location.
func FormatDateTime(t time.Time) string {
	return t.Format(DateTimeLayout)
}

// LoadLocation loads a timezone by name, falling back to UTC.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Clock returns the current moment. Handlers take a Clock so that "now" is
// an explicit input.
type Clock func() time.Time

// SystemClock returns a Clock reading the wall clock in loc.
func SystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return func() time.Time {
		return time.Now().In(loc)
	}
}

// FixedClock returns a Clock that always reports t.
func FixedClock(t time.Time) Clock {
	return func() time.Time {
		return t
	}
}
