/*
Package calendar provides timezone-naive calendar date handling.

PURPOSE:
  Every date in the leave system is a plain calendar day. Parsing a form
  field, intersecting a request with a year, or deciding whether a day is
  chargeable never involves clock time or UTC offsets. This package wraps
  time.Time at day granularity so the rest of the codebase cannot
  accidentally introduce offset drift.

KEY CONCEPTS:
  - Date: A single calendar day (year, month, day). The zero Date is invalid.
  - ISO format: All wire/storage representations use YYYY-MM-DD.
  - HolidaySet: Static lookup of non-working dates (see holidays.go).

DESIGN PRINCIPLES:
  1. Validation before use: Parse rejects impossible dates (Feb 30).
  2. No UTC distortion: dates are constructed from components, never from
     RFC3339 timestamps.
  3. Value semantics: Date is comparable and safe as a map key.
*/
package calendar

import (
	"fmt"
	"regexp"
	"time"
)

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// =============================================================================
// DATE - A single calendar day
// =============================================================================

// Date is a calendar day with no time-of-day or timezone component.
// The zero value is invalid; check IsZero before using parsed input.
type Date struct {
	t time.Time
}

// NewDate builds a Date from components. Out-of-range components are
// normalized by time.Date, so callers validating user input should go
// through Parse instead.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar day in local time.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// IsValidISODate reports whether s matches YYYY-MM-DD and denotes a real
// calendar date. "2026-02-31" fails even though it matches the pattern.
func IsValidISODate(s string) bool {
	if !isoDatePattern.MatchString(s) {
		return false
	}
	var year, month, day int
	if _, err := fmt.Sscanf(s, "%04d-%02d-%02d", &year, &month, &day); err != nil {
		return false
	}
	if month < 1 || month > 12 {
		return false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return d.Year() == year && d.Month() == time.Month(month) && d.Day() == day
}

// Parse converts an ISO date string into a Date. The zero Date and an error
// are returned for anything that is not a real YYYY-MM-DD calendar date.
func Parse(s string) (Date, error) {
	if !IsValidISODate(s) {
		return Date{}, fmt.Errorf("invalid calendar date %q", s)
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid calendar date %q", s)
	}
	return Date{t: t}, nil
}

// MustParse is Parse for static literals in tests and fixtures.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Comparison
func (d Date) Before(other Date) bool        { return d.t.Before(other.t) }
func (d Date) After(other Date) bool         { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool         { return d.t.Equal(other.t) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.After(other) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.Before(other) }

// Arithmetic
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

// Properties
func (d Date) Year() int             { return d.t.Year() }
func (d Date) Month() time.Month     { return d.t.Month() }
func (d Date) Day() int              { return d.t.Day() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }
func (d Date) IsZero() bool          { return d.t.IsZero() }

// IsWeekend reports whether the day is a Saturday or Sunday.
func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// String returns the ISO YYYY-MM-DD form.
func (d Date) String() string { return d.t.Format("2006-01-02") }

// DaysUntil returns the number of whole days from d to other.
// Negative when other is earlier.
func (d Date) DaysUntil(other Date) int {
	return int(other.t.Sub(d.t).Hours() / 24)
}

// Min returns the earlier of the two dates.
func Min(a, b Date) Date {
	if a.Before(b) {
		return a
	}
	return b
}

// Max returns the later of the two dates.
func Max(a, b Date) Date {
	if a.After(b) {
		return a
	}
	return b
}

// =============================================================================
// YEAR BOUNDARIES
// =============================================================================

// StartOfYear returns January 1 of the given year.
func StartOfYear(year int) Date { return NewDate(year, time.January, 1) }

// EndOfYear returns December 31 of the given year.
func EndOfYear(year int) Date { return NewDate(year, time.December, 31) }
