/*
count.go - Chargeable-day counting

PURPOSE:
  Answers "how many days does this request cost?". This is the single
  source of truth for day costs: request creation, the usage rebuild and
  the import consistency check all call the same function, so two
  independent computations over the same inputs agree exactly.

COUNTING RULES:
  - Invalid dates or end < start: 0 days (defensive, never an error)
  - Single day + half-day shift: exactly 0.5, regardless of category
  - Business-day categories (legal holiday, administrative): each day in
    [start, end] counts unless it is a Saturday, a Sunday, or a holiday
  - Calendar-day categories (sick leave, unpaid, parental): every day in
    [start, end] counts
*/
package leave

import (
	"github.com/shopspring/decimal"

	"github.com/Sidrek1992/CFT-Permiso/calendar"
)

// HalfDay is the cost of a single-day morning or afternoon shift.
var HalfDay = decimal.New(5, -1)

// CountChargeableDays returns the number of days a request over
// [start, end] deducts for the given category and shift, consulting
// holidays for business-day categories. Degenerate input costs 0.
func CountChargeableDays(start, end calendar.Date, typ LeaveType, shift WorkShift, holidays calendar.HolidaySet) decimal.Decimal {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return decimal.Zero
	}

	// Single-day half shift overrides category rules.
	if start.Equal(end) && shift.IsHalfDay() {
		return HalfDay
	}

	count := int64(0)
	for day := start; day.BeforeOrEqual(end); day = day.AddDays(1) {
		if typ.CountsBusinessDays() {
			if day.IsWeekend() || holidays.Contains(day) {
				continue
			}
		}
		count++
	}
	return decimal.NewFromInt(count)
}

// CountChargeableDaysISO is CountChargeableDays over raw ISO date strings,
// for callers holding unvalidated input. Unparseable dates cost 0.
func CountChargeableDaysISO(startStr, endStr string, typ LeaveType, shift WorkShift, holidays calendar.HolidaySet) decimal.Decimal {
	start, err := calendar.Parse(startStr)
	if err != nil {
		return decimal.Zero
	}
	end, err := calendar.Parse(endStr)
	if err != nil {
		return decimal.Zero
	}
	return CountChargeableDays(start, end, typ, shift, holidays)
}
