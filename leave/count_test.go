package leave_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Sidrek1992/CFT-Permiso/calendar"
	"github.com/Sidrek1992/CFT-Permiso/leave"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func d(s string) calendar.Date {
	return calendar.MustParse(s)
}

func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func assertDays(t *testing.T, expected float64, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(expected).Equal(actual),
		"expected %v days, got %s", expected, actual.String())
}

// =============================================================================
// BUSINESS-DAY CATEGORIES
// =============================================================================

func TestCountChargeableDays_LegalHoliday_SkipsWeekend(t *testing.T) {
	// GIVEN: A full Monday-to-Sunday week with no holidays
	// WHEN: Counting a legal-holiday (vacation) request
	// THEN: Only the five working days are charged

	holidays := calendar.DefaultHolidays()
	days := leave.CountChargeableDays(
		d("2025-06-09"), d("2025-06-15"), // Mon..Sun
		leave.LeaveLegalHoliday, leave.ShiftFullDay, holidays)

	assertDays(t, 5, days)
}

func TestCountChargeableDays_Administrative_SkipsHolidays(t *testing.T) {
	// GIVEN: Mon Jun 16 .. Fri Jun 20 2025, where Jun 20 is a national
	//        holiday (Pueblos Indígenas)
	// THEN: 4 days, not 5

	holidays := calendar.DefaultHolidays()
	days := leave.CountChargeableDays(
		d("2025-06-16"), d("2025-06-20"),
		leave.LeaveAdministrative, leave.ShiftFullDay, holidays)

	assertDays(t, 4, days)
}

func TestCountChargeableDays_WeekendOnlyRange_ChargesNothing(t *testing.T) {
	holidays := calendar.DefaultHolidays()
	days := leave.CountChargeableDays(
		d("2025-06-14"), d("2025-06-15"), // Sat..Sun
		leave.LeaveLegalHoliday, leave.ShiftFullDay, holidays)

	assert.True(t, days.IsZero())
}

// =============================================================================
// CALENDAR-DAY CATEGORIES
// =============================================================================

func TestCountChargeableDays_SickLeave_CountsWeekends(t *testing.T) {
	// GIVEN: Fri Jun 13 .. Sun Jun 15, a sick leave
	// THEN: All three calendar days are charged

	holidays := calendar.DefaultHolidays()
	days := leave.CountChargeableDays(
		d("2025-06-13"), d("2025-06-15"),
		leave.LeaveSick, leave.ShiftFullDay, holidays)

	assertDays(t, 3, days)
}

func TestCountChargeableDays_Sick_CountsHolidaysToo(t *testing.T) {
	holidays := calendar.DefaultHolidays()
	days := leave.CountChargeableDays(
		d("2025-12-24"), d("2025-12-26"), // includes Navidad
		leave.LeaveSick, leave.ShiftFullDay, holidays)

	assertDays(t, 3, days)
}

func TestCountChargeableDays_UnpaidAndParental_CountCalendarDays(t *testing.T) {
	holidays := calendar.DefaultHolidays()

	unpaid := leave.CountChargeableDays(d("2025-06-09"), d("2025-06-15"),
		leave.LeaveUnpaid, leave.ShiftFullDay, holidays)
	parental := leave.CountChargeableDays(d("2025-06-09"), d("2025-06-15"),
		leave.LeaveParental, leave.ShiftFullDay, holidays)

	assertDays(t, 7, unpaid)
	assertDays(t, 7, parental)
}

// =============================================================================
// HALF-DAY SHIFTS
// =============================================================================

func TestCountChargeableDays_SingleDayHalfShift_IsHalf(t *testing.T) {
	// The half-shift rule overrides the category, even for calendar-day
	// categories.
	holidays := calendar.DefaultHolidays()

	for _, typ := range leave.LeaveTypes {
		morning := leave.CountChargeableDays(d("2025-06-10"), d("2025-06-10"),
			typ, leave.ShiftMorning, holidays)
		afternoon := leave.CountChargeableDays(d("2025-06-10"), d("2025-06-10"),
			typ, leave.ShiftAfternoon, holidays)

		assertDays(t, 0.5, morning)
		assertDays(t, 0.5, afternoon)
	}
}

func TestCountChargeableDays_MultiDayHalfShift_IgnoresShift(t *testing.T) {
	// A half shift only means anything on a single-day request.
	holidays := calendar.DefaultHolidays()
	days := leave.CountChargeableDays(d("2025-06-09"), d("2025-06-10"),
		leave.LeaveLegalHoliday, leave.ShiftMorning, holidays)

	assertDays(t, 2, days)
}

// =============================================================================
// DEGENERATE INPUT
// =============================================================================

func TestCountChargeableDays_EndBeforeStart_ChargesNothing(t *testing.T) {
	holidays := calendar.DefaultHolidays()
	days := leave.CountChargeableDays(d("2025-06-15"), d("2025-06-09"),
		leave.LeaveSick, leave.ShiftFullDay, holidays)

	assert.True(t, days.IsZero())
}

func TestCountChargeableDays_ZeroDates_ChargeNothing(t *testing.T) {
	holidays := calendar.DefaultHolidays()
	days := leave.CountChargeableDays(calendar.Date{}, d("2025-06-09"),
		leave.LeaveSick, leave.ShiftFullDay, holidays)

	assert.True(t, days.IsZero())
}

func TestCountChargeableDaysISO_UnparseableDates_ChargeNothing(t *testing.T) {
	holidays := calendar.DefaultHolidays()

	assert.True(t, leave.CountChargeableDaysISO("2025-02-30", "2025-03-01",
		leave.LeaveSick, leave.ShiftFullDay, holidays).IsZero())
	assert.True(t, leave.CountChargeableDaysISO("2025-03-01", "garbage",
		leave.LeaveSick, leave.ShiftFullDay, holidays).IsZero())
}

func TestCountChargeableDaysISO_MatchesTypedVariant(t *testing.T) {
	holidays := calendar.DefaultHolidays()

	iso := leave.CountChargeableDaysISO("2025-06-09", "2025-06-15",
		leave.LeaveLegalHoliday, leave.ShiftFullDay, holidays)
	typed := leave.CountChargeableDays(d("2025-06-09"), d("2025-06-15"),
		leave.LeaveLegalHoliday, leave.ShiftFullDay, holidays)

	assert.True(t, iso.Equal(typed))
}
