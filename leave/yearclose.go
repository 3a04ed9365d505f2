/*
yearclose.go - The annual close state machine

PURPOSE:
  Once a year the balance state transitions: unused vacation carries into
  the new period under a cap, unused administrative days expire, and sick
  counters reset. The transition must be safe to evaluate repeatedly:
  deciding whether a close is due is a pure query over CloseMeta, and
  applying it is a pure transform, so a caller can serialize
  check, apply, record without the engine holding state.

DUE RULE:
  The close targets the current year on December 31 exactly. As a grace
  window for an application that was not opened on the 31st, ANY day in
  January targets the previous year. On all other days no target exists.
  The month-long window is deliberately permissive; it matches the
  institution's manual practice.

SEPARATION OF CONCERNS:
  ApplyYearClose does NOT update CloseMeta. The caller records
  LastClosedYear after persisting the new employees, keeping the
  transform testable and the read-modify-write of meta an explicit
  critical section (see api/scheduler.go).
*/
package leave

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Sidrek1992/CFT-Permiso/calendar"
)

// =============================================================================
// CLOSE META - Process-wide once-a-year bookkeeping
// =============================================================================

// CloseMeta records the last year a close was applied and the last year a
// reminder was shown. It prevents double-applying and double-reminding.
type CloseMeta struct {
	LastClosedYear   int
	LastReminderYear int
}

// TargetCloseYear returns the year a close run today would close, and
// whether any close is eligible today at all.
func TargetCloseYear(today calendar.Date) (int, bool) {
	if today.Month() == time.December && today.Day() == 31 {
		return today.Year(), true
	}
	// January grace window: close the year that just ended.
	if today.Month() == time.January {
		return today.Year() - 1, true
	}
	return 0, false
}

// CloseDue reports whether the annual close should run today given what
// has already been closed.
func CloseDue(today calendar.Date, meta CloseMeta) bool {
	target, ok := TargetCloseYear(today)
	if !ok {
		return false
	}
	return meta.LastClosedYear < target
}

// =============================================================================
// CLOSE TRANSFORM
// =============================================================================

// CloseResult is the outcome of applying the annual close: the new
// employee records plus institution-wide totals of what was forfeited.
type CloseResult struct {
	Employees          []Employee
	AdminDaysExpired   decimal.Decimal
	VacationDaysCapped decimal.Decimal
}

// ApplyYearClose computes the post-close state for every employee:
//
//   - vacation: new total = default (+ remaining when carryover is on),
//     capped at default × MaxCarryoverPeriods; used resets to 0
//   - administrative: when expiry is on, total resets to the default and
//     the remaining days are forfeited; used always resets to 0
//   - sick leave: total resets to the default, used resets to 0,
//     unconditionally; sick leave never carries over
//
// The transform is pure. The caller persists the employees and then
// records the closed year in CloseMeta.
func ApplyYearClose(employees []Employee, cfg Config) CloseResult {
	maxVacationTotal := cfg.DefaultVacationDays.Mul(decimal.NewFromInt(int64(cfg.MaxCarryoverPeriods())))

	adminExpired := decimal.Zero
	vacationCapped := decimal.Zero

	next := make([]Employee, len(employees))
	for i, emp := range employees {
		vacationRemaining := decimal.Max(decimal.Zero, emp.TotalVacation.Sub(emp.UsedVacation))
		adminRemaining := decimal.Max(decimal.Zero, emp.TotalAdmin.Sub(emp.UsedAdmin))

		rawVacationTotal := cfg.DefaultVacationDays
		if cfg.CarryoverVacationEnabled {
			rawVacationTotal = rawVacationTotal.Add(vacationRemaining)
		}
		newVacationTotal := decimal.Min(maxVacationTotal, rawVacationTotal)
		vacationCapped = vacationCapped.Add(decimal.Max(decimal.Zero, rawVacationTotal.Sub(newVacationTotal)))

		out := emp
		out.TotalVacation = newVacationTotal
		out.UsedVacation = decimal.Zero

		if cfg.AdminExpireAtYearEnd {
			adminExpired = adminExpired.Add(adminRemaining)
			out.TotalAdmin = cfg.DefaultAdminDays
		}
		out.UsedAdmin = decimal.Zero

		out.TotalSick = cfg.DefaultSickLeaveDays
		out.UsedSick = decimal.Zero

		next[i] = out
	}

	return CloseResult{
		Employees:          next,
		AdminDaysExpired:   adminExpired,
		VacationDaysCapped: vacationCapped,
	}
}

// =============================================================================
// PRE-CLOSE REMINDER
// =============================================================================

// ReminderMessage returns the year-close warning to surface today, or
// ok=false when no reminder is due. A reminder fires only in December,
// only once per year, and only inside the configured window before the
// 31st. It reports the administrative days that would be forfeited if
// the close ran today.
func ReminderMessage(today calendar.Date, employees []Employee, cfg Config, meta CloseMeta) (string, bool) {
	if today.Month() != time.December {
		return "", false
	}
	if meta.LastReminderYear >= today.Year() {
		return "", false
	}

	daysUntilYearEnd := today.DaysUntil(calendar.EndOfYear(today.Year()))
	if daysUntilYearEnd > cfg.ReminderWindowDays() {
		return "", false
	}

	adminAtRisk := decimal.Zero
	for _, emp := range employees {
		adminAtRisk = adminAtRisk.Add(decimal.Max(decimal.Zero, emp.TotalAdmin.Sub(emp.UsedAdmin)))
	}

	msg := fmt.Sprintf("Year-close alert: %d day(s) until Dec 31. %s unused administrative day(s) will expire.",
		daysUntilYearEnd, adminAtRisk.String())
	return msg, true
}
