/*
usage.go - Full rebuild of used-day counters

PURPOSE:
  Recomputes every employee's used counters from the authoritative request
  list. The system never patches counters on approve/reject transitions;
  it replays the approved history instead. Rebuilding is what makes
  reversing an approval safe: dropping the request from the log and
  rebuilding cannot leave a stale debit behind.

KEY INSIGHT:
  Usage is a pure reduction over (employees, requests, referenceYear).
  The same inputs always produce the same output, regardless of how many
  times or in what order the function ran before.

YEAR INTERSECTION:
  Only the portion of a request inside [Jan 1, Dec 31] of the reference
  year is charged. A request spanning New Year contributes its in-year
  days to each side's rebuild, counted by the same chargeable-day rules.
*/
package leave

import (
	"github.com/shopspring/decimal"

	"github.com/Sidrek1992/CFT-Permiso/calendar"
)

type usageCounters struct {
	vacation decimal.Decimal
	admin    decimal.Decimal
	sick     decimal.Decimal
}

// RebuildUsage returns a new employee list whose used counters reflect
// exactly the approved requests intersected with the reference year.
// Totals and identity fields pass through unchanged. Requests with
// malformed dates are skipped; the rest of the batch still processes.
func RebuildUsage(employees []Employee, requests []LeaveRequest, referenceYear int, holidays calendar.HolidaySet) []Employee {
	periodStart := calendar.StartOfYear(referenceYear)
	periodEnd := calendar.EndOfYear(referenceYear)

	usage := make(map[string]usageCounters)

	for _, req := range requests {
		if req.Status != StatusApproved {
			continue
		}
		if req.StartDate.IsZero() || req.EndDate.IsZero() {
			continue
		}
		if req.StartDate.After(periodEnd) || req.EndDate.Before(periodStart) {
			continue
		}

		overlapStart := calendar.Max(req.StartDate, periodStart)
		overlapEnd := calendar.Min(req.EndDate, periodEnd)
		days := CountChargeableDays(overlapStart, overlapEnd, req.Type, req.Shift, holidays)
		if !days.IsPositive() {
			continue
		}

		counters := usage[req.EmployeeID]
		switch req.Type {
		case LeaveLegalHoliday:
			counters.vacation = counters.vacation.Add(days)
		case LeaveAdministrative:
			counters.admin = counters.admin.Add(days)
		case LeaveSick:
			counters.sick = counters.sick.Add(days)
		default:
			// Unpaid and parental leave are tracked but never debit a
			// capped balance.
		}
		usage[req.EmployeeID] = counters
	}

	rebuilt := make([]Employee, len(employees))
	for i, emp := range employees {
		counters := usage[emp.ID]
		next := emp
		next.UsedVacation = counters.vacation
		next.UsedAdmin = counters.admin
		next.UsedSick = counters.sick
		rebuilt[i] = next
	}
	return rebuilt
}
