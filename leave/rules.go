/*
rules.go - Balance and overlap validation for new requests

PURPOSE:
  Verdicts whether a proposed request fits the employee's remaining
  balance, and whether its date range collides with an already-approved
  request. Both checks are pure; policy violations come back as negative
  verdicts with numeric context, never as errors.

EDGE POLICY:
  - Vacation, administrative and sick leave have a ceiling; unpaid and
    parental leave are unrestricted (remaining is "no ceiling")
  - Date ranges are closed intervals: a request starting the exact day
    another ends IS an overlap
  - Rejected and pending requests never participate in overlap checks
*/
package leave

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Sidrek1992/CFT-Permiso/calendar"
)

// =============================================================================
// REMAINING BALANCE
// =============================================================================

// RemainingDays returns the employee's remaining balance for the category,
// clamped at zero. The second return is false for unrestricted categories
// (unpaid, parental), which have no ceiling at all.
func RemainingDays(emp Employee, typ LeaveType) (decimal.Decimal, bool) {
	var remaining decimal.Decimal
	switch typ {
	case LeaveLegalHoliday:
		remaining = emp.TotalVacation.Sub(emp.UsedVacation)
	case LeaveAdministrative:
		remaining = emp.TotalAdmin.Sub(emp.UsedAdmin)
	case LeaveSick:
		remaining = emp.TotalSick.Sub(emp.UsedSick)
	default:
		return decimal.Zero, false
	}
	if remaining.IsNegative() {
		return decimal.Zero, true
	}
	return remaining, true
}

// =============================================================================
// BALANCE VERDICT
// =============================================================================

// BalanceVerdict is the outcome of validating a proposed day count
// against an employee's balance. Remaining is nil for unrestricted
// categories. Message is set only on a negative verdict.
type BalanceVerdict struct {
	Valid     bool
	Remaining *decimal.Decimal
	Message   string
}

// ValidateBalance verdicts whether requestedDays fits the employee's
// remaining balance for the category. A non-positive request is always
// invalid. Unrestricted categories are always valid.
func ValidateBalance(emp Employee, typ LeaveType, requestedDays decimal.Decimal) BalanceVerdict {
	if !requestedDays.IsPositive() {
		return BalanceVerdict{
			Valid:   false,
			Message: "requested day count must be greater than zero",
		}
	}

	remaining, bounded := RemainingDays(emp, typ)
	if !bounded {
		return BalanceVerdict{Valid: true}
	}

	if requestedDays.GreaterThan(remaining) {
		return BalanceVerdict{
			Valid:     false,
			Remaining: &remaining,
			Message: fmt.Sprintf("insufficient balance: %s day(s) available, %s requested",
				remaining.String(), requestedDays.String()),
		}
	}

	return BalanceVerdict{Valid: true, Remaining: &remaining}
}

// =============================================================================
// OVERLAP DETECTION
// =============================================================================

// HasOverlap reports whether any APPROVED request for the employee shares
// at least one day with [start, end]. Intervals are closed on both ends.
func HasOverlap(requests []LeaveRequest, employeeID string, start, end calendar.Date) bool {
	for _, req := range requests {
		if req.EmployeeID != employeeID || req.Status != StatusApproved {
			continue
		}
		if req.StartDate.BeforeOrEqual(end) && req.EndDate.AfterOrEqual(start) {
			return true
		}
	}
	return false
}
