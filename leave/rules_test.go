package leave_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sidrek1992/CFT-Permiso/leave"
)

// =============================================================================
// TEST FIXTURES
// =============================================================================

func testEmployee() leave.Employee {
	return leave.Employee{
		ID:            "emp-1",
		FirstName:     "María",
		LastName:      "González",
		TotalVacation: dec(15),
		UsedVacation:  dec(5),
		TotalAdmin:    dec(6),
		UsedAdmin:     dec(2),
		TotalSick:     dec(30),
		UsedSick:      dec(0),
	}
}

func approvedRequest(id, empID, start, end string) leave.LeaveRequest {
	return leave.LeaveRequest{
		ID:         id,
		EmployeeID: empID,
		Type:       leave.LeaveLegalHoliday,
		StartDate:  d(start),
		EndDate:    d(end),
		Shift:      leave.ShiftFullDay,
		Status:     leave.StatusApproved,
	}
}

// =============================================================================
// REMAINING DAYS
// =============================================================================

func TestRemainingDays_PerCategory(t *testing.T) {
	emp := testEmployee()

	vacation, tracked := leave.RemainingDays(emp, leave.LeaveLegalHoliday)
	assert.True(t, tracked)
	assertDays(t, 10, vacation)

	admin, tracked := leave.RemainingDays(emp, leave.LeaveAdministrative)
	assert.True(t, tracked)
	assertDays(t, 4, admin)

	sick, tracked := leave.RemainingDays(emp, leave.LeaveSick)
	assert.True(t, tracked)
	assertDays(t, 30, sick)
}

func TestRemainingDays_Overdraw_ClampsAtZero(t *testing.T) {
	emp := testEmployee()
	emp.UsedVacation = dec(20) // more used than total

	remaining, tracked := leave.RemainingDays(emp, leave.LeaveLegalHoliday)
	assert.True(t, tracked)
	assert.True(t, remaining.IsZero())
}

func TestRemainingDays_UnrestrictedCategories(t *testing.T) {
	emp := testEmployee()

	_, tracked := leave.RemainingDays(emp, leave.LeaveUnpaid)
	assert.False(t, tracked)

	_, tracked = leave.RemainingDays(emp, leave.LeaveParental)
	assert.False(t, tracked)
}

// =============================================================================
// BALANCE VALIDATION
// =============================================================================

func TestValidateBalance_WithinBalance_Valid(t *testing.T) {
	emp := testEmployee()

	verdict := leave.ValidateBalance(emp, leave.LeaveLegalHoliday, dec(10))
	assert.True(t, verdict.Valid)
	require.NotNil(t, verdict.Remaining)
	assertDays(t, 10, *verdict.Remaining)
}

func TestValidateBalance_ExceedsBalance_Invalid(t *testing.T) {
	// GIVEN: 6 administrative days total, 2 used
	// WHEN: Requesting 10 days
	// THEN: Invalid, reporting the 4 days actually available

	emp := testEmployee()
	verdict := leave.ValidateBalance(emp, leave.LeaveAdministrative, dec(10))

	assert.False(t, verdict.Valid)
	require.NotNil(t, verdict.Remaining)
	assertDays(t, 4, *verdict.Remaining)
	assert.Contains(t, verdict.Message, "4 day(s) available")
	assert.Contains(t, verdict.Message, "10 requested")
}

func TestValidateBalance_ExactRemaining_Valid(t *testing.T) {
	emp := testEmployee()
	verdict := leave.ValidateBalance(emp, leave.LeaveAdministrative, dec(4))
	assert.True(t, verdict.Valid)
}

func TestValidateBalance_Unrestricted_AlwaysValid(t *testing.T) {
	// A 90-day parental leave passes with no remaining figure at all.
	emp := testEmployee()

	verdict := leave.ValidateBalance(emp, leave.LeaveParental, dec(90))
	assert.True(t, verdict.Valid)
	assert.Nil(t, verdict.Remaining)

	verdict = leave.ValidateBalance(emp, leave.LeaveUnpaid, dec(365))
	assert.True(t, verdict.Valid)
}

func TestValidateBalance_NonPositiveRequest_Invalid(t *testing.T) {
	emp := testEmployee()

	assert.False(t, leave.ValidateBalance(emp, leave.LeaveLegalHoliday, decimal.Zero).Valid)
	assert.False(t, leave.ValidateBalance(emp, leave.LeaveLegalHoliday, dec(-1)).Valid)
	// Even for unrestricted categories.
	assert.False(t, leave.ValidateBalance(emp, leave.LeaveParental, decimal.Zero).Valid)
}

// =============================================================================
// OVERLAP DETECTION
// =============================================================================

func TestHasOverlap_SharedBoundaryDay_Overlaps(t *testing.T) {
	// GIVEN: An approved request ending June 10
	// WHEN: A new range starts June 10
	// THEN: The shared day is an overlap (intervals are closed)

	existing := []leave.LeaveRequest{
		approvedRequest("req-1", "emp-1", "2025-06-05", "2025-06-10"),
	}

	assert.True(t, leave.HasOverlap(existing, "emp-1", d("2025-06-10"), d("2025-06-12")))
}

func TestHasOverlap_AdjacentRanges_DoNotOverlap(t *testing.T) {
	existing := []leave.LeaveRequest{
		approvedRequest("req-1", "emp-1", "2025-06-05", "2025-06-10"),
	}

	assert.False(t, leave.HasOverlap(existing, "emp-1", d("2025-06-11"), d("2025-06-12")))
	assert.False(t, leave.HasOverlap(existing, "emp-1", d("2025-06-01"), d("2025-06-04")))
}

func TestHasOverlap_ContainedRange_Overlaps(t *testing.T) {
	existing := []leave.LeaveRequest{
		approvedRequest("req-1", "emp-1", "2025-06-01", "2025-06-30"),
	}

	assert.True(t, leave.HasOverlap(existing, "emp-1", d("2025-06-10"), d("2025-06-12")))
}

func TestHasOverlap_IgnoresPendingAndRejected(t *testing.T) {
	pending := approvedRequest("req-1", "emp-1", "2025-06-05", "2025-06-10")
	pending.Status = leave.StatusPending
	rejected := approvedRequest("req-2", "emp-1", "2025-06-05", "2025-06-10")
	rejected.Status = leave.StatusRejected

	existing := []leave.LeaveRequest{pending, rejected}
	assert.False(t, leave.HasOverlap(existing, "emp-1", d("2025-06-08"), d("2025-06-09")))
}

func TestHasOverlap_IgnoresOtherEmployees(t *testing.T) {
	existing := []leave.LeaveRequest{
		approvedRequest("req-1", "emp-2", "2025-06-05", "2025-06-10"),
	}

	assert.False(t, leave.HasOverlap(existing, "emp-1", d("2025-06-08"), d("2025-06-09")))
}
