package leave_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sidrek1992/CFT-Permiso/calendar"
	"github.com/Sidrek1992/CFT-Permiso/leave"
)

func typedRequest(id, empID string, typ leave.LeaveType, start, end string, status leave.RequestStatus) leave.LeaveRequest {
	return leave.LeaveRequest{
		ID:         id,
		EmployeeID: empID,
		Type:       typ,
		StartDate:  d(start),
		EndDate:    d(end),
		Shift:      leave.ShiftFullDay,
		Status:     status,
	}
}

// =============================================================================
// FULL REBUILD
// =============================================================================

func TestRebuildUsage_OnlyApprovedRequestsDebit(t *testing.T) {
	// GIVEN: One approved, one pending and one rejected vacation request,
	//        each spanning Mon Jun 9 .. Fri Jun 13 (5 working days)
	// THEN: Only the approved one shows up in usage

	emp := testEmployee()
	requests := []leave.LeaveRequest{
		typedRequest("r1", emp.ID, leave.LeaveLegalHoliday, "2025-06-09", "2025-06-13", leave.StatusApproved),
		typedRequest("r2", emp.ID, leave.LeaveLegalHoliday, "2025-07-07", "2025-07-11", leave.StatusPending),
		typedRequest("r3", emp.ID, leave.LeaveLegalHoliday, "2025-08-04", "2025-08-08", leave.StatusRejected),
	}

	rebuilt := leave.RebuildUsage([]leave.Employee{emp}, requests, 2025, calendar.DefaultHolidays())

	require.Len(t, rebuilt, 1)
	assertDays(t, 5, rebuilt[0].UsedVacation)
}

func TestRebuildUsage_AccumulatesPerCategory(t *testing.T) {
	emp := testEmployee()
	requests := []leave.LeaveRequest{
		typedRequest("r1", emp.ID, leave.LeaveLegalHoliday, "2025-06-09", "2025-06-13", leave.StatusApproved), // 5
		typedRequest("r2", emp.ID, leave.LeaveAdministrative, "2025-07-08", "2025-07-08", leave.StatusApproved), // 1
		typedRequest("r3", emp.ID, leave.LeaveSick, "2025-08-01", "2025-08-03", leave.StatusApproved),           // Fri..Sun, 3 calendar days
	}

	rebuilt := leave.RebuildUsage([]leave.Employee{emp}, requests, 2025, calendar.DefaultHolidays())

	require.Len(t, rebuilt, 1)
	assertDays(t, 5, rebuilt[0].UsedVacation)
	assertDays(t, 1, rebuilt[0].UsedAdmin)
	assertDays(t, 3, rebuilt[0].UsedSick)
}

func TestRebuildUsage_UnpaidAndParental_NeverDebit(t *testing.T) {
	emp := testEmployee()
	requests := []leave.LeaveRequest{
		typedRequest("r1", emp.ID, leave.LeaveUnpaid, "2025-03-01", "2025-03-31", leave.StatusApproved),
		typedRequest("r2", emp.ID, leave.LeaveParental, "2025-05-01", "2025-07-29", leave.StatusApproved),
	}

	rebuilt := leave.RebuildUsage([]leave.Employee{emp}, requests, 2025, calendar.DefaultHolidays())

	require.Len(t, rebuilt, 1)
	assert.True(t, rebuilt[0].UsedVacation.IsZero())
	assert.True(t, rebuilt[0].UsedAdmin.IsZero())
	assert.True(t, rebuilt[0].UsedSick.IsZero())
}

func TestRebuildUsage_ClipsToReferenceYear(t *testing.T) {
	// GIVEN: A sick leave spanning Dec 29 2025 .. Jan 4 2026
	// WHEN: Rebuilding for 2025
	// THEN: Only the three 2025 days count

	emp := testEmployee()
	requests := []leave.LeaveRequest{
		typedRequest("r1", emp.ID, leave.LeaveSick, "2025-12-29", "2026-01-04", leave.StatusApproved),
	}

	for2025 := leave.RebuildUsage([]leave.Employee{emp}, requests, 2025, calendar.DefaultHolidays())
	assertDays(t, 3, for2025[0].UsedSick)

	for2026 := leave.RebuildUsage([]leave.Employee{emp}, requests, 2026, calendar.DefaultHolidays())
	assertDays(t, 4, for2026[0].UsedSick)
}

func TestRebuildUsage_RequestOutsideYear_Ignored(t *testing.T) {
	emp := testEmployee()
	requests := []leave.LeaveRequest{
		typedRequest("r1", emp.ID, leave.LeaveSick, "2024-06-01", "2024-06-05", leave.StatusApproved),
	}

	rebuilt := leave.RebuildUsage([]leave.Employee{emp}, requests, 2025, calendar.DefaultHolidays())
	assert.True(t, rebuilt[0].UsedSick.IsZero())
}

func TestRebuildUsage_ReplacesStaleCounters(t *testing.T) {
	// The rebuild is a full recomputation: previous Used* values carry no
	// weight, so an employee with no approved requests resets to zero.
	emp := testEmployee()
	emp.UsedVacation = dec(12)
	emp.UsedAdmin = dec(3)

	rebuilt := leave.RebuildUsage([]leave.Employee{emp}, nil, 2025, calendar.DefaultHolidays())

	assert.True(t, rebuilt[0].UsedVacation.IsZero())
	assert.True(t, rebuilt[0].UsedAdmin.IsZero())
	assert.True(t, rebuilt[0].UsedSick.IsZero())
}

func TestRebuildUsage_PassesThroughIdentityAndTotals(t *testing.T) {
	emp := testEmployee()
	rebuilt := leave.RebuildUsage([]leave.Employee{emp}, nil, 2025, calendar.DefaultHolidays())

	require.Len(t, rebuilt, 1)
	assert.Equal(t, emp.ID, rebuilt[0].ID)
	assert.Equal(t, emp.FirstName, rebuilt[0].FirstName)
	assert.True(t, emp.TotalVacation.Equal(rebuilt[0].TotalVacation))
	assert.True(t, emp.TotalAdmin.Equal(rebuilt[0].TotalAdmin))
	assert.True(t, emp.TotalSick.Equal(rebuilt[0].TotalSick))
}

func TestRebuildUsage_DoesNotMutateInput(t *testing.T) {
	emp := testEmployee()
	emp.UsedVacation = dec(5)
	employees := []leave.Employee{emp}

	_ = leave.RebuildUsage(employees, nil, 2025, calendar.DefaultHolidays())

	assertDays(t, 5, employees[0].UsedVacation)
}

func TestRebuildUsage_MultipleEmployees_IndependentCounters(t *testing.T) {
	alice := testEmployee()
	bob := testEmployee()
	bob.ID = "emp-2"

	requests := []leave.LeaveRequest{
		typedRequest("r1", alice.ID, leave.LeaveLegalHoliday, "2025-06-09", "2025-06-13", leave.StatusApproved),
		typedRequest("r2", bob.ID, leave.LeaveAdministrative, "2025-06-10", "2025-06-10", leave.StatusApproved),
	}

	rebuilt := leave.RebuildUsage([]leave.Employee{alice, bob}, requests, 2025, calendar.DefaultHolidays())

	require.Len(t, rebuilt, 2)
	assertDays(t, 5, rebuilt[0].UsedVacation)
	assert.True(t, rebuilt[0].UsedAdmin.IsZero())
	assertDays(t, 1, rebuilt[1].UsedAdmin)
	assert.True(t, rebuilt[1].UsedVacation.IsZero())
}
