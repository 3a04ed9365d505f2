package leave_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sidrek1992/CFT-Permiso/calendar"
	"github.com/Sidrek1992/CFT-Permiso/leave"
)

// =============================================================================
// FIXTURES
// =============================================================================

func importEmployee(id string) leave.ImportEmployee {
	return leave.ImportEmployee{
		ID:                 id,
		FirstName:          "Carla",
		LastName:           "Rojas",
		Email:              "carla.rojas@example.cl",
		Position:           "Docente",
		Department:         "Académico",
		TotalVacationDays:  15,
		UsedVacationDays:   5,
		TotalAdminDays:     6,
		UsedAdminDays:      0,
		TotalSickLeaveDays: 30,
		UsedSickLeaveDays:  0,
	}
}

// importRequest yields a consistent 5-working-day vacation request
// (Mon Jun 9 .. Fri Jun 13 2025).
func importRequest(id, empID string) leave.ImportRequest {
	return leave.ImportRequest{
		ID:         id,
		EmployeeID: empID,
		Type:       "legal_holiday",
		StartDate:  "2025-06-09",
		EndDate:    "2025-06-13",
		Shift:      "full_day",
		DaysCount:  5,
		Status:     "approved",
	}
}

func validate(payload leave.ImportPayload) leave.ValidationResult {
	return leave.ValidateImport(payload, calendar.DefaultHolidays())
}

// =============================================================================
// WHOLE-PAYLOAD OUTCOMES
// =============================================================================

func TestValidateImport_ConsistentPayload_Valid(t *testing.T) {
	payload := leave.ImportPayload{
		Employees: []leave.ImportEmployee{importEmployee("emp-1")},
		Requests:  []leave.ImportRequest{importRequest("req-1", "emp-1")},
	}

	result := validate(payload)

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestValidateImport_EmptyPayload_Rejected(t *testing.T) {
	// An import carrying no section at all is bad input, not a no-op.
	result := validate(leave.ImportPayload{})

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "no employees, requests or configuration")
}

func TestValidateImport_ConfigOnlyPayload_Valid(t *testing.T) {
	payload := leave.ImportPayload{
		Config: &leave.ImportConfig{
			DefaultVacationDays:  20,
			DefaultAdminDays:     6,
			DefaultSickLeaveDays: 30,
		},
	}

	assert.True(t, validate(payload).Valid)
}

func TestValidateImport_EmptyEmployeeList_WarnsButValid(t *testing.T) {
	// A present-but-empty employee list is legal (it wipes the roster),
	// but worth flagging.
	payload := leave.ImportPayload{Employees: []leave.ImportEmployee{}}

	result := validate(payload)

	assert.True(t, result.Valid)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "employee list is empty")
}

// =============================================================================
// STRUCTURAL ERRORS
// =============================================================================

func TestValidateImport_InvalidEmployeeRows_ReportedByRow(t *testing.T) {
	bad := importEmployee("emp-2")
	bad.Email = "not-an-email"
	worse := importEmployee("emp-3")
	worse.UsedVacationDays = 99 // exceeds total

	payload := leave.ImportPayload{
		Employees: []leave.ImportEmployee{importEmployee("emp-1"), bad, worse},
	}

	result := validate(payload)

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "row(s): 2, 3")
}

func TestValidateImport_DuplicateEmployeeIDs_Counted(t *testing.T) {
	payload := leave.ImportPayload{
		Employees: []leave.ImportEmployee{
			importEmployee("emp-1"),
			importEmployee("emp-1"),
			importEmployee("emp-1"),
		},
	}

	result := validate(payload)

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "2 duplicate employee id(s)")
}

func TestValidateImport_InvalidRequestRows_Reported(t *testing.T) {
	badDate := importRequest("req-1", "emp-1")
	badDate.StartDate = "2025-02-30"
	badShift := importRequest("req-2", "emp-1")
	badShift.Shift = "morning" // half shift on a multi-day range

	payload := leave.ImportPayload{
		Employees: []leave.ImportEmployee{importEmployee("emp-1")},
		Requests:  []leave.ImportRequest{badDate, badShift},
	}

	result := validate(payload)

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "invalid request record(s)")
	assert.Contains(t, result.Errors[0], "1, 2")
}

func TestValidateImport_HalfDayRequest_RequiresHalfCount(t *testing.T) {
	half := importRequest("req-1", "emp-1")
	half.StartDate = "2025-06-10"
	half.EndDate = "2025-06-10"
	half.Shift = "morning"
	half.DaysCount = 0.5

	payload := leave.ImportPayload{
		Employees: []leave.ImportEmployee{importEmployee("emp-1")},
		Requests:  []leave.ImportRequest{half},
	}
	assert.True(t, validate(payload).Valid)

	half.DaysCount = 1
	payload.Requests = []leave.ImportRequest{half}
	assert.False(t, validate(payload).Valid)
}

// =============================================================================
// CROSS-RECORD ERRORS
// =============================================================================

func TestValidateImport_UnknownEmployeeReference_Counted(t *testing.T) {
	payload := leave.ImportPayload{
		Employees: []leave.ImportEmployee{importEmployee("emp-1")},
		Requests: []leave.ImportRequest{
			importRequest("req-1", "emp-1"),
			importRequest("req-2", "ghost"),
		},
	}

	result := validate(payload)

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "1 request(s) reference an unknown employee")
}

func TestValidateImport_DayCountMismatch_Counted(t *testing.T) {
	// The range costs 5 working days; the record claims 7.
	wrong := importRequest("req-1", "emp-1")
	wrong.DaysCount = 7

	payload := leave.ImportPayload{
		Employees: []leave.ImportEmployee{importEmployee("emp-1")},
		Requests:  []leave.ImportRequest{wrong},
	}

	result := validate(payload)

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "day counts inconsistent")
}

func TestValidateImport_DayCountWithinTolerance_Accepted(t *testing.T) {
	// Stored counts may carry float noise; +-0.01 passes.
	noisy := importRequest("req-1", "emp-1")
	noisy.DaysCount = 5.005

	payload := leave.ImportPayload{
		Employees: []leave.ImportEmployee{importEmployee("emp-1")},
		Requests:  []leave.ImportRequest{noisy},
	}

	assert.True(t, validate(payload).Valid)
}

func TestValidateImport_ApprovedOverlaps_Counted(t *testing.T) {
	// Two approved vacations for the same employee sharing June 13.
	first := importRequest("req-1", "emp-1")
	second := importRequest("req-2", "emp-1")
	second.StartDate = "2025-06-13"
	second.EndDate = "2025-06-17"
	second.DaysCount = 3 // Fri, Mon, Tue

	payload := leave.ImportPayload{
		Employees: []leave.ImportEmployee{importEmployee("emp-1")},
		Requests:  []leave.ImportRequest{first, second},
	}

	result := validate(payload)

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "1 overlap(s)")
}

func TestValidateImport_PendingOverlaps_NotAnError(t *testing.T) {
	first := importRequest("req-1", "emp-1")
	second := importRequest("req-2", "emp-1")
	second.Status = "pending"

	payload := leave.ImportPayload{
		Employees: []leave.ImportEmployee{importEmployee("emp-1")},
		Requests:  []leave.ImportRequest{first, second},
	}

	assert.True(t, validate(payload).Valid)
}

// =============================================================================
// CONFIG CONVERSION
// =============================================================================

func TestImportConfig_ToConfig_AbsentFieldsKeepDefaults(t *testing.T) {
	cfg := (leave.ImportConfig{
		DefaultVacationDays:  20,
		DefaultAdminDays:     8,
		DefaultSickLeaveDays: 40,
	}).ToConfig()

	assertDays(t, 20, cfg.DefaultVacationDays)
	assertDays(t, 8, cfg.DefaultAdminDays)
	assertDays(t, 40, cfg.DefaultSickLeaveDays)

	// Policy switches fall back to the defaults.
	assert.True(t, cfg.CarryoverVacationEnabled)
	assert.True(t, cfg.AdminExpireAtYearEnd)
	assert.Equal(t, 2, cfg.MaxCarryoverPeriods())
	assert.Equal(t, 30, cfg.ReminderWindowDays())
}

func TestImportConfig_ToConfig_PresentFieldsOverride(t *testing.T) {
	off := false
	periods := 4.0
	reminder := 15.0

	cfg := (leave.ImportConfig{
		DefaultVacationDays:      15,
		DefaultAdminDays:         6,
		DefaultSickLeaveDays:     30,
		CarryoverVacationEnabled: &off,
		CarryoverMaxPeriods:      &periods,
		AdminExpireAtYearEnd:     &off,
		ReminderDays:             &reminder,
	}).ToConfig()

	assert.False(t, cfg.CarryoverVacationEnabled)
	assert.False(t, cfg.AdminExpireAtYearEnd)
	assert.Equal(t, 4, cfg.MaxCarryoverPeriods())
	assert.Equal(t, 15, cfg.ReminderWindowDays())
}
