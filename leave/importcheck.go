/*
importcheck.go - One-pass validation of bulk import payloads

PURPOSE:
  Before a bulk data set (JSON or spreadsheet export) replaces the live
  records, every defect in it is enumerated in a single pass: malformed
  records, duplicate ids, dangling employee references, day counts that
  disagree with the counting rules, and overlapping approved requests.
  The operator sees the complete list, not the first failure.

INPUT SHAPE:
  The payload mirrors the external wire format: primitive field types,
  dates as ISO strings, enums as their wire codes. Records that pass the
  structural checks convert to domain types via ToEmployee / ToRequest.

CONTRACT:
  ValidateImport never fails; it always returns a result. A payload with
  none of employees/requests/config present is invalid input, not a
  successful empty import.
*/
package leave

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Sidrek1992/CFT-Permiso/calendar"
)

// dayCountTolerance absorbs float representation error between a stored
// daysCount and its recomputation.
var dayCountTolerance = decimal.New(1, -2) // 0.01

// =============================================================================
// PAYLOAD SHAPE
// =============================================================================

// ImportEmployee is the wire form of an employee record.
type ImportEmployee struct {
	ID                 string  `json:"id"`
	FirstName          string  `json:"firstName"`
	LastName           string  `json:"lastName"`
	Email              string  `json:"email"`
	Position           string  `json:"position"`
	Department         string  `json:"department"`
	AvatarURL          string  `json:"avatarUrl"`
	TotalVacationDays  float64 `json:"totalVacationDays"`
	UsedVacationDays   float64 `json:"usedVacationDays"`
	TotalAdminDays     float64 `json:"totalAdminDays"`
	UsedAdminDays      float64 `json:"usedAdminDays"`
	TotalSickLeaveDays float64 `json:"totalSickLeaveDays"`
	UsedSickLeaveDays  float64 `json:"usedSickLeaveDays"`
}

// ImportRequest is the wire form of a leave request record.
type ImportRequest struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employeeId"`
	Type       string  `json:"type"`
	StartDate  string  `json:"startDate"`
	EndDate    string  `json:"endDate"`
	Shift      string  `json:"shift"`
	DaysCount  float64 `json:"daysCount"`
	Status     string  `json:"status"`
	Reason     string  `json:"reason"`
}

// ImportConfig is the wire form of the application configuration.
// Optional policy fields are pointers so "absent" keeps the default.
type ImportConfig struct {
	DefaultVacationDays      float64  `json:"defaultVacationDays"`
	DefaultAdminDays         float64  `json:"defaultAdminDays"`
	DefaultSickLeaveDays     float64  `json:"defaultSickLeaveDays"`
	NotificationEmail        string   `json:"notificationEmail"`
	EmailTemplate            string   `json:"emailTemplate"`
	CarryoverVacationEnabled *bool    `json:"carryoverVacationEnabled,omitempty"`
	CarryoverMaxPeriods      *float64 `json:"carryoverVacationMaxPeriods,omitempty"`
	AdminExpireAtYearEnd     *bool    `json:"adminDaysExpireAtYearEnd,omitempty"`
	ReminderDays             *float64 `json:"yearCloseReminderDays,omitempty"`
}

// ImportPayload is a full data set offered for bulk import. A nil slice
// means the section was absent from the payload, which is different from
// a present-but-empty list.
type ImportPayload struct {
	Employees []ImportEmployee `json:"employees,omitempty"`
	Requests  []ImportRequest  `json:"requests,omitempty"`
	Config    *ImportConfig    `json:"config,omitempty"`
}

// ValidationResult enumerates everything wrong (and worth warning about)
// in an import payload.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// =============================================================================
// STRUCTURAL CHECKS
// =============================================================================

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func nonNegative(v float64) bool {
	return finite(v) && v >= 0
}

func present(s string) bool {
	return strings.TrimSpace(s) != ""
}

// StructurallyValid reports whether the employee record is well formed:
// required fields present, counters non-negative, used within total.
func (e ImportEmployee) StructurallyValid() bool {
	return present(e.ID) &&
		present(e.FirstName) &&
		present(e.LastName) &&
		present(e.Email) &&
		strings.Contains(e.Email, "@") &&
		nonNegative(e.TotalVacationDays) &&
		nonNegative(e.UsedVacationDays) &&
		nonNegative(e.TotalAdminDays) &&
		nonNegative(e.UsedAdminDays) &&
		nonNegative(e.TotalSickLeaveDays) &&
		nonNegative(e.UsedSickLeaveDays) &&
		e.UsedVacationDays <= e.TotalVacationDays &&
		e.UsedAdminDays <= e.TotalAdminDays &&
		e.UsedSickLeaveDays <= e.TotalSickLeaveDays
}

// StructurallyValid reports whether the request record is well formed:
// member enums, real dates, end >= start, positive day count, and the
// half-day constraint (half shift ⇒ single day ⇒ 0.5 days).
func (r ImportRequest) StructurallyValid() bool {
	if !present(r.ID) || !present(r.EmployeeID) {
		return false
	}
	if !LeaveType(r.Type).Valid() || !RequestStatus(r.Status).Valid() || !WorkShift(r.Shift).Valid() {
		return false
	}
	if !calendar.IsValidISODate(r.StartDate) || !calendar.IsValidISODate(r.EndDate) {
		return false
	}
	start, _ := calendar.Parse(r.StartDate)
	end, _ := calendar.Parse(r.EndDate)
	if end.Before(start) {
		return false
	}
	if !finite(r.DaysCount) || r.DaysCount <= 0 {
		return false
	}
	if WorkShift(r.Shift).IsHalfDay() {
		if r.StartDate != r.EndDate {
			return false
		}
		if !nearlyEqual(decimal.NewFromFloat(r.DaysCount), HalfDay) {
			return false
		}
	}
	return true
}

// StructurallyValid reports whether the config record is well formed.
func (c ImportConfig) StructurallyValid() bool {
	if !finite(c.DefaultVacationDays) || !finite(c.DefaultAdminDays) || !finite(c.DefaultSickLeaveDays) {
		return false
	}
	if c.CarryoverMaxPeriods != nil && !finite(*c.CarryoverMaxPeriods) {
		return false
	}
	if c.ReminderDays != nil && !finite(*c.ReminderDays) {
		return false
	}
	return true
}

func nearlyEqual(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(dayCountTolerance)
}

// =============================================================================
// DOMAIN CONVERSION - Only meaningful on structurally valid records
// =============================================================================

// ToEmployee converts a structurally valid record to the domain type.
func (e ImportEmployee) ToEmployee() Employee {
	return Employee{
		ID:            e.ID,
		FirstName:     e.FirstName,
		LastName:      e.LastName,
		Email:         e.Email,
		Position:      e.Position,
		Department:    e.Department,
		AvatarURL:     e.AvatarURL,
		TotalVacation: decimal.NewFromFloat(e.TotalVacationDays),
		UsedVacation:  decimal.NewFromFloat(e.UsedVacationDays),
		TotalAdmin:    decimal.NewFromFloat(e.TotalAdminDays),
		UsedAdmin:     decimal.NewFromFloat(e.UsedAdminDays),
		TotalSick:     decimal.NewFromFloat(e.TotalSickLeaveDays),
		UsedSick:      decimal.NewFromFloat(e.UsedSickLeaveDays),
	}
}

// ToRequest converts a structurally valid record to the domain type.
func (r ImportRequest) ToRequest() LeaveRequest {
	start, _ := calendar.Parse(r.StartDate)
	end, _ := calendar.Parse(r.EndDate)
	return LeaveRequest{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		Type:       LeaveType(r.Type),
		StartDate:  start,
		EndDate:    end,
		Shift:      WorkShift(r.Shift),
		DaysCount:  decimal.NewFromFloat(r.DaysCount),
		Status:     RequestStatus(r.Status),
		Reason:     r.Reason,
	}
}

// ToConfig merges a structurally valid record over the defaults.
func (c ImportConfig) ToConfig() Config {
	cfg := DefaultConfig()
	cfg.DefaultVacationDays = decimal.NewFromFloat(c.DefaultVacationDays)
	cfg.DefaultAdminDays = decimal.NewFromFloat(c.DefaultAdminDays)
	cfg.DefaultSickLeaveDays = decimal.NewFromFloat(c.DefaultSickLeaveDays)
	cfg.NotificationEmail = c.NotificationEmail
	cfg.EmailTemplate = c.EmailTemplate
	if c.CarryoverVacationEnabled != nil {
		cfg.CarryoverVacationEnabled = *c.CarryoverVacationEnabled
	}
	if c.CarryoverMaxPeriods != nil {
		cfg.CarryoverMaxPeriods = int(*c.CarryoverMaxPeriods)
	}
	if c.AdminExpireAtYearEnd != nil {
		cfg.AdminExpireAtYearEnd = *c.AdminExpireAtYearEnd
	}
	if c.ReminderDays != nil {
		cfg.ReminderDays = int(*c.ReminderDays)
	}
	return cfg
}

// =============================================================================
// FULL PAYLOAD VALIDATION
// =============================================================================

// ValidateImport checks a bulk payload structurally and across records,
// accumulating every problem found. It never fails partway; the result
// describes the whole payload.
func ValidateImport(payload ImportPayload, holidays calendar.HolidaySet) ValidationResult {
	var errs, warnings []string

	// Employees: structural validity, row list for invalid, duplicate ids.
	if payload.Employees != nil {
		var invalidRows []string
		seen := make(map[string]struct{})
		duplicates := 0
		for i, emp := range payload.Employees {
			if !emp.StructurallyValid() {
				invalidRows = append(invalidRows, fmt.Sprintf("%d", i+1))
				continue
			}
			if _, ok := seen[emp.ID]; ok {
				duplicates++
				continue
			}
			seen[emp.ID] = struct{}{}
		}
		if len(invalidRows) > 0 {
			errs = append(errs, fmt.Sprintf("invalid employee record(s) at row(s): %s", strings.Join(invalidRows, ", ")))
		}
		if len(payload.Employees) == 0 {
			warnings = append(warnings, "employee list is empty")
		}
		if duplicates > 0 {
			errs = append(errs, fmt.Sprintf("detected %d duplicate employee id(s)", duplicates))
		}
	}

	// Requests: structural validity, row list for invalid, duplicate ids.
	if payload.Requests != nil {
		var invalidRows []string
		seen := make(map[string]struct{})
		duplicates := 0
		for i, req := range payload.Requests {
			if !req.StructurallyValid() {
				invalidRows = append(invalidRows, fmt.Sprintf("%d", i+1))
				continue
			}
			if _, ok := seen[req.ID]; ok {
				duplicates++
				continue
			}
			seen[req.ID] = struct{}{}
		}
		if len(invalidRows) > 0 {
			errs = append(errs, fmt.Sprintf("invalid request record(s) at row(s): %s", strings.Join(invalidRows, ", ")))
		}
		if duplicates > 0 {
			errs = append(errs, fmt.Sprintf("detected %d duplicate request id(s)", duplicates))
		}
	}

	// Config: structural validity.
	if payload.Config != nil && !payload.Config.StructurallyValid() {
		errs = append(errs, "imported configuration is not structurally valid")
	}

	// Cross-record checks run over structurally valid records only.
	if payload.Employees != nil && payload.Requests != nil {
		validEmployees := make(map[string]struct{})
		for _, emp := range payload.Employees {
			if emp.StructurallyValid() {
				validEmployees[emp.ID] = struct{}{}
			}
		}

		var validRequests []LeaveRequest
		unresolved := 0
		mismatched := 0
		for _, raw := range payload.Requests {
			if !raw.StructurallyValid() {
				continue
			}
			req := raw.ToRequest()
			validRequests = append(validRequests, req)

			if _, ok := validEmployees[req.EmployeeID]; !ok {
				unresolved++
			}

			expected := CountChargeableDays(req.StartDate, req.EndDate, req.Type, req.Shift, holidays)
			if !nearlyEqual(expected, req.DaysCount) {
				mismatched++
			}
		}
		if unresolved > 0 {
			errs = append(errs, fmt.Sprintf("%d request(s) reference an unknown employee", unresolved))
		}
		if mismatched > 0 {
			errs = append(errs, fmt.Sprintf("%d request(s) have day counts inconsistent with their dates, type or shift", mismatched))
		}

		if overlaps := countApprovedOverlaps(validRequests); overlaps > 0 {
			errs = append(errs, fmt.Sprintf("detected %d overlap(s) between approved requests of the same employee", overlaps))
		}
	}

	// An import carrying nothing at all is invalid input, not a no-op.
	if payload.Employees == nil && payload.Requests == nil && payload.Config == nil {
		errs = append(errs, "payload contains no employees, requests or configuration")
	}

	return ValidationResult{
		Valid:    len(errs) == 0,
		Errors:   errs,
		Warnings: warnings,
	}
}

// countApprovedOverlaps groups approved requests by employee, sorts each
// group by start date, and counts adjacent pairs whose closed intervals
// intersect.
func countApprovedOverlaps(requests []LeaveRequest) int {
	byEmployee := make(map[string][]LeaveRequest)
	for _, req := range requests {
		if req.Status != StatusApproved {
			continue
		}
		byEmployee[req.EmployeeID] = append(byEmployee[req.EmployeeID], req)
	}

	overlaps := 0
	for _, group := range byEmployee {
		sort.Slice(group, func(i, j int) bool {
			return group[i].StartDate.Before(group[j].StartDate)
		})
		for i := 1; i < len(group); i++ {
			if group[i].StartDate.BeforeOrEqual(group[i-1].EndDate) {
				overlaps++
			}
		}
	}
	return overlaps
}
