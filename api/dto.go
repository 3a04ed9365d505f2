/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

WIRE FORMAT:
  Field names are camelCase and day amounts are JSON numbers. Dates are
  ISO strings (YYYY-MM-DD). This matches the bulk-import payload shape,
  so an export of /api/employees and /api/requests round-trips through
  /api/import.

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - leave/importcheck.go: Bulk-import wire types (same field names)
*/
package api

import (
	"github.com/Sidrek1992/CFT-Permiso/leave"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// EmployeeDTO represents an employee in API responses.
type EmployeeDTO struct {
	ID                 string  `json:"id"`
	FirstName          string  `json:"firstName"`
	LastName           string  `json:"lastName"`
	Email              string  `json:"email"`
	Position           string  `json:"position"`
	Department         string  `json:"department"`
	AvatarURL          string  `json:"avatarUrl,omitempty"`
	TotalVacationDays  float64 `json:"totalVacationDays"`
	UsedVacationDays   float64 `json:"usedVacationDays"`
	TotalAdminDays     float64 `json:"totalAdminDays"`
	UsedAdminDays      float64 `json:"usedAdminDays"`
	TotalSickLeaveDays float64 `json:"totalSickLeaveDays"`
	UsedSickLeaveDays  float64 `json:"usedSickLeaveDays"`
}

// CreateEmployeeRequest is the request to create or update an employee.
// Total* fields of zero fall back to the configured defaults on create.
type CreateEmployeeRequest struct {
	FirstName          string  `json:"firstName"`
	LastName           string  `json:"lastName"`
	Email              string  `json:"email"`
	Position           string  `json:"position"`
	Department         string  `json:"department"`
	AvatarURL          string  `json:"avatarUrl"`
	TotalVacationDays  float64 `json:"totalVacationDays"`
	TotalAdminDays     float64 `json:"totalAdminDays"`
	TotalSickLeaveDays float64 `json:"totalSickLeaveDays"`
}

// RequestDTO represents a leave request in API responses.
type RequestDTO struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employeeId"`
	Type       string  `json:"type"`
	StartDate  string  `json:"startDate"`
	EndDate    string  `json:"endDate"`
	Shift      string  `json:"shift"`
	DaysCount  float64 `json:"daysCount"`
	Status     string  `json:"status"`
	Reason     string  `json:"reason,omitempty"`
}

// SubmitRequestDTO is the request body to submit a leave request.
// DaysCount is computed server-side; any client value is ignored.
type SubmitRequestDTO struct {
	Type      string `json:"type"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Shift     string `json:"shift"`
	Reason    string `json:"reason"`
}

// CategoryBalanceDTO is the balance for a single leave category.
// Remaining is null for untracked categories (unpaid, parental).
type CategoryBalanceDTO struct {
	Type      string   `json:"type"`
	Total     *float64 `json:"total,omitempty"`
	Used      *float64 `json:"used,omitempty"`
	Remaining *float64 `json:"remaining,omitempty"`
	Tracked   bool     `json:"tracked"`
}

// BalanceDTO is the full balance summary for one employee.
type BalanceDTO struct {
	EmployeeID string               `json:"employeeId"`
	Balances   []CategoryBalanceDTO `json:"balances"`
}

// ConfigDTO mirrors the persisted application configuration.
type ConfigDTO struct {
	DefaultVacationDays      float64 `json:"defaultVacationDays"`
	DefaultAdminDays         float64 `json:"defaultAdminDays"`
	DefaultSickLeaveDays     float64 `json:"defaultSickLeaveDays"`
	NotificationEmail        string  `json:"notificationEmail,omitempty"`
	EmailTemplate            string  `json:"emailTemplate,omitempty"`
	CarryoverVacationEnabled bool    `json:"carryoverVacationEnabled"`
	CarryoverMaxPeriods      int     `json:"carryoverVacationMaxPeriods"`
	AdminExpireAtYearEnd     bool    `json:"adminDaysExpireAtYearEnd"`
	ReminderDays             int     `json:"yearCloseReminderDays"`
}

// YearCloseStatusDTO reports whether the annual close is pending today.
type YearCloseStatusDTO struct {
	LastClosedYear int    `json:"lastClosedYear"`
	TargetYear     int    `json:"targetYear,omitempty"`
	Due            bool   `json:"due"`
	Reminder       string `json:"reminder,omitempty"`
}

// YearCloseResultDTO is the outcome of a completed close.
type YearCloseResultDTO struct {
	ClosedYear         int     `json:"closedYear"`
	EmployeesProcessed int     `json:"employeesProcessed"`
	AdminDaysExpired   float64 `json:"adminDaysExpired"`
	VacationDaysCapped float64 `json:"vacationDaysCapped"`
}

// HolidayDTO is one non-working day from the legal calendar.
type HolidayDTO struct {
	Date string `json:"date"`
}

// DashboardDTO summarizes the current state for the landing view.
type DashboardDTO struct {
	Employees         int     `json:"employees"`
	PendingRequests   int     `json:"pendingRequests"`
	ApprovedRequests  int     `json:"approvedRequests"`
	VacationDaysTaken float64 `json:"vacationDaysTaken"`
	AdminDaysTaken    float64 `json:"adminDaysTaken"`
	SickDaysTaken     float64 `json:"sickDaysTaken"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toEmployeeDTO(emp leave.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:                 emp.ID,
		FirstName:          emp.FirstName,
		LastName:           emp.LastName,
		Email:              emp.Email,
		Position:           emp.Position,
		Department:         emp.Department,
		AvatarURL:          emp.AvatarURL,
		TotalVacationDays:  emp.TotalVacation.InexactFloat64(),
		UsedVacationDays:   emp.UsedVacation.InexactFloat64(),
		TotalAdminDays:     emp.TotalAdmin.InexactFloat64(),
		UsedAdminDays:      emp.UsedAdmin.InexactFloat64(),
		TotalSickLeaveDays: emp.TotalSick.InexactFloat64(),
		UsedSickLeaveDays:  emp.UsedSick.InexactFloat64(),
	}
}

func toEmployeeDTOs(employees []leave.Employee) []EmployeeDTO {
	dtos := make([]EmployeeDTO, len(employees))
	for i, emp := range employees {
		dtos[i] = toEmployeeDTO(emp)
	}
	return dtos
}

func toRequestDTO(req leave.LeaveRequest) RequestDTO {
	return RequestDTO{
		ID:         req.ID,
		EmployeeID: req.EmployeeID,
		Type:       string(req.Type),
		StartDate:  req.StartDate.String(),
		EndDate:    req.EndDate.String(),
		Shift:      string(req.Shift),
		DaysCount:  req.DaysCount.InexactFloat64(),
		Status:     string(req.Status),
		Reason:     req.Reason,
	}
}

func toRequestDTOs(requests []leave.LeaveRequest) []RequestDTO {
	dtos := make([]RequestDTO, len(requests))
	for i, req := range requests {
		dtos[i] = toRequestDTO(req)
	}
	return dtos
}

func toConfigDTO(cfg leave.Config) ConfigDTO {
	return ConfigDTO{
		DefaultVacationDays:      cfg.DefaultVacationDays.InexactFloat64(),
		DefaultAdminDays:         cfg.DefaultAdminDays.InexactFloat64(),
		DefaultSickLeaveDays:     cfg.DefaultSickLeaveDays.InexactFloat64(),
		NotificationEmail:        cfg.NotificationEmail,
		EmailTemplate:            cfg.EmailTemplate,
		CarryoverVacationEnabled: cfg.CarryoverVacationEnabled,
		CarryoverMaxPeriods:      cfg.MaxCarryoverPeriods(),
		AdminExpireAtYearEnd:     cfg.AdminExpireAtYearEnd,
		ReminderDays:             cfg.ReminderWindowDays(),
	}
}

func floatPtr(v float64) *float64 {
	return &v
}
