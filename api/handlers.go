/*
handlers.go - HTTP API handlers for the leave management system

PURPOSE:
  Exposes the leave engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to domain logic in the leave package.

ENDPOINTS:
  Employees:
    GET    /api/employees               List all employees
    POST   /api/employees               Create employee
    GET    /api/employees/{id}          Get employee details
    PUT    /api/employees/{id}          Update employee
    DELETE /api/employees/{id}          Delete employee and their requests
    GET    /api/employees/{id}/balance  Per-category balance summary
    POST   /api/employees/{id}/requests Submit a leave request

  Requests:
    GET    /api/requests                List requests (filter: employeeId, status)
    POST   /api/requests/{id}/approve   Approve a pending request
    POST   /api/requests/{id}/reject    Reject a pending request
    DELETE /api/requests/{id}           Delete a request

  Admin:
    GET    /api/config                  Get configuration
    PUT    /api/config                  Update configuration
    POST   /api/import/validate         Dry-run validation of a bulk payload
    POST   /api/import                  Validate and apply a bulk payload
    GET    /api/year-close/status       Close due / reminder status
    POST   /api/year-close/run          Execute the annual close
    GET    /api/holidays                Legal holiday calendar
    GET    /api/dashboard               Aggregate counters

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input
  3. Call domain logic (counting, balance rules, rebuild, close)
  4. Serialize response
  5. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 409: Conflict (overlap, close not due)
  - 500: Internal errors

USAGE REBUILD:
  Every mutation that can change which approved days exist (approval,
  rejection, deletion, import) is followed by a full usage rebuild for
  the current year, so the Used* columns are always derived state.

SEE ALSO:
  - dto.go: Request/response data structures
  - scheduler.go: Automated year-close runner
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Sidrek1992/CFT-Permiso/calendar"
	"github.com/Sidrek1992/CFT-Permiso/leave"
)

// errCloseNotDue signals a close attempt outside the due window.
var errCloseNotDue = errors.New("year close not due")

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    leave.Store
	Holidays calendar.HolidaySet
	Logger   *slog.Logger

	// today is injectable so date-sensitive behavior (year close,
	// reminders) is testable.
	today func() calendar.Date

	// closeMu serializes the annual close across the HTTP trigger and
	// the scheduler.
	closeMu sync.Mutex
}

// NewHandler creates a new handler with the given store.
func NewHandler(store leave.Store, holidays calendar.HolidaySet, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		Store:    store,
		Holidays: holidays,
		Logger:   logger,
		today:    calendar.Today,
	}
}

// =============================================================================
// EMPLOYEE ENDPOINTS
// =============================================================================

// ListEmployees returns all employees.
// GET /api/employees
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTOs(employees))
}

// GetEmployee returns a single employee.
// GET /api/employees/{id}
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Store.GetEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if leave.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Employee not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(emp))
}

// CreateEmployee creates an employee. Zero-valued totals fall back to the
// configured defaults.
// POST /api/employees
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.FirstName == "" || req.LastName == "" {
		writeError(w, http.StatusBadRequest, "firstName and lastName are required", nil)
		return
	}

	cfg, err := h.Store.Config(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load configuration", err)
		return
	}

	emp := leave.Employee{
		ID:            uuid.NewString(),
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Position:      req.Position,
		Department:    req.Department,
		AvatarURL:     req.AvatarURL,
		TotalVacation: cfg.DefaultVacationDays,
		TotalAdmin:    cfg.DefaultAdminDays,
		TotalSick:     cfg.DefaultSickLeaveDays,
	}
	if req.TotalVacationDays > 0 {
		emp.TotalVacation = decimal.NewFromFloat(req.TotalVacationDays)
	}
	if req.TotalAdminDays > 0 {
		emp.TotalAdmin = decimal.NewFromFloat(req.TotalAdminDays)
	}
	if req.TotalSickLeaveDays > 0 {
		emp.TotalSick = decimal.NewFromFloat(req.TotalSickLeaveDays)
	}

	if err := h.Store.PutEmployee(r.Context(), emp); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create employee", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmployeeDTO(emp))
}

// UpdateEmployee updates profile fields and total allotments. Used days
// are derived from approved requests and cannot be set here.
// PUT /api/employees/{id}
func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	emp, err := h.Store.GetEmployee(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if leave.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Employee not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}

	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if req.FirstName != "" {
		emp.FirstName = req.FirstName
	}
	if req.LastName != "" {
		emp.LastName = req.LastName
	}
	if req.Email != "" {
		emp.Email = req.Email
	}
	if req.Position != "" {
		emp.Position = req.Position
	}
	if req.Department != "" {
		emp.Department = req.Department
	}
	if req.AvatarURL != "" {
		emp.AvatarURL = req.AvatarURL
	}
	if req.TotalVacationDays > 0 {
		emp.TotalVacation = decimal.NewFromFloat(req.TotalVacationDays)
	}
	if req.TotalAdminDays > 0 {
		emp.TotalAdmin = decimal.NewFromFloat(req.TotalAdminDays)
	}
	if req.TotalSickLeaveDays > 0 {
		emp.TotalSick = decimal.NewFromFloat(req.TotalSickLeaveDays)
	}

	if err := h.Store.PutEmployee(ctx, emp); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update employee", err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(emp))
}

// DeleteEmployee removes an employee and all their requests.
// DELETE /api/employees/{id}
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	if err := h.Store.DeleteEmployee(ctx, id); err != nil {
		if leave.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Employee not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete employee", err)
		return
	}

	// Orphaned requests would corrupt the next rebuild.
	requests, err := h.Store.ListRequests(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list requests", err)
		return
	}
	for _, req := range requests {
		if req.EmployeeID == id {
			if err := h.Store.DeleteRequest(ctx, req.ID); err != nil {
				writeError(w, http.StatusInternalServerError, "Failed to delete requests", err)
				return
			}
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
}

// GetBalance returns the per-category balance summary for an employee.
// GET /api/employees/{id}/balance
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Store.GetEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if leave.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Employee not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}

	balances := make([]CategoryBalanceDTO, 0, len(leave.LeaveTypes))
	for _, typ := range leave.LeaveTypes {
		remaining, tracked := leave.RemainingDays(emp, typ)
		b := CategoryBalanceDTO{Type: string(typ), Tracked: tracked}
		if tracked {
			total, used := categoryTotals(emp, typ)
			b.Total = floatPtr(total.InexactFloat64())
			b.Used = floatPtr(used.InexactFloat64())
			b.Remaining = floatPtr(remaining.InexactFloat64())
		}
		balances = append(balances, b)
	}

	writeJSON(w, http.StatusOK, BalanceDTO{EmployeeID: emp.ID, Balances: balances})
}

func categoryTotals(emp leave.Employee, typ leave.LeaveType) (total, used decimal.Decimal) {
	switch typ {
	case leave.LeaveLegalHoliday:
		return emp.TotalVacation, emp.UsedVacation
	case leave.LeaveAdministrative:
		return emp.TotalAdmin, emp.UsedAdmin
	case leave.LeaveSick:
		return emp.TotalSick, emp.UsedSick
	}
	return decimal.Zero, decimal.Zero
}

// =============================================================================
// REQUEST ENDPOINTS
// =============================================================================

// ListRequests returns leave requests, optionally filtered by employeeId
// and status query parameters.
// GET /api/requests
func (h *Handler) ListRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Store.ListRequests(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list requests", err)
		return
	}

	employeeID := r.URL.Query().Get("employeeId")
	status := r.URL.Query().Get("status")

	filtered := make([]leave.LeaveRequest, 0, len(requests))
	for _, req := range requests {
		if employeeID != "" && req.EmployeeID != employeeID {
			continue
		}
		if status != "" && string(req.Status) != status {
			continue
		}
		filtered = append(filtered, req)
	}

	writeJSON(w, http.StatusOK, toRequestDTOs(filtered))
}

// SubmitRequest validates and stores a new pending leave request.
// POST /api/employees/{id}/requests
func (h *Handler) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	emp, err := h.Store.GetEmployee(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if leave.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Employee not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}

	var body SubmitRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	typ := leave.LeaveType(body.Type)
	if !typ.Valid() {
		writeError(w, http.StatusBadRequest, "Unknown leave type", nil)
		return
	}
	shift := leave.WorkShift(body.Shift)
	if body.Shift == "" {
		shift = leave.ShiftFullDay
	}
	if !shift.Valid() {
		writeError(w, http.StatusBadRequest, "Unknown work shift", nil)
		return
	}

	start, err := calendar.Parse(body.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid startDate (use YYYY-MM-DD)", err)
		return
	}
	end, err := calendar.Parse(body.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid endDate (use YYYY-MM-DD)", err)
		return
	}
	if end.Before(start) {
		writeError(w, http.StatusBadRequest, "endDate is before startDate", leave.ErrInvalidDateRange)
		return
	}

	days := leave.CountChargeableDays(start, end, typ, shift, h.Holidays)
	if days.IsZero() {
		writeError(w, http.StatusBadRequest, "Selected range contains no chargeable days", leave.ErrNoChargeableDays)
		return
	}

	if verdict := leave.ValidateBalance(emp, typ, days); !verdict.Valid {
		writeError(w, http.StatusBadRequest, verdict.Message, leave.ErrInsufficientBalance)
		return
	}

	requests, err := h.Store.ListRequests(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list requests", err)
		return
	}
	if leave.HasOverlap(requests, emp.ID, start, end) {
		writeError(w, http.StatusConflict, "Range overlaps an approved request", leave.ErrOverlappingRequest)
		return
	}

	req := leave.LeaveRequest{
		ID:         uuid.NewString(),
		EmployeeID: emp.ID,
		Type:       typ,
		StartDate:  start,
		EndDate:    end,
		Shift:      shift,
		DaysCount:  days,
		Status:     leave.StatusPending,
		Reason:     body.Reason,
	}
	if err := h.Store.PutRequest(ctx, req); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create request", err)
		return
	}

	writeJSON(w, http.StatusCreated, toRequestDTO(req))
}

// ApproveRequest transitions a pending request to approved, re-checking
// balance and overlap at approval time, then rebuilds usage.
// POST /api/requests/{id}/approve
func (h *Handler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := h.Store.GetRequest(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if leave.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Request not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get request", err)
		return
	}
	if req.Status != leave.StatusPending {
		writeError(w, http.StatusBadRequest, "Only pending requests can be approved", leave.ErrInvalidTransition)
		return
	}

	emp, err := h.Store.GetEmployee(ctx, req.EmployeeID)
	if err != nil {
		if leave.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Employee not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}

	if verdict := leave.ValidateBalance(emp, req.Type, req.DaysCount); !verdict.Valid {
		writeError(w, http.StatusBadRequest, verdict.Message, leave.ErrInsufficientBalance)
		return
	}

	requests, err := h.Store.ListRequests(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list requests", err)
		return
	}
	others := make([]leave.LeaveRequest, 0, len(requests))
	for _, other := range requests {
		if other.ID != req.ID {
			others = append(others, other)
		}
	}
	if leave.HasOverlap(others, req.EmployeeID, req.StartDate, req.EndDate) {
		writeError(w, http.StatusConflict, "Range overlaps an approved request", leave.ErrOverlappingRequest)
		return
	}

	req.Status = leave.StatusApproved
	if err := h.Store.PutRequest(ctx, req); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update request", err)
		return
	}
	if err := h.rebuildUsage(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to rebuild balances", err)
		return
	}

	writeJSON(w, http.StatusOK, toRequestDTO(req))
}

// RejectRequest transitions a pending request to rejected.
// POST /api/requests/{id}/reject
func (h *Handler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := h.Store.GetRequest(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if leave.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Request not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get request", err)
		return
	}
	if req.Status != leave.StatusPending {
		writeError(w, http.StatusBadRequest, "Only pending requests can be rejected", leave.ErrInvalidTransition)
		return
	}

	req.Status = leave.StatusRejected
	if err := h.Store.PutRequest(ctx, req); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update request", err)
		return
	}

	writeJSON(w, http.StatusOK, toRequestDTO(req))
}

// DeleteRequest removes a request. Deleting an approved request frees
// the days it consumed, so usage is rebuilt afterwards.
// DELETE /api/requests/{id}
func (h *Handler) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	req, err := h.Store.GetRequest(ctx, id)
	if err != nil {
		if leave.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Request not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get request", err)
		return
	}

	if err := h.Store.DeleteRequest(ctx, id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete request", err)
		return
	}
	if req.Status == leave.StatusApproved {
		if err := h.rebuildUsage(ctx); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to rebuild balances", err)
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
}

// rebuildUsage recomputes Used* for every employee from the approved
// requests intersected with the current year, and persists the result.
func (h *Handler) rebuildUsage(ctx context.Context) error {
	employees, err := h.Store.ListEmployees(ctx)
	if err != nil {
		return err
	}
	requests, err := h.Store.ListRequests(ctx)
	if err != nil {
		return err
	}
	next := leave.RebuildUsage(employees, requests, h.today().Year(), h.Holidays)
	return h.Store.ReplaceEmployees(ctx, next)
}

// =============================================================================
// CONFIG ENDPOINTS
// =============================================================================

// GetConfig returns the current configuration.
// GET /api/config
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.Store.Config(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load configuration", err)
		return
	}
	writeJSON(w, http.StatusOK, toConfigDTO(cfg))
}

// UpdateConfig replaces the configuration. Out-of-range policy values are
// accepted and clamped on read.
// PUT /api/config
func (h *Handler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	var body ConfigDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if body.DefaultVacationDays < 0 || body.DefaultAdminDays < 0 || body.DefaultSickLeaveDays < 0 {
		writeError(w, http.StatusBadRequest, "Day defaults must be non-negative", nil)
		return
	}

	cfg := leave.Config{
		DefaultVacationDays:      decimal.NewFromFloat(body.DefaultVacationDays),
		DefaultAdminDays:         decimal.NewFromFloat(body.DefaultAdminDays),
		DefaultSickLeaveDays:     decimal.NewFromFloat(body.DefaultSickLeaveDays),
		NotificationEmail:        body.NotificationEmail,
		EmailTemplate:            body.EmailTemplate,
		CarryoverVacationEnabled: body.CarryoverVacationEnabled,
		CarryoverMaxPeriods:      body.CarryoverMaxPeriods,
		AdminExpireAtYearEnd:     body.AdminExpireAtYearEnd,
		ReminderDays:             body.ReminderDays,
	}
	if err := h.Store.PutConfig(r.Context(), cfg); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save configuration", err)
		return
	}
	writeJSON(w, http.StatusOK, toConfigDTO(cfg))
}

// =============================================================================
// IMPORT ENDPOINTS
// =============================================================================

// ValidateImportPayload runs the full validation pass without applying
// anything.
// POST /api/import/validate
func (h *Handler) ValidateImportPayload(w http.ResponseWriter, r *http.Request) {
	var payload leave.ImportPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	writeJSON(w, http.StatusOK, leave.ValidateImport(payload, h.Holidays))
}

// ImportData validates a bulk payload and, when valid, replaces the
// sections it carries. Usage is rebuilt afterwards so imported Used*
// values are reconciled against the imported requests.
// POST /api/import
func (h *Handler) ImportData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var payload leave.ImportPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result := leave.ValidateImport(payload, h.Holidays)
	if !result.Valid {
		writeJSON(w, http.StatusBadRequest, result)
		return
	}

	if payload.Employees != nil {
		employees := make([]leave.Employee, len(payload.Employees))
		for i, ie := range payload.Employees {
			employees[i] = ie.ToEmployee()
		}
		if err := h.Store.ReplaceEmployees(ctx, employees); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to import employees", err)
			return
		}
	}
	if payload.Requests != nil {
		requests := make([]leave.LeaveRequest, len(payload.Requests))
		for i, ir := range payload.Requests {
			requests[i] = ir.ToRequest()
		}
		if err := h.Store.ReplaceRequests(ctx, requests); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to import requests", err)
			return
		}
	}
	if payload.Config != nil {
		if err := h.Store.PutConfig(ctx, payload.Config.ToConfig()); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to import configuration", err)
			return
		}
	}

	if err := h.rebuildUsage(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to rebuild balances", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// =============================================================================
// YEAR-CLOSE ENDPOINTS
// =============================================================================

// YearCloseStatus reports whether a close is due today and any active
// reminder.
// GET /api/year-close/status
func (h *Handler) YearCloseStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	meta, err := h.Store.CloseMeta(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load close state", err)
		return
	}
	cfg, err := h.Store.Config(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load configuration", err)
		return
	}
	employees, err := h.Store.ListEmployees(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	today := h.today()
	status := YearCloseStatusDTO{
		LastClosedYear: meta.LastClosedYear,
		Due:            leave.CloseDue(today, meta),
	}
	if target, ok := leave.TargetCloseYear(today); ok {
		status.TargetYear = target
	}
	if msg, ok := leave.ReminderMessage(today, employees, cfg, meta); ok {
		status.Reminder = msg
	}

	writeJSON(w, http.StatusOK, status)
}

// RunYearClose executes the annual close if it is due.
// POST /api/year-close/run
func (h *Handler) RunYearClose(w http.ResponseWriter, r *http.Request) {
	result, err := h.performYearClose(r.Context())
	if err != nil {
		if errors.Is(err, errCloseNotDue) {
			writeError(w, http.StatusConflict, "Year close is not due", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to run year close", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// performYearClose is the single entry point for the close, shared by the
// HTTP trigger and the scheduler. It is idempotent: once LastClosedYear
// reaches the target year, subsequent calls report errCloseNotDue.
func (h *Handler) performYearClose(ctx context.Context) (YearCloseResultDTO, error) {
	h.closeMu.Lock()
	defer h.closeMu.Unlock()

	today := h.today()

	meta, err := h.Store.CloseMeta(ctx)
	if err != nil {
		return YearCloseResultDTO{}, err
	}
	if !leave.CloseDue(today, meta) {
		return YearCloseResultDTO{}, errCloseNotDue
	}
	target, _ := leave.TargetCloseYear(today)

	cfg, err := h.Store.Config(ctx)
	if err != nil {
		return YearCloseResultDTO{}, err
	}
	employees, err := h.Store.ListEmployees(ctx)
	if err != nil {
		return YearCloseResultDTO{}, err
	}

	res := leave.ApplyYearClose(employees, cfg)
	if err := h.Store.ReplaceEmployees(ctx, res.Employees); err != nil {
		return YearCloseResultDTO{}, err
	}

	meta.LastClosedYear = target
	if err := h.Store.PutCloseMeta(ctx, meta); err != nil {
		return YearCloseResultDTO{}, err
	}

	// Re-apply approved usage that already falls in the new open year
	// (relevant when the close runs during the January grace window).
	if err := h.rebuildUsage(ctx); err != nil {
		return YearCloseResultDTO{}, err
	}

	h.Logger.Info("year close completed",
		"closedYear", target,
		"employees", len(res.Employees),
		"adminDaysExpired", res.AdminDaysExpired.String(),
		"vacationDaysCapped", res.VacationDaysCapped.String())

	return YearCloseResultDTO{
		ClosedYear:         target,
		EmployeesProcessed: len(res.Employees),
		AdminDaysExpired:   res.AdminDaysExpired.InexactFloat64(),
		VacationDaysCapped: res.VacationDaysCapped.InexactFloat64(),
	}, nil
}

// =============================================================================
// MISC ENDPOINTS
// =============================================================================

// ListHolidays returns the legal holiday calendar.
// GET /api/holidays
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	dates := make([]string, 0, len(h.Holidays))
	for d := range h.Holidays {
		dates = append(dates, d.String())
	}
	sort.Strings(dates)

	dtos := make([]HolidayDTO, len(dates))
	for i, d := range dates {
		dtos[i] = HolidayDTO{Date: d}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// Dashboard returns aggregate counters for the landing view.
// GET /api/dashboard
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	employees, err := h.Store.ListEmployees(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}
	requests, err := h.Store.ListRequests(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list requests", err)
		return
	}

	dto := DashboardDTO{Employees: len(employees)}
	for _, req := range requests {
		switch req.Status {
		case leave.StatusPending:
			dto.PendingRequests++
		case leave.StatusApproved:
			dto.ApprovedRequests++
		}
	}
	vacation, admin, sick := decimal.Zero, decimal.Zero, decimal.Zero
	for _, emp := range employees {
		vacation = vacation.Add(emp.UsedVacation)
		admin = admin.Add(emp.UsedAdmin)
		sick = sick.Add(emp.UsedSick)
	}
	dto.VacationDaysTaken = vacation.InexactFloat64()
	dto.AdminDaysTaken = admin.InexactFloat64()
	dto.SickDaysTaken = sick.InexactFloat64()

	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
