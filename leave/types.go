/*
Package leave implements the leave-balance computation and year-close engine.

PURPOSE:
  Tracks per-employee entitlements for vacation (feriado legal),
  administrative days and sick leave; derives used-day counters from the
  request history; validates new requests against remaining balance and
  overlap rules; and performs the annual close that carries, caps and
  expires balances.

KEY CONCEPTS IN THIS FILE (types.go):
  - LeaveType / WorkShift / RequestStatus: closed enumerations, so
    validators can check membership and the day-counting switch can be
    exhaustive
  - Employee: independent total/used counters per leave category
  - LeaveRequest: one leave event with an inclusive date range
  - Config: tunables for day defaults and year-close policy

DESIGN PRINCIPLES:
  1. Purity: every computation takes inputs and returns new values; nothing
     mutates its arguments
  2. Precision: decimal.Decimal for all day amounts, so the 0.5 half-day
     case never accumulates float error
  3. Derived state: used counters are rebuilt from the approved-request
     log (usage.go), never patched incrementally

SEE ALSO:
  - count.go: chargeable-day counting, the single source of day costs
  - usage.go: full rebuild of used-day counters
  - rules.go: balance and overlap validation for new requests
  - importcheck.go: one-pass validation of bulk imports
  - yearclose.go: the annual close state machine
*/
package leave

import (
	"github.com/shopspring/decimal"

	"github.com/Sidrek1992/CFT-Permiso/calendar"
)

// =============================================================================
// ENUMERATIONS - Closed variant sets
// =============================================================================

// LeaveType is the category of an absence. The category decides how days
// are counted: business-day types skip weekends and holidays, calendar-day
// types count every day.
type LeaveType string

const (
	LeaveLegalHoliday   LeaveType = "legal_holiday"  // Feriado Legal
	LeaveAdministrative LeaveType = "administrative" // Permiso Administrativo
	LeaveSick           LeaveType = "sick_leave"     // Licencia Médica
	LeaveUnpaid         LeaveType = "unpaid"         // Permiso Sin Goce de Sueldo
	LeaveParental       LeaveType = "parental"       // Permiso Post Natal Parental
)

// LeaveTypes lists every valid category, in display order.
var LeaveTypes = []LeaveType{
	LeaveLegalHoliday,
	LeaveAdministrative,
	LeaveSick,
	LeaveUnpaid,
	LeaveParental,
}

// Valid reports whether t is a member of the closed set.
func (t LeaveType) Valid() bool {
	switch t {
	case LeaveLegalHoliday, LeaveAdministrative, LeaveSick, LeaveUnpaid, LeaveParental:
		return true
	}
	return false
}

// CountsBusinessDays reports whether the category charges only working
// days (no weekends, no holidays).
func (t LeaveType) CountsBusinessDays() bool {
	return t == LeaveLegalHoliday || t == LeaveAdministrative
}

// DisplayName returns the institutional (Spanish) name for the category.
func (t LeaveType) DisplayName() string {
	switch t {
	case LeaveLegalHoliday:
		return "Feriado Legal"
	case LeaveAdministrative:
		return "Permiso Administrativo"
	case LeaveSick:
		return "Licencia Médica"
	case LeaveUnpaid:
		return "Permiso Sin Goce de Sueldo"
	case LeaveParental:
		return "Permiso Post Natal Parental"
	default:
		return string(t)
	}
}

// WorkShift qualifies which part of the day a request covers. Half-day
// shifts are only legal on single-day ranges and always cost 0.5 days.
type WorkShift string

const (
	ShiftFullDay   WorkShift = "full_day"  // Jornada Completa
	ShiftMorning   WorkShift = "morning"   // Jornada Mañana
	ShiftAfternoon WorkShift = "afternoon" // Jornada Tarde
)

func (s WorkShift) Valid() bool {
	switch s {
	case ShiftFullDay, ShiftMorning, ShiftAfternoon:
		return true
	}
	return false
}

// IsHalfDay reports whether the shift covers half a working day.
func (s WorkShift) IsHalfDay() bool {
	return s == ShiftMorning || s == ShiftAfternoon
}

// DisplayName returns the institutional (Spanish) name for the shift.
func (s WorkShift) DisplayName() string {
	switch s {
	case ShiftMorning:
		return "Jornada Mañana"
	case ShiftAfternoon:
		return "Jornada Tarde"
	default:
		return "Jornada Completa"
	}
}

// RequestStatus is the approval lifecycle of a request.
// Pending to Approved or Rejected. Only approved requests debit balances;
// a request leaving the approved state is reversed by rebuilding usage,
// not by patching counters.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// =============================================================================
// EMPLOYEE - Per-category balances
// =============================================================================

// Employee is a funcionario with independent balances per leave category.
// Invariant: 0 <= used <= total for vacation and administrative days.
// The sick-leave total is a reference ceiling, not an enforced cap.
type Employee struct {
	ID         string
	FirstName  string
	LastName   string
	Email      string
	Position   string
	Department string
	AvatarURL  string

	TotalVacation decimal.Decimal
	UsedVacation  decimal.Decimal
	TotalAdmin    decimal.Decimal
	UsedAdmin     decimal.Decimal
	TotalSick     decimal.Decimal
	UsedSick      decimal.Decimal
}

// FullName returns "FirstName LastName" for messages and reports.
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// =============================================================================
// LEAVE REQUEST - One leave event for one employee
// =============================================================================

// LeaveRequest is a single absence for one employee over an inclusive
// date range. DaysCount is precomputed by CountChargeableDays at creation
// and re-verified against the same function on import.
type LeaveRequest struct {
	ID         string
	EmployeeID string
	Type       LeaveType
	StartDate  calendar.Date
	EndDate    calendar.Date
	Shift      WorkShift
	DaysCount  decimal.Decimal
	Status     RequestStatus
	Reason     string
}

// =============================================================================
// CONFIG - Day defaults and year-close policy
// =============================================================================

// Config holds the tunables governing day counting and the annual close.
// All fields have defined defaults so partial configuration is safe; use
// DefaultConfig and override what the operator sets.
type Config struct {
	DefaultVacationDays  decimal.Decimal
	DefaultAdminDays     decimal.Decimal
	DefaultSickLeaveDays decimal.Decimal

	NotificationEmail string
	EmailTemplate     string

	// CarryoverVacationEnabled carries unused vacation days into the next
	// annual period, capped by CarryoverMaxPeriods.
	CarryoverVacationEnabled bool

	// CarryoverMaxPeriods caps the accumulated vacation total at this many
	// annual allotments. Clamped to [1, 5]; zero means the default.
	CarryoverMaxPeriods int

	// AdminExpireAtYearEnd forfeits unused administrative days when the
	// year closes.
	AdminExpireAtYearEnd bool

	// ReminderDays is how many days before December 31 the year-close
	// reminder may fire. Clamped to [1, 90]; zero means the default.
	ReminderDays int
}

const (
	defaultCarryoverMaxPeriods = 2
	defaultReminderDays        = 30
)

// DefaultConfig returns the configuration used when the operator has not
// set anything.
func DefaultConfig() Config {
	return Config{
		DefaultVacationDays:      decimal.NewFromInt(15),
		DefaultAdminDays:         decimal.NewFromInt(6),
		DefaultSickLeaveDays:     decimal.NewFromInt(30),
		CarryoverVacationEnabled: true,
		CarryoverMaxPeriods:      defaultCarryoverMaxPeriods,
		AdminExpireAtYearEnd:     true,
		ReminderDays:             defaultReminderDays,
	}
}

// MaxCarryoverPeriods returns CarryoverMaxPeriods clamped to [1, 5], with
// the default substituted for an unset value.
func (c Config) MaxCarryoverPeriods() int {
	v := c.CarryoverMaxPeriods
	if v == 0 {
		v = defaultCarryoverMaxPeriods
	}
	if v < 1 {
		return 1
	}
	if v > 5 {
		return 5
	}
	return v
}

// ReminderWindowDays returns ReminderDays clamped to [1, 90], with the
// default substituted for an unset value.
func (c Config) ReminderWindowDays() int {
	v := c.ReminderDays
	if v == 0 {
		v = defaultReminderDays
	}
	if v < 1 {
		return 1
	}
	if v > 90 {
		return 90
	}
	return v
}
