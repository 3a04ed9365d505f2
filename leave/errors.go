/*
errors.go - Error types for the leave domain

PURPOSE:
  Sentinel errors for the request lifecycle and persistence boundaries.
  Validators never return these; policy violations surface as verdicts
  (see rules.go and importcheck.go); errors are for operations the caller
  asked for that cannot be carried out.

USAGE:
  if errors.Is(err, leave.ErrEmployeeNotFound) { ... }
*/
package leave

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Sidrek1992/CFT-Permiso/calendar"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrEmployeeNotFound is returned when a referenced employee does not exist.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrRequestNotFound is returned when a referenced request does not exist.
	ErrRequestNotFound = errors.New("leave request not found")

	// ErrInvalidDateRange is returned when a range is malformed (end before
	// start, or unparseable dates).
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInsufficientBalance is returned when a request exceeds the
	// employee's remaining balance for the category.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrOverlappingRequest is returned when a new request shares a day
	// with an approved request of the same employee.
	ErrOverlappingRequest = errors.New("overlapping approved request")

	// ErrNoChargeableDays is returned when a business-day range contains
	// no working days at all.
	ErrNoChargeableDays = errors.New("range contains no chargeable days")

	// ErrInvalidTransition is returned for an illegal status change.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// =============================================================================
// STRUCTURED ERRORS - Carry numeric context
// =============================================================================

// InsufficientBalanceError reports the exact remaining vs requested days.
type InsufficientBalanceError struct {
	EmployeeID string
	Type       LeaveType
	Remaining  decimal.Decimal
	Requested  decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient %s balance for employee %s: %s available, %s requested",
		e.Type, e.EmployeeID, e.Remaining.String(), e.Requested.String())
}

func (e *InsufficientBalanceError) Unwrap() error { return ErrInsufficientBalance }

// OverlapError reports the range that collided with an approved request.
type OverlapError struct {
	EmployeeID string
	Start      calendar.Date
	End        calendar.Date
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("employee %s already has an approved request inside [%s, %s]",
		e.EmployeeID, e.Start, e.End)
}

func (e *OverlapError) Unwrap() error { return ErrOverlappingRequest }

// IsClientError reports whether the error is caused by invalid client
// input rather than a system failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidDateRange) ||
		errors.Is(err, ErrInsufficientBalance) ||
		errors.Is(err, ErrOverlappingRequest) ||
		errors.Is(err, ErrNoChargeableDays) ||
		errors.Is(err, ErrInvalidTransition)
}

// IsNotFound reports whether the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEmployeeNotFound) || errors.Is(err, ErrRequestNotFound)
}
