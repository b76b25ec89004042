package domain

import "fmt"

// ConfigurationError reports a missing or invalid rate table for a
// (jurisdiction, year). It is fatal to the computation that requested it: the
// engine never substitutes a neighbouring year's table.
type ConfigurationError struct {
	Jurisdiction Jurisdiction
	Year         int
	Reason       string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error for %s/%d: %s", e.Jurisdiction, e.Year, e.Reason)
}

// InputValidationError reports invalid caller-supplied input: negative
// earnings or hours, an unsupported pay frequency, inconsistent YTD state.
// Fatal for the single employee; a batch run continues with the others.
type InputValidationError struct {
	Field  string
	Reason string
}

func (e *InputValidationError) Error() string {
	return fmt.Sprintf("invalid input %s: %s", e.Field, e.Reason)
}

// ReasonCode is a machine-readable code attached to normal (non-error)
// outcomes: eligibility denials and annual-maximum caps. These are never
// surfaced as Go errors.
type ReasonCode string

const (
	// ReasonNone marks an ordinary outcome.
	ReasonNone ReasonCode = ""
	// ReasonMinEmploymentDays: holiday pay denied, employee has not been
	// employed the jurisdiction's minimum number of days.
	ReasonMinEmploymentDays ReasonCode = "min_employment_days"
	// ReasonShiftRule: holiday pay denied under the last-shift-before /
	// first-shift-after rule.
	ReasonShiftRule ReasonCode = "last_first_shift_rule"
	// ReasonInsufficientDaysWorked: holiday pay denied, too few days worked
	// in the lookback window.
	ReasonInsufficientDaysWorked ReasonCode = "insufficient_days_worked"
	// ReasonVacationBalance: vacation payout request exceeds the accrued
	// balance. The request is denied, never clamped.
	ReasonVacationBalance ReasonCode = "vacation_balance_exceeded"
	// ReasonAnnualMaxReached: a statutory deduction is capped at zero for
	// the remainder of the year. Informational, not a warning.
	ReasonAnnualMaxReached ReasonCode = "annual_maximum_reached"
)
