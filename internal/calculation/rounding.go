// Package calculation implements the Canadian payroll deduction calculators:
// CPP/CPP2, EI, federal and provincial income tax (annualized and cumulative
// averaging methods), vacation pay, statutory holiday pay, and the per-period
// orchestrator that composes them.
//
// Every calculator is a pure function of its inputs: the same employee
// profile, period facts, YTD snapshot and rate table always produce the same
// result. Nothing in this package performs I/O or holds mutable state.
package calculation

import (
	"github.com/maplepay/payroll-engine/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
	half    = decimal.New(5, -1)
)

// RoundTaxStyle rounds a monetary amount to cents by examining the third
// decimal place: five or more rounds the second decimal up, anything less
// truncates. This is the policy for CPP contributions, EI premiums, and every
// tax amount.
func RoundTaxStyle(x decimal.Decimal) decimal.Decimal {
	cents := x.Mul(hundred)
	floor := cents.Floor()
	if cents.Sub(floor).GreaterThanOrEqual(half) {
		floor = floor.Add(one)
	}
	return floor.Div(hundred)
}

// RoundTruncate truncates a monetary amount at two decimals, never rounding
// up. Its only use is the per-period CPP basic exemption.
func RoundTruncate(x decimal.Decimal) decimal.Decimal {
	return x.Truncate(2)
}

// Annualize scales a period amount to an annual amount.
func Annualize(periodAmount decimal.Decimal, periodsPerYear int) decimal.Decimal {
	return periodAmount.Mul(decimal.NewFromInt(int64(periodsPerYear)))
}

// Deannualize scales an annual amount to a period amount.
func Deannualize(annualAmount decimal.Decimal, periodsPerYear int) decimal.Decimal {
	return annualAmount.Div(decimal.NewFromInt(int64(periodsPerYear)))
}

// clampZero floors a decimal at zero.
func clampZero(x decimal.Decimal) decimal.Decimal {
	if x.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return x
}

// validatePeriods checks the caller-supplied periods-per-year count. The 27
// bi-weekly count for calendar-alignment years is an explicit override; the
// engine never derives it from dates.
func validatePeriods(periodsPerYear int) error {
	if !domain.ValidPayPeriods(periodsPerYear) {
		return &domain.InputValidationError{
			Field:  "pay_periods_per_year",
			Reason: "unsupported period count",
		}
	}
	return nil
}
