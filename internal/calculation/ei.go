package calculation

import (
	"github.com/maplepay/payroll-engine/internal/domain"
	"github.com/maplepay/payroll-engine/internal/rates"
	"github.com/shopspring/decimal"
)

// EICalculator computes employee and employer EI premiums for one pay period.
type EICalculator struct {
	Params rates.EIParams
	// QuebecRate is the reduced employee rate for employment in Quebec;
	// zero means the standard rate applies.
	QuebecRate decimal.Decimal
}

// NewEICalculator creates an EI calculator from the year's parameters.
func NewEICalculator(params rates.EIParams, quebecRate decimal.Decimal) *EICalculator {
	return &EICalculator{Params: params, QuebecRate: quebecRate}
}

// EIInput is the per-period input to the EI calculation.
type EIInput struct {
	InsurableEarnings decimal.Decimal
	YtdEI             decimal.Decimal
	YtdEmployerEI     decimal.Decimal
	EIExempt          bool
	QuebecEmployment  bool
}

// EIResult is the outcome of one period's EI calculation. The employer
// premium is informational (never deducted from the employee) and is capped
// against its own published annual maximum, not derived from the employee cap.
type EIResult struct {
	Premium         decimal.Decimal
	EmployerPremium decimal.Decimal
	Maxed           bool
}

// Calculate derives the period's EI premiums.
func (c *EICalculator) Calculate(in EIInput) (EIResult, error) {
	if in.InsurableEarnings.LessThan(decimal.Zero) {
		return EIResult{}, &domain.InputValidationError{Field: "insurable_earnings", Reason: "must be non-negative"}
	}
	if in.YtdEI.GreaterThan(c.Params.MaxEmployeePremium) {
		return EIResult{}, &domain.InputValidationError{Field: "ytd_ei", Reason: "already exceeds the annual maximum"}
	}

	if in.EIExempt {
		return EIResult{}, nil
	}

	rate := c.Params.EmployeeRate
	if in.QuebecEmployment && !c.QuebecRate.IsZero() {
		rate = c.QuebecRate
	}

	raw := RoundTaxStyle(in.InsurableEarnings.Mul(rate))
	room := clampZero(c.Params.MaxEmployeePremium.Sub(in.YtdEI))
	premium := decimal.Min(raw, room)

	rawEmployer := RoundTaxStyle(premium.Mul(c.Params.EmployerMultiplier))
	employerRoom := clampZero(c.Params.MaxEmployerPremium.Sub(in.YtdEmployerEI))
	employer := decimal.Min(rawEmployer, employerRoom)

	return EIResult{
		Premium:         premium,
		EmployerPremium: employer,
		Maxed:           in.YtdEI.Add(premium).Equal(c.Params.MaxEmployeePremium),
	}, nil
}
