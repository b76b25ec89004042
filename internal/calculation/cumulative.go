package calculation

import (
	"github.com/maplepay/payroll-engine/internal/domain"
	"github.com/shopspring/decimal"
)

// CumulativeInput drives the cumulative averaging method (Option 2) for
// irregular or commission income.
type CumulativeInput struct {
	// CumulativeTaxable is the year-to-date taxable income including this
	// period (gross less pre-tax deductions).
	CumulativeTaxable decimal.Decimal
	// PeriodsElapsed counts pay periods so far this year including this one.
	PeriodsElapsed int
	PeriodsPerYear int
	// Withheld tax so far this year, per jurisdiction.
	YtdFederalTax    decimal.Decimal
	YtdProvincialTax decimal.Decimal
	// Statutory period amounts for the K2 credit, as in the standard method.
	PeriodCPP decimal.Decimal
	PeriodEI  decimal.Decimal
	Claims    domain.TD1Claims
	QuebecResident bool
}

// CalculateCumulative computes this period's tax under cumulative averaging:
// project an annual equivalent from cumulative income and periods elapsed,
// compute the annual tax with the same bracket and credit logic as the
// standard method, scale back to a cumulative amount owed, and withhold the
// shortfall against what has already been withheld, floored at zero.
//
// Individual period amounts are not reproducible from a single period's
// income; the method instead guarantees the year's total withholding
// converges to the correct annual tax however the income fluctuates.
func (tc *TaxCalculator) CalculateCumulative(in CumulativeInput) (TaxResult, error) {
	if err := validatePeriods(in.PeriodsPerYear); err != nil {
		return TaxResult{}, err
	}
	if in.PeriodsElapsed < 1 || in.PeriodsElapsed > in.PeriodsPerYear {
		return TaxResult{}, &domain.InputValidationError{Field: "periods_elapsed", Reason: "must be between 1 and periods per year"}
	}
	if in.CumulativeTaxable.LessThan(decimal.Zero) {
		return TaxResult{}, &domain.InputValidationError{Field: "cumulative_taxable", Reason: "must be non-negative"}
	}

	elapsed := decimal.NewFromInt(int64(in.PeriodsElapsed))
	periods := decimal.NewFromInt(int64(in.PeriodsPerYear))
	projectedAnnual := in.CumulativeTaxable.Mul(periods).Div(elapsed)

	taxIn := TaxInput{
		PeriodsPerYear: in.PeriodsPerYear,
		PeriodCPP:      in.PeriodCPP,
		PeriodEI:       in.PeriodEI,
		Claims:         in.Claims,
		QuebecResident: in.QuebecResident,
	}

	federalAnnual := tc.annualFederalTax(projectedAnnual, taxIn)
	provincialAnnual, err := tc.annualProvincialTax(projectedAnnual, taxIn)
	if err != nil {
		return TaxResult{}, err
	}

	// Cumulative tax owed through this period.
	fedOwed := federalAnnual.Mul(elapsed).Div(periods)
	provOwed := provincialAnnual.Mul(elapsed).Div(periods)

	return TaxResult{
		FederalPeriod:    clampZero(RoundTaxStyle(fedOwed).Sub(in.YtdFederalTax)),
		ProvincialPeriod: clampZero(RoundTaxStyle(provOwed).Sub(in.YtdProvincialTax)),
		AnnualTaxable:    projectedAnnual,
	}, nil
}
