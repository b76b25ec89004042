package calculation

import (
	"github.com/maplepay/payroll-engine/internal/domain"
	"github.com/maplepay/payroll-engine/internal/rates"
	"github.com/shopspring/decimal"
)

// TaxCalculator computes federal and provincial income tax withholding under
// the standard annualized method. The cumulative averaging method reuses its
// annual-tax routine; see cumulative.go.
type TaxCalculator struct {
	Federal    *rates.RateTable
	Provincial *rates.RateTable
}

// NewTaxCalculator creates a tax calculator for a federal/provincial table
// pair of the same year.
func NewTaxCalculator(federal, provincial *rates.RateTable) *TaxCalculator {
	return &TaxCalculator{Federal: federal, Provincial: provincial}
}

// TaxInput is the per-period input to the income tax calculation.
type TaxInput struct {
	GrossPeriod      decimal.Decimal
	PreTaxDeductions decimal.Decimal
	// AnnualDeductions are authorized annual deductions (e.g. approved
	// T1213 amounts) subtracted from annualized income.
	AnnualDeductions decimal.Decimal
	PeriodsPerYear   int
	// Period statutory amounts, annualized inside for the K2 credit.
	PeriodCPP decimal.Decimal
	PeriodEI  decimal.Decimal
	Claims    domain.TD1Claims
	// QuebecResident applies the federal abatement.
	QuebecResident bool
	// OtherPeriodDeductions is the extra per-period tax requested by the
	// employee (TD1 line for additional tax).
	OtherPeriodDeductions decimal.Decimal
}

// TaxResult is the outcome of one period's income tax calculation.
type TaxResult struct {
	FederalPeriod    decimal.Decimal
	ProvincialPeriod decimal.Decimal
	// AnnualTaxable is the annualized taxable income the brackets were
	// applied to.
	AnnualTaxable decimal.Decimal
}

// Calculate derives the period's federal and provincial tax under the
// annualized method: annualize the period's taxable income, compute each
// jurisdiction's annual tax, de-annualize and round.
func (tc *TaxCalculator) Calculate(in TaxInput) (TaxResult, error) {
	if err := validatePeriods(in.PeriodsPerYear); err != nil {
		return TaxResult{}, err
	}
	if in.GrossPeriod.LessThan(decimal.Zero) {
		return TaxResult{}, &domain.InputValidationError{Field: "gross", Reason: "must be non-negative"}
	}

	annualTaxable := clampZero(
		Annualize(in.GrossPeriod.Sub(in.PreTaxDeductions), in.PeriodsPerYear).
			Sub(in.AnnualDeductions))

	federalAnnual := tc.annualFederalTax(annualTaxable, in)
	provincialAnnual, err := tc.annualProvincialTax(annualTaxable, in)
	if err != nil {
		return TaxResult{}, err
	}

	res := TaxResult{
		FederalPeriod:    RoundTaxStyle(Deannualize(federalAnnual, in.PeriodsPerYear)),
		ProvincialPeriod: RoundTaxStyle(Deannualize(provincialAnnual, in.PeriodsPerYear)),
		AnnualTaxable:    annualTaxable,
	}
	// Employee-requested additional tax rides on the federal line.
	res.FederalPeriod = res.FederalPeriod.Add(in.OtherPeriodDeductions)
	return res, nil
}

// annualFederalTax computes annual federal tax: bracket tax, credits, then
// the Quebec abatement where the employee resides in Quebec.
func (tc *TaxCalculator) annualFederalTax(annualTaxable decimal.Decimal, in TaxInput) decimal.Decimal {
	tax := bracketTax(tc.Federal.Brackets, annualTaxable)

	netIncome := annualTaxable.Add(in.Claims.PrescribedZoneAmount)
	bpa := ResolveBPA(tc.Federal.BPA, netIncome)
	k1 := tc.Federal.CreditRate.Mul(bpa.Add(in.Claims.AdditionalFederal))
	k2 := tc.statutoryCredit(tc.Federal.CreditRate, in)
	k3 := employmentCredit(tc.Federal, annualTaxable)

	tax = clampZero(tax.Sub(k1).Sub(k2).Sub(k3))
	if in.QuebecResident {
		tax = tax.Mul(one.Sub(tc.Federal.QuebecAbatement))
	}
	return tax
}

// annualProvincialTax computes annual provincial tax including the
// jurisdiction's surtax, health premium and low-income tax reduction.
func (tc *TaxCalculator) annualProvincialTax(annualTaxable decimal.Decimal, in TaxInput) (decimal.Decimal, error) {
	t := tc.Provincial
	if t.ProvincialTaxExternal {
		return decimal.Zero, nil
	}
	if len(t.Brackets) == 0 {
		return decimal.Zero, &domain.ConfigurationError{
			Jurisdiction: t.Jurisdiction,
			Year:         t.Year,
			Reason:       "no tax brackets",
		}
	}

	tax := bracketTax(t.Brackets, annualTaxable)

	netIncome := annualTaxable.Add(in.Claims.PrescribedZoneAmount)
	bpa := ResolveBPA(t.BPA, netIncome)
	k1 := t.CreditRate.Mul(bpa.Add(in.Claims.AdditionalProvincial))
	k2 := tc.statutoryCredit(t.CreditRate, in)
	k3 := employmentCredit(t, annualTaxable)

	tax = clampZero(tax.Sub(k1).Sub(k2).Sub(k3))

	if t.Surtax != nil {
		tax = tax.Add(surtax(t.Surtax, tax))
	}
	if t.TaxReduction != nil {
		tax = clampZero(tax.Sub(taxReduction(t.TaxReduction, netIncome, tax)))
	}
	if len(t.HealthPremium) > 0 {
		tax = tax.Add(healthPremium(t.HealthPremium, annualTaxable))
	}
	return tax, nil
}

// bracketTax applies the jurisdiction's K-constant formula: locate the
// bracket containing A (inclusive-lower/exclusive-upper, final bracket
// unbounded) and return rate*A - K, clamped at zero.
func bracketTax(brackets []rates.TaxBracket, a decimal.Decimal) decimal.Decimal {
	b := bracketFor(brackets, a)
	return clampZero(b.Rate.Mul(a).Sub(b.K))
}

func bracketFor(brackets []rates.TaxBracket, a decimal.Decimal) rates.TaxBracket {
	for _, b := range brackets {
		if b.Unbounded() || a.LessThan(b.ThresholdHigh) {
			return b
		}
	}
	return brackets[len(brackets)-1]
}

// statutoryCredit is the K2 credit: the creditable portion of annualized CPP
// (base rate share only, capped at the annual maximum's creditable share)
// plus annualized EI capped at its maximum, both at the given credit rate.
// The CPP/EI parameters live on the federal table for both jurisdictions.
func (tc *TaxCalculator) statutoryCredit(creditRate decimal.Decimal, in TaxInput) decimal.Decimal {
	cpp := tc.Federal.CPP
	ei := tc.Federal.EI

	annualCPP := Annualize(in.PeriodCPP, in.PeriodsPerYear)
	annualEI := Annualize(in.PeriodEI, in.PeriodsPerYear)

	cppCredit := decimal.Min(annualCPP, cpp.MaxBaseContribution).Mul(cpp.CreditRatio)
	eiCredit := decimal.Min(annualEI, ei.MaxEmployeePremium)
	return creditRate.Mul(cppCredit.Add(eiCredit))
}

// employmentCredit is the K3 employment-amount credit where the jurisdiction
// offers one: min(annual income, cap) at the credit rate.
func employmentCredit(t *rates.RateTable, annualIncome decimal.Decimal) decimal.Decimal {
	if t.EmploymentAmount.IsZero() {
		return decimal.Zero
	}
	return t.CreditRate.Mul(decimal.Min(annualIncome, t.EmploymentAmount))
}

// surtax computes the two-tier surtax on basic provincial tax. Both tiers
// are cumulative: tax above threshold 2 attracts both rates.
func surtax(p *rates.SurtaxParams, basicTax decimal.Decimal) decimal.Decimal {
	s := decimal.Zero
	if basicTax.GreaterThan(p.Threshold1) {
		s = s.Add(p.Rate1.Mul(basicTax.Sub(p.Threshold1)))
	}
	if basicTax.GreaterThan(p.Threshold2) {
		s = s.Add(p.Rate2.Mul(basicTax.Sub(p.Threshold2)))
	}
	return s
}

// taxReduction computes a low-income tax reduction: the full amount below the
// threshold, phasing out at the slope above it, and never more than the tax
// itself.
func taxReduction(p *rates.TaxReductionParams, netIncome, tax decimal.Decimal) decimal.Decimal {
	reduction := p.MaxReduction
	if netIncome.GreaterThan(p.Threshold) {
		reduction = clampZero(p.MaxReduction.Sub(p.Slope.Mul(netIncome.Sub(p.Threshold))))
	}
	return decimal.Min(reduction, tax)
}

// healthPremium evaluates an income-tested premium schedule: find the last
// row at or below the income and apply min(base + rate*(income-threshold),
// cap).
func healthPremium(schedule []rates.HealthPremiumRow, income decimal.Decimal) decimal.Decimal {
	row := schedule[0]
	for _, r := range schedule {
		if income.GreaterThanOrEqual(r.Threshold) {
			row = r
		}
	}
	if row.Cap.IsZero() {
		return decimal.Zero
	}
	premium := row.Base.Add(row.MarginalRate.Mul(income.Sub(row.Threshold)))
	return decimal.Min(premium, row.Cap)
}
