// Package rates holds the versioned, year-stamped regulatory data the payroll
// calculators consume: tax brackets with their cumulative K constants, basic
// personal amount formulas, CPP/EI parameters, vacation pay tiers and
// statutory holiday pay rules per jurisdiction.
//
// Tables are pure data. The built-in year tables are Go literals (see
// rates2025.go); additional years may be loaded from YAML. Every table is
// validated against the structural invariants before use.
package rates

import (
	"github.com/maplepay/payroll-engine/internal/domain"
	"github.com/shopspring/decimal"
)

// TaxBracket is one row of a jurisdiction's tax bracket table. Brackets are
// contiguous and inclusive-lower/exclusive-upper; the final bracket leaves
// ThresholdHigh at zero, meaning unbounded above.
//
// K is the cumulative constant: rate*A - K reproduces the continuous
// piecewise-linear annual tax for income A inside the bracket. K is stated in
// the table and asserted by Validate, never recomputed at calculation time.
type TaxBracket struct {
	ThresholdLow  decimal.Decimal `yaml:"threshold_low" json:"threshold_low"`
	ThresholdHigh decimal.Decimal `yaml:"threshold_high,omitempty" json:"threshold_high,omitempty"`
	Rate          decimal.Decimal `yaml:"rate" json:"rate"`
	K             decimal.Decimal `yaml:"k" json:"k"`
}

// Unbounded reports whether the bracket has no upper threshold.
func (b TaxBracket) Unbounded() bool { return b.ThresholdHigh.IsZero() }

// BPAFormula parameterizes the basic personal amount. A flat jurisdiction
// sets Amount only. A phase-out jurisdiction additionally sets PhaseOutStart,
// PhaseOutEnd and Floor: below the start the BPA is Amount, above the end it
// is Floor, and it declines linearly in between.
type BPAFormula struct {
	Amount        decimal.Decimal `yaml:"amount" json:"amount"`
	PhaseOutStart decimal.Decimal `yaml:"phase_out_start,omitempty" json:"phase_out_start,omitempty"`
	PhaseOutEnd   decimal.Decimal `yaml:"phase_out_end,omitempty" json:"phase_out_end,omitempty"`
	Floor         decimal.Decimal `yaml:"floor,omitempty" json:"floor,omitempty"`
}

// HasPhaseOut reports whether the BPA is income-tested.
func (f BPAFormula) HasPhaseOut() bool {
	return !f.PhaseOutEnd.IsZero() && f.PhaseOutEnd.GreaterThan(f.PhaseOutStart)
}

// CPPParams are the year's Canada Pension Plan parameters. Only the federal
// table carries them; provincial tables leave them zeroed.
type CPPParams struct {
	YMPE              decimal.Decimal `yaml:"ympe" json:"ympe"`
	YAMPE             decimal.Decimal `yaml:"yampe" json:"yampe"`
	BasicExemption    decimal.Decimal `yaml:"basic_exemption" json:"basic_exemption"`
	ContributionRate  decimal.Decimal `yaml:"contribution_rate" json:"contribution_rate"`
	CPP2Rate          decimal.Decimal `yaml:"cpp2_rate" json:"cpp2_rate"`
	MaxBaseContribution decimal.Decimal `yaml:"max_base_contribution" json:"max_base_contribution"`
	MaxCPP2Contribution decimal.Decimal `yaml:"max_cpp2_contribution" json:"max_cpp2_contribution"`
	// CreditRatio is the fraction of the base contribution creditable as a
	// non-refundable tax credit (the remainder is a deduction under the
	// enhanced plan).
	CreditRatio decimal.Decimal `yaml:"credit_ratio" json:"credit_ratio"`
}

// EIParams are the year's Employment Insurance parameters. The employer
// premium is capped against its own published annual maximum, never derived
// from the employee maximum at run time.
type EIParams struct {
	MaxInsurableEarnings decimal.Decimal `yaml:"max_insurable_earnings" json:"max_insurable_earnings"`
	EmployeeRate         decimal.Decimal `yaml:"employee_rate" json:"employee_rate"`
	MaxEmployeePremium   decimal.Decimal `yaml:"max_employee_premium" json:"max_employee_premium"`
	EmployerMultiplier   decimal.Decimal `yaml:"employer_multiplier" json:"employer_multiplier"`
	MaxEmployerPremium   decimal.Decimal `yaml:"max_employer_premium" json:"max_employer_premium"`
}

// SurtaxParams describe a two-tier provincial surtax: Rate1 applies to basic
// provincial tax above Threshold1, Rate2 additionally above Threshold2.
type SurtaxParams struct {
	Threshold1 decimal.Decimal `yaml:"threshold_1" json:"threshold_1"`
	Rate1      decimal.Decimal `yaml:"rate_1" json:"rate_1"`
	Threshold2 decimal.Decimal `yaml:"threshold_2" json:"threshold_2"`
	Rate2      decimal.Decimal `yaml:"rate_2" json:"rate_2"`
}

// HealthPremiumRow is one row of an income-tested health premium schedule.
// The premium for an income in [Threshold, next row's Threshold) is
// min(Base + MarginalRate*(income-Threshold), Cap).
type HealthPremiumRow struct {
	Threshold    decimal.Decimal `yaml:"threshold" json:"threshold"`
	Base         decimal.Decimal `yaml:"base" json:"base"`
	MarginalRate decimal.Decimal `yaml:"marginal_rate" json:"marginal_rate"`
	Cap          decimal.Decimal `yaml:"cap" json:"cap"`
}

// TaxReductionParams describe a low-income tax reduction: a maximum credit
// that phases out at Slope per dollar of income above Threshold.
type TaxReductionParams struct {
	MaxReduction decimal.Decimal `yaml:"max_reduction" json:"max_reduction"`
	Threshold    decimal.Decimal `yaml:"threshold" json:"threshold"`
	Slope        decimal.Decimal `yaml:"slope" json:"slope"`
}

// VacationTier maps a years-of-service floor to the jurisdiction's minimum
// vacation pay rate. Tiers are ordered by MinYears ascending.
type VacationTier struct {
	MinYears int             `yaml:"min_years" json:"min_years"`
	Rate     decimal.Decimal `yaml:"rate" json:"rate"`
}

// HolidayFormula selects the jurisdiction's statutory holiday pay formula.
type HolidayFormula string

const (
	Holiday4WeekAverage     HolidayFormula = "4_week_average"
	Holiday5Percent28Days   HolidayFormula = "5_percent_28_days"
	Holiday3WeekAvgHours    HolidayFormula = "3_week_average_hours"
	Holiday30DayAverage     HolidayFormula = "30_day_average"
	HolidayRegularDayPay    HolidayFormula = "regular_day_pay"
	Holiday10Percent2Weeks  HolidayFormula = "10_percent_2_weeks"
)

// HolidayRules are the jurisdiction's statutory holiday pay formula and
// eligibility gate.
type HolidayRules struct {
	Formula HolidayFormula `yaml:"formula" json:"formula"`
	// Simplified flags formulas that approximate an official hybrid or
	// dual-formula rule; the approximation is declared here rather than
	// hard-coded silently.
	Simplified bool `yaml:"simplified,omitempty" json:"simplified,omitempty"`

	MinEmploymentDays     int  `yaml:"min_employment_days" json:"min_employment_days"`
	RequireLastFirstShift bool `yaml:"require_last_first_shift" json:"require_last_first_shift"`
	// MinDaysWorkedInLookback/LookbackDays express rules of the "15 of the
	// last 30 days" kind; both zero when the jurisdiction has none.
	MinDaysWorkedInLookback int `yaml:"min_days_worked_in_lookback,omitempty" json:"min_days_worked_in_lookback,omitempty"`
	LookbackDays            int `yaml:"lookback_days,omitempty" json:"lookback_days,omitempty"`

	PremiumMultiplier decimal.Decimal `yaml:"premium_multiplier" json:"premium_multiplier"`
	// EmployerChoiceSubstituteDay: the employer may elect a substitute day
	// off plus regular pay instead of premium pay for a worked holiday.
	// The election is host configuration, not engine logic.
	EmployerChoiceSubstituteDay bool `yaml:"employer_choice_substitute_day,omitempty" json:"employer_choice_substitute_day,omitempty"`
}

// RateTable is the complete regulatory record for one (jurisdiction, year).
type RateTable struct {
	Jurisdiction domain.Jurisdiction `yaml:"jurisdiction" json:"jurisdiction"`
	Year         int                 `yaml:"year" json:"year"`

	Brackets []TaxBracket `yaml:"brackets" json:"brackets"`
	// CreditRate is the rate applied to non-refundable credit bases (the
	// lowest bracket rate).
	CreditRate decimal.Decimal `yaml:"credit_rate" json:"credit_rate"`
	BPA        BPAFormula      `yaml:"bpa" json:"bpa"`
	// EmploymentAmount is the employment-amount credit base (federal Canada
	// Employment Amount; Yukon mirrors it). Zero where not offered.
	EmploymentAmount decimal.Decimal `yaml:"employment_amount,omitempty" json:"employment_amount,omitempty"`

	// Federal-only blocks; zeroed on provincial tables.
	CPP CPPParams `yaml:"cpp,omitempty" json:"cpp,omitempty"`
	EI  EIParams  `yaml:"ei,omitempty" json:"ei,omitempty"`
	// QuebecAbatement is the federal abatement rate for Quebec residents
	// (federal table only).
	QuebecAbatement decimal.Decimal `yaml:"quebec_abatement,omitempty" json:"quebec_abatement,omitempty"`
	// EIEmployeeRateQC is the reduced EI rate for employment in Quebec
	// (federal table only).
	EIEmployeeRateQC decimal.Decimal `yaml:"ei_employee_rate_qc,omitempty" json:"ei_employee_rate_qc,omitempty"`

	// Province-specific adjustments; nil where not applicable.
	Surtax        *SurtaxParams       `yaml:"surtax,omitempty" json:"surtax,omitempty"`
	HealthPremium []HealthPremiumRow  `yaml:"health_premium,omitempty" json:"health_premium,omitempty"`
	TaxReduction  *TaxReductionParams `yaml:"tax_reduction,omitempty" json:"tax_reduction,omitempty"`

	VacationTiers []VacationTier `yaml:"vacation_tiers,omitempty" json:"vacation_tiers,omitempty"`
	Holiday       *HolidayRules  `yaml:"holiday,omitempty" json:"holiday,omitempty"`

	// ProvincialTaxExternal marks jurisdictions whose provincial income tax
	// is administered outside this engine (Quebec). The table then carries
	// no brackets and the provincial tax line is zero by contract.
	ProvincialTaxExternal bool `yaml:"provincial_tax_external,omitempty" json:"provincial_tax_external,omitempty"`
}

// VacationRateFor returns the jurisdiction's minimum vacation rate for the
// given years of service.
func (t *RateTable) VacationRateFor(yearsOfService int) decimal.Decimal {
	rate := decimal.Zero
	for _, tier := range t.VacationTiers {
		if yearsOfService >= tier.MinYears {
			rate = tier.Rate
		}
	}
	return rate
}
