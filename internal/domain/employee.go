package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompensationType distinguishes salaried from hourly employees.
type CompensationType string

const (
	Salaried CompensationType = "salaried"
	Hourly   CompensationType = "hourly"
)

// VacationPayoutMethod selects how vacation pay is delivered.
type VacationPayoutMethod string

const (
	// VacationAccrual banks vacation pay into a balance paid out when
	// vacation is taken.
	VacationAccrual VacationPayoutMethod = "accrual"
	// VacationPayAsYouGo adds vacation pay to every period's gross.
	VacationPayAsYouGo VacationPayoutMethod = "pay_as_you_go"
)

// VacationConfig is the per-employee vacation pay configuration. Rate must be
// at or above the jurisdiction minimum for the employee's years of service;
// the rates store carries the minimum tiers.
type VacationConfig struct {
	PayoutMethod VacationPayoutMethod `yaml:"payout_method" json:"payout_method"`
	Rate         decimal.Decimal      `yaml:"rate" json:"rate"`
}

// TD1Claims carries the claim amounts from an employee's federal and
// provincial TD1 forms for one tax year. AdditionalFederal/AdditionalProvincial
// are the claim amounts beyond the basic personal amount; the BPA itself is
// resolved from the rate tables, never from the form.
type TD1Claims struct {
	Year                 int             `yaml:"year" json:"year"`
	AdditionalFederal    decimal.Decimal `yaml:"additional_federal" json:"additional_federal"`
	AdditionalProvincial decimal.Decimal `yaml:"additional_provincial" json:"additional_provincial"`
	// PrescribedZoneAmount is the annual housing/board benefit value for
	// employees in prescribed northern zones. It feeds BPA phase-out net
	// income where the jurisdiction tests income.
	PrescribedZoneAmount decimal.Decimal `yaml:"prescribed_zone_amount" json:"prescribed_zone_amount"`
}

// EmployeeProfile is the payroll identity of one employee: provincial
// jurisdiction, pay frequency, statutory exemption flags, vacation
// configuration and TD1 claims. The engine receives it by value and never
// mutates it; creation and updates belong to the host application.
type EmployeeProfile struct {
	ID                   string           `yaml:"id" json:"id"`
	Name                 string           `yaml:"name" json:"name"`
	Province             Jurisdiction     `yaml:"province" json:"province"`
	PayPeriodsPerYear    int              `yaml:"pay_periods_per_year" json:"pay_periods_per_year"`
	Compensation         CompensationType `yaml:"compensation" json:"compensation"`
	HourlyRate           decimal.Decimal  `yaml:"hourly_rate,omitempty" json:"hourly_rate,omitempty"`
	HireDate             time.Time        `yaml:"hire_date" json:"hire_date"`
	CPPExempt            bool             `yaml:"cpp_exempt" json:"cpp_exempt"`
	CPP2Exempt           bool             `yaml:"cpp2_exempt" json:"cpp2_exempt"`
	EIExempt             bool             `yaml:"ei_exempt" json:"ei_exempt"`
	QuebecResident       bool             `yaml:"quebec_resident" json:"quebec_resident"`
	IrregularHours       bool             `yaml:"irregular_hours" json:"irregular_hours"`
	CommissionIncome     bool             `yaml:"commission_income" json:"commission_income"`
	Vacation             VacationConfig   `yaml:"vacation" json:"vacation"`
	Claims               TD1Claims        `yaml:"claims" json:"claims"`
	AnnualDeductions     decimal.Decimal  `yaml:"annual_deductions" json:"annual_deductions"`
	Deactivated          bool             `yaml:"deactivated,omitempty" json:"deactivated,omitempty"`
}

// ValidPayPeriodCounts is the supported set of pay frequencies, expressed as
// periods per year. 27 covers the bi-weekly calendar-alignment years and is a
// caller-supplied override, never derived from dates inside the engine.
var ValidPayPeriodCounts = []int{1, 2, 4, 12, 24, 26, 27, 52}

// ValidPayPeriods reports whether n is a supported periods-per-year count.
func ValidPayPeriods(n int) bool {
	for _, v := range ValidPayPeriodCounts {
		if n == v {
			return true
		}
	}
	return false
}

// YearsOfService returns whole years of service as of the given date.
func (e *EmployeeProfile) YearsOfService(asOf time.Time) int {
	years := asOf.Year() - e.HireDate.Year()
	if asOf.YearDay() < e.HireDate.YearDay() {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// EmploymentDays returns calendar days employed as of the given date, counting
// the hire date itself as day one.
func (e *EmployeeProfile) EmploymentDays(asOf time.Time) int {
	if asOf.Before(e.HireDate) {
		return 0
	}
	return int(asOf.Sub(e.HireDate).Hours()/24) + 1
}
