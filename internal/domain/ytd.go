package domain

import (
	"github.com/shopspring/decimal"
)

// InitialYtdSeed carries statutory amounts withheld by a prior employer in the
// same tax year. The seed counts toward the CPP/CPP2/EI annual maximums at
// this employer; nothing else spans employers.
type InitialYtdSeed struct {
	Year int             `yaml:"year" json:"year"`
	CPP  decimal.Decimal `yaml:"cpp" json:"cpp"`
	CPP2 decimal.Decimal `yaml:"cpp2" json:"cpp2"`
	EI   decimal.Decimal `yaml:"ei" json:"ei"`
}

// YtdAccumulators is the per-employee, per-tax-year cumulative state. The
// engine treats it as an immutable snapshot: each posted period produces a new
// value, never an in-place edit. All fields except
// VacationTaken are monotonically non-decreasing within a tax year.
type YtdAccumulators struct {
	Year               int             `yaml:"year" json:"year"`
	Gross              decimal.Decimal `yaml:"gross" json:"gross"`
	PensionableEarnings decimal.Decimal `yaml:"pensionable_earnings" json:"pensionable_earnings"`
	InsurableEarnings  decimal.Decimal `yaml:"insurable_earnings" json:"insurable_earnings"`
	CPP                decimal.Decimal `yaml:"cpp" json:"cpp"`
	CPP2               decimal.Decimal `yaml:"cpp2" json:"cpp2"`
	EI                 decimal.Decimal `yaml:"ei" json:"ei"`
	EmployerEI         decimal.Decimal `yaml:"employer_ei" json:"employer_ei"`
	FederalTax         decimal.Decimal `yaml:"federal_tax" json:"federal_tax"`
	ProvincialTax      decimal.Decimal `yaml:"provincial_tax" json:"provincial_tax"`
	TaxableIncome      decimal.Decimal `yaml:"taxable_income" json:"taxable_income"`
	VacationAccrued    decimal.Decimal `yaml:"vacation_accrued" json:"vacation_accrued"`
	VacationTaken      decimal.Decimal `yaml:"vacation_taken" json:"vacation_taken"`
	// Seed holds prior-employer amounts; zero-valued when not applicable.
	Seed InitialYtdSeed `yaml:"seed,omitempty" json:"seed,omitempty"`
}

// NewYtdAccumulators returns a zeroed accumulator set for a tax year.
func NewYtdAccumulators(year int) YtdAccumulators {
	return YtdAccumulators{Year: year}
}

// CPPTowardMax returns the CPP amount counting toward this year's annual
// maximum, including any prior-employer seed for the same year.
func (y YtdAccumulators) CPPTowardMax() decimal.Decimal {
	if y.Seed.Year == y.Year {
		return y.CPP.Add(y.Seed.CPP)
	}
	return y.CPP
}

// CPP2TowardMax returns the CPP2 amount counting toward the annual maximum.
func (y YtdAccumulators) CPP2TowardMax() decimal.Decimal {
	if y.Seed.Year == y.Year {
		return y.CPP2.Add(y.Seed.CPP2)
	}
	return y.CPP2
}

// EITowardMax returns the EI premium amount counting toward the annual
// maximum.
func (y YtdAccumulators) EITowardMax() decimal.Decimal {
	if y.Seed.Year == y.Year {
		return y.EI.Add(y.Seed.EI)
	}
	return y.EI
}

// VacationBalance returns accrued minus taken vacation pay.
func (y YtdAccumulators) VacationBalance() decimal.Decimal {
	return y.VacationAccrued.Sub(y.VacationTaken)
}
