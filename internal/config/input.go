// Package config parses and validates payroll-run input files. The engine
// itself never reads files; the CLI (or any host) resolves everything here
// first and hands the engine fully populated values.
package config

import (
	"fmt"
	"os"

	"github.com/maplepay/payroll-engine/internal/calculation"
	"github.com/maplepay/payroll-engine/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// RunInput is the YAML shape of a payroll run: the tax year plus one entry
// per employee.
type RunInput struct {
	TaxYear   int        `yaml:"tax_year" json:"tax_year"`
	Employees []RunEntry `yaml:"employees" json:"employees"`
}

// RunEntry pairs one employee's profile with the period facts and the YTD
// snapshot the host read for them.
type RunEntry struct {
	Profile domain.EmployeeProfile `yaml:"profile" json:"profile"`
	Period  domain.PayPeriodInput  `yaml:"period" json:"period"`
	Ytd     domain.YtdAccumulators `yaml:"ytd" json:"ytd"`
}

// InputParser handles parsing of payroll-run input files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a payroll run from a YAML file and validates it.
func (ip *InputParser) LoadFromFile(filename string) (*RunInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var run RunInput
	if err := yaml.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateRun(&run); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}
	return &run, nil
}

// ValidateRun validates the loaded payroll run.
func (ip *InputParser) ValidateRun(run *RunInput) error {
	if run.TaxYear < 2000 || run.TaxYear > 2100 {
		return fmt.Errorf("tax year %d out of range", run.TaxYear)
	}
	if len(run.Employees) == 0 {
		return fmt.Errorf("no employees provided")
	}
	seen := make(map[string]bool, len(run.Employees))
	for i, entry := range run.Employees {
		if err := ip.validateEntry(&entry, run.TaxYear); err != nil {
			return fmt.Errorf("employee %d (%s): %w", i, entry.Profile.ID, err)
		}
		if seen[entry.Profile.ID] {
			return fmt.Errorf("employee %d: duplicate id %s", i, entry.Profile.ID)
		}
		seen[entry.Profile.ID] = true
	}
	return nil
}

func (ip *InputParser) validateEntry(entry *RunEntry, taxYear int) error {
	p := &entry.Profile
	if p.ID == "" {
		return fmt.Errorf("id is required")
	}
	if !p.Province.IsProvince() {
		return fmt.Errorf("province of employment is required")
	}
	if !domain.ValidPayPeriods(p.PayPeriodsPerYear) {
		return fmt.Errorf("pay periods per year must be one of %v", domain.ValidPayPeriodCounts)
	}
	if p.Compensation != domain.Salaried && p.Compensation != domain.Hourly {
		return fmt.Errorf("compensation must be %q or %q", domain.Salaried, domain.Hourly)
	}
	if p.Compensation == domain.Hourly && p.HourlyRate.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("hourly rate must be positive for hourly employees")
	}
	if p.HireDate.IsZero() {
		return fmt.Errorf("hire date is required")
	}
	if p.Vacation.PayoutMethod != domain.VacationAccrual && p.Vacation.PayoutMethod != domain.VacationPayAsYouGo {
		return fmt.Errorf("vacation payout method must be %q or %q", domain.VacationAccrual, domain.VacationPayAsYouGo)
	}
	if p.Vacation.Rate.LessThanOrEqual(decimal.Zero) || p.Vacation.Rate.GreaterThan(decimal.NewFromFloat(0.20)) {
		return fmt.Errorf("vacation rate must be between 0 and 20%%")
	}
	if p.Claims.AdditionalFederal.LessThan(decimal.Zero) || p.Claims.AdditionalProvincial.LessThan(decimal.Zero) {
		return fmt.Errorf("TD1 claim amounts cannot be negative")
	}

	period := &entry.Period
	if period.PeriodEnd.Before(period.PeriodStart) {
		return fmt.Errorf("period end before period start")
	}
	if p.HireDate.After(period.PeriodEnd) {
		return fmt.Errorf("hire date after the pay period")
	}
	if period.HoursWorked.LessThan(decimal.Zero) {
		return fmt.Errorf("hours worked cannot be negative")
	}
	for name, v := range map[string]decimal.Decimal{
		"regular":       period.Earnings.Regular,
		"overtime":      period.Earnings.Overtime,
		"holiday":       period.Earnings.Holiday,
		"vacation_paid": period.Earnings.VacationPaid,
		"other":         period.Earnings.Other,
	} {
		if v.LessThan(decimal.Zero) {
			return fmt.Errorf("%s earnings cannot be negative", name)
		}
	}
	if p.CommissionIncome && period.PeriodsElapsed < 1 {
		return fmt.Errorf("periods elapsed is required for cumulative averaging")
	}

	ytd := &entry.Ytd
	if ytd.Year != taxYear {
		return fmt.Errorf("ytd year %d does not match tax year %d", ytd.Year, taxYear)
	}
	if ytd.VacationTaken.GreaterThan(ytd.VacationAccrued) {
		return fmt.Errorf("ytd vacation taken exceeds accrued")
	}
	for name, v := range map[string]decimal.Decimal{
		"gross":          ytd.Gross,
		"cpp":            ytd.CPP,
		"cpp2":           ytd.CPP2,
		"ei":             ytd.EI,
		"federal_tax":    ytd.FederalTax,
		"provincial_tax": ytd.ProvincialTax,
	} {
		if v.LessThan(decimal.Zero) {
			return fmt.Errorf("ytd %s cannot be negative", name)
		}
	}
	return nil
}

// ToBatchItems converts a validated run into engine batch items.
func (run *RunInput) ToBatchItems() []calculation.BatchItem {
	items := make([]calculation.BatchItem, 0, len(run.Employees))
	for _, entry := range run.Employees {
		items = append(items, calculation.BatchItem{
			Employee: entry.Profile,
			Period:   entry.Period,
			Ytd:      entry.Ytd,
		})
	}
	return items
}
