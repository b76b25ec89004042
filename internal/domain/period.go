package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EarningsBreakdown itemizes the gross earnings of one pay period.
type EarningsBreakdown struct {
	Regular      decimal.Decimal `yaml:"regular" json:"regular"`
	Overtime     decimal.Decimal `yaml:"overtime" json:"overtime"`
	Holiday      decimal.Decimal `yaml:"holiday" json:"holiday"`
	VacationPaid decimal.Decimal `yaml:"vacation_paid" json:"vacation_paid"`
	Other        decimal.Decimal `yaml:"other" json:"other"`
}

// Total returns the sum of all earnings components.
func (e EarningsBreakdown) Total() decimal.Decimal {
	return e.Regular.Add(e.Overtime).Add(e.Holiday).Add(e.VacationPaid).Add(e.Other)
}

// PreTaxDeductions are amounts removed from gross before tax is computed.
// RPP/RRSP contributions and union dues reduce taxable income; they do not
// reduce pensionable or insurable earnings.
type PreTaxDeductions struct {
	RPPContribution  decimal.Decimal `yaml:"rpp_contribution" json:"rpp_contribution"`
	RRSPContribution decimal.Decimal `yaml:"rrsp_contribution" json:"rrsp_contribution"`
	UnionDues        decimal.Decimal `yaml:"union_dues" json:"union_dues"`
}

// Total returns the sum of all pre-tax deductions.
func (p PreTaxDeductions) Total() decimal.Decimal {
	return p.RPPContribution.Add(p.RRSPContribution).Add(p.UnionDues)
}

// HolidayFacts carries the statutory-holiday inputs for a period that contains
// a holiday. Lookback aggregates are supplied by the host from its ledger; the
// engine never reaches into payroll history itself.
type HolidayFacts struct {
	HolidayDate time.Time `yaml:"holiday_date" json:"holiday_date"`
	// Worked indicates the employee worked on the holiday; premium pay for
	// HoursWorkedOnHoliday is added on top of the holiday pay entitlement.
	Worked               bool            `yaml:"worked" json:"worked"`
	HoursWorkedOnHoliday decimal.Decimal `yaml:"hours_worked_on_holiday" json:"hours_worked_on_holiday"`
	ScheduledHours       decimal.Decimal `yaml:"scheduled_hours" json:"scheduled_hours"`
	// Lookback wage aggregates keyed by the jurisdiction formula windows.
	WagesPrior2Weeks  decimal.Decimal `yaml:"wages_prior_2_weeks" json:"wages_prior_2_weeks"`
	WagesPrior4Weeks  decimal.Decimal `yaml:"wages_prior_4_weeks" json:"wages_prior_4_weeks"`
	WagesPrior28Days  decimal.Decimal `yaml:"wages_prior_28_days" json:"wages_prior_28_days"`
	WagesPrior30Days  decimal.Decimal `yaml:"wages_prior_30_days" json:"wages_prior_30_days"`
	DaysWorkedPrior30 int             `yaml:"days_worked_prior_30" json:"days_worked_prior_30"`
	AvgDailyHours3Wk  decimal.Decimal `yaml:"avg_daily_hours_3_weeks" json:"avg_daily_hours_3_weeks"`
	// Shift-rule facts for the last/first scheduled shift eligibility gate.
	WorkedLastScheduledShift  bool `yaml:"worked_last_scheduled_shift" json:"worked_last_scheduled_shift"`
	WorkedFirstScheduledShift bool `yaml:"worked_first_scheduled_shift" json:"worked_first_scheduled_shift"`
	// SubstituteDayElected: the employer chose a substitute day off with
	// regular pay instead of premium pay for a worked holiday. Only honored
	// where the jurisdiction permits the election.
	SubstituteDayElected bool `yaml:"substitute_day_elected,omitempty" json:"substitute_day_elected,omitempty"`
}

// VacationRequest asks for a vacation payout from the accrued balance during
// this period. Days and EntitlementDays drive the per-day payout; a LumpSum
// request pays out the entire balance.
type VacationRequest struct {
	Days            decimal.Decimal `yaml:"days" json:"days"`
	EntitlementDays decimal.Decimal `yaml:"entitlement_days" json:"entitlement_days"`
	LumpSum         bool            `yaml:"lump_sum" json:"lump_sum"`
}

// PayPeriodInput is everything period-specific the engine needs: the earnings
// breakdown, hours, dates, pre-tax deductions and optional holiday/vacation
// facts. All values are fully resolved by the host before the call.
type PayPeriodInput struct {
	PeriodStart  time.Time         `yaml:"period_start" json:"period_start"`
	PeriodEnd    time.Time         `yaml:"period_end" json:"period_end"`
	PayDate      time.Time         `yaml:"pay_date" json:"pay_date"`
	Earnings     EarningsBreakdown `yaml:"earnings" json:"earnings"`
	HoursWorked  decimal.Decimal   `yaml:"hours_worked" json:"hours_worked"`
	PreTax       PreTaxDeductions  `yaml:"pre_tax" json:"pre_tax"`
	Holiday      *HolidayFacts     `yaml:"holiday,omitempty" json:"holiday,omitempty"`
	Vacation     *VacationRequest  `yaml:"vacation,omitempty" json:"vacation,omitempty"`
	// PeriodsElapsed is the number of periods paid so far this tax year,
	// including this one. It drives the cumulative averaging method.
	PeriodsElapsed int `yaml:"periods_elapsed" json:"periods_elapsed"`
}
