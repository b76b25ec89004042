package domain

import (
	"github.com/shopspring/decimal"
)

// PeriodStatus tracks a payroll period computation through its lifecycle.
// Posted is terminal; corrections are a reversal entry plus a new entry.
type PeriodStatus string

const (
	StatusPendingInput       PeriodStatus = "pending_input"
	StatusDeductionsComputed PeriodStatus = "deductions_computed"
	StatusNetPayComputed     PeriodStatus = "net_pay_computed"
	StatusPosted             PeriodStatus = "posted"
	StatusReversal           PeriodStatus = "reversal"
)

// DeductionLine is one statutory deduction on a payroll result. Employer
// carries the employer-side amount where the deduction has one (CPP match, EI
// at the employer multiplier); it is informational and never subtracted from
// the employee's pay.
type DeductionLine struct {
	Amount   decimal.Decimal `yaml:"amount" json:"amount"`
	Employer decimal.Decimal `yaml:"employer,omitempty" json:"employer,omitempty"`
	Reason   ReasonCode      `yaml:"reason,omitempty" json:"reason,omitempty"`
}

// VacationComponent reports the vacation pay outcome for the period.
type VacationComponent struct {
	Paid    decimal.Decimal `yaml:"paid" json:"paid"`
	Accrued decimal.Decimal `yaml:"accrued" json:"accrued"`
	Balance decimal.Decimal `yaml:"balance" json:"balance"`
	Reason  ReasonCode      `yaml:"reason,omitempty" json:"reason,omitempty"`
}

// HolidayComponent reports the statutory holiday pay outcome. Entitled is
// false when the eligibility gate failed, which is distinct from an
// entitlement whose formula yields zero.
type HolidayComponent struct {
	Entitled   bool            `yaml:"entitled" json:"entitled"`
	HolidayPay decimal.Decimal `yaml:"holiday_pay" json:"holiday_pay"`
	PremiumPay decimal.Decimal `yaml:"premium_pay" json:"premium_pay"`
	Reason     ReasonCode      `yaml:"reason,omitempty" json:"reason,omitempty"`
}

// PayrollResult is the complete outcome of one employee's pay period: the
// gross breakdown, every statutory deduction, vacation and holiday components,
// net pay and the YTD accumulators after this period is applied.
type PayrollResult struct {
	EmployeeID string       `yaml:"employee_id" json:"employee_id"`
	Year       int          `yaml:"year" json:"year"`
	Status     PeriodStatus `yaml:"status" json:"status"`

	Earnings   EarningsBreakdown `yaml:"earnings" json:"earnings"`
	TotalGross decimal.Decimal   `yaml:"total_gross" json:"total_gross"`

	CPP           DeductionLine `yaml:"cpp" json:"cpp"`
	CPP2          DeductionLine `yaml:"cpp2" json:"cpp2"`
	EI            DeductionLine `yaml:"ei" json:"ei"`
	FederalTax    DeductionLine `yaml:"federal_tax" json:"federal_tax"`
	ProvincialTax DeductionLine `yaml:"provincial_tax" json:"provincial_tax"`

	Vacation VacationComponent `yaml:"vacation" json:"vacation"`
	Holiday  HolidayComponent  `yaml:"holiday" json:"holiday"`

	PreTaxDeductions decimal.Decimal `yaml:"pre_tax_deductions" json:"pre_tax_deductions"`
	TotalDeductions  decimal.Decimal `yaml:"total_deductions" json:"total_deductions"`
	NetPay           decimal.Decimal `yaml:"net_pay" json:"net_pay"`

	UpdatedYtd YtdAccumulators `yaml:"updated_ytd" json:"updated_ytd"`
}

// StatutoryDeductions returns the sum of the employee-side statutory
// deduction amounts.
func (r *PayrollResult) StatutoryDeductions() decimal.Decimal {
	return r.CPP.Amount.Add(r.CPP2.Amount).Add(r.EI.Amount).
		Add(r.FederalTax.Amount).Add(r.ProvincialTax.Amount)
}

// Reversal produces the signed reversal entry for a posted result. Every
// monetary field is negated; the YTD snapshot is left to the host, which
// re-derives it by replaying the ledger. Posting a reversal plus a corrected
// entry is the only supported correction model.
func (r *PayrollResult) Reversal() PayrollResult {
	neg := func(d decimal.Decimal) decimal.Decimal { return d.Neg() }
	rev := *r
	rev.Status = StatusReversal
	rev.Earnings = EarningsBreakdown{
		Regular:      neg(r.Earnings.Regular),
		Overtime:     neg(r.Earnings.Overtime),
		Holiday:      neg(r.Earnings.Holiday),
		VacationPaid: neg(r.Earnings.VacationPaid),
		Other:        neg(r.Earnings.Other),
	}
	rev.TotalGross = neg(r.TotalGross)
	rev.CPP = DeductionLine{Amount: neg(r.CPP.Amount), Employer: neg(r.CPP.Employer)}
	rev.CPP2 = DeductionLine{Amount: neg(r.CPP2.Amount), Employer: neg(r.CPP2.Employer)}
	rev.EI = DeductionLine{Amount: neg(r.EI.Amount), Employer: neg(r.EI.Employer)}
	rev.FederalTax = DeductionLine{Amount: neg(r.FederalTax.Amount)}
	rev.ProvincialTax = DeductionLine{Amount: neg(r.ProvincialTax.Amount)}
	rev.Vacation = VacationComponent{Paid: neg(r.Vacation.Paid), Accrued: neg(r.Vacation.Accrued)}
	rev.Holiday = HolidayComponent{
		Entitled:   r.Holiday.Entitled,
		HolidayPay: neg(r.Holiday.HolidayPay),
		PremiumPay: neg(r.Holiday.PremiumPay),
	}
	rev.PreTaxDeductions = neg(r.PreTaxDeductions)
	rev.TotalDeductions = neg(r.TotalDeductions)
	rev.NetPay = neg(r.NetPay)
	rev.UpdatedYtd = YtdAccumulators{Year: r.Year}
	return rev
}
