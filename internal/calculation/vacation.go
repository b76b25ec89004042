package calculation

import (
	"github.com/maplepay/payroll-engine/internal/domain"
	"github.com/shopspring/decimal"
)

// VacationInput is the per-period input to the vacation pay calculation.
type VacationInput struct {
	GrossPeriod decimal.Decimal
	Config      domain.VacationConfig
	// MinimumRate is the jurisdiction floor for the employee's years of
	// service; a configured rate below it is an input error.
	MinimumRate decimal.Decimal
	YtdAccrued  decimal.Decimal
	YtdTaken    decimal.Decimal
	Request     *domain.VacationRequest
}

// VacationResult is the outcome of one period's vacation pay calculation.
// Under pay-as-you-go, Paid is added to the period's gross and nothing
// accrues. Under accrual, Accrued adds to the balance and Paid reflects any
// payout granted this period.
type VacationResult struct {
	Paid    decimal.Decimal
	Accrued decimal.Decimal
	Balance decimal.Decimal
	Reason  domain.ReasonCode
}

// CalculateVacation computes the period's vacation pay per the employee's
// payout method. A payout request exceeding the accrued balance is denied
// with a reason code, never clamped to the balance.
func CalculateVacation(in VacationInput) (VacationResult, error) {
	if in.GrossPeriod.LessThan(decimal.Zero) {
		return VacationResult{}, &domain.InputValidationError{Field: "gross", Reason: "must be non-negative"}
	}
	if in.Config.Rate.LessThan(in.MinimumRate) {
		return VacationResult{}, &domain.InputValidationError{Field: "vacation_rate", Reason: "below the jurisdiction minimum"}
	}
	if in.YtdTaken.GreaterThan(in.YtdAccrued) {
		return VacationResult{}, &domain.InputValidationError{Field: "vacation_taken", Reason: "exceeds accrued balance"}
	}

	periodVacation := RoundTaxStyle(in.GrossPeriod.Mul(in.Config.Rate))

	switch in.Config.PayoutMethod {
	case domain.VacationPayAsYouGo:
		return VacationResult{Paid: periodVacation}, nil

	case domain.VacationAccrual:
		res := VacationResult{Accrued: periodVacation}
		balance := in.YtdAccrued.Add(periodVacation).Sub(in.YtdTaken)

		if in.Request != nil {
			payout, reason := vacationPayout(in.Request, in.YtdAccrued.Add(periodVacation), balance)
			if reason != domain.ReasonNone {
				res.Reason = reason
				res.Balance = balance
				return res, nil
			}
			res.Paid = payout
			balance = balance.Sub(payout)
		}
		res.Balance = balance
		return res, nil

	default:
		return VacationResult{}, &domain.InputValidationError{Field: "payout_method", Reason: "unknown vacation payout method"}
	}
}

// vacationPayout resolves a payout request against the balance: a lump sum
// pays the whole balance; a day-count request pays accrued/entitlementDays
// per day. Requests exceeding the balance are denied.
func vacationPayout(req *domain.VacationRequest, accrued, balance decimal.Decimal) (decimal.Decimal, domain.ReasonCode) {
	if req.LumpSum {
		return balance, domain.ReasonNone
	}
	if req.Days.LessThanOrEqual(decimal.Zero) || req.EntitlementDays.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, domain.ReasonNone
	}
	payout := RoundTaxStyle(req.Days.Mul(accrued.Div(req.EntitlementDays)))
	if payout.GreaterThan(balance) {
		return decimal.Zero, domain.ReasonVacationBalance
	}
	return payout, domain.ReasonNone
}
