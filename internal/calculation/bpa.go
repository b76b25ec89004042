package calculation

import (
	"github.com/maplepay/payroll-engine/internal/rates"
	"github.com/shopspring/decimal"
)

// ResolveBPA computes the basic personal amount for an annual net income
// under the jurisdiction's formula.
//
// Flat jurisdictions return the constant regardless of income. Phase-out
// jurisdictions return the full amount below the start, the floor above the
// end, and a linear interpolation between: the function is continuous at both
// boundaries. Net income is annual taxable income (plus any prescribed-zone
// benefit value), never un-annualized period income.
func ResolveBPA(formula rates.BPAFormula, netIncome decimal.Decimal) decimal.Decimal {
	if !formula.HasPhaseOut() {
		return formula.Amount
	}
	if netIncome.LessThanOrEqual(formula.PhaseOutStart) {
		return formula.Amount
	}
	if netIncome.GreaterThanOrEqual(formula.PhaseOutEnd) {
		return formula.Floor
	}
	span := formula.PhaseOutEnd.Sub(formula.PhaseOutStart)
	excess := netIncome.Sub(formula.PhaseOutStart)
	decline := formula.Amount.Sub(formula.Floor).Mul(excess).Div(span)
	return formula.Amount.Sub(decline)
}
