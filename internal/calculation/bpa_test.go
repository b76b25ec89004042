package calculation

import (
	"testing"

	"github.com/maplepay/payroll-engine/internal/rates"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestResolveBPA(t *testing.T) {
	federal := rates.BPAFormula{
		Amount:        decimal.RequireFromString("16129"),
		PhaseOutStart: decimal.RequireFromString("177882"),
		PhaseOutEnd:   decimal.RequireFromString("253414"),
		Floor:         decimal.RequireFromString("14538"),
	}
	flat := rates.BPAFormula{Amount: decimal.RequireFromString("12747")}

	tests := []struct {
		name      string
		formula   rates.BPAFormula
		netIncome string
		expected  string
	}{
		{"flat ignores income", flat, "500000", "12747"},
		{"below phase-out start", federal, "60000", "16129"},
		{"exactly at start", federal, "177882", "16129"},
		{"exactly at end", federal, "253414", "14538"},
		{"above end floors", federal, "400000", "14538"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ResolveBPA(tt.formula, decimal.RequireFromString(tt.netIncome))
			expected := decimal.RequireFromString(tt.expected)
			assert.True(t, result.Equal(expected),
				"expected %s, got %s", expected, result)
		})
	}
}

func TestResolveBPAContinuity(t *testing.T) {
	formula := rates.BPAFormula{
		Amount:        decimal.RequireFromString("16129"),
		PhaseOutStart: decimal.RequireFromString("177882"),
		PhaseOutEnd:   decimal.RequireFromString("253414"),
		Floor:         decimal.RequireFromString("14538"),
	}
	cent := decimal.RequireFromString("0.01")

	// No jump at either boundary: a cent of income must not move the BPA
	// more than the phase-out slope allows.
	atStart := ResolveBPA(formula, formula.PhaseOutStart)
	justPast := ResolveBPA(formula, formula.PhaseOutStart.Add(cent))
	assert.True(t, atStart.Sub(justPast).LessThan(decimal.RequireFromString("0.01")),
		"discontinuity at phase-out start: %s vs %s", atStart, justPast)

	atEnd := ResolveBPA(formula, formula.PhaseOutEnd)
	justBefore := ResolveBPA(formula, formula.PhaseOutEnd.Sub(cent))
	assert.True(t, justBefore.Sub(atEnd).LessThan(decimal.RequireFromString("0.01")),
		"discontinuity at phase-out end: %s vs %s", justBefore, atEnd)

	// Midpoint declines by exactly half the spread.
	mid := formula.PhaseOutStart.Add(formula.PhaseOutEnd).Div(decimal.NewFromInt(2))
	assert.True(t, ResolveBPA(formula, mid).Equal(decimal.RequireFromString("15333.5")))
}
