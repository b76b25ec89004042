package calculation

import (
	"github.com/maplepay/payroll-engine/internal/domain"
	"github.com/maplepay/payroll-engine/internal/rates"
	"github.com/shopspring/decimal"
)

// CPPCalculator computes base CPP and CPP2 contributions for one pay period.
type CPPCalculator struct {
	Params rates.CPPParams
}

// NewCPPCalculator creates a CPP calculator from the year's parameters.
func NewCPPCalculator(params rates.CPPParams) *CPPCalculator {
	return &CPPCalculator{Params: params}
}

// CPPInput is the per-period input to the CPP calculation.
type CPPInput struct {
	PensionableEarnings decimal.Decimal
	PeriodsPerYear      int
	YtdCPP              decimal.Decimal
	YtdCPP2             decimal.Decimal
	YtdPensionable      decimal.Decimal
	CPPExempt           bool
	CPP2Exempt          bool
}

// CPPResult is the outcome of one period's CPP calculation. Employer amounts
// mirror the employee side dollar for dollar.
type CPPResult struct {
	Contribution  decimal.Decimal
	CPP2          decimal.Decimal
	Employer      decimal.Decimal
	EmployerCPP2  decimal.Decimal
	BaseMaxed     bool
	CPP2Maxed     bool
}

// Calculate derives the period's CPP and CPP2 contributions.
//
// The basic exemption is prorated per period with truncation (never per day,
// never rounded up). The base contribution is capped so the year-to-date
// total lands exactly on the annual maximum; once there, remaining periods
// contribute exactly zero.
func (c *CPPCalculator) Calculate(in CPPInput) (CPPResult, error) {
	if in.PensionableEarnings.LessThan(decimal.Zero) {
		return CPPResult{}, &domain.InputValidationError{Field: "pensionable_earnings", Reason: "must be non-negative"}
	}
	if err := validatePeriods(in.PeriodsPerYear); err != nil {
		return CPPResult{}, err
	}
	if in.YtdCPP.GreaterThan(c.Params.MaxBaseContribution) {
		return CPPResult{}, &domain.InputValidationError{Field: "ytd_cpp", Reason: "already exceeds the annual maximum"}
	}
	if in.YtdCPP2.GreaterThan(c.Params.MaxCPP2Contribution) {
		return CPPResult{}, &domain.InputValidationError{Field: "ytd_cpp2", Reason: "already exceeds the annual maximum"}
	}

	if in.CPPExempt {
		return CPPResult{}, nil
	}

	var out CPPResult

	periodExemption := RoundTruncate(c.Params.BasicExemption.Div(decimal.NewFromInt(int64(in.PeriodsPerYear))))
	contributory := clampZero(in.PensionableEarnings.Sub(periodExemption))
	raw := RoundTaxStyle(contributory.Mul(c.Params.ContributionRate))

	room := clampZero(c.Params.MaxBaseContribution.Sub(in.YtdCPP))
	out.Contribution = decimal.Min(raw, room)
	out.BaseMaxed = in.YtdCPP.Add(out.Contribution).Equal(c.Params.MaxBaseContribution)

	if !in.CPP2Exempt {
		out.CPP2 = c.calculateCPP2(in)
		out.CPP2Maxed = in.YtdCPP2.Add(out.CPP2).Equal(c.Params.MaxCPP2Contribution)
	}

	out.Employer = out.Contribution
	out.EmployerCPP2 = out.CPP2
	return out, nil
}

// calculateCPP2 computes the second-additional contribution on pensionable
// earnings between YMPE and YAMPE. It only engages once cumulative
// pensionable earnings (including this period) cross YMPE.
func (c *CPPCalculator) calculateCPP2(in CPPInput) decimal.Decimal {
	cumulative := in.YtdPensionable.Add(in.PensionableEarnings)
	if cumulative.LessThanOrEqual(c.Params.YMPE) {
		return decimal.Zero
	}

	// Earnings above YMPE attributable to this period, bounded by YAMPE.
	capped := decimal.Min(cumulative, c.Params.YAMPE)
	priorAbove := clampZero(decimal.Min(in.YtdPensionable, c.Params.YAMPE).Sub(c.Params.YMPE))
	aboveThisPeriod := clampZero(capped.Sub(c.Params.YMPE).Sub(priorAbove))

	raw := RoundTaxStyle(aboveThisPeriod.Mul(c.Params.CPP2Rate))
	room := clampZero(c.Params.MaxCPP2Contribution.Sub(in.YtdCPP2))
	return decimal.Min(raw, room)
}
