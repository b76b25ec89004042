package calculation

import (
	"github.com/maplepay/payroll-engine/internal/domain"
	"github.com/maplepay/payroll-engine/internal/rates"
	"github.com/shopspring/decimal"
)

var twenty = decimal.NewFromInt(20)

// HolidayInput is the input to the statutory holiday pay calculation. Facts
// carries the host-supplied lookback aggregates; RegularHourlyRate is the
// employee's regular rate (actual for hourly employees, derived by the host
// for salaried ones).
type HolidayInput struct {
	Rules             *rates.HolidayRules
	Facts             *domain.HolidayFacts
	EmploymentDays    int
	IrregularHours    bool
	RegularHourlyRate decimal.Decimal
	// SubstituteDayElected: the employer elected a substitute day off plus
	// regular pay instead of premium pay for a worked holiday, where the
	// jurisdiction allows the choice.
	SubstituteDayElected bool
}

// CalculateHoliday evaluates the eligibility gate and, only if it passes,
// dispatches to the jurisdiction's formula. A failed gate yields $0 and not
// entitled, which is distinct from an entitlement whose formula computes $0.
// Premium pay for hours worked on the holiday is additive to the holiday pay
// entitlement, never a substitute for it.
func CalculateHoliday(in HolidayInput) (domain.HolidayComponent, error) {
	if in.Rules == nil {
		return domain.HolidayComponent{}, &domain.InputValidationError{Field: "holiday_rules", Reason: "jurisdiction has no holiday rules configured"}
	}
	if in.Facts == nil {
		return domain.HolidayComponent{}, &domain.InputValidationError{Field: "holiday", Reason: "holiday facts are required"}
	}
	if in.Facts.HoursWorkedOnHoliday.LessThan(decimal.Zero) {
		return domain.HolidayComponent{}, &domain.InputValidationError{Field: "hours_worked_on_holiday", Reason: "must be non-negative"}
	}

	if reason := eligibility(in); reason != domain.ReasonNone {
		return domain.HolidayComponent{Entitled: false, Reason: reason}, nil
	}

	pay, err := holidayFormula(in)
	if err != nil {
		return domain.HolidayComponent{}, err
	}

	out := domain.HolidayComponent{Entitled: true, HolidayPay: pay}
	if in.Facts.Worked && !in.SubstituteDayElected {
		out.PremiumPay = RoundTaxStyle(
			in.RegularHourlyRate.
				Mul(in.Facts.HoursWorkedOnHoliday).
				Mul(in.Rules.PremiumMultiplier))
	}
	return out, nil
}

// eligibility applies the jurisdiction gate in order: minimum employment
// days, the last/first scheduled shift rule, then the minimum-days-worked
// lookback rule.
func eligibility(in HolidayInput) domain.ReasonCode {
	r := in.Rules
	if r.MinEmploymentDays > 0 && in.EmploymentDays < r.MinEmploymentDays {
		return domain.ReasonMinEmploymentDays
	}
	if r.RequireLastFirstShift &&
		(!in.Facts.WorkedLastScheduledShift || !in.Facts.WorkedFirstScheduledShift) {
		return domain.ReasonShiftRule
	}
	if r.MinDaysWorkedInLookback > 0 && in.Facts.DaysWorkedPrior30 < r.MinDaysWorkedInLookback {
		return domain.ReasonInsufficientDaysWorked
	}
	return domain.ReasonNone
}

func holidayFormula(in HolidayInput) (decimal.Decimal, error) {
	f := in.Facts
	switch in.Rules.Formula {
	case rates.Holiday4WeekAverage:
		return RoundTaxStyle(f.WagesPrior4Weeks.Div(twenty)), nil

	case rates.Holiday5Percent28Days:
		return RoundTaxStyle(f.WagesPrior28Days.Mul(d("0.05"))), nil

	case rates.Holiday3WeekAvgHours:
		return RoundTaxStyle(in.RegularHourlyRate.Mul(f.AvgDailyHours3Wk)), nil

	case rates.Holiday30DayAverage:
		if f.DaysWorkedPrior30 == 0 {
			return decimal.Zero, nil
		}
		days := decimal.NewFromInt(int64(f.DaysWorkedPrior30))
		return RoundTaxStyle(f.WagesPrior30Days.Div(days)), nil

	case rates.HolidayRegularDayPay:
		return RoundTaxStyle(in.RegularHourlyRate.Mul(f.ScheduledHours)), nil

	case rates.Holiday10Percent2Weeks:
		if in.IrregularHours {
			return RoundTaxStyle(f.WagesPrior2Weeks.Mul(d("0.10"))), nil
		}
		return RoundTaxStyle(in.RegularHourlyRate.Mul(f.ScheduledHours)), nil

	default:
		return decimal.Zero, &domain.ConfigurationError{
			Year:   0,
			Reason: "unknown holiday pay formula " + string(in.Rules.Formula),
		}
	}
}

// d parses a decimal literal; panics on malformed constants.
func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }
