package calculation

import (
	"testing"

	"github.com/maplepay/payroll-engine/internal/domain"
	"github.com/maplepay/payroll-engine/internal/rates"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolidayFormulas(t *testing.T) {
	rate := decimal.NewFromInt(25)

	tests := []struct {
		name     string
		rules    rates.HolidayRules
		facts    domain.HolidayFacts
		irregular bool
		expected string
	}{
		{
			name:     "four week average divides by twenty",
			rules:    rates.HolidayRules{Formula: rates.Holiday4WeekAverage},
			facts:    domain.HolidayFacts{WagesPrior4Weeks: decimal.NewFromInt(4000)},
			expected: "200",
		},
		{
			name:     "five percent of 28 days",
			rules:    rates.HolidayRules{Formula: rates.Holiday5Percent28Days},
			facts:    domain.HolidayFacts{WagesPrior28Days: decimal.NewFromInt(4000)},
			expected: "200",
		},
		{
			name:     "three week average daily hours at the regular rate",
			rules:    rates.HolidayRules{Formula: rates.Holiday3WeekAvgHours},
			facts:    domain.HolidayFacts{AvgDailyHours3Wk: decimal.RequireFromString("7.5")},
			expected: "187.5",
		},
		{
			name:  "thirty day average wage per day worked",
			rules: rates.HolidayRules{Formula: rates.Holiday30DayAverage},
			facts: domain.HolidayFacts{
				WagesPrior30Days:  decimal.NewFromInt(4400),
				DaysWorkedPrior30: 22,
			},
			expected: "200",
		},
		{
			name:     "thirty day average with no days worked pays zero",
			rules:    rates.HolidayRules{Formula: rates.Holiday30DayAverage},
			facts:    domain.HolidayFacts{WagesPrior30Days: decimal.NewFromInt(4400)},
			expected: "0",
		},
		{
			name:     "regular day pay",
			rules:    rates.HolidayRules{Formula: rates.HolidayRegularDayPay},
			facts:    domain.HolidayFacts{ScheduledHours: decimal.NewFromInt(8)},
			expected: "200",
		},
		{
			name:      "ten percent of two weeks for irregular hours",
			rules:     rates.HolidayRules{Formula: rates.Holiday10Percent2Weeks},
			facts:     domain.HolidayFacts{WagesPrior2Weeks: decimal.NewFromInt(2000)},
			irregular: true,
			expected:  "200",
		},
		{
			name:     "regular hours fall back to a regular day",
			rules:    rates.HolidayRules{Formula: rates.Holiday10Percent2Weeks},
			facts:    domain.HolidayFacts{WagesPrior2Weeks: decimal.NewFromInt(2000), ScheduledHours: decimal.NewFromInt(8)},
			expected: "200",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CalculateHoliday(HolidayInput{
				Rules:             &tt.rules,
				Facts:             &tt.facts,
				EmploymentDays:    365,
				IrregularHours:    tt.irregular,
				RegularHourlyRate: rate,
			})
			require.NoError(t, err)
			assert.True(t, result.Entitled)
			expected := decimal.RequireFromString(tt.expected)
			assert.True(t, result.HolidayPay.Equal(expected),
				"expected %s, got %s", expected, result.HolidayPay)
		})
	}
}

func TestHolidayEligibilityGate(t *testing.T) {
	// The gate decides before any formula runs: a denial pays zero even
	// with lookback wages that would produce pay.
	facts := domain.HolidayFacts{
		WagesPrior4Weeks:          decimal.NewFromInt(4000),
		DaysWorkedPrior30:         10,
		WorkedLastScheduledShift:  true,
		WorkedFirstScheduledShift: true,
	}

	tests := []struct {
		name     string
		rules    rates.HolidayRules
		facts    domain.HolidayFacts
		days     int
		expected domain.ReasonCode
	}{
		{
			name:     "minimum employment days",
			rules:    rates.HolidayRules{Formula: rates.Holiday4WeekAverage, MinEmploymentDays: 30},
			facts:    facts,
			days:     10,
			expected: domain.ReasonMinEmploymentDays,
		},
		{
			name:  "missed last scheduled shift",
			rules: rates.HolidayRules{Formula: rates.Holiday4WeekAverage, RequireLastFirstShift: true},
			facts: domain.HolidayFacts{
				WagesPrior4Weeks:          decimal.NewFromInt(4000),
				WorkedFirstScheduledShift: true,
			},
			days:     365,
			expected: domain.ReasonShiftRule,
		},
		{
			name: "too few days worked in the lookback",
			rules: rates.HolidayRules{
				Formula:                 rates.Holiday30DayAverage,
				MinDaysWorkedInLookback: 15,
				LookbackDays:            30,
			},
			facts:    facts,
			days:     365,
			expected: domain.ReasonInsufficientDaysWorked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CalculateHoliday(HolidayInput{
				Rules:             &tt.rules,
				Facts:             &tt.facts,
				EmploymentDays:    tt.days,
				RegularHourlyRate: decimal.NewFromInt(25),
			})
			require.NoError(t, err)
			assert.False(t, result.Entitled)
			assert.Equal(t, tt.expected, result.Reason)
			assert.True(t, result.HolidayPay.IsZero())
			assert.True(t, result.PremiumPay.IsZero())
		})
	}
}

func TestHolidayPremiumIsAdditive(t *testing.T) {
	rules := rates.HolidayRules{
		Formula:           rates.Holiday4WeekAverage,
		PremiumMultiplier: decimal.RequireFromString("1.5"),
	}
	facts := domain.HolidayFacts{
		WagesPrior4Weeks:     decimal.NewFromInt(4000),
		Worked:               true,
		HoursWorkedOnHoliday: decimal.NewFromInt(8),
	}

	result, err := CalculateHoliday(HolidayInput{
		Rules:             &rules,
		Facts:             &facts,
		EmploymentDays:    365,
		RegularHourlyRate: decimal.NewFromInt(25),
	})
	require.NoError(t, err)
	assert.True(t, result.HolidayPay.Equal(decimal.NewFromInt(200)),
		"holiday pay stands on its own, got %s", result.HolidayPay)
	assert.True(t, result.PremiumPay.Equal(decimal.NewFromInt(300)),
		"premium 25 * 8 * 1.5, got %s", result.PremiumPay)
}

func TestHolidaySubstituteDaySuppressesPremium(t *testing.T) {
	rules := rates.HolidayRules{
		Formula:           rates.Holiday4WeekAverage,
		PremiumMultiplier: decimal.RequireFromString("1.5"),
	}
	facts := domain.HolidayFacts{
		WagesPrior4Weeks:     decimal.NewFromInt(4000),
		Worked:               true,
		HoursWorkedOnHoliday: decimal.NewFromInt(8),
	}

	result, err := CalculateHoliday(HolidayInput{
		Rules:                &rules,
		Facts:                &facts,
		EmploymentDays:       365,
		RegularHourlyRate:    decimal.NewFromInt(25),
		SubstituteDayElected: true,
	})
	require.NoError(t, err)
	assert.True(t, result.HolidayPay.Equal(decimal.NewFromInt(200)))
	assert.True(t, result.PremiumPay.IsZero(),
		"substitute day replaces the premium, got %s", result.PremiumPay)
}
