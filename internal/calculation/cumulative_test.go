package calculation

import (
	"testing"

	"github.com/maplepay/payroll-engine/internal/domain"
	"github.com/maplepay/payroll-engine/internal/rates"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flatTaxCalculator strips the credits so cumulative expectations are exact:
// 10% federal, 5% provincial, no BPA.
func flatTaxCalculator() *TaxCalculator {
	fed := &rates.RateTable{
		Jurisdiction: domain.Federal,
		Year:         2025,
		Brackets: []rates.TaxBracket{
			{ThresholdLow: decimal.Zero, Rate: decimal.RequireFromString("0.10"), K: decimal.Zero},
		},
		CreditRate: decimal.RequireFromString("0.10"),
	}
	prov := &rates.RateTable{
		Jurisdiction: domain.AB,
		Year:         2025,
		Brackets: []rates.TaxBracket{
			{ThresholdLow: decimal.Zero, Rate: decimal.RequireFromString("0.05"), K: decimal.Zero},
		},
		CreditRate: decimal.RequireFromString("0.05"),
	}
	return NewTaxCalculator(fed, prov)
}

func TestCumulativeConstantIncomeMatchesPerPeriod(t *testing.T) {
	tc := flatTaxCalculator()

	// Constant 1000/month: every period projects the same 12000 annual and
	// withholds exactly one twelfth of the annual tax.
	cumulative := decimal.Zero
	ytdFed := decimal.Zero
	ytdProv := decimal.Zero
	for n := 1; n <= 12; n++ {
		cumulative = cumulative.Add(decimal.NewFromInt(1000))
		result, err := tc.CalculateCumulative(CumulativeInput{
			CumulativeTaxable: cumulative,
			PeriodsElapsed:    n,
			PeriodsPerYear:    12,
			YtdFederalTax:     ytdFed,
			YtdProvincialTax:  ytdProv,
		})
		require.NoError(t, err)
		assert.True(t, result.FederalPeriod.Equal(decimal.NewFromInt(100)),
			"period %d: expected 100, got %s", n, result.FederalPeriod)
		assert.True(t, result.ProvincialPeriod.Equal(decimal.NewFromInt(50)),
			"period %d: expected 50, got %s", n, result.ProvincialPeriod)
		ytdFed = ytdFed.Add(result.FederalPeriod)
		ytdProv = ytdProv.Add(result.ProvincialPeriod)
	}
	assert.True(t, ytdFed.Equal(decimal.NewFromInt(1200)))
}

func TestCumulativeSelfCorrectsAfterSpike(t *testing.T) {
	tc := flatTaxCalculator()

	// A 2000 first period over-projects the year; a zero second period
	// brings the projection back and the shortfall clamps at zero rather
	// than refunding.
	first, err := tc.CalculateCumulative(CumulativeInput{
		CumulativeTaxable: decimal.NewFromInt(2000),
		PeriodsElapsed:    1,
		PeriodsPerYear:    12,
	})
	require.NoError(t, err)
	assert.True(t, first.FederalPeriod.Equal(decimal.NewFromInt(200)),
		"expected 200, got %s", first.FederalPeriod)

	second, err := tc.CalculateCumulative(CumulativeInput{
		CumulativeTaxable: decimal.NewFromInt(2000),
		PeriodsElapsed:    2,
		PeriodsPerYear:    12,
		YtdFederalTax:     first.FederalPeriod,
	})
	require.NoError(t, err)
	assert.True(t, second.FederalPeriod.IsZero(),
		"over-withheld periods clamp to zero, got %s", second.FederalPeriod)
}

func TestCumulativeYearTotalConvergence(t *testing.T) {
	tc := flatTaxCalculator()

	// Fluctuating commission income: whatever the per-period pattern, the
	// year's withholding total converges to 10 percent of the year's income.
	incomes := []int64{5000, 0, 12000, 800, 0, 0, 9000, 3000, 0, 15000, 2000, 7000}
	cumulative := decimal.Zero
	ytdFed := decimal.Zero
	for n, inc := range incomes {
		cumulative = cumulative.Add(decimal.NewFromInt(inc))
		result, err := tc.CalculateCumulative(CumulativeInput{
			CumulativeTaxable: cumulative,
			PeriodsElapsed:    n + 1,
			PeriodsPerYear:    12,
			YtdFederalTax:     ytdFed,
		})
		require.NoError(t, err)
		ytdFed = ytdFed.Add(result.FederalPeriod)
	}
	expected := cumulative.Mul(decimal.RequireFromString("0.10"))
	diff := ytdFed.Sub(expected).Abs()
	assert.True(t, diff.LessThanOrEqual(decimal.RequireFromString("0.01")),
		"year total %s should converge to %s", ytdFed, expected)
}

func TestCumulativeValidation(t *testing.T) {
	tc := flatTaxCalculator()

	_, err := tc.CalculateCumulative(CumulativeInput{
		CumulativeTaxable: decimal.NewFromInt(1000),
		PeriodsElapsed:    0,
		PeriodsPerYear:    12,
	})
	assert.Error(t, err, "zero periods elapsed")

	_, err = tc.CalculateCumulative(CumulativeInput{
		CumulativeTaxable: decimal.NewFromInt(1000),
		PeriodsElapsed:    13,
		PeriodsPerYear:    12,
	})
	assert.Error(t, err, "elapsed beyond the year")

	_, err = tc.CalculateCumulative(CumulativeInput{
		CumulativeTaxable: decimal.NewFromInt(-1),
		PeriodsElapsed:    1,
		PeriodsPerYear:    12,
	})
	assert.Error(t, err)
}
