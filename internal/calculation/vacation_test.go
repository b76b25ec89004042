package calculation

import (
	"testing"

	"github.com/maplepay/payroll-engine/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVacationPayAsYouGo(t *testing.T) {
	result, err := CalculateVacation(VacationInput{
		GrossPeriod: decimal.NewFromInt(2000),
		Config: domain.VacationConfig{
			PayoutMethod: domain.VacationPayAsYouGo,
			Rate:         decimal.RequireFromString("0.04"),
		},
		MinimumRate: decimal.RequireFromString("0.04"),
	})
	require.NoError(t, err)
	assert.True(t, result.Paid.Equal(decimal.NewFromInt(80)),
		"expected 80, got %s", result.Paid)
	assert.True(t, result.Accrued.IsZero(), "pay-as-you-go never accrues")
	assert.True(t, result.Balance.IsZero())
}

func TestVacationAccrual(t *testing.T) {
	config := domain.VacationConfig{
		PayoutMethod: domain.VacationAccrual,
		Rate:         decimal.RequireFromString("0.04"),
	}
	minRate := decimal.RequireFromString("0.04")

	t.Run("accrues onto the balance", func(t *testing.T) {
		result, err := CalculateVacation(VacationInput{
			GrossPeriod: decimal.NewFromInt(2000),
			Config:      config,
			MinimumRate: minRate,
			YtdAccrued:  decimal.NewFromInt(500),
			YtdTaken:    decimal.NewFromInt(100),
		})
		require.NoError(t, err)
		assert.True(t, result.Accrued.Equal(decimal.NewFromInt(80)))
		assert.True(t, result.Paid.IsZero())
		assert.True(t, result.Balance.Equal(decimal.NewFromInt(480)),
			"expected 480, got %s", result.Balance)
	})

	t.Run("day-count payout", func(t *testing.T) {
		result, err := CalculateVacation(VacationInput{
			GrossPeriod: decimal.NewFromInt(2000),
			Config:      config,
			MinimumRate: minRate,
			YtdAccrued:  decimal.NewFromInt(500),
			Request: &domain.VacationRequest{
				Days:            decimal.NewFromInt(2),
				EntitlementDays: decimal.NewFromInt(10),
			},
		})
		require.NoError(t, err)
		// 2 days of (500+80)/10 per day.
		assert.True(t, result.Paid.Equal(decimal.NewFromInt(116)),
			"expected 116, got %s", result.Paid)
		assert.True(t, result.Balance.Equal(decimal.NewFromInt(464)),
			"expected 464, got %s", result.Balance)
		assert.Equal(t, domain.ReasonNone, result.Reason)
	})

	t.Run("lump sum pays the whole balance", func(t *testing.T) {
		result, err := CalculateVacation(VacationInput{
			GrossPeriod: decimal.Zero,
			Config:      config,
			MinimumRate: minRate,
			YtdAccrued:  decimal.NewFromInt(500),
			YtdTaken:    decimal.NewFromInt(200),
			Request:     &domain.VacationRequest{LumpSum: true},
		})
		require.NoError(t, err)
		assert.True(t, result.Paid.Equal(decimal.NewFromInt(300)))
		assert.True(t, result.Balance.IsZero())
	})

	t.Run("request beyond the balance is denied not clamped", func(t *testing.T) {
		result, err := CalculateVacation(VacationInput{
			GrossPeriod: decimal.Zero,
			Config:      config,
			MinimumRate: minRate,
			YtdAccrued:  decimal.NewFromInt(100),
			Request: &domain.VacationRequest{
				Days:            decimal.NewFromInt(20),
				EntitlementDays: decimal.NewFromInt(10),
			},
		})
		require.NoError(t, err)
		assert.Equal(t, domain.ReasonVacationBalance, result.Reason)
		assert.True(t, result.Paid.IsZero(), "denied request pays nothing, got %s", result.Paid)
		assert.True(t, result.Balance.Equal(decimal.NewFromInt(100)),
			"balance untouched on denial, got %s", result.Balance)
	})
}

func TestVacationValidation(t *testing.T) {
	_, err := CalculateVacation(VacationInput{
		GrossPeriod: decimal.NewFromInt(2000),
		Config: domain.VacationConfig{
			PayoutMethod: domain.VacationPayAsYouGo,
			Rate:         decimal.RequireFromString("0.03"),
		},
		MinimumRate: decimal.RequireFromString("0.04"),
	})
	assert.Error(t, err, "rate below the jurisdiction minimum")

	_, err = CalculateVacation(VacationInput{
		GrossPeriod: decimal.NewFromInt(2000),
		Config: domain.VacationConfig{
			PayoutMethod: domain.VacationAccrual,
			Rate:         decimal.RequireFromString("0.04"),
		},
		MinimumRate: decimal.RequireFromString("0.04"),
		YtdAccrued:  decimal.NewFromInt(100),
		YtdTaken:    decimal.NewFromInt(200),
	})
	assert.Error(t, err, "taken beyond accrued is invalid input")
}
