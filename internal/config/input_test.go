package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/maplepay/payroll-engine/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const runYAML = `
tax_year: 2025
employees:
  - profile:
      id: E-100
      name: Avery Chen
      province: ON
      pay_periods_per_year: 26
      compensation: salaried
      hire_date: 2023-01-15T00:00:00Z
      vacation:
        payout_method: accrual
        rate: "0.04"
    period:
      period_start: 2025-06-02T00:00:00Z
      period_end: 2025-06-15T00:00:00Z
      pay_date: 2025-06-20T00:00:00Z
      earnings:
        regular: "2307.69"
    ytd:
      year: 2025
      gross: "11538.45"
      cpp: "646.50"
  - profile:
      id: E-101
      name: Sam Tremblay
      province: QC
      pay_periods_per_year: 26
      compensation: hourly
      hourly_rate: "28.50"
      quebec_resident: true
      hire_date: 2024-03-01T00:00:00Z
      vacation:
        payout_method: pay_as_you_go
        rate: "0.04"
    period:
      period_start: 2025-06-02T00:00:00Z
      period_end: 2025-06-15T00:00:00Z
      pay_date: 2025-06-20T00:00:00Z
      earnings:
        regular: "2280.00"
      hours_worked: "80"
    ytd:
      year: 2025
`

func writeRun(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	parser := NewInputParser()
	run, err := parser.LoadFromFile(writeRun(t, runYAML))
	require.NoError(t, err)

	assert.Equal(t, 2025, run.TaxYear)
	require.Len(t, run.Employees, 2)

	first := run.Employees[0]
	assert.Equal(t, "E-100", first.Profile.ID)
	assert.Equal(t, domain.ON, first.Profile.Province)
	assert.Equal(t, domain.VacationAccrual, first.Profile.Vacation.PayoutMethod)
	assert.True(t, first.Period.Earnings.Regular.Equal(decimal.RequireFromString("2307.69")))
	assert.True(t, first.Ytd.CPP.Equal(decimal.RequireFromString("646.50")))

	second := run.Employees[1]
	assert.Equal(t, domain.Hourly, second.Profile.Compensation)
	assert.True(t, second.Profile.QuebecResident)

	items := run.ToBatchItems()
	require.Len(t, items, 2)
	assert.Equal(t, "E-100", items[0].Employee.ID)
}

func TestLoadFromFileMissing(t *testing.T) {
	parser := NewInputParser()
	_, err := parser.LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func validEntry() RunEntry {
	return RunEntry{
		Profile: domain.EmployeeProfile{
			ID:                "E-1",
			Province:          domain.BC,
			PayPeriodsPerYear: 26,
			Compensation:      domain.Salaried,
			HireDate:          time.Date(2022, 5, 1, 0, 0, 0, 0, time.UTC),
			Vacation: domain.VacationConfig{
				PayoutMethod: domain.VacationPayAsYouGo,
				Rate:         decimal.RequireFromString("0.04"),
			},
		},
		Period: domain.PayPeriodInput{
			PeriodStart: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
			PeriodEnd:   time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
			Earnings:    domain.EarningsBreakdown{Regular: decimal.NewFromInt(2000)},
		},
		Ytd: domain.YtdAccumulators{Year: 2025},
	}
}

func TestValidateRun(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RunInput)
		errMsg string
	}{
		{
			name:   "tax year out of range",
			mutate: func(r *RunInput) { r.TaxYear = 1995 },
			errMsg: "out of range",
		},
		{
			name:   "no employees",
			mutate: func(r *RunInput) { r.Employees = nil },
			errMsg: "no employees",
		},
		{
			name: "duplicate employee ids",
			mutate: func(r *RunInput) {
				r.Employees = append(r.Employees, r.Employees[0])
			},
			errMsg: "duplicate id",
		},
		{
			name:   "missing id",
			mutate: func(r *RunInput) { r.Employees[0].Profile.ID = "" },
			errMsg: "id is required",
		},
		{
			name:   "federal is not a province",
			mutate: func(r *RunInput) { r.Employees[0].Profile.Province = domain.Federal },
			errMsg: "province",
		},
		{
			name:   "unsupported period count",
			mutate: func(r *RunInput) { r.Employees[0].Profile.PayPeriodsPerYear = 13 },
			errMsg: "pay periods",
		},
		{
			name: "hourly without a rate",
			mutate: func(r *RunInput) {
				r.Employees[0].Profile.Compensation = domain.Hourly
			},
			errMsg: "hourly rate",
		},
		{
			name: "vacation rate above 20 percent",
			mutate: func(r *RunInput) {
				r.Employees[0].Profile.Vacation.Rate = decimal.RequireFromString("0.25")
			},
			errMsg: "vacation rate",
		},
		{
			name: "period end before start",
			mutate: func(r *RunInput) {
				r.Employees[0].Period.PeriodEnd = time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
			},
			errMsg: "period end",
		},
		{
			name: "negative earnings",
			mutate: func(r *RunInput) {
				r.Employees[0].Period.Earnings.Overtime = decimal.RequireFromString("-5")
			},
			errMsg: "cannot be negative",
		},
		{
			name: "commission income needs periods elapsed",
			mutate: func(r *RunInput) {
				r.Employees[0].Profile.CommissionIncome = true
			},
			errMsg: "periods elapsed",
		},
		{
			name: "ytd year mismatch",
			mutate: func(r *RunInput) {
				r.Employees[0].Ytd.Year = 2024
			},
			errMsg: "does not match tax year",
		},
		{
			name: "ytd vacation taken beyond accrued",
			mutate: func(r *RunInput) {
				r.Employees[0].Ytd.VacationTaken = decimal.NewFromInt(100)
			},
			errMsg: "vacation taken",
		},
	}

	parser := NewInputParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := &RunInput{TaxYear: 2025, Employees: []RunEntry{validEntry()}}
			tt.mutate(run)
			err := parser.ValidateRun(run)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	run := &RunInput{TaxYear: 2025, Employees: []RunEntry{validEntry()}}
	assert.NoError(t, parser.ValidateRun(run))
}
