package output

import (
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/maplepay/payroll-engine/internal/calculation"
	"github.com/maplepay/payroll-engine/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBatch() *calculation.BatchResult {
	return &calculation.BatchResult{
		Posted: []*domain.PayrollResult{
			{
				EmployeeID:    "E-100",
				Year:          2025,
				Status:        domain.StatusPosted,
				TotalGross:    decimal.RequireFromString("2307.69"),
				CPP:           domain.DeductionLine{Amount: decimal.RequireFromString("129.30"), Employer: decimal.RequireFromString("129.30")},
				EI:            domain.DeductionLine{Amount: decimal.RequireFromString("37.85"), Employer: decimal.RequireFromString("52.99")},
				FederalTax:    domain.DeductionLine{Amount: decimal.RequireFromString("228.36")},
				ProvincialTax: domain.DeductionLine{Amount: decimal.RequireFromString("118.73")},
				Vacation:      domain.VacationComponent{Accrued: decimal.RequireFromString("92.31"), Balance: decimal.RequireFromString("92.31")},
				NetPay:        decimal.RequireFromString("1793.45"),
			},
		},
		Failed: []calculation.BatchFailure{
			{EmployeeID: "E-BAD", Err: errors.New("unsupported period count")},
		},
	}
}

func TestConsoleFormatter(t *testing.T) {
	data, err := ConsoleFormatter{}.Format(sampleBatch())
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, "Posted: 1   Failed: 1")
	assert.Contains(t, text, "Employee E-100")
	assert.Contains(t, text, "$129.30")
	assert.Contains(t, text, "$1793.45")
	assert.Contains(t, text, "E-BAD: unsupported period count")
}

func TestCSVFormatter(t *testing.T) {
	data, err := CSVFormatter{}.Format(sampleBatch())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus one posted plus one failed")

	header := records[0]
	assert.Equal(t, "employee_id", header[0])

	posted := records[1]
	assert.Equal(t, "E-100", posted[0])
	assert.Equal(t, string(domain.StatusPosted), posted[1])
	assert.Equal(t, "2307.69", posted[2])
	assert.Equal(t, "37.85", posted[5])

	failed := records[2]
	assert.Equal(t, "E-BAD", failed[0])
	assert.Contains(t, failed[1], "failed:")
}
