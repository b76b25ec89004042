package output

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/maplepay/payroll-engine/internal/calculation"
	"github.com/maplepay/payroll-engine/internal/domain"
)

// CSVFormatter renders one row per employee, posted and failed alike. Failed
// rows carry the error in the status column and blank amounts, so a run's
// export always accounts for every input employee.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(result *calculation.BatchResult) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"employee_id", "status", "total_gross",
		"cpp", "cpp2", "ei", "federal_tax", "provincial_tax",
		"vacation_paid", "vacation_balance", "holiday_pay", "holiday_premium",
		"pre_tax_deductions", "total_deductions", "net_pay",
		"employer_cpp", "employer_cpp2", "employer_ei",
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("writing CSV header: %w", err)
	}

	for _, r := range result.Posted {
		if err := w.Write(postedRow(r)); err != nil {
			return nil, fmt.Errorf("writing CSV row for %s: %w", r.EmployeeID, err)
		}
	}
	for _, f := range result.Failed {
		row := make([]string, len(header))
		row[0] = f.EmployeeID
		row[1] = "failed: " + f.Err.Error()
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing CSV row for %s: %w", f.EmployeeID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing CSV: %w", err)
	}
	return buf.Bytes(), nil
}

func postedRow(r *domain.PayrollResult) []string {
	return []string{
		r.EmployeeID,
		string(r.Status),
		r.TotalGross.StringFixed(2),
		r.CPP.Amount.StringFixed(2),
		r.CPP2.Amount.StringFixed(2),
		r.EI.Amount.StringFixed(2),
		r.FederalTax.Amount.StringFixed(2),
		r.ProvincialTax.Amount.StringFixed(2),
		r.Vacation.Paid.StringFixed(2),
		r.Vacation.Balance.StringFixed(2),
		r.Holiday.HolidayPay.StringFixed(2),
		r.Holiday.PremiumPay.StringFixed(2),
		r.PreTaxDeductions.StringFixed(2),
		r.TotalDeductions.StringFixed(2),
		r.NetPay.StringFixed(2),
		r.CPP.Employer.StringFixed(2),
		r.CPP2.Employer.StringFixed(2),
		r.EI.Employer.StringFixed(2),
	}
}
