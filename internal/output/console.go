// Package output renders payroll results for the CLI: a pay-stub style
// console view and a CSV batch export. Formatters consume only PayrollResult
// fields; they never reach back into the engine.
package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/maplepay/payroll-engine/internal/calculation"
	"github.com/maplepay/payroll-engine/internal/domain"
	"github.com/shopspring/decimal"
)

// Formatter renders a batch result to bytes.
type Formatter interface {
	Name() string
	Format(result *calculation.BatchResult) ([]byte, error)
}

// FormatCurrency renders a decimal as a dollar amount.
func FormatCurrency(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// ConsoleFormatter renders a pay-stub style report, one block per employee.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(result *calculation.BatchResult) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "PAYROLL RUN RESULTS")
	fmt.Fprintln(&buf, strings.Repeat("=", 60))
	fmt.Fprintf(&buf, "Posted: %d   Failed: %d\n\n", len(result.Posted), len(result.Failed))

	for _, r := range result.Posted {
		writeStub(&buf, r)
	}

	if len(result.Failed) > 0 {
		fmt.Fprintln(&buf, "FAILURES")
		fmt.Fprintln(&buf, strings.Repeat("-", 60))
		for _, f := range result.Failed {
			fmt.Fprintf(&buf, "  %s: %v\n", f.EmployeeID, f.Err)
		}
	}
	return buf.Bytes(), nil
}

func writeStub(buf *bytes.Buffer, r *domain.PayrollResult) {
	fmt.Fprintf(buf, "Employee %s (%d)\n", r.EmployeeID, r.Year)
	fmt.Fprintln(buf, strings.Repeat("-", 60))
	fmt.Fprintf(buf, "  Gross Pay:            %s\n", FormatCurrency(r.TotalGross))
	if !r.Vacation.Paid.IsZero() || !r.Vacation.Accrued.IsZero() {
		fmt.Fprintf(buf, "    Vacation Paid:      %s  (balance %s)\n",
			FormatCurrency(r.Vacation.Paid), FormatCurrency(r.Vacation.Balance))
	}
	if r.Holiday.Entitled {
		fmt.Fprintf(buf, "    Holiday Pay:        %s", FormatCurrency(r.Holiday.HolidayPay))
		if !r.Holiday.PremiumPay.IsZero() {
			fmt.Fprintf(buf, "  + premium %s", FormatCurrency(r.Holiday.PremiumPay))
		}
		fmt.Fprintln(buf)
	} else if r.Holiday.Reason != domain.ReasonNone {
		fmt.Fprintf(buf, "    Holiday Pay:        not entitled (%s)\n", r.Holiday.Reason)
	}
	fmt.Fprintf(buf, "  CPP:                  %s%s\n", FormatCurrency(r.CPP.Amount), maxNote(r.CPP))
	if !r.CPP2.Amount.IsZero() || r.CPP2.Reason != domain.ReasonNone {
		fmt.Fprintf(buf, "  CPP2:                 %s%s\n", FormatCurrency(r.CPP2.Amount), maxNote(r.CPP2))
	}
	fmt.Fprintf(buf, "  EI:                   %s%s\n", FormatCurrency(r.EI.Amount), maxNote(r.EI))
	fmt.Fprintf(buf, "  Federal Tax:          %s\n", FormatCurrency(r.FederalTax.Amount))
	fmt.Fprintf(buf, "  Provincial Tax:       %s\n", FormatCurrency(r.ProvincialTax.Amount))
	if !r.PreTaxDeductions.IsZero() {
		fmt.Fprintf(buf, "  Pre-Tax Deductions:   %s\n", FormatCurrency(r.PreTaxDeductions))
	}
	fmt.Fprintf(buf, "  Net Pay:              %s\n\n", FormatCurrency(r.NetPay))
}

func maxNote(line domain.DeductionLine) string {
	if line.Reason == domain.ReasonAnnualMaxReached {
		return "  (annual maximum reached)"
	}
	return ""
}
