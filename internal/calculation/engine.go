package calculation

import (
	"github.com/maplepay/payroll-engine/internal/domain"
	"github.com/maplepay/payroll-engine/internal/rates"
	"github.com/shopspring/decimal"
)

// Logger is the minimal logging surface the engine needs. The CLI installs a
// std-log adapter; library callers may leave it nil for silence.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

// Engine composes the statutory calculators into one payroll-period
// computation per employee. It holds only immutable dependencies (the rate
// store and a logger) and is safe for concurrent use.
type Engine struct {
	Rates *rates.Store
	Log   Logger
}

// NewEngine creates a payroll engine over a loaded rate store.
func NewEngine(store *rates.Store) *Engine {
	return &Engine{Rates: store, Log: nopLogger{}}
}

// NewEngineWithLogger creates a payroll engine with a logger installed.
func NewEngineWithLogger(store *rates.Store, log Logger) *Engine {
	if log == nil {
		log = nopLogger{}
	}
	return &Engine{Rates: store, Log: log}
}

// ComputePayrollPeriod runs one employee's pay period end to end: validate,
// resolve rate tables, compute vacation and holiday components, statutory
// deductions and tax, then net pay and the posted YTD snapshot.
//
// The computation is pure: identical inputs produce identical output, and
// no input value is mutated. Any ConfigurationError or InputValidationError
// aborts the whole period atomically; there is no partial result.
func (e *Engine) ComputePayrollPeriod(
	emp *domain.EmployeeProfile,
	period *domain.PayPeriodInput,
	ytd domain.YtdAccumulators,
	jurisdiction domain.Jurisdiction,
	taxYear int,
) (*domain.PayrollResult, error) {
	if err := e.validateInputs(emp, period, ytd, jurisdiction, taxYear); err != nil {
		return nil, err
	}

	federal, err := e.Rates.Lookup(domain.Federal, taxYear)
	if err != nil {
		return nil, err
	}
	provincial, err := e.Rates.Lookup(jurisdiction, taxYear)
	if err != nil {
		return nil, err
	}

	result := &domain.PayrollResult{
		EmployeeID: emp.ID,
		Year:       taxYear,
		Status:     domain.StatusPendingInput,
		Earnings:   period.Earnings,
	}

	baseGross := period.Earnings.Total()

	// Vacation pay rides on the period's earnings before statutory
	// deductions are applied.
	vacation, err := CalculateVacation(VacationInput{
		GrossPeriod: baseGross,
		Config:      emp.Vacation,
		MinimumRate: provincial.VacationRateFor(emp.YearsOfService(period.PeriodEnd)),
		YtdAccrued:  ytd.VacationAccrued,
		YtdTaken:    ytd.VacationTaken,
		Request:     period.Vacation,
	})
	if err != nil {
		return nil, err
	}
	result.Vacation = domain.VacationComponent{
		Paid:    vacation.Paid,
		Accrued: vacation.Accrued,
		Balance: vacation.Balance,
		Reason:  vacation.Reason,
	}

	var holidayPay decimal.Decimal
	if period.Holiday != nil {
		holiday, err := CalculateHoliday(HolidayInput{
			Rules:             provincial.Holiday,
			Facts:             period.Holiday,
			EmploymentDays:    emp.EmploymentDays(period.Holiday.HolidayDate),
			IrregularHours:    emp.IrregularHours,
			RegularHourlyRate: e.regularRate(emp, period),
			SubstituteDayElected: period.Holiday.SubstituteDayElected &&
				provincial.Holiday != nil && provincial.Holiday.EmployerChoiceSubstituteDay,
		})
		if err != nil {
			return nil, err
		}
		result.Holiday = holiday
		holidayPay = holiday.HolidayPay.Add(holiday.PremiumPay)
		if !holiday.Entitled {
			e.Log.Debugf("employee %s: holiday pay denied (%s)", emp.ID, holiday.Reason)
		}
	}

	totalGross := baseGross.Add(vacation.Paid).Add(holidayPay)
	result.TotalGross = totalGross
	result.Status = domain.StatusDeductionsComputed

	// Statutory deductions on the full gross.
	cppRes, err := NewCPPCalculator(federal.CPP).Calculate(CPPInput{
		PensionableEarnings: totalGross,
		PeriodsPerYear:      emp.PayPeriodsPerYear,
		YtdCPP:              ytd.CPPTowardMax(),
		YtdCPP2:             ytd.CPP2TowardMax(),
		YtdPensionable:      ytd.PensionableEarnings,
		CPPExempt:           emp.CPPExempt,
		CPP2Exempt:          emp.CPP2Exempt,
	})
	if err != nil {
		return nil, err
	}
	result.CPP = domain.DeductionLine{Amount: cppRes.Contribution, Employer: cppRes.Employer}
	result.CPP2 = domain.DeductionLine{Amount: cppRes.CPP2, Employer: cppRes.EmployerCPP2}
	if cppRes.BaseMaxed {
		result.CPP.Reason = domain.ReasonAnnualMaxReached
		e.Log.Infof("employee %s: CPP annual maximum reached", emp.ID)
	}
	if cppRes.CPP2Maxed {
		result.CPP2.Reason = domain.ReasonAnnualMaxReached
		e.Log.Infof("employee %s: CPP2 annual maximum reached", emp.ID)
	}

	eiRes, err := NewEICalculator(federal.EI, federal.EIEmployeeRateQC).Calculate(EIInput{
		InsurableEarnings: totalGross,
		YtdEI:             ytd.EITowardMax(),
		YtdEmployerEI:     ytd.EmployerEI,
		EIExempt:          emp.EIExempt,
		QuebecEmployment:  jurisdiction == domain.QC,
	})
	if err != nil {
		return nil, err
	}
	result.EI = domain.DeductionLine{Amount: eiRes.Premium, Employer: eiRes.EmployerPremium}
	if eiRes.Maxed {
		result.EI.Reason = domain.ReasonAnnualMaxReached
		e.Log.Infof("employee %s: EI annual maximum reached", emp.ID)
	}

	taxRes, err := e.computeTax(emp, period, ytd, federal, provincial, totalGross, cppRes, eiRes)
	if err != nil {
		return nil, err
	}
	result.FederalTax = domain.DeductionLine{Amount: taxRes.FederalPeriod}
	result.ProvincialTax = domain.DeductionLine{Amount: taxRes.ProvincialPeriod}

	preTax := period.PreTax.Total()
	result.PreTaxDeductions = preTax
	result.TotalDeductions = result.StatutoryDeductions().Add(preTax)
	result.NetPay = totalGross.Sub(result.TotalDeductions)
	result.Status = domain.StatusNetPayComputed

	result.UpdatedYtd = e.applyPeriod(ytd, result, totalGross, preTax, vacation, emp.Vacation.PayoutMethod)
	result.Status = domain.StatusPosted
	return result, nil
}

// computeTax selects the withholding method: cumulative averaging for
// commission-income employees, the standard annualized method otherwise.
func (e *Engine) computeTax(
	emp *domain.EmployeeProfile,
	period *domain.PayPeriodInput,
	ytd domain.YtdAccumulators,
	federal, provincial *rates.RateTable,
	totalGross decimal.Decimal,
	cppRes CPPResult,
	eiRes EIResult,
) (TaxResult, error) {
	tc := NewTaxCalculator(federal, provincial)
	periodTaxable := clampZero(totalGross.Sub(period.PreTax.Total()))

	if emp.CommissionIncome {
		return tc.CalculateCumulative(CumulativeInput{
			CumulativeTaxable: ytd.TaxableIncome.Add(periodTaxable),
			PeriodsElapsed:    period.PeriodsElapsed,
			PeriodsPerYear:    emp.PayPeriodsPerYear,
			YtdFederalTax:     ytd.FederalTax,
			YtdProvincialTax:  ytd.ProvincialTax,
			PeriodCPP:         cppRes.Contribution,
			PeriodEI:          eiRes.Premium,
			Claims:            emp.Claims,
			QuebecResident:    emp.QuebecResident,
		})
	}

	return tc.Calculate(TaxInput{
		GrossPeriod:      totalGross,
		PreTaxDeductions: period.PreTax.Total(),
		AnnualDeductions: emp.AnnualDeductions,
		PeriodsPerYear:   emp.PayPeriodsPerYear,
		PeriodCPP:        cppRes.Contribution,
		PeriodEI:         eiRes.Premium,
		Claims:           emp.Claims,
		QuebecResident:   emp.QuebecResident,
	})
}

// applyPeriod derives the posted YTD snapshot: the input snapshot plus this
// period's non-negative increments. The input value is never mutated.
func (e *Engine) applyPeriod(
	ytd domain.YtdAccumulators,
	r *domain.PayrollResult,
	totalGross, preTax decimal.Decimal,
	vacation VacationResult,
	method domain.VacationPayoutMethod,
) domain.YtdAccumulators {
	next := ytd
	next.Gross = ytd.Gross.Add(totalGross)
	next.PensionableEarnings = ytd.PensionableEarnings.Add(totalGross)
	next.InsurableEarnings = ytd.InsurableEarnings.Add(totalGross)
	next.CPP = ytd.CPP.Add(r.CPP.Amount)
	next.CPP2 = ytd.CPP2.Add(r.CPP2.Amount)
	next.EI = ytd.EI.Add(r.EI.Amount)
	next.EmployerEI = ytd.EmployerEI.Add(r.EI.Employer)
	next.FederalTax = ytd.FederalTax.Add(r.FederalTax.Amount)
	next.ProvincialTax = ytd.ProvincialTax.Add(r.ProvincialTax.Amount)
	next.TaxableIncome = ytd.TaxableIncome.Add(clampZero(totalGross.Sub(preTax)))
	next.VacationAccrued = ytd.VacationAccrued.Add(vacation.Accrued)
	// Pay-as-you-go payments never touch the balance; accrual payouts do.
	if method == domain.VacationAccrual {
		next.VacationTaken = ytd.VacationTaken.Add(vacation.Paid)
	}
	return next
}

// regularRate returns the employee's regular hourly rate: the configured rate
// for hourly employees, otherwise derived from the period's regular earnings
// and hours.
func (e *Engine) regularRate(emp *domain.EmployeeProfile, period *domain.PayPeriodInput) decimal.Decimal {
	if emp.Compensation == domain.Hourly && !emp.HourlyRate.IsZero() {
		return emp.HourlyRate
	}
	if period.HoursWorked.IsZero() {
		return decimal.Zero
	}
	return period.Earnings.Regular.Div(period.HoursWorked)
}

func (e *Engine) validateInputs(
	emp *domain.EmployeeProfile,
	period *domain.PayPeriodInput,
	ytd domain.YtdAccumulators,
	jurisdiction domain.Jurisdiction,
	taxYear int,
) error {
	if emp == nil || period == nil {
		return &domain.InputValidationError{Field: "input", Reason: "employee profile and pay period are required"}
	}
	if !jurisdiction.IsProvince() {
		return &domain.InputValidationError{Field: "jurisdiction", Reason: "province of employment is required"}
	}
	if err := validatePeriods(emp.PayPeriodsPerYear); err != nil {
		return err
	}
	for field, v := range map[string]decimal.Decimal{
		"earnings.regular":       period.Earnings.Regular,
		"earnings.overtime":      period.Earnings.Overtime,
		"earnings.holiday":       period.Earnings.Holiday,
		"earnings.vacation_paid": period.Earnings.VacationPaid,
		"earnings.other":         period.Earnings.Other,
		"hours_worked":           period.HoursWorked,
		"pre_tax":                period.PreTax.Total(),
	} {
		if v.LessThan(decimal.Zero) {
			return &domain.InputValidationError{Field: field, Reason: "must be non-negative"}
		}
	}
	if !period.PeriodEnd.IsZero() && emp.HireDate.After(period.PeriodEnd) {
		return &domain.InputValidationError{Field: "hire_date", Reason: "after the pay period"}
	}
	if ytd.Year != taxYear {
		return &domain.InputValidationError{Field: "ytd.year", Reason: "does not match the requested tax year"}
	}
	return nil
}
