package rates

import (
	"fmt"

	"github.com/maplepay/payroll-engine/internal/domain"
	"github.com/shopspring/decimal"
)

// Validate checks the structural invariants of a rate table. A violation is a
// ConfigurationError: the table must be fixed, never worked around with a
// guessed bracket.
//
// Bracket invariants: the table partitions [0, inf) with no gaps or overlaps,
// rates are monotonically non-decreasing, and each bracket's K equals the
// cumulative tax constant implied by the lower brackets' rates, i.e.
// K(i) = K(i-1) + (rate(i) - rate(i-1)) * thresholdLow(i).
func Validate(t *RateTable) error {
	fail := func(format string, args ...any) error {
		return &domain.ConfigurationError{
			Jurisdiction: t.Jurisdiction,
			Year:         t.Year,
			Reason:       fmt.Sprintf(format, args...),
		}
	}

	if t.Year == 0 {
		return fail("year is required")
	}
	if t.Jurisdiction != domain.Federal && !t.Jurisdiction.IsProvince() {
		return fail("unknown jurisdiction")
	}

	if t.ProvincialTaxExternal {
		if len(t.Brackets) != 0 {
			return fail("externally administered provincial tax must not carry brackets")
		}
	} else {
		if err := validateBrackets(t, fail); err != nil {
			return err
		}
		if t.CreditRate.IsZero() {
			return fail("credit rate is required")
		}
		if !t.CreditRate.Equal(t.Brackets[0].Rate) {
			return fail("credit rate %s does not match lowest bracket rate %s", t.CreditRate, t.Brackets[0].Rate)
		}
		if t.BPA.Amount.LessThanOrEqual(decimal.Zero) {
			return fail("basic personal amount must be positive")
		}
		if t.BPA.HasPhaseOut() {
			if t.BPA.Floor.GreaterThan(t.BPA.Amount) {
				return fail("BPA floor exceeds full amount")
			}
			if t.BPA.PhaseOutEnd.LessThanOrEqual(t.BPA.PhaseOutStart) {
				return fail("BPA phase-out end must exceed start")
			}
		}
	}

	if t.Jurisdiction == domain.Federal {
		if err := validateFederalBlocks(t, fail); err != nil {
			return err
		}
	}

	if t.Surtax != nil {
		if t.Surtax.Threshold2.LessThan(t.Surtax.Threshold1) {
			return fail("surtax threshold 2 below threshold 1")
		}
	}
	for i, row := range t.HealthPremium {
		if i > 0 && row.Threshold.LessThanOrEqual(t.HealthPremium[i-1].Threshold) {
			return fail("health premium thresholds must be strictly increasing")
		}
	}

	for i, tier := range t.VacationTiers {
		if i > 0 && tier.MinYears <= t.VacationTiers[i-1].MinYears {
			return fail("vacation tiers must be ordered by years of service")
		}
		if tier.Rate.LessThanOrEqual(decimal.Zero) {
			return fail("vacation tier rate must be positive")
		}
	}

	if t.Holiday != nil {
		if t.Holiday.Formula == "" {
			return fail("holiday formula is required")
		}
		if t.Holiday.PremiumMultiplier.LessThan(decimal.NewFromInt(1)) {
			return fail("holiday premium multiplier must be at least 1")
		}
		if (t.Holiday.MinDaysWorkedInLookback == 0) != (t.Holiday.LookbackDays == 0) {
			return fail("holiday lookback rule requires both days-worked and window")
		}
	}

	return nil
}

func validateBrackets(t *RateTable, fail func(string, ...any) error) error {
	if len(t.Brackets) == 0 {
		return fail("no tax brackets")
	}
	first := t.Brackets[0]
	if !first.ThresholdLow.IsZero() {
		return fail("first bracket must start at zero")
	}
	if !first.K.IsZero() {
		return fail("first bracket K must be zero")
	}
	for i, b := range t.Brackets {
		last := i == len(t.Brackets)-1
		if b.Rate.LessThanOrEqual(decimal.Zero) {
			return fail("bracket %d: rate must be positive", i)
		}
		if last {
			if !b.Unbounded() {
				return fail("final bracket must be unbounded above")
			}
			continue
		}
		if b.Unbounded() {
			return fail("bracket %d: only the final bracket may be unbounded", i)
		}
		if b.ThresholdHigh.LessThanOrEqual(b.ThresholdLow) {
			return fail("bracket %d: upper threshold must exceed lower", i)
		}
		next := t.Brackets[i+1]
		if !next.ThresholdLow.Equal(b.ThresholdHigh) {
			return fail("bracket %d/%d: gap or overlap at %s", i, i+1, b.ThresholdHigh)
		}
		if next.Rate.LessThan(b.Rate) {
			return fail("bracket %d: rate decreases", i+1)
		}
		// K invariant: asserted, not recomputed at calculation time.
		wantK := b.K.Add(next.Rate.Sub(b.Rate).Mul(next.ThresholdLow))
		if !next.K.Equal(wantK) {
			return fail("bracket %d: K constant %s does not match cumulative value %s", i+1, next.K, wantK)
		}
	}
	return nil
}

func validateFederalBlocks(t *RateTable, fail func(string, ...any) error) error {
	cpp := t.CPP
	if cpp.YMPE.LessThanOrEqual(cpp.BasicExemption) {
		return fail("YMPE must exceed the basic exemption")
	}
	if cpp.YAMPE.LessThan(cpp.YMPE) {
		return fail("YAMPE must be at least YMPE")
	}
	if cpp.ContributionRate.LessThanOrEqual(decimal.Zero) || cpp.CPP2Rate.LessThanOrEqual(decimal.Zero) {
		return fail("CPP rates must be positive")
	}
	if cpp.MaxBaseContribution.LessThanOrEqual(decimal.Zero) || cpp.MaxCPP2Contribution.LessThanOrEqual(decimal.Zero) {
		return fail("CPP annual maximums must be positive")
	}
	if cpp.CreditRatio.LessThanOrEqual(decimal.Zero) || cpp.CreditRatio.GreaterThan(decimal.NewFromInt(1)) {
		return fail("CPP credit ratio must be in (0, 1]")
	}
	ei := t.EI
	if ei.MaxInsurableEarnings.LessThanOrEqual(decimal.Zero) || ei.EmployeeRate.LessThanOrEqual(decimal.Zero) {
		return fail("EI parameters must be positive")
	}
	if ei.MaxEmployeePremium.LessThanOrEqual(decimal.Zero) || ei.MaxEmployerPremium.LessThanOrEqual(decimal.Zero) {
		return fail("EI annual maximums must be positive")
	}
	if ei.EmployerMultiplier.LessThan(decimal.NewFromInt(1)) {
		return fail("EI employer multiplier must be at least 1")
	}
	if t.QuebecAbatement.LessThanOrEqual(decimal.Zero) || t.QuebecAbatement.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fail("Quebec abatement must be in (0, 1)")
	}
	return nil
}
