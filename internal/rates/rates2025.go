package rates

import (
	"github.com/maplepay/payroll-engine/internal/domain"
	"github.com/shopspring/decimal"
)

// d parses a decimal literal. Table literals are authored as strings so that
// every constant is exact; a malformed literal panics at init, which is the
// right failure mode for compiled-in regulatory data.
func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// defaultVacationTiers is the two-weeks-then-three pattern most jurisdictions
// use: 4% under five years of service, 6% after.
func defaultVacationTiers() []VacationTier {
	return []VacationTier{
		{MinYears: 0, Rate: d("0.04")},
		{MinYears: 5, Rate: d("0.06")},
	}
}

// Tables2025 returns the complete 2025 rate tables for the federal
// jurisdiction and all thirteen provinces and territories.
func Tables2025() []*RateTable {
	return []*RateTable{
		federal2025(),
		alberta2025(),
		britishColumbia2025(),
		manitoba2025(),
		newBrunswick2025(),
		newfoundland2025(),
		novaScotia2025(),
		northwestTerritories2025(),
		nunavut2025(),
		ontario2025(),
		princeEdwardIsland2025(),
		quebec2025(),
		saskatchewan2025(),
		yukon2025(),
	}
}

func federal2025() *RateTable {
	return &RateTable{
		Jurisdiction: domain.Federal,
		Year:         2025,
		Brackets: []TaxBracket{
			{ThresholdLow: d("0"), ThresholdHigh: d("57375"), Rate: d("0.15"), K: d("0")},
			{ThresholdLow: d("57375"), ThresholdHigh: d("114750"), Rate: d("0.205"), K: d("3155.625")},
			{ThresholdLow: d("114750"), ThresholdHigh: d("177882"), Rate: d("0.26"), K: d("9466.875")},
			{ThresholdLow: d("177882"), ThresholdHigh: d("253414"), Rate: d("0.29"), K: d("14803.335")},
			{ThresholdLow: d("253414"), Rate: d("0.33"), K: d("24939.895")},
		},
		CreditRate: d("0.15"),
		BPA: BPAFormula{
			Amount:        d("16129"),
			PhaseOutStart: d("177882"),
			PhaseOutEnd:   d("253414"),
			Floor:         d("14538"),
		},
		EmploymentAmount: d("1471"),
		CPP: CPPParams{
			YMPE:                d("71300"),
			YAMPE:               d("81200"),
			BasicExemption:      d("3500"),
			ContributionRate:    d("0.0595"),
			CPP2Rate:            d("0.04"),
			MaxBaseContribution: d("4034.10"),
			MaxCPP2Contribution: d("396.00"),
			CreditRatio:         d("0.8319"), // 4.95 / 5.95, enhanced portion is a deduction
		},
		EI: EIParams{
			MaxInsurableEarnings: d("65700"),
			EmployeeRate:         d("0.0164"),
			MaxEmployeePremium:   d("1077.48"),
			EmployerMultiplier:   d("1.4"),
			MaxEmployerPremium:   d("1508.47"),
		},
		QuebecAbatement:  d("0.165"),
		EIEmployeeRateQC: d("0.0131"),
	}
}

func alberta2025() *RateTable {
	return &RateTable{
		Jurisdiction: domain.AB,
		Year:         2025,
		Brackets: []TaxBracket{
			{ThresholdLow: d("0"), ThresholdHigh: d("151234"), Rate: d("0.10"), K: d("0")},
			{ThresholdLow: d("151234"), ThresholdHigh: d("181481"), Rate: d("0.12"), K: d("3024.68")},
			{ThresholdLow: d("181481"), ThresholdHigh: d("241974"), Rate: d("0.13"), K: d("4839.49")},
			{ThresholdLow: d("241974"), ThresholdHigh: d("362961"), Rate: d("0.14"), K: d("7259.23")},
			{ThresholdLow: d("362961"), Rate: d("0.15"), K: d("10888.84")},
		},
		CreditRate:    d("0.10"),
		BPA:           BPAFormula{Amount: d("22323")},
		VacationTiers: defaultVacationTiers(),
		Holiday: &HolidayRules{
			Formula:                     Holiday30DayAverage,
			MinEmploymentDays:           30,
			RequireLastFirstShift:       true,
			PremiumMultiplier:           d("1.5"),
			EmployerChoiceSubstituteDay: true,
		},
	}
}

func britishColumbia2025() *RateTable {
	return &RateTable{
		Jurisdiction: domain.BC,
		Year:         2025,
		Brackets: []TaxBracket{
			{ThresholdLow: d("0"), ThresholdHigh: d("49279"), Rate: d("0.0506"), K: d("0")},
			{ThresholdLow: d("49279"), ThresholdHigh: d("98560"), Rate: d("0.077"), K: d("1300.9656")},
			{ThresholdLow: d("98560"), ThresholdHigh: d("113158"), Rate: d("0.105"), K: d("4060.6456")},
			{ThresholdLow: d("113158"), ThresholdHigh: d("137407"), Rate: d("0.1229"), K: d("6086.1738")},
			{ThresholdLow: d("137407"), ThresholdHigh: d("186306"), Rate: d("0.147"), K: d("9397.6825")},
			{ThresholdLow: d("186306"), ThresholdHigh: d("259829"), Rate: d("0.168"), K: d("13310.1085")},
			{ThresholdLow: d("259829"), Rate: d("0.205"), K: d("22923.7815")},
		},
		CreditRate: d("0.0506"),
		BPA:        BPAFormula{Amount: d("12932")},
		TaxReduction: &TaxReductionParams{
			MaxReduction: d("547"),
			Threshold:    d("24338"),
			Slope:        d("0.0356"),
		},
		VacationTiers: defaultVacationTiers(),
		Holiday: &HolidayRules{
			Formula:                 Holiday30DayAverage,
			MinEmploymentDays:       30,
			MinDaysWorkedInLookback: 15,
			LookbackDays:            30,
			PremiumMultiplier:       d("1.5"),
		},
	}
}

func manitoba2025() *RateTable {
	return &RateTable{
		Jurisdiction: domain.MB,
		Year:         2025,
		Brackets: []TaxBracket{
			{ThresholdLow: d("0"), ThresholdHigh: d("47564"), Rate: d("0.108"), K: d("0")},
			{ThresholdLow: d("47564"), ThresholdHigh: d("101200"), Rate: d("0.1275"), K: d("927.498")},
			{ThresholdLow: d("101200"), Rate: d("0.174"), K: d("5633.298")},
		},
		CreditRate: d("0.108"),
		BPA: BPAFormula{
			Amount:        d("15780"),
			PhaseOutStart: d("200000"),
			PhaseOutEnd:   d("400000"),
			Floor:         d("0"),
		},
		VacationTiers: defaultVacationTiers(),
		Holiday: &HolidayRules{
			Formula:               Holiday5Percent28Days,
			MinEmploymentDays:     30,
			RequireLastFirstShift: true,
			PremiumMultiplier:     d("1.5"),
		},
	}
}

func newBrunswick2025() *RateTable {
	return &RateTable{
		Jurisdiction: domain.NB,
		Year:         2025,
		Brackets: []TaxBracket{
			{ThresholdLow: d("0"), ThresholdHigh: d("51306"), Rate: d("0.094"), K: d("0")},
			{ThresholdLow: d("51306"), ThresholdHigh: d("102614"), Rate: d("0.14"), K: d("2360.076")},
			{ThresholdLow: d("102614"), ThresholdHigh: d("190060"), Rate: d("0.16"), K: d("4412.356")},
			{ThresholdLow: d("190060"), Rate: d("0.195"), K: d("11064.456")},
		},
		CreditRate:    d("0.094"),
		BPA:           BPAFormula{Amount: d("13396")},
		VacationTiers: defaultVacationTiers(),
		Holiday: &HolidayRules{
			Formula:               HolidayRegularDayPay,
			MinEmploymentDays:     90,
			RequireLastFirstShift: true,
			PremiumMultiplier:     d("1.5"),
		},
	}
}

func newfoundland2025() *RateTable {
	return &RateTable{
		Jurisdiction: domain.NL,
		Year:         2025,
		Brackets: []TaxBracket{
			{ThresholdLow: d("0"), ThresholdHigh: d("44192"), Rate: d("0.087"), K: d("0")},
			{ThresholdLow: d("44192"), ThresholdHigh: d("88382"), Rate: d("0.145"), K: d("2563.136")},
			{ThresholdLow: d("88382"), ThresholdHigh: d("157792"), Rate: d("0.158"), K: d("3712.102")},
			{ThresholdLow: d("157792"), ThresholdHigh: d("220910"), Rate: d("0.178"), K: d("6867.942")},
			{ThresholdLow: d("220910"), ThresholdHigh: d("282214"), Rate: d("0.198"), K: d("11286.142")},
			{ThresholdLow: d("282214"), ThresholdHigh: d("564429"), Rate: d("0.208"), K: d("14108.282")},
			{ThresholdLow: d("564429"), ThresholdHigh: d("1128858"), Rate: d("0.213"), K: d("16930.427")},
			{ThresholdLow: d("1128858"), Rate: d("0.218"), K: d("22574.717")},
		},
		CreditRate: d("0.087"),
		BPA:        BPAFormula{Amount: d("11067")},
		VacationTiers: []VacationTier{
			{MinYears: 0, Rate: d("0.04")},
			{MinYears: 15, Rate: d("0.08")},
		},
		Holiday: &HolidayRules{
			Formula:           Holiday3WeekAvgHours,
			MinEmploymentDays: 30,
			PremiumMultiplier: d("2.0"),
		},
	}
}

func novaScotia2025() *RateTable {
	return &RateTable{
		Jurisdiction: domain.NS,
		Year:         2025,
		Brackets: []TaxBracket{
			{ThresholdLow: d("0"), ThresholdHigh: d("30507"), Rate: d("0.0879"), K: d("0")},
			{ThresholdLow: d("30507"), ThresholdHigh: d("61015"), Rate: d("0.1495"), K: d("1879.2312")},
			{ThresholdLow: d("61015"), ThresholdHigh: d("95883"), Rate: d("0.1667"), K: d("2928.6892")},
			{ThresholdLow: d("95883"), ThresholdHigh: d("154650"), Rate: d("0.175"), K: d("3724.5181")},
			{ThresholdLow: d("154650"), Rate: d("0.21"), K: d("9137.2681")},
		},
		CreditRate: d("0.0879"),
		// The supplement to the basic amount phases out with income: full
		// enhanced amount under the start, the base amount past the end.
		BPA: BPAFormula{
			Amount:        d("11744"),
			PhaseOutStart: d("25000"),
			PhaseOutEnd:   d("75000"),
			Floor:         d("8744"),
		},
		VacationTiers: defaultVacationTiers(),
		Holiday: &HolidayRules{
			Formula:               HolidayRegularDayPay,
			MinEmploymentDays:     15,
			RequireLastFirstShift: true,
			PremiumMultiplier:     d("1.5"),
		},
	}
}

func northwestTerritories2025() *RateTable {
	return &RateTable{
		Jurisdiction: domain.NT,
		Year:         2025,
		Brackets: []TaxBracket{
			{ThresholdLow: d("0"), ThresholdHigh: d("51964"), Rate: d("0.059"), K: d("0")},
			{ThresholdLow: d("51964"), ThresholdHigh: d("103930"), Rate: d("0.086"), K: d("1403.028")},
			{ThresholdLow: d("103930"), ThresholdHigh: d("168967"), Rate: d("0.122"), K: d("5144.508")},
			{ThresholdLow: d("168967"), Rate: d("0.1405"), K: d("8270.3975")},
		},
		CreditRate:    d("0.059"),
		BPA:           BPAFormula{Amount: d("17842")},
		VacationTiers: defaultVacationTiers(),
		Holiday: &HolidayRules{
			Formula:               HolidayRegularDayPay,
			MinEmploymentDays:     30,
			RequireLastFirstShift: true,
			PremiumMultiplier:     d("1.5"),
		},
	}
}

func nunavut2025() *RateTable {
	return &RateTable{
		Jurisdiction: domain.NU,
		Year:         2025,
		Brackets: []TaxBracket{
			{ThresholdLow: d("0"), ThresholdHigh: d("54707"), Rate: d("0.04"), K: d("0")},
			{ThresholdLow: d("54707"), ThresholdHigh: d("109413"), Rate: d("0.07"), K: d("1641.21")},
			{ThresholdLow: d("109413"), ThresholdHigh: d("177881"), Rate: d("0.09"), K: d("3829.47")},
			{ThresholdLow: d("177881"), Rate: d("0.115"), K: d("8276.495")},
		},
		CreditRate:    d("0.04"),
		BPA:           BPAFormula{Amount: d("19274")},
		VacationTiers: defaultVacationTiers(),
		Holiday: &HolidayRules{
			// Official rule is a dual formula keyed to schedule regularity;
			// the 30-day average is the declared approximation.
			Formula:               Holiday30DayAverage,
			Simplified:            true,
			MinEmploymentDays:     30,
			RequireLastFirstShift: true,
			PremiumMultiplier:     d("2.0"),
		},
	}
}

func ontario2025() *RateTable {
	return &RateTable{
		Jurisdiction: domain.ON,
		Year:         2025,
		Brackets: []TaxBracket{
			{ThresholdLow: d("0"), ThresholdHigh: d("52886"), Rate: d("0.0505"), K: d("0")},
			{ThresholdLow: d("52886"), ThresholdHigh: d("105775"), Rate: d("0.0915"), K: d("2168.326")},
			{ThresholdLow: d("105775"), ThresholdHigh: d("150000"), Rate: d("0.1116"), K: d("4294.4035")},
			{ThresholdLow: d("150000"), ThresholdHigh: d("220000"), Rate: d("0.1216"), K: d("5794.4035")},
			{ThresholdLow: d("220000"), Rate: d("0.1316"), K: d("7994.4035")},
		},
		CreditRate: d("0.0505"),
		BPA:        BPAFormula{Amount: d("12747")},
		Surtax: &SurtaxParams{
			Threshold1: d("5710"),
			Rate1:      d("0.20"),
			Threshold2: d("7307"),
			Rate2:      d("0.36"),
		},
		HealthPremium: []HealthPremiumRow{
			{Threshold: d("0"), Base: d("0"), MarginalRate: d("0"), Cap: d("0")},
			{Threshold: d("20000"), Base: d("0"), MarginalRate: d("0.06"), Cap: d("300")},
			{Threshold: d("36000"), Base: d("300"), MarginalRate: d("0.06"), Cap: d("450")},
			{Threshold: d("48000"), Base: d("450"), MarginalRate: d("0.25"), Cap: d("600")},
			{Threshold: d("72000"), Base: d("600"), MarginalRate: d("0.25"), Cap: d("750")},
			{Threshold: d("200000"), Base: d("750"), MarginalRate: d("0.25"), Cap: d("900")},
		},
		VacationTiers: defaultVacationTiers(),
		Holiday: &HolidayRules{
			Formula:               Holiday4WeekAverage,
			MinEmploymentDays:     0,
			RequireLastFirstShift: true,
			PremiumMultiplier:     d("1.5"),
		},
	}
}

func princeEdwardIsland2025() *RateTable {
	return &RateTable{
		Jurisdiction: domain.PE,
		Year:         2025,
		Brackets: []TaxBracket{
			{ThresholdLow: d("0"), ThresholdHigh: d("33328"), Rate: d("0.095"), K: d("0")},
			{ThresholdLow: d("33328"), ThresholdHigh: d("64656"), Rate: d("0.1347"), K: d("1323.1216")},
			{ThresholdLow: d("64656"), ThresholdHigh: d("105000"), Rate: d("0.166"), K: d("3346.8544")},
			{ThresholdLow: d("105000"), ThresholdHigh: d("140000"), Rate: d("0.1762"), K: d("4417.8544")},
			{ThresholdLow: d("140000"), Rate: d("0.19"), K: d("6349.8544")},
		},
		CreditRate:    d("0.095"),
		BPA:           BPAFormula{Amount: d("14250")},
		VacationTiers: defaultVacationTiers(),
		Holiday: &HolidayRules{
			Formula:               Holiday10Percent2Weeks,
			MinEmploymentDays:     30,
			RequireLastFirstShift: true,
			PremiumMultiplier:     d("1.5"),
		},
	}
}

func quebec2025() *RateTable {
	return &RateTable{
		Jurisdiction: domain.QC,
		Year:         2025,
		// Quebec provincial income tax is administered by Revenu Quebec and
		// computed outside this engine. Vacation and holiday rules still
		// apply to Quebec employment.
		ProvincialTaxExternal: true,
		VacationTiers:         defaultVacationTiers(),
		Holiday: &HolidayRules{
			Formula:           Holiday4WeekAverage,
			MinEmploymentDays: 0,
			PremiumMultiplier: d("1.5"),
		},
	}
}

func saskatchewan2025() *RateTable {
	return &RateTable{
		Jurisdiction: domain.SK,
		Year:         2025,
		Brackets: []TaxBracket{
			{ThresholdLow: d("0"), ThresholdHigh: d("53463"), Rate: d("0.105"), K: d("0")},
			{ThresholdLow: d("53463"), ThresholdHigh: d("152750"), Rate: d("0.125"), K: d("1069.26")},
			{ThresholdLow: d("152750"), Rate: d("0.145"), K: d("4124.26")},
		},
		CreditRate: d("0.105"),
		BPA:        BPAFormula{Amount: d("18991")},
		// Saskatchewan's minimum entitlement is three weeks, four after ten
		// years: 3/52 and 4/52 of earnings.
		VacationTiers: []VacationTier{
			{MinYears: 0, Rate: d("0.0577")},
			{MinYears: 10, Rate: d("0.0769")},
		},
		Holiday: &HolidayRules{
			Formula:           Holiday5Percent28Days,
			MinEmploymentDays: 0,
			PremiumMultiplier: d("1.5"),
		},
	}
}

func yukon2025() *RateTable {
	return &RateTable{
		Jurisdiction: domain.YT,
		Year:         2025,
		Brackets: []TaxBracket{
			{ThresholdLow: d("0"), ThresholdHigh: d("57375"), Rate: d("0.064"), K: d("0")},
			{ThresholdLow: d("57375"), ThresholdHigh: d("114750"), Rate: d("0.09"), K: d("1491.75")},
			{ThresholdLow: d("114750"), ThresholdHigh: d("177882"), Rate: d("0.109"), K: d("3672")},
			{ThresholdLow: d("177882"), ThresholdHigh: d("500000"), Rate: d("0.128"), K: d("7051.758")},
			{ThresholdLow: d("500000"), Rate: d("0.15"), K: d("18051.758")},
		},
		CreditRate: d("0.064"),
		// Yukon mirrors the federal income-tested BPA and employment amount.
		BPA: BPAFormula{
			Amount:        d("16129"),
			PhaseOutStart: d("177882"),
			PhaseOutEnd:   d("253414"),
			Floor:         d("14538"),
		},
		EmploymentAmount: d("1471"),
		VacationTiers:    defaultVacationTiers(),
		Holiday: &HolidayRules{
			// Official rule is a regular-day's-pay / averaging hybrid; the
			// 30-day average is the declared approximation.
			Formula:               Holiday30DayAverage,
			Simplified:            true,
			MinEmploymentDays:     30,
			RequireLastFirstShift: true,
			PremiumMultiplier:     d("1.5"),
		},
	}
}
