package forecast

import (
	"fmt"
	"math"

	"github.com/Dan9191/finance-assistant/internal/models"
)

const (
	DefaultInflation       = 0.03
	DefaultRetirementYears = 30
)

// RetirementDefaults fill in rates the caller did not supply.
type RetirementDefaults struct {
	InflationRate     float64
	InvestmentReturn  float64
	YearsInRetirement int
}

// DefaultRetirement are the stock retirement assumptions.
var DefaultRetirement = RetirementDefaults{
	InflationRate:     DefaultInflation,
	InvestmentReturn:  DefaultAnnualReturn,
	YearsInRetirement: DefaultRetirementYears,
}

// Retirement estimates how much must be saved monthly to fund the desired retirement income.
// With no years left to save, the whole shortfall is due immediately.
func Retirement(in models.RetirementInput, d RetirementDefaults) (models.RetirementPlan, error) {
	if in.CurrentAge < 0 || in.RetirementAge < 0 || in.CurrentAge > MaxAge || in.RetirementAge > MaxAge {
		return models.RetirementPlan{}, fmt.Errorf("ages must be between 0 and %d: %w", MaxAge, models.ErrInvalidInput)
	}
	if in.DesiredAnnualIncome < 0 || in.CurrentSavings < 0 {
		return models.RetirementPlan{}, fmt.Errorf("income and savings must not be negative: %w", models.ErrInvalidInput)
	}
	if d.YearsInRetirement <= 0 {
		d.YearsInRetirement = DefaultRetirementYears
	}

	inflation := d.InflationRate
	if in.InflationRate != nil {
		inflation = *in.InflationRate
	}
	ret := d.InvestmentReturn
	if in.InvestmentReturn != nil {
		ret = *in.InvestmentReturn
	}

	years := in.RetirementAge - in.CurrentAge
	horizon := float64(max(years, 0))

	futureSavings := in.CurrentSavings * math.Pow(1+ret, horizon)
	adjustedIncome := in.DesiredAnnualIncome * math.Pow(1+inflation, horizon)
	totalNeeded := adjustedIncome * float64(d.YearsInRetirement)
	shortfall := math.Max(0, totalNeeded-futureSavings)
	if err := checkFinite("retirement projection", futureSavings, adjustedIncome, totalNeeded, shortfall); err != nil {
		return models.RetirementPlan{}, err
	}

	plan := models.RetirementPlan{
		Kind:                    models.ForecastRetirementNeeds,
		CurrentAge:              in.CurrentAge,
		RetirementAge:           in.RetirementAge,
		YearsToRetirement:       years,
		CurrentSavings:          in.CurrentSavings,
		FutureSavings:           futureSavings,
		DesiredAnnualIncome:     in.DesiredAnnualIncome,
		InflationAdjustedIncome: adjustedIncome,
		TotalRetirementNeeds:    totalNeeded,
		AdditionalSavingsNeeded: shortfall,
		Assumptions: models.RetirementAssumptions{
			InflationRate:     inflation,
			InvestmentReturn:  ret,
			YearsInRetirement: d.YearsInRetirement,
		},
	}

	if years <= 0 {
		plan.Immediate = true
		plan.MonthlySavingsRequired = shortfall
		return plan, nil
	}
	plan.MonthlySavingsRequired = MonthlyAnnuityDue(shortfall, ret/12, years*12)
	if err := checkFinite("monthly savings", plan.MonthlySavingsRequired); err != nil {
		return models.RetirementPlan{}, err
	}
	return plan, nil
}

// MonthlyAnnuityDue is the payment made at the start of each of n periods that grows to
// target at periodic rate i.
func MonthlyAnnuityDue(target, i float64, n int) float64 {
	if target <= 0 || n <= 0 {
		return 0
	}
	if i == 0 {
		return target / float64(n)
	}
	growth := math.Pow(1+i, float64(n))
	return target * i / ((growth - 1) * (1 + i))
}
