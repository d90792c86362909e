package forecast

import (
	"fmt"
	"math"
	"time"

	"github.com/Dan9191/finance-assistant/internal/models"
)

// DefaultAnnualReturn is assumed when no return rate is supplied.
const DefaultAnnualReturn = 0.07

// SavingsHorizons are the projection horizons in years.
var SavingsHorizons = []int{1, 3, 5, 10, 20}

// FutureValue compounds present savings monthly and adds the annuity of monthly contributions.
// A zero rate accumulates linearly.
func FutureValue(present, monthly, annualRate float64, months int) float64 {
	r := annualRate / 12
	n := float64(months)
	if r == 0 {
		return present + monthly*n
	}
	growth := math.Pow(1+r, n)
	return present*growth + monthly*(growth-1)/r
}

// ProjectSavings projects savings over a number of years.
func ProjectSavings(present, monthly, annualRate float64, years int) models.SavingsProjection {
	months := years * 12
	fv := FutureValue(present, monthly, annualRate, months)
	contributions := monthly * float64(months)
	p := models.SavingsProjection{
		Years:              years,
		FutureValue:        fv,
		TotalContributions: contributions,
		InterestEarned:     fv - present - contributions,
	}
	if present > 0 {
		m := fv / present
		p.GrowthMultiplier = &m
	} else {
		p.GrowthUnbounded = true
	}
	return p
}

// Savings projects savings growth. A nil rate uses defaultRate; an explicit zero is honoured.
// Negative contributions are treated as none.
func Savings(in models.SavingsInput, defaultRate float64, now time.Time) (models.SavingsForecast, error) {
	if in.CurrentSavings <= 0 && in.MonthlyContribution <= 0 {
		return models.SavingsForecast{}, fmt.Errorf("current savings or a monthly contribution is required: %w", models.ErrInsufficientData)
	}
	rate := defaultRate
	if in.AnnualReturnRate != nil {
		rate = *in.AnnualReturnRate
	}
	contribution := math.Max(0, in.MonthlyContribution)

	projections := make([]models.SavingsProjection, 0, len(SavingsHorizons))
	for _, years := range SavingsHorizons {
		p := ProjectSavings(in.CurrentSavings, contribution, rate, years)
		if err := checkFinite("savings projection", p.FutureValue); err != nil {
			return models.SavingsForecast{}, err
		}
		projections = append(projections, p)
	}

	return models.SavingsForecast{
		Kind:                 models.ForecastSavingsGrowth,
		CurrentSavings:       in.CurrentSavings,
		MonthlyContribution:  contribution,
		ExpectedAnnualReturn: rate,
		Projections:          projections,
		Recommendations:      SavingsRecommendations(in.CurrentSavings, contribution),
		GeneratedAt:          now,
	}, nil
}

// SavingsRecommendations suggests next steps for a savings balance and contribution.
func SavingsRecommendations(current, monthly float64) []string {
	recs := make([]string, 0, 3)
	if current < 5000 {
		recs = append(recs, "Build an emergency fund of at least $5,000 for unexpected expenses")
	}
	switch {
	case monthly < 500:
		recs = append(recs, "Consider increasing monthly savings to at least $500 for better financial security")
	case monthly < 1000:
		recs = append(recs, "Great savings rate! Consider increasing to $1,000 monthly for faster goal achievement")
	}
	if current > 10000 && monthly > 500 {
		recs = append(recs, "Consider investing excess savings in index funds for long-term growth")
	}
	return recs
}
