package forecast

import (
	"fmt"
	"math"
	"time"

	"github.com/Dan9191/finance-assistant/internal/models"
)

// RiskTier is the expected annual return and volatility assumed for a risk tolerance.
type RiskTier struct {
	ExpectedReturn float64
	Volatility     float64
}

var riskTiers = map[string]RiskTier{
	models.RiskConservative: {ExpectedReturn: 0.05, Volatility: 0.08},
	models.RiskModerate:     {ExpectedReturn: 0.08, Volatility: 0.15},
	models.RiskAggressive:   {ExpectedReturn: 0.12, Volatility: 0.25},
}

// TierFor resolves a risk tolerance to its tier, defaulting to moderate.
func TierFor(tolerance string) (string, RiskTier) {
	name := models.NormalizeRiskTolerance(tolerance)
	return name, riskTiers[name]
}

// InvestmentHorizons are the projection horizons in years.
var InvestmentHorizons = []int{1, 3, 5, 10}

const (
	// oneSigma is the confidence attached to a one standard deviation band.
	oneSigma       = 0.68
	bandScale      = 0.5
	drawdownFactor = 2.0
)

// Investment projects portfolio returns for the given risk tolerance.
func Investment(in models.InvestmentInput, now time.Time) (models.InvestmentForecast, error) {
	var total float64
	for _, h := range in.Portfolio {
		total += h.Value
	}
	if len(in.Portfolio) == 0 || total <= 0 {
		return models.InvestmentForecast{}, fmt.Errorf("portfolio has no value to project: %w", models.ErrInsufficientData)
	}

	tolerance, tier := TierFor(in.RiskTolerance)

	var weighted float64
	for _, h := range in.Portfolio {
		r := tier.ExpectedReturn
		if h.ExpectedReturn != nil {
			r = *h.ExpectedReturn
		}
		weighted += h.Value / total * r
	}

	projections := make([]models.ReturnProjection, 0, len(InvestmentHorizons))
	for _, years := range InvestmentHorizons {
		ev := total * math.Pow(1+weighted, float64(years))
		band := total * tier.Volatility * math.Sqrt(float64(years)) * bandScale
		projections = append(projections, models.ReturnProjection{
			Years:          years,
			ExpectedValue:  ev,
			ExpectedReturn: weighted * float64(years),
			VolatilityRange: models.Interval{
				Lower:           ev - band,
				Upper:           ev + band,
				ConfidenceLevel: oneSigma,
			},
		})
	}

	var sharpe float64
	if tier.Volatility > 0 {
		sharpe = weighted / tier.Volatility
	}

	return models.InvestmentForecast{
		Kind:                  models.ForecastInvestmentReturns,
		CurrentPortfolioValue: total,
		ExpectedAnnualReturn:  weighted,
		RiskTolerance:         tolerance,
		Projections:           projections,
		RiskMetrics: models.RiskMetrics{
			Volatility:           tier.Volatility,
			SharpeRatio:          sharpe,
			MaxDrawdownEstimate:  tier.Volatility * drawdownFactor,
			DiversificationScore: DiversificationScore(in.Portfolio),
		},
		GeneratedAt: now,
	}, nil
}

// DiversificationScore is 100 minus the Herfindahl-Hirschman index of holding value
// weights, scaled to 0-100. Fewer than two holdings score 0.
func DiversificationScore(portfolio []models.Holding) float64 {
	if len(portfolio) < 2 {
		return 0
	}
	var total float64
	for _, h := range portfolio {
		total += h.Value
	}
	if total <= 0 {
		return 0
	}
	var hhi float64
	for _, h := range portfolio {
		w := h.Value / total
		hhi += w * w
	}
	return math.Max(0, 100-hhi*100)
}
