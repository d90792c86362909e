package forecast

import (
	"errors"
	"math"
	"testing"

	"github.com/Dan9191/finance-assistant/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvestment(t *testing.T) {
	portfolio := []models.Holding{
		{AssetType: "stocks", Value: 60000},
		{AssetType: "bonds", Value: 40000, ExpectedReturn: rate(0.04)},
	}

	f, err := Investment(models.InvestmentInput{Portfolio: portfolio, RiskTolerance: "medium"}, now)
	require.NoError(t, err)

	assert.Equal(t, models.ForecastInvestmentReturns, f.Kind)
	assert.Equal(t, models.RiskModerate, f.RiskTolerance)
	assert.Equal(t, 100000.0, f.CurrentPortfolioValue)
	assert.InDelta(t, 0.064, f.ExpectedAnnualReturn, 1e-12)

	require.Len(t, f.Projections, len(InvestmentHorizons))
	one := f.Projections[0]
	assert.InDelta(t, 106400.0, one.ExpectedValue, 1e-6)
	assert.InDelta(t, 106400.0-7500, one.VolatilityRange.Lower, 1e-6)
	assert.InDelta(t, 106400.0+7500, one.VolatilityRange.Upper, 1e-6)
	assert.Equal(t, 0.68, one.VolatilityRange.ConfidenceLevel)

	ten := f.Projections[3]
	assert.Equal(t, 10, ten.Years)
	assert.InDelta(t, 0.64, ten.ExpectedReturn, 1e-12)
	assert.InDelta(t, 100000*0.15*math.Sqrt(10)*0.5, ten.VolatilityRange.Upper-ten.ExpectedValue, 1e-6)

	assert.Equal(t, 0.15, f.RiskMetrics.Volatility)
	assert.InDelta(t, 0.064/0.15, f.RiskMetrics.SharpeRatio, 1e-12)
	assert.Equal(t, 0.3, f.RiskMetrics.MaxDrawdownEstimate)
	assert.InDelta(t, 48.0, f.RiskMetrics.DiversificationScore, 1e-9)
}

func TestInvestmentTiers(t *testing.T) {
	portfolio := []models.Holding{{AssetType: "stocks", Value: 1000}}
	tests := []struct {
		tolerance string
		name      string
		ret, vol  float64
	}{
		{"conservative", models.RiskConservative, 0.05, 0.08},
		{"low", models.RiskConservative, 0.05, 0.08},
		{"aggressive", models.RiskAggressive, 0.12, 0.25},
		{"unheard-of", models.RiskModerate, 0.08, 0.15},
	}
	for _, tt := range tests {
		t.Run(tt.tolerance, func(t *testing.T) {
			f, err := Investment(models.InvestmentInput{Portfolio: portfolio, RiskTolerance: tt.tolerance}, now)
			require.NoError(t, err)
			assert.Equal(t, tt.name, f.RiskTolerance)
			assert.InDelta(t, tt.ret, f.ExpectedAnnualReturn, 1e-12)
			assert.Equal(t, tt.vol, f.RiskMetrics.Volatility)
			assert.Equal(t, 0.0, f.RiskMetrics.DiversificationScore)
		})
	}
}

func TestInvestmentEmpty(t *testing.T) {
	_, err := Investment(models.InvestmentInput{}, now)
	assert.True(t, errors.Is(err, models.ErrInsufficientData))

	_, err = Investment(models.InvestmentInput{Portfolio: []models.Holding{{AssetType: "cash", Value: 0}}}, now)
	assert.True(t, errors.Is(err, models.ErrInsufficientData))
}

func TestDiversificationScore(t *testing.T) {
	even := []models.Holding{{Value: 25}, {Value: 25}, {Value: 25}, {Value: 25}}
	assert.InDelta(t, 75.0, DiversificationScore(even), 1e-9)
	assert.Equal(t, 0.0, DiversificationScore(even[:1]))
	assert.Equal(t, 0.0, DiversificationScore([]models.Holding{{Value: 0}, {Value: 0}}))
}
