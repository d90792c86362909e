package forecast

import (
	"errors"
	"testing"

	"github.com/Dan9191/finance-assistant/internal/models"
	"github.com/Dan9191/finance-assistant/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rate(v float64) *float64 { return &v }

func TestSavingsCompoundsWithoutContribution(t *testing.T) {
	f, err := Savings(models.SavingsInput{CurrentSavings: 10000, AnnualReturnRate: rate(0.07)}, DefaultAnnualReturn, now)
	require.NoError(t, err)

	require.Len(t, f.Projections, len(SavingsHorizons))
	one := f.Projections[0]
	assert.Equal(t, 1, one.Years)
	assert.Equal(t, 10722.90, utils.Round2(one.FutureValue))
	assert.Equal(t, 0.0, one.TotalContributions)
	assert.InDelta(t, one.FutureValue-10000, one.InterestEarned, 1e-9)
	require.NotNil(t, one.GrowthMultiplier)
	assert.InDelta(t, one.FutureValue/10000, *one.GrowthMultiplier, 1e-12)
}

func TestSavingsWithContribution(t *testing.T) {
	f, err := Savings(models.SavingsInput{CurrentSavings: 10000, MonthlyContribution: 500}, DefaultAnnualReturn, now)
	require.NoError(t, err)

	assert.Equal(t, DefaultAnnualReturn, f.ExpectedAnnualReturn)
	assert.Equal(t, 16919.19, utils.Round2(f.Projections[0].FutureValue))
	assert.Equal(t, 6000.0, f.Projections[0].TotalContributions)
	assert.Equal(t, []string{
		"Great savings rate! Consider increasing to $1,000 monthly for faster goal achievement",
	}, f.Recommendations)
}

func TestSavingsZeroRateIsLinear(t *testing.T) {
	f, err := Savings(models.SavingsInput{CurrentSavings: 1000, MonthlyContribution: 0, AnnualReturnRate: rate(0)}, DefaultAnnualReturn, now)
	require.NoError(t, err)
	for _, p := range f.Projections {
		assert.Equal(t, 1000.0, p.FutureValue)
		assert.Equal(t, 0.0, p.InterestEarned)
	}

	f, err = Savings(models.SavingsInput{MonthlyContribution: 100, AnnualReturnRate: rate(0)}, DefaultAnnualReturn, now)
	require.NoError(t, err)
	assert.Equal(t, 1200.0, f.Projections[0].FutureValue)
	assert.Nil(t, f.Projections[0].GrowthMultiplier)
	assert.True(t, f.Projections[0].GrowthUnbounded)
}

func TestSavingsInsufficient(t *testing.T) {
	_, err := Savings(models.SavingsInput{}, DefaultAnnualReturn, now)
	assert.True(t, errors.Is(err, models.ErrInsufficientData))

	_, err = Savings(models.SavingsInput{CurrentSavings: -5, MonthlyContribution: -1}, DefaultAnnualReturn, now)
	assert.True(t, errors.Is(err, models.ErrInsufficientData))
}

func TestSavingsRecommendations(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		monthly float64
		want    int
	}{
		{"starting out", 1000, 100, 2},
		{"mid contribution", 8000, 700, 1},
		{"investing", 20000, 1500, 1},
		{"large balance small contribution", 20000, 200, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, SavingsRecommendations(tt.current, tt.monthly), tt.want)
		})
	}
	assert.Equal(t, "Consider investing excess savings in index funds for long-term growth",
		SavingsRecommendations(20000, 1500)[0])
}

func TestFutureValueMonthsZero(t *testing.T) {
	assert.Equal(t, 2500.0, FutureValue(2500, 100, 0.07, 0))
}

func TestSavingsRejectsOverflowingRate(t *testing.T) {
	_, err := Savings(models.SavingsInput{CurrentSavings: 1000, AnnualReturnRate: rate(1e300)}, DefaultAnnualReturn, now)
	assert.True(t, errors.Is(err, models.ErrInvalidInput))
}
