package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSavingsForecastRounded(t *testing.T) {
	m := 1.0722900808
	f := SavingsForecast{
		CurrentSavings: 10000,
		Projections: []SavingsProjection{
			{Years: 1, FutureValue: 10722.900808, InterestEarned: 722.900808, GrowthMultiplier: &m},
			{Years: 3, GrowthUnbounded: true},
		},
	}

	r := f.Rounded()

	assert.Equal(t, 10722.9, r.Projections[0].FutureValue)
	assert.Equal(t, 722.9, r.Projections[0].InterestEarned)
	assert.Equal(t, 1.07, *r.Projections[0].GrowthMultiplier)
	assert.Nil(t, r.Projections[1].GrowthMultiplier)
	assert.True(t, r.Projections[1].GrowthUnbounded)
	// The receiver is untouched.
	assert.Equal(t, 10722.900808, f.Projections[0].FutureValue)
	assert.Equal(t, 1.0722900808, m)
}

func TestSpendingAnalysisRounded(t *testing.T) {
	a := SpendingAnalysis{
		TotalSpent:       -123.456,
		SpendingByPeriod: []PeriodAmount{{Period: "2024-01", Category: "food", Amount: -10.555}},
		Trends: SpendingTrends{
			Overall:    &Trend{Direction: TrendIncreasing, Slope: 1.23456, ChangePercent: 12.3456},
			Categories: map[string]Trend{"food": {Slope: -0.005}},
		},
	}

	r := a.Rounded()

	assert.Equal(t, -123.46, r.TotalSpent)
	assert.Equal(t, -10.56, r.SpendingByPeriod[0].Amount)
	assert.Equal(t, 1.23, r.Trends.Overall.Slope)
	assert.Equal(t, 12.35, r.Trends.Overall.ChangePercent)
	assert.Equal(t, -0.01, r.Trends.Categories["food"].Slope)
	assert.Equal(t, 1.23456, a.Trends.Overall.Slope)
}
