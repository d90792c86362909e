package spending

import (
	"errors"
	"testing"
	"time"

	"github.com/Dan9191/finance-assistant/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func tx(amount float64, category string, y int, m time.Month, d int) models.Transaction {
	return models.Transaction{Amount: amount, Category: category, Date: models.NewDate(y, m, d)}
}

func TestAnalyzeEmpty(t *testing.T) {
	_, err := Analyze(nil, models.TimeframeMonthly, 0, now)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrInsufficientData))
}

func TestAnalyzeMonthly(t *testing.T) {
	txns := []models.Transaction{
		tx(-100, "food", 2024, 1, 3),
		tx(-50, "food", 2024, 1, 20),
		tx(-200, "rent", 2024, 1, 1),
		tx(-300, "food", 2024, 2, 5),
		tx(-200, "rent", 2024, 2, 1),
		tx(-400, "food", 2024, 3, 5),
		tx(-200, "rent", 2024, 3, 1),
	}
	original := append([]models.Transaction(nil), txns...)

	a, err := Analyze(txns, "", 0, now)
	require.NoError(t, err)

	assert.Equal(t, txns, original)
	assert.Equal(t, models.TimeframeMonthly, a.Timeframe)
	assert.Equal(t, 7, a.TotalTransactions)
	assert.Equal(t, -1450.0, a.TotalSpent)
	require.Len(t, a.SpendingByPeriod, 6)
	assert.Equal(t, models.PeriodAmount{Period: "2024-01", Category: "food", Amount: -150}, a.SpendingByPeriod[0])
	assert.Equal(t, models.PeriodAmount{Period: "2024-03", Category: "rent", Amount: -200}, a.SpendingByPeriod[5])

	// totals -350, -500, -600
	require.NotNil(t, a.Trends.Overall)
	assert.Equal(t, models.TrendDecreasing, a.Trends.Overall.Direction)
	assert.InDelta(t, -125.0, a.Trends.Overall.Slope, 1e-9)
	assert.InDelta(t, -125.0/(-1450.0/3)*100, a.Trends.Overall.ChangePercent, 1e-9)
	assert.Equal(t, 3, a.Trends.Overall.Periods)

	assert.Equal(t, models.TrendDecreasing, a.Trends.Categories["food"].Direction)
	assert.Equal(t, models.TrendStable, a.Trends.Categories["rent"].Direction)
	assert.Equal(t, a.AnalyzedAt, now)
}

func TestAnalyzeSlopeMatchesDirection(t *testing.T) {
	txns := []models.Transaction{
		tx(100, "salary", 2024, 1, 1),
		tx(150, "salary", 2024, 2, 1),
		tx(300, "salary", 2024, 3, 1),
	}
	a, err := Analyze(txns, models.TimeframeMonthly, 0, now)
	require.NoError(t, err)
	require.NotNil(t, a.Trends.Overall)
	assert.Greater(t, a.Trends.Overall.Slope, 0.0)
	assert.Equal(t, models.TrendIncreasing, a.Trends.Overall.Direction)
	assert.Contains(t, a.Insights, "Your overall spending has increased by 54.5% over the analyzed period")
	assert.Contains(t, a.Insights, "Spending in salary is trending upward - consider reviewing this category")
}

func TestAnalyzeWeekly(t *testing.T) {
	txns := []models.Transaction{
		tx(-10, "food", 2024, 1, 1), // Monday, 2024-W01
		tx(-10, "food", 2024, 1, 7), // Sunday, 2024-W01
		tx(-10, "food", 2024, 1, 8), // Monday, 2024-W02
		tx(-10, "food", 2023, 1, 1), // Sunday, 2022-W52
	}
	a, err := Analyze(txns, models.TimeframeWeekly, 0, now)
	require.NoError(t, err)
	require.Len(t, a.SpendingByPeriod, 3)
	assert.Equal(t, "2022-W52", a.SpendingByPeriod[0].Period)
	assert.Equal(t, "2024-W01", a.SpendingByPeriod[1].Period)
	assert.Equal(t, -20.0, a.SpendingByPeriod[1].Amount)
	assert.Equal(t, "2024-W02", a.SpendingByPeriod[2].Period)
}

func TestAnalyzeSinglePeriodHasNoTrend(t *testing.T) {
	a, err := Analyze([]models.Transaction{tx(-5, "", 2024, 4, 1)}, models.TimeframeMonthly, 0, now)
	require.NoError(t, err)
	assert.Nil(t, a.Trends.Overall)
	assert.Empty(t, a.Trends.Categories)
	assert.Equal(t, UncategorizedLabel, a.SpendingByPeriod[0].Category)
	assert.Empty(t, a.Anomalies)
	assert.Empty(t, a.Insights)
}

func TestAnomaliesIdenticalAmounts(t *testing.T) {
	var rows []models.PeriodAmount
	for i := 0; i < 12; i++ {
		rows = append(rows, models.PeriodAmount{Period: PeriodKey(time.Date(2024, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC), models.TimeframeMonthly), Category: "food", Amount: -50})
	}
	assert.Empty(t, Anomalies(rows, DefaultAnomalyThreshold))
}

func TestAnomaliesFlagsOutlier(t *testing.T) {
	var rows []models.PeriodAmount
	for i := 0; i < 10; i++ {
		rows = append(rows, models.PeriodAmount{Period: "2024-01", Category: string(rune('a' + i)), Amount: -50})
	}
	rows = append(rows, models.PeriodAmount{Period: "2024-01", Category: "travel", Amount: -2000})

	got := Anomalies(rows, DefaultAnomalyThreshold)
	require.Len(t, got, 1)
	assert.Equal(t, "travel", got[0].Category)
	assert.Greater(t, got[0].ZScore, 2.0)

	notes := Narratives(models.SpendingTrends{}, got)
	assert.Equal(t, []string{"Detected 1 unusual spending patterns that may need attention"}, notes)
}

func TestNarrativesDecrease(t *testing.T) {
	notes := Narratives(models.SpendingTrends{
		Overall: &models.Trend{Slope: -10, ChangePercent: -25},
		Categories: map[string]models.Trend{
			"zoo":   {Slope: 1},
			"books": {Slope: 2},
			"rent":  {Slope: 0},
		},
	}, nil)
	assert.Equal(t, []string{
		"Great job! Your overall spending has decreased by 25.0% over the analyzed period",
		"Spending in books is trending upward - consider reviewing this category",
		"Spending in zoo is trending upward - consider reviewing this category",
	}, notes)
}
