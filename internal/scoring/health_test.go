package scoring

import (
	"testing"
	"time"

	"github.com/Dan9191/finance-assistant/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeightsSumToOne(t *testing.T) {
	var sum float64
	for _, m := range Metrics {
		sum += Weights[m]
	}
	assert.InDelta(t, 1.0, sum, 1e-12)
	assert.Len(t, Weights, len(Metrics))
}

func TestGrade(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, "A+"}, {90, "A+"}, {89.999, "A"}, {85, "A"}, {80, "A-"},
		{75, "B+"}, {70, "B"}, {69.99, "B-"}, {65, "B-"}, {60, "C+"},
		{55, "C"}, {50, "C-"}, {45, "D+"}, {40, "D"}, {39.99, "F"}, {0, "F"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Grade(tt.score), "score=%v", tt.score)
	}
}

func TestHealthScore(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	snapshot := models.FinancialSnapshot{
		Income:          5000,
		Expenses:        4750,
		Debt:            2000,
		EmergencyFund:   12000,
		MonthlyExpenses: 3000,
		InvestmentPortfolio: []models.Holding{
			{AssetType: "stocks", Value: 1000},
			{AssetType: "bonds", Value: 1000},
			{AssetType: "reit", Value: 1000},
		},
	}

	report := HealthScore(snapshot, now)

	assert.Equal(t, 20.0, report.ComponentScores["savings_rate"])
	assert.Equal(t, 60.0, report.ComponentScores["debt_to_income"])
	assert.Equal(t, 80.0, report.ComponentScores["emergency_fund"])
	assert.Equal(t, 60.0, report.ComponentScores["investment_diversity"])
	assert.Equal(t, 50.0, report.ComponentScores["budget_adherence"])

	// 0.25*20 + 0.2*60 + 0.2*80 + 0.15*60 + 0.2*50
	assert.InDelta(t, 52.0, report.OverallScore, 1e-9)
	assert.Equal(t, "C-", report.Grade)
	assert.Equal(t, now, report.CalculatedAt)
	assert.Equal(t, 0.25, report.Weights["savings_rate"])

	require.Len(t, report.Recommendations, 3)
	assert.Equal(t, recommendations[SavingsRate], report.Recommendations[0])
	assert.Equal(t, recommendations[BudgetAdherence], report.Recommendations[1])
	assert.Equal(t, advisorNote, report.Recommendations[2])
}

func TestHealthScoreBounds(t *testing.T) {
	empty := HealthScore(models.FinancialSnapshot{}, time.Time{})
	assert.InDelta(t, 10.0, empty.OverallScore, 1e-9)
	assert.Equal(t, "F", empty.Grade)
	assert.Len(t, empty.Recommendations, len(Metrics)+1)

	perfect := HealthScore(models.FinancialSnapshot{
		Income:          10000,
		Expenses:        5000,
		Debt:            0,
		EmergencyFund:   60000,
		MonthlyExpenses: 5000,
		InvestmentPortfolio: []models.Holding{
			{AssetType: "stocks"}, {AssetType: "bonds"}, {AssetType: "reit"}, {AssetType: "cash"}, {AssetType: "gold"},
		},
		Budget:         map[string]float64{"food": 500},
		ActualSpending: map[string]float64{"food": 500},
	}, time.Time{})
	assert.InDelta(t, 100.0, perfect.OverallScore, 1e-9)
	assert.LessOrEqual(t, perfect.OverallScore, 100.0)
	assert.Equal(t, "A+", perfect.Grade)
	assert.Empty(t, perfect.Recommendations)
}

func TestOverallMatchesWeightedSum(t *testing.T) {
	scores := map[Metric]float64{
		SavingsRate: 80, DebtToIncome: 100, EmergencyFund: 40, InvestmentDiversity: 20, BudgetAdherence: 60,
	}
	want := 0.25*80 + 0.2*100 + 0.2*40 + 0.15*20 + 0.2*60
	got := Overall(scores)
	assert.InDelta(t, want, got, 1e-9)
	assert.GreaterOrEqual(t, got, 0.0)
	assert.LessOrEqual(t, got, 100.0)
}
