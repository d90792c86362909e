// Package forecast projects spending, savings, investment returns, retirement needs and loan payments.
package forecast

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/Dan9191/finance-assistant/internal/models"
	"github.com/Dan9191/finance-assistant/internal/spending"
	"github.com/Dan9191/finance-assistant/internal/stats"
)

const (
	// DefaultSpendingGrowth is the flat month-over-month growth applied to spending estimates.
	DefaultSpendingGrowth = 1.02

	MinSpendingTransactions = 10
	MinCategoryObservations = 3
	MovingAverageWindow     = 7

	z95               = 1.96
	maxCategoryConf   = 0.95
	confidenceLevel95 = 0.95
)

var seasonalFactors = map[time.Month]float64{
	time.January:  1.1,
	time.February: 0.9,
	time.November: 1.2,
	time.December: 1.3,
}

// SeasonalFactor is the spending adjustment for a calendar month.
func SeasonalFactor(m time.Month) float64 {
	if f, ok := seasonalFactors[m]; ok {
		return f
	}
	return 1.0
}

// Spending predicts next month's spending from expense transactions.
// A growth multiplier of zero or less falls back to DefaultSpendingGrowth.
func Spending(txns []models.Transaction, growth float64, now time.Time) (models.SpendingForecast, error) {
	if growth <= 0 {
		growth = DefaultSpendingGrowth
	}

	expenses := make([]models.Transaction, 0, len(txns))
	for _, t := range txns {
		if t.IsExpense() {
			expenses = append(expenses, t)
		}
	}
	if len(expenses) < MinSpendingTransactions {
		return models.SpendingForecast{}, fmt.Errorf("need at least %d expense transactions, got %d: %w",
			MinSpendingTransactions, len(expenses), models.ErrInsufficientData)
	}
	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Date.Before(expenses[j].Date.Time)
	})

	amounts := make([]float64, len(expenses))
	byCategory := make(map[string][]float64)
	for i, t := range expenses {
		amounts[i] = math.Abs(t.Amount)
		c := spending.Category(t)
		byCategory[c] = append(byCategory[c], amounts[i])
	}

	mean := stats.Mean(amounts)
	std := stats.StdDev(amounts)
	estimate := mean * growth
	half := z95 * std / math.Sqrt(float64(len(amounts)))

	return models.SpendingForecast{
		Kind:                models.ForecastSpending,
		NextMonthPrediction: estimate,
		ConfidenceInterval: models.Interval{
			Lower:           estimate - half,
			Upper:           estimate + half,
			ConfidenceLevel: confidenceLevel95,
		},
		CategoryPredictions: categoryPredictions(byCategory, growth),
		Statistics: models.SpendingStatistics{
			MeanSpending: mean,
			Volatility:   std,
			DataPoints:   len(amounts),
		},
		MovingAverage:    movingAverage(amounts, now.Month()),
		Regression:       monthlyRegression(expenses),
		GrowthMultiplier: growth,
		GeneratedAt:      now,
	}, nil
}

func categoryPredictions(byCategory map[string][]float64, growth float64) map[string]models.CategoryPrediction {
	out := make(map[string]models.CategoryPrediction)
	for c, amounts := range byCategory {
		if len(amounts) < MinCategoryObservations {
			continue
		}
		mean := stats.Mean(amounts)
		var conf float64
		if mean != 0 {
			conf = math.Max(0, math.Min(maxCategoryConf, 1-stats.StdDev(amounts)/mean))
		}
		out[c] = models.CategoryPrediction{
			Predicted:    mean * growth,
			Confidence:   conf,
			Observations: len(amounts),
		}
	}
	return out
}

// movingAverage averages the most recent expenses and applies the seasonal factor of the current month.
func movingAverage(amounts []float64, month time.Month) *models.MovingAverageForecast {
	window := amounts
	if len(window) > MovingAverageWindow {
		window = window[len(window)-MovingAverageWindow:]
	}
	factor := SeasonalFactor(month)
	return &models.MovingAverageForecast{
		Prediction:     stats.Mean(window) * factor,
		SeasonalFactor: factor,
		Window:         len(window),
	}
}

// monthlyRegression fits monthly expense totals and projects the next month.
// Expenses must be sorted by date. It returns nil when fewer than two months are present.
func monthlyRegression(expenses []models.Transaction) *models.RegressionForecast {
	var months []string
	totals := make(map[string]float64)
	for _, t := range expenses {
		key := spending.PeriodKey(t.Date.Time, models.TimeframeMonthly)
		if _, ok := totals[key]; !ok {
			months = append(months, key)
		}
		totals[key] += math.Abs(t.Amount)
	}
	series := make([]float64, len(months))
	for i, m := range months {
		series[i] = totals[m]
	}
	fit, ok := stats.LinearRegression(series)
	if !ok {
		return nil
	}
	return &models.RegressionForecast{
		Prediction: math.Max(0, fit.At(float64(len(series)))),
		Slope:      fit.Slope,
		Intercept:  fit.Intercept,
		RSquared:   fit.RSquared,
		Months:     len(series),
	}
}
