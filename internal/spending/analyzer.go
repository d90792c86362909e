// Package spending groups transactions into periods and derives trends, anomalies and narrative notes.
package spending

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/Dan9191/finance-assistant/internal/models"
	"github.com/Dan9191/finance-assistant/internal/stats"
)

// DefaultAnomalyThreshold is the |z| above which a (period, category) sum is flagged.
const DefaultAnomalyThreshold = 2.0

// narrativeChangePercent is the overall change that earns a narrative note.
const narrativeChangePercent = 10.0

// UncategorizedLabel is used for transactions without a category.
const UncategorizedLabel = "Other"

// Category returns the transaction's category, defaulting blanks to UncategorizedLabel.
func Category(t models.Transaction) string {
	if t.Category == "" {
		return UncategorizedLabel
	}
	return t.Category
}

// NormalizeTimeframe maps unknown values to monthly.
func NormalizeTimeframe(tf models.Timeframe) models.Timeframe {
	if tf == models.TimeframeWeekly {
		return models.TimeframeWeekly
	}
	return models.TimeframeMonthly
}

// PeriodKey labels the bucket a date falls in. Keys sort chronologically as strings.
func PeriodKey(d time.Time, tf models.Timeframe) string {
	if tf == models.TimeframeWeekly {
		year, week := d.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	}
	return d.Format("2006-01")
}

type bucketKey struct {
	period   string
	category string
}

// Analyze buckets transactions by timeframe and category, fits trends over the
// per-period totals, and flags outliers among the bucket sums.
func Analyze(txns []models.Transaction, tf models.Timeframe, threshold float64, now time.Time) (models.SpendingAnalysis, error) {
	if len(txns) == 0 {
		return models.SpendingAnalysis{}, fmt.Errorf("no transactions to analyze: %w", models.ErrInsufficientData)
	}
	tf = NormalizeTimeframe(tf)
	if threshold <= 0 {
		threshold = DefaultAnomalyThreshold
	}

	sums := make(map[bucketKey]float64)
	var total float64
	for _, t := range txns {
		k := bucketKey{period: PeriodKey(t.Date.Time, tf), category: Category(t)}
		sums[k] += t.Amount
		total += t.Amount
	}

	byPeriod := make([]models.PeriodAmount, 0, len(sums))
	for k, v := range sums {
		byPeriod = append(byPeriod, models.PeriodAmount{Period: k.period, Category: k.category, Amount: v})
	}
	sort.Slice(byPeriod, func(i, j int) bool {
		if byPeriod[i].Period != byPeriod[j].Period {
			return byPeriod[i].Period < byPeriod[j].Period
		}
		return byPeriod[i].Category < byPeriod[j].Category
	})

	trends := Trends(byPeriod)
	anomalies := Anomalies(byPeriod, threshold)

	return models.SpendingAnalysis{
		Timeframe:         tf,
		TotalTransactions: len(txns),
		TotalSpent:        total,
		SpendingByPeriod:  byPeriod,
		Trends:            trends,
		Anomalies:         anomalies,
		Insights:          Narratives(trends, anomalies),
		AnalyzedAt:        now,
	}, nil
}

// Trends fits the overall per-period totals and each category's per-period totals.
// byPeriod must be sorted by period.
func Trends(byPeriod []models.PeriodAmount) models.SpendingTrends {
	var periods []string
	totals := make(map[string]float64)
	var categories []string
	categoryTotals := make(map[string][]float64)
	for _, p := range byPeriod {
		if _, ok := totals[p.Period]; !ok {
			periods = append(periods, p.Period)
		}
		totals[p.Period] += p.Amount
		if _, ok := categoryTotals[p.Category]; !ok {
			categories = append(categories, p.Category)
		}
		categoryTotals[p.Category] = append(categoryTotals[p.Category], p.Amount)
	}

	out := models.SpendingTrends{Categories: make(map[string]models.Trend)}
	series := make([]float64, len(periods))
	for i, p := range periods {
		series[i] = totals[p]
	}
	if tr, ok := fitTrend(series); ok {
		out.Overall = &tr
	}
	for _, c := range categories {
		if tr, ok := fitTrend(categoryTotals[c]); ok {
			out.Categories[c] = tr
		}
	}
	return out
}

func fitTrend(series []float64) (models.Trend, bool) {
	fit, ok := stats.LinearRegression(series)
	if !ok {
		return models.Trend{}, false
	}
	tr := models.Trend{
		Direction: Direction(fit.Slope),
		Slope:     fit.Slope,
		RSquared:  fit.RSquared,
		Periods:   fit.N,
	}
	if mean := stats.Mean(series); mean != 0 {
		tr.ChangePercent = fit.Slope / mean * 100
	}
	return tr, true
}

// Direction names the sign of a slope.
func Direction(slope float64) string {
	switch {
	case slope > 0:
		return models.TrendIncreasing
	case slope < 0:
		return models.TrendDecreasing
	default:
		return models.TrendStable
	}
}

// Anomalies flags bucket sums whose |z| exceeds threshold. ZScore is reported as an absolute value.
func Anomalies(byPeriod []models.PeriodAmount, threshold float64) []models.SpendingAnomaly {
	amounts := make([]float64, len(byPeriod))
	for i, p := range byPeriod {
		amounts[i] = p.Amount
	}
	z := stats.ZScores(amounts)
	anomalies := make([]models.SpendingAnomaly, 0)
	for i, score := range z {
		if math.Abs(score) <= threshold {
			continue
		}
		p := byPeriod[i]
		anomalies = append(anomalies, models.SpendingAnomaly{
			Period:      p.Period,
			Category:    p.Category,
			Amount:      p.Amount,
			ZScore:      math.Abs(score),
			Description: fmt.Sprintf("Unusual spending in %s during %s", p.Category, p.Period),
		})
	}
	return anomalies
}

// Narratives renders trend and anomaly results as user-facing notes.
func Narratives(trends models.SpendingTrends, anomalies []models.SpendingAnomaly) []string {
	notes := make([]string, 0)
	if o := trends.Overall; o != nil {
		switch {
		case o.ChangePercent > narrativeChangePercent:
			notes = append(notes, fmt.Sprintf("Your overall spending has increased by %.1f%% over the analyzed period", o.ChangePercent))
		case o.ChangePercent < -narrativeChangePercent:
			notes = append(notes, fmt.Sprintf("Great job! Your overall spending has decreased by %.1f%% over the analyzed period", math.Abs(o.ChangePercent)))
		}
	}

	categories := make([]string, 0, len(trends.Categories))
	for c := range trends.Categories {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	for _, c := range categories {
		if trends.Categories[c].Slope > 0 {
			notes = append(notes, fmt.Sprintf("Spending in %s is trending upward - consider reviewing this category", c))
		}
	}

	if len(anomalies) > 0 {
		notes = append(notes, fmt.Sprintf("Detected %d unusual spending patterns that may need attention", len(anomalies)))
	}
	return notes
}
