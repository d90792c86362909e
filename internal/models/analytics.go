package models

import "time"

// Timeframe selects the bucketing granularity of a spending analysis.
type Timeframe string

const (
	TimeframeMonthly Timeframe = "monthly"
	TimeframeWeekly  Timeframe = "weekly"
)

// Trend directions.
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)

// PeriodAmount is the signed sum of one category within one period.
type PeriodAmount struct {
	Period   string  `json:"period"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// Trend is a least-squares fit of per-period totals against the period index.
type Trend struct {
	Direction     string  `json:"direction"`
	Slope         float64 `json:"slope"`
	ChangePercent float64 `json:"change_percent"`
	RSquared      float64 `json:"r_squared"`
	Periods       int     `json:"periods"`
}

// SpendingTrends groups the overall trend with per-category trends.
type SpendingTrends struct {
	Overall    *Trend           `json:"overall,omitempty"`
	Categories map[string]Trend `json:"categories"`
}

// SpendingAnomaly is a (period, category) sum that deviates from the mean by more than the threshold.
type SpendingAnomaly struct {
	Period      string  `json:"period"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	ZScore      float64 `json:"z_score"`
	Description string  `json:"description"`
}

// SpendingAnalysis is the result of analyzing a transaction list.
type SpendingAnalysis struct {
	Timeframe         Timeframe         `json:"timeframe"`
	TotalTransactions int               `json:"total_transactions"`
	TotalSpent        float64           `json:"total_spent"`
	SpendingByPeriod  []PeriodAmount    `json:"spending_by_period"`
	Trends            SpendingTrends    `json:"trends"`
	Anomalies         []SpendingAnomaly `json:"anomalies"`
	Insights          []string          `json:"insights"`
	AnalyzedAt        time.Time         `json:"analyzed_at"`
}

// CategoryTotal is the absolute amount moved through one category.
type CategoryTotal struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// SummaryMetrics represents headline statistics over a transaction list
type SummaryMetrics struct {
	TotalTransactions     int             `json:"total_transactions"`
	TotalSpent            float64         `json:"total_spent"`
	TotalIncome           float64         `json:"total_income"`
	TotalExpenses         float64         `json:"total_expenses"`
	NetFlow               float64         `json:"net_flow"`
	TopSpendingCategories []CategoryTotal `json:"top_spending_categories"`
	AverageTransaction    float64         `json:"average_transaction"`
}
