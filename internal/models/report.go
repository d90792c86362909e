package models

import "time"

// HealthReport is the aggregated financial health score.
type HealthReport struct {
	OverallScore    float64            `json:"overall_score"`
	Grade           string             `json:"grade"`
	ComponentScores map[string]float64 `json:"component_scores"`
	Weights         map[string]float64 `json:"weights"`
	Recommendations []string           `json:"recommendations"`
	CalculatedAt    time.Time          `json:"calculated_at"`
}

// Insight is a prioritized, human-readable finding. Higher PriorityScore is more urgent.
type Insight struct {
	Type           string `json:"type"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Recommendation string `json:"recommendation"`
	PriorityScore  int    `json:"priority_score"`
	Category       string `json:"category"`
}

// InsightInput is everything the insight generators may look at.
type InsightInput struct {
	Transactions []Transaction  `json:"transactions,omitempty"`
	Income       float64        `json:"income,omitempty"`
	Expenses     float64        `json:"expenses,omitempty"`
	Portfolio    []Holding      `json:"portfolio,omitempty"`
	Profile      *UserProfile   `json:"profile,omitempty"`
	Market       *MarketContext `json:"market,omitempty"`
}

// Section wraps one part of an aggregate report. Exactly one of Data or Error is set.
type Section[T any] struct {
	Data  *T     `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// ReportInput is the request for a comprehensive report.
type ReportInput struct {
	Snapshot     FinancialSnapshot `json:"snapshot"`
	Transactions []Transaction     `json:"transactions,omitempty"`
	Profile      UserProfile       `json:"profile"`
	Market       *MarketContext    `json:"market,omitempty"`
	Timeframe    Timeframe         `json:"timeframe,omitempty"`
}

// FinancialReport is the comprehensive report. Sections are computed independently.
type FinancialReport struct {
	GeneratedAt        time.Time                   `json:"generated_at"`
	Profile            UserProfile                 `json:"profile"`
	Summary            Section[SummaryMetrics]     `json:"summary"`
	HealthScore        Section[HealthReport]       `json:"health_score"`
	Spending           Section[SpendingAnalysis]   `json:"spending"`
	SpendingForecast   Section[SpendingForecast]   `json:"spending_forecast"`
	SavingsForecast    Section[SavingsForecast]    `json:"savings_forecast"`
	InvestmentForecast Section[InvestmentForecast] `json:"investment_forecast"`
	Insights           []Insight                   `json:"insights"`
}
