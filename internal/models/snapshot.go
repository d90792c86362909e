package models

// Holding is one position of an investment portfolio.
type Holding struct {
	AssetType      string   `json:"asset_type"`
	Value          float64  `json:"value"`
	ExpectedReturn *float64 `json:"expected_return,omitempty"` // annual, fractional
}

// FinancialSnapshot is the caller-supplied view of a user's finances.
// Income and Expenses are monthly; MonthlyExpenses feeds the emergency fund
// metric and is deliberately kept apart from Expenses.
type FinancialSnapshot struct {
	Income              float64            `json:"income"`
	Expenses            float64            `json:"expenses"`
	Debt                float64            `json:"debt"`
	EmergencyFund       float64            `json:"emergency_fund"`
	MonthlyExpenses     float64            `json:"monthly_expenses"`
	CurrentSavings      float64            `json:"current_savings,omitempty"`
	MonthlyContribution float64            `json:"monthly_contribution,omitempty"`
	InvestmentPortfolio []Holding          `json:"investment_portfolio,omitempty"`
	Budget              map[string]float64 `json:"budget,omitempty"`
	ActualSpending      map[string]float64 `json:"actual_spending,omitempty"`
}

// MarketContext is market information supplied by the market-data collaborator.
type MarketContext struct {
	MarketTrend  string  `json:"market_trend,omitempty"`  // "bull", "bear", ...
	InterestRate float64 `json:"interest_rate,omitempty"` // percent
}
