package models

import "time"

// ForecastKind tags a forecast result.
type ForecastKind string

const (
	ForecastSpending          ForecastKind = "spending"
	ForecastSavingsGrowth     ForecastKind = "savings_growth"
	ForecastInvestmentReturns ForecastKind = "investment_returns"
	ForecastRetirementNeeds   ForecastKind = "retirement_needs"
	ForecastLoanPayment       ForecastKind = "loan_payment"
)

// Interval is a band around a point estimate.
type Interval struct {
	Lower           float64 `json:"lower"`
	Upper           float64 `json:"upper"`
	ConfidenceLevel float64 `json:"confidence_level"`
}

// CategoryPrediction is the next-period estimate for one expense category.
type CategoryPrediction struct {
	Predicted    float64 `json:"predicted"`
	Confidence   float64 `json:"confidence"`
	Observations int     `json:"observations"`
}

// SpendingStatistics describes the expense sample behind a spending forecast.
type SpendingStatistics struct {
	MeanSpending float64 `json:"mean_spending"`
	Volatility   float64 `json:"spending_volatility"`
	DataPoints   int     `json:"data_points"`
}

// MovingAverageForecast is the seasonal moving-average estimate.
type MovingAverageForecast struct {
	Prediction     float64 `json:"prediction"`
	SeasonalFactor float64 `json:"seasonal_factor"`
	Window         int     `json:"window"`
}

// RegressionForecast projects monthly expense totals one month ahead with a linear fit.
type RegressionForecast struct {
	Prediction float64 `json:"prediction"`
	Slope      float64 `json:"slope"`
	Intercept  float64 `json:"intercept"`
	RSquared   float64 `json:"r_squared"`
	Months     int     `json:"months"`
}

// SpendingForecast predicts next month's spending.
type SpendingForecast struct {
	Kind                ForecastKind                  `json:"prediction_type"`
	NextMonthPrediction float64                       `json:"next_month_prediction"`
	ConfidenceInterval  Interval                      `json:"confidence_interval"`
	CategoryPredictions map[string]CategoryPrediction `json:"category_predictions"`
	Statistics          SpendingStatistics            `json:"statistics"`
	MovingAverage       *MovingAverageForecast        `json:"moving_average,omitempty"`
	Regression          *RegressionForecast           `json:"regression,omitempty"`
	GrowthMultiplier    float64                       `json:"growth_multiplier"`
	GeneratedAt         time.Time                     `json:"timestamp"`
}

// SavingsInput are the savings growth parameters. A nil AnnualReturnRate means "use the default".
type SavingsInput struct {
	CurrentSavings      float64  `json:"current_savings"`
	MonthlyContribution float64  `json:"monthly_contribution"`
	AnnualReturnRate    *float64 `json:"expected_return_rate,omitempty"`
}

// SavingsProjection is the savings balance after a number of years.
// GrowthMultiplier is nil and GrowthUnbounded is set when there are no starting savings.
type SavingsProjection struct {
	Years              int      `json:"years"`
	FutureValue        float64  `json:"future_value"`
	TotalContributions float64  `json:"total_contributions"`
	InterestEarned     float64  `json:"interest_earned"`
	GrowthMultiplier   *float64 `json:"growth_multiplier"`
	GrowthUnbounded    bool     `json:"growth_unbounded,omitempty"`
}

// SavingsForecast projects savings growth over several horizons.
type SavingsForecast struct {
	Kind                 ForecastKind        `json:"prediction_type"`
	CurrentSavings       float64             `json:"current_savings"`
	MonthlyContribution  float64             `json:"monthly_contribution"`
	ExpectedAnnualReturn float64             `json:"expected_annual_return"`
	Projections          []SavingsProjection `json:"predictions"`
	Recommendations      []string            `json:"recommendations"`
	GeneratedAt          time.Time           `json:"timestamp"`
}

// InvestmentInput are the investment forecast parameters.
type InvestmentInput struct {
	Portfolio     []Holding `json:"portfolio"`
	RiskTolerance string    `json:"risk_tolerance,omitempty"`
}

// ReturnProjection is the expected portfolio value after a number of years.
type ReturnProjection struct {
	Years           int      `json:"years"`
	ExpectedValue   float64  `json:"expected_value"`
	ExpectedReturn  float64  `json:"expected_return"`
	VolatilityRange Interval `json:"volatility_range"`
}

// RiskMetrics summarizes the risk of a portfolio.
type RiskMetrics struct {
	Volatility           float64 `json:"volatility"`
	SharpeRatio          float64 `json:"sharpe_ratio"`
	MaxDrawdownEstimate  float64 `json:"max_drawdown_estimate"`
	DiversificationScore float64 `json:"diversification_score"`
}

// InvestmentForecast projects portfolio returns.
type InvestmentForecast struct {
	Kind                  ForecastKind       `json:"prediction_type"`
	CurrentPortfolioValue float64            `json:"current_portfolio_value"`
	ExpectedAnnualReturn  float64            `json:"expected_annual_return"`
	RiskTolerance         string             `json:"risk_tolerance"`
	Projections           []ReturnProjection `json:"return_predictions"`
	RiskMetrics           RiskMetrics        `json:"risk_metrics"`
	GeneratedAt           time.Time          `json:"timestamp"`
}

// RetirementInput are the retirement planning parameters. Nil rates mean "use the default".
type RetirementInput struct {
	CurrentAge          int      `json:"current_age"`
	RetirementAge       int      `json:"retirement_age"`
	CurrentSavings      float64  `json:"current_savings"`
	DesiredAnnualIncome float64  `json:"desired_income"`
	InflationRate       *float64 `json:"inflation_rate,omitempty"`
	InvestmentReturn    *float64 `json:"investment_return,omitempty"`
}

// RetirementAssumptions are the rates and horizon a retirement plan was computed with.
type RetirementAssumptions struct {
	InflationRate     float64 `json:"inflation_rate"`
	InvestmentReturn  float64 `json:"investment_return"`
	YearsInRetirement int     `json:"years_in_retirement"`
}

// RetirementPlan is the retirement funding estimate.
// Immediate is set when there are no years left to save; the shortfall is then due at once.
type RetirementPlan struct {
	Kind                    ForecastKind          `json:"prediction_type"`
	CurrentAge              int                   `json:"current_age"`
	RetirementAge           int                   `json:"retirement_age"`
	YearsToRetirement       int                   `json:"years_to_retirement"`
	CurrentSavings          float64               `json:"current_savings"`
	FutureSavings           float64               `json:"future_savings"`
	DesiredAnnualIncome     float64               `json:"desired_income"`
	InflationAdjustedIncome float64               `json:"inflation_adjusted_income"`
	TotalRetirementNeeds    float64               `json:"total_retirement_needs"`
	AdditionalSavingsNeeded float64               `json:"additional_savings_needed"`
	MonthlySavingsRequired  float64               `json:"monthly_savings_required"`
	Immediate               bool                  `json:"immediate,omitempty"`
	Assumptions             RetirementAssumptions `json:"assumptions"`
}

// PredictionRequest is the body of a prediction call; fields are read according to PredictionType.
type PredictionRequest struct {
	PredictionType      string        `json:"prediction_type"`
	Transactions        []Transaction `json:"transactions,omitempty"`
	CurrentSavings      float64       `json:"current_savings,omitempty"`
	MonthlyContribution float64       `json:"monthly_contribution,omitempty"`
	ExpectedReturnRate  *float64      `json:"expected_return_rate,omitempty"`
	Portfolio           []Holding     `json:"portfolio,omitempty"`
	RiskTolerance       string        `json:"risk_tolerance,omitempty"`
}
