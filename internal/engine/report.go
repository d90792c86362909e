package engine

import "github.com/Dan9191/finance-assistant/internal/models"

func section[T any](data T, err error) models.Section[T] {
	if err != nil {
		return models.Section[T]{Error: err.Error()}
	}
	return models.Section[T]{Data: &data}
}

// Report runs every analysis over the input. Each section is computed on its own, so a
// failed section carries its error while the others still complete.
func (e *Engine) Report(in models.ReportInput) models.FinancialReport {
	s := in.Snapshot
	profile := in.Profile

	report := models.FinancialReport{
		GeneratedAt: e.opts.Now(),
		Profile:     profile,
	}
	report.HealthScore = section(e.healthScore(s))
	report.Summary = section(e.Summarize(in.Transactions))
	report.Spending = section(e.AnalyzeSpending(in.Transactions, in.Timeframe))
	report.SpendingForecast = section(e.PredictSpending(in.Transactions))
	report.SavingsForecast = section(e.PredictSavings(models.SavingsInput{
		CurrentSavings:      s.CurrentSavings,
		MonthlyContribution: s.MonthlyContribution,
	}))
	report.InvestmentForecast = section(e.PredictInvestment(models.InvestmentInput{
		Portfolio:     s.InvestmentPortfolio,
		RiskTolerance: profile.RiskTolerance,
	}))
	report.Insights = e.Insights(models.InsightInput{
		Transactions: in.Transactions,
		Income:       s.Income,
		Expenses:     s.Expenses,
		Portfolio:    s.InvestmentPortfolio,
		Profile:      &profile,
		Market:       in.Market,
	})
	return report
}
