package models

import "github.com/Dan9191/finance-assistant/internal/utils"

// Rounded methods produce copies with every derived monetary, rate and score field
// rounded to two decimals. Computation happens on unrounded values; rounding is
// applied only when a result leaves the engine.

func (r HealthReport) Rounded() HealthReport {
	r.OverallScore = utils.Round2(r.OverallScore)
	r.ComponentScores = utils.Round2Map(r.ComponentScores)
	r.Weights = utils.Round2Map(r.Weights)
	return r
}

func (a SpendingAnalysis) Rounded() SpendingAnalysis {
	a.TotalSpent = utils.Round2(a.TotalSpent)

	periods := make([]PeriodAmount, len(a.SpendingByPeriod))
	for i, p := range a.SpendingByPeriod {
		p.Amount = utils.Round2(p.Amount)
		periods[i] = p
	}
	a.SpendingByPeriod = periods

	if a.Trends.Overall != nil {
		overall := a.Trends.Overall.rounded()
		a.Trends.Overall = &overall
	}
	categories := make(map[string]Trend, len(a.Trends.Categories))
	for k, v := range a.Trends.Categories {
		categories[k] = v.rounded()
	}
	a.Trends.Categories = categories

	anomalies := make([]SpendingAnomaly, len(a.Anomalies))
	for i, an := range a.Anomalies {
		an.Amount = utils.Round2(an.Amount)
		an.ZScore = utils.Round2(an.ZScore)
		anomalies[i] = an
	}
	a.Anomalies = anomalies
	return a
}

func (t Trend) rounded() Trend {
	t.Slope = utils.Round2(t.Slope)
	t.ChangePercent = utils.Round2(t.ChangePercent)
	t.RSquared = utils.Round2(t.RSquared)
	return t
}

func (s SummaryMetrics) Rounded() SummaryMetrics {
	s.TotalSpent = utils.Round2(s.TotalSpent)
	s.TotalIncome = utils.Round2(s.TotalIncome)
	s.TotalExpenses = utils.Round2(s.TotalExpenses)
	s.NetFlow = utils.Round2(s.NetFlow)
	s.AverageTransaction = utils.Round2(s.AverageTransaction)
	top := make([]CategoryTotal, len(s.TopSpendingCategories))
	for i, c := range s.TopSpendingCategories {
		c.Amount = utils.Round2(c.Amount)
		top[i] = c
	}
	s.TopSpendingCategories = top
	return s
}

func (i Interval) rounded() Interval {
	i.Lower = utils.Round2(i.Lower)
	i.Upper = utils.Round2(i.Upper)
	i.ConfidenceLevel = utils.Round2(i.ConfidenceLevel)
	return i
}

func (f SpendingForecast) Rounded() SpendingForecast {
	f.NextMonthPrediction = utils.Round2(f.NextMonthPrediction)
	f.ConfidenceInterval = f.ConfidenceInterval.rounded()
	f.Statistics.MeanSpending = utils.Round2(f.Statistics.MeanSpending)
	f.Statistics.Volatility = utils.Round2(f.Statistics.Volatility)
	f.GrowthMultiplier = utils.Round2(f.GrowthMultiplier)

	categories := make(map[string]CategoryPrediction, len(f.CategoryPredictions))
	for k, v := range f.CategoryPredictions {
		v.Predicted = utils.Round2(v.Predicted)
		v.Confidence = utils.Round2(v.Confidence)
		categories[k] = v
	}
	f.CategoryPredictions = categories

	if f.MovingAverage != nil {
		ma := *f.MovingAverage
		ma.Prediction = utils.Round2(ma.Prediction)
		ma.SeasonalFactor = utils.Round2(ma.SeasonalFactor)
		f.MovingAverage = &ma
	}
	if f.Regression != nil {
		reg := *f.Regression
		reg.Prediction = utils.Round2(reg.Prediction)
		reg.Slope = utils.Round2(reg.Slope)
		reg.Intercept = utils.Round2(reg.Intercept)
		reg.RSquared = utils.Round2(reg.RSquared)
		f.Regression = &reg
	}
	return f
}

func (f SavingsForecast) Rounded() SavingsForecast {
	f.CurrentSavings = utils.Round2(f.CurrentSavings)
	f.MonthlyContribution = utils.Round2(f.MonthlyContribution)
	f.ExpectedAnnualReturn = utils.Round2(f.ExpectedAnnualReturn)
	projections := make([]SavingsProjection, len(f.Projections))
	for i, p := range f.Projections {
		p.FutureValue = utils.Round2(p.FutureValue)
		p.TotalContributions = utils.Round2(p.TotalContributions)
		p.InterestEarned = utils.Round2(p.InterestEarned)
		if p.GrowthMultiplier != nil {
			m := utils.Round2(*p.GrowthMultiplier)
			p.GrowthMultiplier = &m
		}
		projections[i] = p
	}
	f.Projections = projections
	return f
}

func (f InvestmentForecast) Rounded() InvestmentForecast {
	f.CurrentPortfolioValue = utils.Round2(f.CurrentPortfolioValue)
	f.ExpectedAnnualReturn = utils.Round2(f.ExpectedAnnualReturn)
	projections := make([]ReturnProjection, len(f.Projections))
	for i, p := range f.Projections {
		p.ExpectedValue = utils.Round2(p.ExpectedValue)
		p.ExpectedReturn = utils.Round2(p.ExpectedReturn)
		p.VolatilityRange = p.VolatilityRange.rounded()
		projections[i] = p
	}
	f.Projections = projections
	f.RiskMetrics = RiskMetrics{
		Volatility:           utils.Round2(f.RiskMetrics.Volatility),
		SharpeRatio:          utils.Round2(f.RiskMetrics.SharpeRatio),
		MaxDrawdownEstimate:  utils.Round2(f.RiskMetrics.MaxDrawdownEstimate),
		DiversificationScore: utils.Round2(f.RiskMetrics.DiversificationScore),
	}
	return f
}

func (p RetirementPlan) Rounded() RetirementPlan {
	p.CurrentSavings = utils.Round2(p.CurrentSavings)
	p.FutureSavings = utils.Round2(p.FutureSavings)
	p.DesiredAnnualIncome = utils.Round2(p.DesiredAnnualIncome)
	p.InflationAdjustedIncome = utils.Round2(p.InflationAdjustedIncome)
	p.TotalRetirementNeeds = utils.Round2(p.TotalRetirementNeeds)
	p.AdditionalSavingsNeeded = utils.Round2(p.AdditionalSavingsNeeded)
	p.MonthlySavingsRequired = utils.Round2(p.MonthlySavingsRequired)
	return p
}

func (l LoanPayment) Rounded() LoanPayment {
	l.Principal = utils.Round2(l.Principal)
	l.Payment = utils.Round2(l.Payment)
	l.TotalPayments = utils.Round2(l.TotalPayments)
	l.TotalInterest = utils.Round2(l.TotalInterest)
	if l.Schedule != nil {
		schedule := make([]AmortizationEntry, len(l.Schedule))
		for i, e := range l.Schedule {
			e.Payment = utils.Round2(e.Payment)
			e.Principal = utils.Round2(e.Principal)
			e.Interest = utils.Round2(e.Interest)
			e.RemainingBalance = utils.Round2(e.RemainingBalance)
			schedule[i] = e
		}
		l.Schedule = schedule
	}
	return l
}
