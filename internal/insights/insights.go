// Package insights generates prioritized findings from spending, savings, investment and market data.
package insights

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Dan9191/finance-assistant/internal/models"
	"github.com/Dan9191/finance-assistant/internal/spending"
	"github.com/Dan9191/finance-assistant/internal/stats"
)

// DefaultLimit is how many insights Rank keeps unless told otherwise.
const DefaultLimit = 5

// Priorities. Higher is more urgent.
const (
	PriorityConcentration       = 8
	PriorityAnomaly             = 7
	PriorityLowSavings          = 9
	PriorityGoodSavings         = 6
	PriorityExcellentSavings    = 4
	PriorityRiskMismatch        = 8
	PriorityGrowthOpportunity   = 6
	PriorityBearMarket          = 7
	PriorityHighRates           = 6
	PriorityTimeAdvantage       = 8
	PriorityCapitalPreservation = 9
)

// Insight types.
const (
	TypeSpendingPattern     = "spending_pattern"
	TypeAnomalyDetection    = "anomaly_detection"
	TypeSavingsOptimization = "savings_optimization"
	TypeInvestmentStrategy  = "investment_strategy"
	TypeRiskAlignment       = "risk_alignment"
	TypeMarketContext       = "market_context"
)

const (
	concentrationPercent = 40.0
	anomalyMinTxns       = 10
	anomalyZ             = 2.0
	highRatePercent      = 5.0
	youngAge             = 30
	nearRetirementAge    = 50
)

var stockAssetTypes = map[string]bool{"stock": true, "stocks": true, "equity": true}

// Generate collects candidates from every generator whose input is present, in emission order.
func Generate(in models.InsightInput) []models.Insight {
	var out []models.Insight
	if len(in.Transactions) > 0 {
		out = append(out, Spending(in.Transactions)...)
	}
	if in.Income > 0 && in.Expenses > 0 {
		out = append(out, Savings(in.Income, in.Expenses)...)
	}
	if in.Profile != nil && len(in.Portfolio) > 0 {
		out = append(out, Investment(in.Portfolio, *in.Profile)...)
	}
	if in.Market != nil {
		out = append(out, Market(*in.Market)...)
	}
	return out
}

// Rank orders candidates by priority, highest first, keeping emission order among ties,
// and keeps at most limit. A limit of zero or less uses DefaultLimit.
func Rank(candidates []models.Insight, limit int) []models.Insight {
	if limit <= 0 {
		limit = DefaultLimit
	}
	ranked := make([]models.Insight, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PriorityScore > ranked[j].PriorityScore
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// Spending flags a dominant category and unusual individual transactions.
func Spending(txns []models.Transaction) []models.Insight {
	totals := make(map[string]float64)
	var total float64
	for _, t := range txns {
		abs := math.Abs(t.Amount)
		totals[spending.Category(t)] += abs
		total += abs
	}

	var out []models.Insight
	top := spending.RankCategories(totals, 1)
	if len(top) == 0 || total == 0 {
		return out
	}
	if share := top[0].Amount / total * 100; share > concentrationPercent {
		out = append(out, models.Insight{
			Type:           TypeSpendingPattern,
			Title:          "High Concentration in Single Category",
			Description:    fmt.Sprintf("Your top spending category '%s' represents %.1f%% of total spending.", top[0].Category, share),
			Recommendation: "Consider diversifying your spending or reviewing this category for potential savings.",
			PriorityScore:  PriorityConcentration,
			Category:       "spending",
		})
	}
	if HasAnomalies(txns) {
		out = append(out, models.Insight{
			Type:           TypeAnomalyDetection,
			Title:          "Unusual Spending Pattern Detected",
			Description:    "We've detected unusual spending patterns that may require attention.",
			Recommendation: "Review your recent transactions and consider setting spending alerts.",
			PriorityScore:  PriorityAnomaly,
			Category:       "spending",
		})
	}
	return out
}

// HasAnomalies reports whether any transaction amount lies more than two standard
// deviations from the mean. It needs at least ten transactions.
func HasAnomalies(txns []models.Transaction) bool {
	if len(txns) < anomalyMinTxns {
		return false
	}
	amounts := make([]float64, len(txns))
	for i, t := range txns {
		amounts[i] = math.Abs(t.Amount)
	}
	for _, z := range stats.ZScores(amounts) {
		if math.Abs(z) > anomalyZ {
			return true
		}
	}
	return false
}

// Savings grades the savings rate. It emits nothing without positive income.
func Savings(income, expenses float64) []models.Insight {
	if income <= 0 {
		return nil
	}
	rate := (income - expenses) / income * 100
	in := models.Insight{Type: TypeSavingsOptimization, Category: "savings"}
	switch {
	case rate < 20:
		in.Title = "Low Savings Rate"
		in.Description = fmt.Sprintf("Your current savings rate is %.1f%%, below the recommended 20%%.", rate)
		in.Recommendation = "Review your expenses and identify areas to cut back. Consider the 50/30/20 rule."
		in.PriorityScore = PriorityLowSavings
	case rate < 30:
		in.Title = "Good Savings Rate"
		in.Description = fmt.Sprintf("Your savings rate of %.1f%% is good, but could be improved.", rate)
		in.Recommendation = "Consider increasing to 30% for better financial security and faster goal achievement."
		in.PriorityScore = PriorityGoodSavings
	default:
		in.Title = "Excellent Savings Rate"
		in.Description = fmt.Sprintf("Your savings rate of %.1f%% is excellent!", rate)
		in.Recommendation = "Consider investing excess savings or setting more ambitious financial goals."
		in.PriorityScore = PriorityExcellentSavings
	}
	return []models.Insight{in}
}

// StockAllocation is the percentage of portfolio value held in stocks.
func StockAllocation(portfolio []models.Holding) float64 {
	var total, stocks float64
	for _, h := range portfolio {
		total += h.Value
		if stockAssetTypes[strings.ToLower(h.AssetType)] {
			stocks += h.Value
		}
	}
	if total <= 0 {
		return 0
	}
	return stocks / total * 100
}

// Investment suggests an allocation from the investor's age and checks it against their risk tolerance.
// An age of zero or less is treated as unknown. Without holdings there is nothing to advise on.
func Investment(portfolio []models.Holding, profile models.UserProfile) []models.Insight {
	if len(portfolio) == 0 {
		return nil
	}
	var out []models.Insight
	switch {
	case profile.Age <= 0:
	case profile.Age < youngAge:
		out = append(out, models.Insight{
			Type:           TypeInvestmentStrategy,
			Title:          "Time Advantage for Growth",
			Description:    "You have decades ahead for compound growth to work in your favor.",
			Recommendation: "Consider a more aggressive allocation with 80-90% in stocks for maximum growth potential.",
			PriorityScore:  PriorityTimeAdvantage,
			Category:       "investment",
		})
	case profile.Age > nearRetirementAge:
		out = append(out, models.Insight{
			Type:           TypeInvestmentStrategy,
			Title:          "Capital Preservation Focus",
			Description:    "As you approach retirement, focus on preserving capital while maintaining growth.",
			Recommendation: "Consider reducing stock allocation to 40-50% and increasing bond allocation.",
			PriorityScore:  PriorityCapitalPreservation,
			Category:       "investment",
		})
	}

	if len(portfolio) == 0 || profile.RiskTolerance == "" {
		return out
	}
	stocks := StockAllocation(portfolio)
	switch tolerance := models.NormalizeRiskTolerance(profile.RiskTolerance); {
	case tolerance == models.RiskConservative && stocks > 40:
		out = append(out, models.Insight{
			Type:           TypeRiskAlignment,
			Title:          "Risk Tolerance Mismatch",
			Description:    "Your portfolio allocation doesn't align with your conservative risk tolerance.",
			Recommendation: "Consider reducing stock allocation to 20-30% and increasing bond allocation.",
			PriorityScore:  PriorityRiskMismatch,
			Category:       "investment",
		})
	case tolerance == models.RiskAggressive && stocks < 70:
		out = append(out, models.Insight{
			Type:           TypeRiskAlignment,
			Title:          "Growth Opportunity",
			Description:    "Your portfolio could benefit from higher growth potential.",
			Recommendation: "Consider increasing stock allocation to 80-90% for maximum growth.",
			PriorityScore:  PriorityGrowthOpportunity,
			Category:       "investment",
		})
	}
	return out
}

// Market turns market conditions into notes.
func Market(m models.MarketContext) []models.Insight {
	var out []models.Insight
	if strings.EqualFold(m.MarketTrend, "bear") {
		out = append(out, models.Insight{
			Type:           TypeMarketContext,
			Title:          "Bear Market Opportunities",
			Description:    "Current market conditions may present buying opportunities for long-term investors.",
			Recommendation: "Consider dollar-cost averaging and focus on quality companies with strong fundamentals.",
			PriorityScore:  PriorityBearMarket,
			Category:       "market",
		})
	}
	if m.InterestRate > highRatePercent {
		out = append(out, models.Insight{
			Type:           TypeMarketContext,
			Title:          "High Interest Rate Environment",
			Description:    "High interest rates can impact both borrowing costs and investment returns.",
			Recommendation: "Consider high-yield savings accounts and review any variable-rate debt.",
			PriorityScore:  PriorityHighRates,
			Category:       "market",
		})
	}
	return out
}
