// Package scoring turns a financial snapshot into normalized sub-scores and an overall health grade.
package scoring

import (
	"math"

	"github.com/Dan9191/finance-assistant/internal/models"
)

// Metric names a health sub-score.
type Metric string

const (
	SavingsRate         Metric = "savings_rate"
	DebtToIncome        Metric = "debt_to_income"
	EmergencyFund       Metric = "emergency_fund"
	InvestmentDiversity Metric = "investment_diversity"
	BudgetAdherence     Metric = "budget_adherence"
)

// Metrics lists every metric in declaration order. Aggregation and recommendations follow it.
var Metrics = []Metric{SavingsRate, DebtToIncome, EmergencyFund, InvestmentDiversity, BudgetAdherence}

// Weights sum to 1.
var Weights = map[Metric]float64{
	SavingsRate:         0.25,
	DebtToIncome:        0.20,
	EmergencyFund:       0.20,
	InvestmentDiversity: 0.15,
	BudgetAdherence:     0.20,
}

// neutralBudgetScore is reported when no budgeted category has matching spending.
const neutralBudgetScore = 50

// band maps a value to the score of the first threshold it satisfies.
type band struct {
	threshold float64
	score     float64
}

func atLeast(v float64, bands []band) float64 {
	for _, b := range bands {
		if v >= b.threshold {
			return b.score
		}
	}
	return 0
}

func atMost(v float64, bands []band, fallback float64) float64 {
	for _, b := range bands {
		if v <= b.threshold {
			return b.score
		}
	}
	return fallback
}

var (
	savingsBands   = []band{{0.30, 100}, {0.20, 80}, {0.15, 60}, {0.10, 40}, {0.05, 20}}
	debtBands      = []band{{0.28, 100}, {0.36, 80}, {0.43, 60}, {0.50, 40}, {0.60, 20}}
	emergencyBands = []band{{6, 100}, {4, 80}, {3, 60}, {2, 40}, {1, 20}}
	diversityBands = []band{{5, 100}, {4, 80}, {3, 60}, {2, 40}, {1, 20}}
	budgetBands    = []band{{0.10, 100}, {0.20, 80}, {0.30, 60}, {0.50, 40}}
)

// SavingsScore scores the share of income left after expenses.
func SavingsScore(income, expenses float64) float64 {
	if income <= 0 {
		return 0
	}
	return atLeast((income-expenses)/income, savingsBands)
}

// DebtScore scores outstanding debt against monthly income. Lower ratios score higher.
func DebtScore(debt, income float64) float64 {
	if income <= 0 {
		return 0
	}
	return atMost(debt/income, debtBands, 0)
}

// EmergencyFundScore scores how many months of expenses the fund covers.
func EmergencyFundScore(fund, monthlyExpenses float64) float64 {
	if monthlyExpenses <= 0 {
		return 0
	}
	return atLeast(fund/monthlyExpenses, emergencyBands)
}

// InvestmentDiversityScore scores the number of distinct asset types held.
func InvestmentDiversityScore(portfolio []models.Holding) float64 {
	types := make(map[string]struct{}, len(portfolio))
	for _, h := range portfolio {
		types[AssetType(h)] = struct{}{}
	}
	return atLeast(float64(len(types)), diversityBands)
}

// AssetType returns the holding's asset type, or "unknown" when it is blank.
func AssetType(h models.Holding) string {
	if h.AssetType == "" {
		return "unknown"
	}
	return h.AssetType
}

// BudgetAdherenceScore scores the mean relative variance of actual spending against budget
// over categories present in both maps.
func BudgetAdherenceScore(budget, actual map[string]float64) float64 {
	var total float64
	var matched int
	for category, budgeted := range budget {
		spent, ok := actual[category]
		if !ok {
			continue
		}
		variance := 1.0
		if budgeted > 0 {
			variance = math.Abs(spent-budgeted) / budgeted
		}
		total += variance
		matched++
	}
	if matched == 0 {
		return neutralBudgetScore
	}
	return atMost(total/float64(matched), budgetBands, 20)
}

// SubScores computes every metric of the snapshot.
func SubScores(s models.FinancialSnapshot) map[Metric]float64 {
	return map[Metric]float64{
		SavingsRate:         SavingsScore(s.Income, s.Expenses),
		DebtToIncome:        DebtScore(s.Debt, s.Income),
		EmergencyFund:       EmergencyFundScore(s.EmergencyFund, s.MonthlyExpenses),
		InvestmentDiversity: InvestmentDiversityScore(s.InvestmentPortfolio),
		BudgetAdherence:     BudgetAdherenceScore(s.Budget, s.ActualSpending),
	}
}
