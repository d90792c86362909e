package spending

import (
	"fmt"
	"math"
	"sort"

	"github.com/Dan9191/finance-assistant/internal/models"
)

// topCategories is how many categories the summary lists.
const topCategories = 5

// Summarize computes headline totals over a transaction list.
func Summarize(txns []models.Transaction) (models.SummaryMetrics, error) {
	if len(txns) == 0 {
		return models.SummaryMetrics{}, fmt.Errorf("no transactions to summarize: %w", models.ErrInsufficientData)
	}

	var m models.SummaryMetrics
	byCategory := make(map[string]float64)
	for _, t := range txns {
		abs := math.Abs(t.Amount)
		m.TotalSpent += abs
		switch {
		case t.Amount > 0:
			m.TotalIncome += t.Amount
		case t.Amount < 0:
			m.TotalExpenses += abs
		}
		byCategory[Category(t)] += abs
	}
	m.TotalTransactions = len(txns)
	m.NetFlow = m.TotalIncome - m.TotalExpenses
	m.AverageTransaction = m.TotalSpent / float64(len(txns))
	m.TopSpendingCategories = RankCategories(byCategory, topCategories)
	return m, nil
}

// RankCategories orders categories by amount, largest first, ties by name, keeping at most limit.
func RankCategories(totals map[string]float64, limit int) []models.CategoryTotal {
	ranked := make([]models.CategoryTotal, 0, len(totals))
	for c, v := range totals {
		ranked = append(ranked, models.CategoryTotal{Category: c, Amount: v})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Amount != ranked[j].Amount {
			return ranked[i].Amount > ranked[j].Amount
		}
		return ranked[i].Category < ranked[j].Category
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
