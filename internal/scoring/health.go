package scoring

import (
	"time"

	"github.com/Dan9191/finance-assistant/internal/models"
)

type gradeBand struct {
	min   float64
	grade string
}

var grades = []gradeBand{
	{90, "A+"}, {85, "A"}, {80, "A-"},
	{75, "B+"}, {70, "B"}, {65, "B-"},
	{60, "C+"}, {55, "C"}, {50, "C-"},
	{45, "D+"}, {40, "D"},
}

// Grade converts an overall score into a letter grade. Lower bounds are inclusive.
func Grade(score float64) string {
	for _, g := range grades {
		if score >= g.min {
			return g.grade
		}
	}
	return "F"
}

const (
	recommendThreshold = 60
	advisorThreshold   = 70
)

var recommendations = map[Metric]string{
	SavingsRate:         "Increase your savings rate by reducing expenses or increasing income",
	DebtToIncome:        "Focus on paying down high-interest debt to improve your debt-to-income ratio",
	EmergencyFund:       "Build your emergency fund to cover 3-6 months of expenses",
	InvestmentDiversity: "Diversify your investment portfolio across different asset classes",
	BudgetAdherence:     "Improve budget tracking and adherence to spending limits",
}

const advisorNote = "Consider consulting with a financial advisor for personalized guidance"

// Recommendations lists one note per weak metric in declaration order, then the advisor note
// when the overall score is low.
func Recommendations(scores map[Metric]float64, overall float64) []string {
	recs := make([]string, 0, len(Metrics)+1)
	for _, m := range Metrics {
		if scores[m] < recommendThreshold {
			recs = append(recs, recommendations[m])
		}
	}
	if overall < advisorThreshold {
		recs = append(recs, advisorNote)
	}
	return recs
}

// Overall is the weighted sum of the sub-scores.
func Overall(scores map[Metric]float64) float64 {
	var total float64
	for _, m := range Metrics {
		total += Weights[m] * scores[m]
	}
	return total
}

// HealthScore scores the snapshot. The report is unrounded.
func HealthScore(s models.FinancialSnapshot, now time.Time) models.HealthReport {
	scores := SubScores(s)
	overall := Overall(scores)

	components := make(map[string]float64, len(scores))
	weights := make(map[string]float64, len(Weights))
	for _, m := range Metrics {
		components[string(m)] = scores[m]
		weights[string(m)] = Weights[m]
	}

	return models.HealthReport{
		OverallScore:    overall,
		Grade:           Grade(overall),
		ComponentScores: components,
		Weights:         weights,
		Recommendations: Recommendations(scores, overall),
		CalculatedAt:    now,
	}
}
