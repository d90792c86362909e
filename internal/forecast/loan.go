package forecast

import (
	"fmt"
	"math"

	"github.com/Dan9191/finance-assistant/internal/models"
)

// PaymentsPerYear resolves a payment frequency. Unknown frequencies are monthly.
func PaymentsPerYear(paymentType string) (string, int) {
	if paymentType == models.PaymentWeekly {
		return models.PaymentWeekly, 52
	}
	return models.PaymentMonthly, 12
}

// Loan computes the level payment of an amortizing loan and, on request, its schedule.
func Loan(in models.LoanInput) (models.LoanPayment, error) {
	if in.Principal <= 0 {
		return models.LoanPayment{}, fmt.Errorf("principal must be positive: %w", models.ErrInvalidInput)
	}
	if in.Years <= 0 || in.Years > MaxLoanYears {
		return models.LoanPayment{}, fmt.Errorf("term must be between 1 and %d years: %w", MaxLoanYears, models.ErrInvalidInput)
	}
	if in.AnnualRate < 0 {
		return models.LoanPayment{}, fmt.Errorf("rate must not be negative: %w", models.ErrInvalidInput)
	}

	paymentType, perYear := PaymentsPerYear(in.PaymentType)
	n := in.Years * perYear
	r := in.AnnualRate / 100 / float64(perYear)

	payment := in.Principal / float64(n)
	if r > 0 {
		growth := math.Pow(1+r, float64(n))
		payment = in.Principal * r * growth / (growth - 1)
	}
	total := payment * float64(n)
	if err := checkFinite("loan payment", payment, total); err != nil {
		return models.LoanPayment{}, err
	}

	out := models.LoanPayment{
		Kind:          models.ForecastLoanPayment,
		Principal:     in.Principal,
		AnnualRate:    in.AnnualRate,
		Years:         in.Years,
		PaymentType:   paymentType,
		NumPayments:   n,
		Payment:       payment,
		TotalPayments: total,
		TotalInterest: total - in.Principal,
	}
	if in.IncludeSchedule {
		out.Schedule = Amortize(in.Principal, r, payment, n)
	}
	return out, nil
}

// Amortize splits each payment into interest and principal. The last payment clears the balance.
func Amortize(principal, rate, payment float64, n int) []models.AmortizationEntry {
	schedule := make([]models.AmortizationEntry, 0, n)
	balance := principal
	for period := 1; period <= n; period++ {
		interest := balance * rate
		toPrincipal := payment - interest
		pay := payment
		if period == n {
			toPrincipal = balance
			pay = balance + interest
		}
		balance = math.Max(0, balance-toPrincipal)
		schedule = append(schedule, models.AmortizationEntry{
			Period:           period,
			Payment:          pay,
			Principal:        toPrincipal,
			Interest:         interest,
			RemainingBalance: balance,
		})
	}
	return schedule
}
