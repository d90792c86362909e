package forecast

import (
	"errors"
	"math"
	"testing"

	"github.com/Dan9191/finance-assistant/internal/models"
	"github.com/Dan9191/finance-assistant/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoanMonthly(t *testing.T) {
	l, err := Loan(models.LoanInput{Principal: 100000, AnnualRate: 6, Years: 30})
	require.NoError(t, err)

	assert.Equal(t, models.PaymentMonthly, l.PaymentType)
	assert.Equal(t, 360, l.NumPayments)
	assert.Equal(t, 599.55, utils.Round2(l.Payment))
	assert.Equal(t, 115838.19, utils.Round2(l.TotalInterest))
	assert.Nil(t, l.Schedule)
}

func TestLoanWeeklyUsesWeeklyRate(t *testing.T) {
	l, err := Loan(models.LoanInput{Principal: 1000, AnnualRate: 5, Years: 1, PaymentType: models.PaymentWeekly})
	require.NoError(t, err)
	assert.Equal(t, 52, l.NumPayments)
	assert.Equal(t, 19.72, utils.Round2(l.Payment))
}

func TestLoanZeroRate(t *testing.T) {
	l, err := Loan(models.LoanInput{Principal: 1200, AnnualRate: 0, Years: 1, PaymentType: "quarterly", IncludeSchedule: true})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentMonthly, l.PaymentType)
	assert.Equal(t, 100.0, l.Payment)
	assert.Equal(t, 0.0, l.TotalInterest)
	require.Len(t, l.Schedule, 12)
	assert.Equal(t, 1100.0, l.Schedule[0].RemainingBalance)
}

func TestLoanScheduleClearsBalance(t *testing.T) {
	l, err := Loan(models.LoanInput{Principal: 5000, AnnualRate: 7.5, Years: 2, IncludeSchedule: true})
	require.NoError(t, err)
	require.Len(t, l.Schedule, 24)

	var principal, interest float64
	for i, e := range l.Schedule {
		assert.Equal(t, i+1, e.Period)
		assert.InDelta(t, e.Payment, e.Principal+e.Interest, 1e-9)
		principal += e.Principal
		interest += e.Interest
	}
	last := l.Schedule[23]
	assert.Equal(t, 0.0, last.RemainingBalance)
	assert.InDelta(t, 5000.0, principal, 1e-6)
	assert.InDelta(t, l.TotalInterest, interest, 1e-6)
	assert.InDelta(t, l.Payment, last.Payment, 1e-6)
	assert.Less(t, l.Schedule[1].Interest, l.Schedule[0].Interest)
}

func TestLoanInvalid(t *testing.T) {
	for _, in := range []models.LoanInput{
		{Principal: 0, AnnualRate: 5, Years: 1},
		{Principal: 100, AnnualRate: 5, Years: 0},
		{Principal: 100, AnnualRate: -1, Years: 1},
	} {
		_, err := Loan(in)
		assert.True(t, errors.Is(err, models.ErrInvalidInput), "%+v", in)
	}
}

func TestLoanRejectsOutOfRangeTerms(t *testing.T) {
	tests := []struct {
		name string
		in   models.LoanInput
	}{
		{"term beyond limit", models.LoanInput{Principal: 1000, AnnualRate: 5, Years: 100000, IncludeSchedule: true}},
		{"overflowing payment", models.LoanInput{Principal: math.MaxFloat64, AnnualRate: 100, Years: 30}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := Loan(tt.in)
			assert.True(t, errors.Is(err, models.ErrInvalidInput))
			assert.Nil(t, l.Schedule)
		})
	}

	_, err := Loan(models.LoanInput{Principal: 1000, AnnualRate: 5, Years: MaxLoanYears})
	assert.NoError(t, err)
}
