package spending

import (
	"errors"
	"testing"

	"github.com/Dan9191/finance-assistant/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	txns := []models.Transaction{
		tx(3000, "salary", 2024, 1, 1),
		tx(-1200, "rent", 2024, 1, 2),
		tx(-300, "food", 2024, 1, 3),
		tx(-200, "food", 2024, 1, 10),
		tx(-50, "fun", 2024, 1, 11),
		tx(-50, "gym", 2024, 1, 12),
		tx(-10, "books", 2024, 1, 13),
	}

	m, err := Summarize(txns)
	require.NoError(t, err)

	assert.Equal(t, 7, m.TotalTransactions)
	assert.Equal(t, 4810.0, m.TotalSpent)
	assert.Equal(t, 3000.0, m.TotalIncome)
	assert.Equal(t, 1810.0, m.TotalExpenses)
	assert.Equal(t, 1190.0, m.NetFlow)
	assert.InDelta(t, 4810.0/7, m.AverageTransaction, 1e-9)
	assert.Equal(t, []models.CategoryTotal{
		{Category: "salary", Amount: 3000},
		{Category: "rent", Amount: 1200},
		{Category: "food", Amount: 500},
		{Category: "fun", Amount: 50},
		{Category: "gym", Amount: 50},
	}, m.TopSpendingCategories)
}

func TestSummarizeEmpty(t *testing.T) {
	_, err := Summarize(nil)
	assert.True(t, errors.Is(err, models.ErrInsufficientData))
}
