package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"already two places", 12.34, 12.34},
		{"rounds half up", 2.675, 2.68},
		{"rounds down", 10722.900808, 10722.9},
		{"negative half away from zero", -1.005, -1.01},
		{"zero", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Round2(tt.in))
		})
	}

	t.Run("non-finite values pass through", func(t *testing.T) {
		assert.True(t, math.IsInf(Round2(math.Inf(1)), 1))
		assert.True(t, math.IsNaN(Round2(math.NaN())))
	})
}

func TestRound2Map(t *testing.T) {
	assert.Nil(t, Round2Map(nil))
	assert.Equal(t, map[string]float64{"a": 1.23, "b": 4}, Round2Map(map[string]float64{"a": 1.234, "b": 3.999}))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "1234.50 USD", FormatMoney(1234.5, "USD"))
	assert.Equal(t, "-3.00", FormatMoney(-3, ""))
}
