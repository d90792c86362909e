package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeanAndStdDev(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	assert.Equal(t, 5.0, Mean(values))
	assert.Equal(t, 2.0, StdDev(values))

	assert.Zero(t, Mean(nil))
	assert.Zero(t, StdDev(nil))
}

func TestZScores(t *testing.T) {
	assert.Nil(t, ZScores([]float64{3, 3, 3}))

	z := ZScores([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.InDelta(t, -1.5, z[0], 1e-9)
	assert.InDelta(t, 2.0, z[7], 1e-9)
}

func TestLinearRegression(t *testing.T) {
	tests := []struct {
		name      string
		points    []float64
		wantOK    bool
		slope     float64
		intercept float64
		r2        float64
	}{
		{name: "empty", points: nil},
		{name: "single point", points: []float64{5}},
		{name: "perfect line", points: []float64{1, 3, 5, 7}, wantOK: true, slope: 2, intercept: 1, r2: 1},
		{name: "flat", points: []float64{4, 4, 4}, wantOK: true, slope: 0, intercept: 4, r2: 1},
		{name: "decreasing", points: []float64{10, 8, 6}, wantOK: true, slope: -2, intercept: 10, r2: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fit, ok := LinearRegression(tt.points)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.slope, fit.Slope, 1e-9)
			assert.InDelta(t, tt.intercept, fit.Intercept, 1e-9)
			assert.InDelta(t, tt.r2, fit.RSquared, 1e-9)
		})
	}
}

func TestLinearRegressionNoisy(t *testing.T) {
	fit, ok := LinearRegression([]float64{1, 2, 2, 4})
	assert.True(t, ok)
	assert.InDelta(t, 0.9, fit.Slope, 1e-9)
	assert.Greater(t, fit.RSquared, 0.0)
	assert.Less(t, fit.RSquared, 1.0)
	assert.InDelta(t, fit.Intercept+0.9*4, fit.At(4), 1e-9)
}
