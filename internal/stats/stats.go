// Package stats holds the small set of descriptive statistics the engine relies on.
package stats

import "math"

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev returns the population standard deviation of values.
func StdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := Mean(values)
	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)))
}

// ZScores standardizes values against their population mean and standard deviation.
// It returns nil when the deviation is zero, since nothing stands out from a flat series.
func ZScores(values []float64) []float64 {
	std := StdDev(values)
	if std == 0 {
		return nil
	}
	mean := Mean(values)
	z := make([]float64, len(values))
	for i, v := range values {
		z[i] = (v - mean) / std
	}
	return z
}

// Fit is an ordinary least-squares line y = Slope*x + Intercept over x = 0, 1, 2, ...
type Fit struct {
	Slope     float64
	Intercept float64
	RSquared  float64
	N         int
}

// At evaluates the fitted line at x.
func (f Fit) At(x float64) float64 {
	return f.Slope*x + f.Intercept
}

// LinearRegression fits points against their index. Fewer than two points yield a zero Fit
// and ok=false. A perfectly flat series reports RSquared 1.
func LinearRegression(points []float64) (fit Fit, ok bool) {
	n := float64(len(points))
	if n < 2 {
		return Fit{N: len(points)}, false
	}
	var sumX, sumY, sumXY, sumX2 float64
	for i, y := range points {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}
	denom := n*sumX2 - sumX*sumX
	if denom == 0 {
		return Fit{N: len(points)}, false
	}
	fit.N = len(points)
	fit.Slope = (n*sumXY - sumX*sumY) / denom
	fit.Intercept = (sumY - fit.Slope*sumX) / n

	meanY := sumY / n
	var ssRes, ssTot float64
	for i, y := range points {
		predicted := fit.At(float64(i))
		ssRes += (y - predicted) * (y - predicted)
		ssTot += (y - meanY) * (y - meanY)
	}
	if ssTot == 0 {
		fit.RSquared = 1
		return fit, true
	}
	fit.RSquared = 1 - ssRes/ssTot
	return fit, true
}
