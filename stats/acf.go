package stats

import (
	"math"
)

// ACF calculates the autocorrelation function of values for lags 0 to
// maxLag. Returns nil for degenerate input (constant or empty series).
func ACF(values []float64, maxLag int) []float64 {
	n := len(values)
	if maxLag >= n {
		maxLag = n - 1
	}
	if maxLag < 0 {
		return nil
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)

	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	if variance == 0 {
		return nil
	}

	acf := make([]float64, maxLag+1)
	for k := 0; k <= maxLag; k++ {
		sum := 0.0
		for i := k; i < n; i++ {
			sum += (values[i] - mean) * (values[i-k] - mean)
		}
		acf[k] = sum / variance
	}

	return acf
}

// ACFConfidenceBound returns the two-sided 95% white-noise confidence bound
// for sample autocorrelations of a series of length n.
func ACFConfidenceBound(n int) float64 {
	if n < 1 {
		return math.NaN()
	}
	return 1.96 / math.Sqrt(float64(n))
}
