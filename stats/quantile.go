package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Quantile returns the p-th empirical quantile of vals, p in [0, 1], using
// linear interpolation between order statistics. The input is not modified.
// Returns NaN for empty input.
func Quantile(p float64, vals []float64) float64 {
	if len(vals) == 0 {
		return math.NaN()
	}

	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	return stat.Quantile(p, stat.LinInterp, sorted, nil)
}

// QuantilePair returns the (p, 1-p) quantile pair of vals with a single
// sort. Used for symmetric confidence bounds.
func QuantilePair(p float64, vals []float64) (lower, upper float64) {
	if len(vals) == 0 {
		return math.NaN(), math.NaN()
	}

	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	return stat.Quantile(p, stat.LinInterp, sorted, nil),
		stat.Quantile(1-p, stat.LinInterp, sorted, nil)
}
