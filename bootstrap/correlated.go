package bootstrap

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// daysPerYear converts the per-step decay constant of the default
// autoregressive coefficient from a calendar-day to a yearly time axis.
const daysPerYear = 365.25

// DefaultARCoef returns the default autoregressive decay coefficient for a
// block of n samples: theta^(1/l) with theta = 0.01^(1/(1.75*n^(1/3))) and
// l = 1/365.25. The formula assumes the time grid is expressed in years with
// roughly daily sampling.
func DefaultARCoef(n int) float64 {
	theta := math.Pow(0.01, 1/(1.75*math.Cbrt(float64(n))))
	return math.Pow(theta, daysPerYear)
}

// CorrelationMatrix builds the target correlation structure for unevenly
// spaced points under an exponential-decay AR(1)-like kernel: entry (i, j)
// equals gamma^|t[j]-t[i]|, with unit diagonal. The matrix is symmetric
// positive-definite for gamma in (0, 1) and strictly increasing t.
func CorrelationMatrix(t []float64, gamma float64) *mat.SymDense {
	n := len(t)
	m := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		m.SetSym(i, i, 1)
		for j := i + 1; j < n; j++ {
			m.SetSym(i, j, math.Pow(gamma, t[j]-t[i]))
		}
	}
	return m
}

// CorrelatedErrors draws one realization of correlated pseudo-errors on the
// time grid t: the lower Cholesky factor of the correlation matrix applied
// to independent standard-normal draws, scaled elementwise by the local
// residual magnitude. A failed Cholesky factorization surfaces as
// ErrNotPositiveDefinite; it indicates an invalid gamma or degenerate
// timestamps and is not retried.
func CorrelatedErrors(t, residuals []float64, gamma float64, rng *rand.Rand) ([]float64, error) {
	if len(t) != len(residuals) {
		return nil, fmt.Errorf("%w: time grid and residuals differ in length", ErrInvalidConfig)
	}
	n := len(t)
	if n == 0 {
		return nil, nil
	}

	var chol mat.Cholesky
	if !chol.Factorize(CorrelationMatrix(t, gamma)) {
		return nil, fmt.Errorf("%w: gamma=%v, n=%d", ErrNotPositiveDefinite, gamma, n)
	}

	lower := mat.NewTriDense(n, mat.Lower, nil)
	chol.LTo(lower)

	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: rng}
	iid := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		iid.SetVec(i, normal.Rand())
	}

	correlated := mat.NewVecDense(n, nil)
	correlated.MulVec(lower, iid)

	errs := make([]float64, n)
	for i := range errs {
		errs[i] = correlated.AtVec(i) * residuals[i]
	}
	return errs, nil
}

// blockErrors generates correlated errors independently per block, resetting
// the autocorrelation at block boundaries. A non-NaN arCoef overrides the
// per-block default decay.
func blockErrors(t, residuals []float64, blockSize int, arCoef float64, rng *rand.Rand) ([]float64, error) {
	blocks, err := Partition(len(t), blockSize)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(t))
	for _, b := range blocks {
		gamma := arCoef
		if math.IsNaN(gamma) {
			gamma = DefaultARCoef(b.Len())
		}

		e, err := CorrelatedErrors(t[b.Start:b.End], residuals[b.Start:b.End], gamma, rng)
		if err != nil {
			return nil, err
		}
		copy(out[b.Start:b.End], e)
	}
	return out, nil
}
