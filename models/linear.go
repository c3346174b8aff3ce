package models

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Parameter names used by the linear trend models.
const (
	ParamIntercept   = "intercept"
	ParamFourier     = "fourier_terms"
	ParamTrend       = "trend"
	ParamTrendChange = "trend_change"
	ParamTBreak      = "t_break"
)

// span is a half-open column range [start, end) in the design matrix.
type span struct {
	start, end int
}

// linearCore carries the shared "build regressor set, then solve" machinery
// of the linear trend models. The three exported model variants configure it
// via the fOrder/withTrend/withBreak flags; the regressor layout mirrors the
// flag order: 2*fOrder Fourier columns, intercept, trend, break term.
type linearCore struct {
	fitState

	fOrder    int
	withTrend bool
	withBreak bool

	// Current break location, used when withBreak is set. Mutated during
	// optimization of an unknown break; published via params on fit.
	tBreak float64

	params Params
}

// regressorTerms builds the design-matrix columns for a time grid, returning
// the parameter-name-to-column-span mapping alongside the columns.
func (m *linearCore) regressorTerms(t []float64) (map[string]span, [][]float64) {
	idx := make(map[string]span)
	var cols [][]float64

	if m.fOrder > 0 {
		for degree := 1; degree <= m.fOrder; degree++ {
			cosCol := make([]float64, len(t))
			sinCol := make([]float64, len(t))
			for i, tv := range t {
				arg := 2 * float64(degree) * math.Pi * tv
				cosCol[i] = math.Cos(arg)
				sinCol[i] = math.Sin(arg)
			}
			cols = append(cols, cosCol, sinCol)
		}
		idx[ParamFourier] = span{0, 2 * m.fOrder}
	}

	ones := make([]float64, len(t))
	for i := range ones {
		ones[i] = 1
	}
	idx[ParamIntercept] = span{len(cols), len(cols) + 1}
	cols = append(cols, ones)

	if m.withTrend {
		trend := make([]float64, len(t))
		copy(trend, t)
		idx[ParamTrend] = span{len(cols), len(cols) + 1}
		cols = append(cols, trend)
	}

	if m.withBreak {
		brk := make([]float64, len(t))
		for i, tv := range t {
			if tv > m.tBreak {
				brk[i] = tv - m.tBreak
			}
		}
		idx[ParamTrendChange] = span{len(cols), len(cols) + 1}
		cols = append(cols, brk)
	}

	return idx, cols
}

// lstsq solves the ordinary least-squares problem for the given columns and
// response, returning the coefficient vector and the sum of squared
// residuals. Returns ErrUnderdetermined when the system has no residual
// degrees of freedom or the design matrix is rank-deficient.
func lstsq(cols [][]float64, y []float64) ([]float64, float64, error) {
	n := len(y)
	k := len(cols)
	if n <= k {
		return nil, 0, ErrUnderdetermined
	}

	a := mat.NewDense(n, k, nil)
	for j, col := range cols {
		a.SetCol(j, col)
	}
	b := mat.NewDense(n, 1, nil)
	b.SetCol(0, y)

	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return nil, 0, errors.New("models: SVD factorization failed")
	}

	rank := svd.Rank(1e-12)
	if rank < k {
		return nil, 0, ErrUnderdetermined
	}

	var coefM mat.Dense
	svd.SolveTo(&coefM, b, rank)

	coef := make([]float64, k)
	for j := 0; j < k; j++ {
		coef[j] = coefM.At(j, 0)
	}

	ssr := 0.0
	for i := 0; i < n; i++ {
		fit := 0.0
		for j := 0; j < k; j++ {
			fit += cols[j][i] * coef[j]
		}
		d := y[i] - fit
		ssr += d * d
	}

	return coef, ssr, nil
}

// trySolve evaluates the OLS solve without touching any model state. Used as
// the objective inside break-location optimization.
func (m *linearCore) trySolve(t, y []float64) (float64, error) {
	_, cols := m.regressorTerms(t)
	_, ssr, err := lstsq(cols, y)
	return ssr, err
}

// fitOLS runs the full solve and publishes parameters, predictions and
// residuals.
func (m *linearCore) fitOLS(t, y []float64) (float64, error) {
	if err := checkInput(t, y); err != nil {
		return 0, err
	}

	idx, cols := m.regressorTerms(t)
	coef, ssr, err := lstsq(cols, y)
	if err != nil {
		return 0, err
	}

	m.params = make(Params, len(idx)+1)
	for name, sp := range idx {
		v := make([]float64, sp.end-sp.start)
		copy(v, coef[sp.start:sp.end])
		m.params[name] = v
	}
	if m.withBreak {
		m.params[ParamTBreak] = []float64{m.tBreak}
	}

	pred := evalColumns(cols, coef)
	m.setFitted(t, y, pred)

	return ssr, nil
}

// evalColumns computes the linear combination of design columns.
func evalColumns(cols [][]float64, coef []float64) []float64 {
	if len(cols) == 0 {
		return nil
	}
	out := make([]float64, len(cols[0]))
	for j, col := range cols {
		for i, v := range col {
			out[i] += coef[j] * v
		}
	}
	return out
}

// Predict evaluates the fitted linear combination on an arbitrary grid.
// Pure function of the fitted parameters and t.
func (m *linearCore) Predict(t []float64) ([]float64, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}

	idx, cols := m.regressorTerms(t)
	coef := make([]float64, len(cols))
	for name, sp := range idx {
		copy(coef[sp.start:sp.end], m.params[name])
	}

	return evalColumns(cols, coef), nil
}

// Parameters returns a copy of the fitted parameter mapping.
func (m *linearCore) Parameters() Params {
	return m.params.Copy()
}

// LinearFourier is a linear regression with an intercept and a truncated
// Fourier basis capturing periodic variability. No trend term is included.
type LinearFourier struct {
	linearCore
}

// NewLinearFourier creates the model with the given Fourier order. Order 0
// reduces the model to an intercept-only fit.
func NewLinearFourier(fOrder int) (*LinearFourier, error) {
	if fOrder < 0 {
		return nil, fmt.Errorf("%w: fourier order %d is negative", ErrInvalidConfig, fOrder)
	}
	m := &LinearFourier{}
	m.fOrder = fOrder
	return m, nil
}

// Fit estimates the model by ordinary least squares and returns the sum of
// squared residuals.
func (m *LinearFourier) Fit(t, y []float64) (float64, error) {
	return m.fitOLS(t, y)
}

// Clone returns a fresh unfitted model with the same configuration.
func (m *LinearFourier) Clone() Estimator {
	c, _ := NewLinearFourier(m.fOrder)
	return c
}

// LinearTrendFourier extends LinearFourier with a single linear trend term.
type LinearTrendFourier struct {
	linearCore
}

// NewLinearTrendFourier creates the model with the given Fourier order.
func NewLinearTrendFourier(fOrder int) (*LinearTrendFourier, error) {
	if fOrder < 0 {
		return nil, fmt.Errorf("%w: fourier order %d is negative", ErrInvalidConfig, fOrder)
	}
	m := &LinearTrendFourier{}
	m.fOrder = fOrder
	m.withTrend = true
	return m, nil
}

// Fit estimates the model by ordinary least squares and returns the sum of
// squared residuals.
func (m *LinearTrendFourier) Fit(t, y []float64) (float64, error) {
	return m.fitOLS(t, y)
}

// Clone returns a fresh unfitted model with the same configuration.
func (m *LinearTrendFourier) Clone() Estimator {
	c, _ := NewLinearTrendFourier(m.fOrder)
	return c
}
