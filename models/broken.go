package models

import (
	"errors"
	"fmt"
	"math"

	"github.com/sartorproj/trendfit/optimize"
)

const defaultBreakMaxIter = 500

// BrokenTrendFourier extends the linear trend model with a trend-break term
// max(t - T1, 0), capturing a sudden change in slope at location T1. When T1
// is known a priori the model is a single ordinary least-squares solve; when
// unknown, T1 is estimated by bounded simulated annealing with the
// sum of squared residuals as the objective.
type BrokenTrendFourier struct {
	linearCore

	fitTBreak bool
	bounds    *[2]float64
	maxIter   int
	optSeed   uint64
}

// BreakOption customizes a BrokenTrendFourier model.
type BreakOption func(*BrokenTrendFourier)

// WithTBreak fixes the break location a priori, disabling its estimation.
func WithTBreak(tBreak float64) BreakOption {
	return func(m *BrokenTrendFourier) {
		m.tBreak = tBreak
		m.fitTBreak = false
	}
}

// WithBounds restricts the search range for the break location. Ignored when
// the break location is fixed via WithTBreak.
func WithBounds(lo, hi float64) BreakOption {
	return func(m *BrokenTrendFourier) {
		m.bounds = &[2]float64{lo, hi}
	}
}

// WithMaxIter caps the break-location optimizer iterations (default 500).
func WithMaxIter(n int) BreakOption {
	return func(m *BrokenTrendFourier) {
		m.maxIter = n
	}
}

// WithOptimizerSeed seeds the break-location optimizer. The default seed is
// fixed, so repeated fits on identical data are reproducible.
func WithOptimizerSeed(seed uint64) BreakOption {
	return func(m *BrokenTrendFourier) {
		m.optSeed = seed
	}
}

// NewBrokenTrendFourier creates the model with the given Fourier order.
func NewBrokenTrendFourier(fOrder int, opts ...BreakOption) (*BrokenTrendFourier, error) {
	if fOrder < 0 {
		return nil, fmt.Errorf("%w: fourier order %d is negative", ErrInvalidConfig, fOrder)
	}

	m := &BrokenTrendFourier{
		fitTBreak: true,
		maxIter:   defaultBreakMaxIter,
		optSeed:   1,
	}
	m.fOrder = fOrder
	m.withTrend = true
	m.withBreak = true

	for _, opt := range opts {
		opt(m)
	}

	if m.maxIter < 1 {
		return nil, fmt.Errorf("%w: optimizer iteration cap %d must be positive", ErrInvalidConfig, m.maxIter)
	}
	if m.bounds != nil && !(m.bounds[0] < m.bounds[1]) {
		return nil, fmt.Errorf("%w: break search bounds [%v, %v]", ErrInvalidConfig, m.bounds[0], m.bounds[1])
	}

	return m, nil
}

// Fit estimates the model on (t, y). With an unknown break location the
// annealing search minimizes the SSR over candidate locations; candidates
// that leave the system underdetermined score +Inf so the search routes
// around them. The least-squares system is re-solved once at the optimum to
// publish the final parameter values.
func (m *BrokenTrendFourier) Fit(t, y []float64) (float64, error) {
	if err := checkInput(t, y); err != nil {
		return 0, err
	}
	if len(t) < 2 {
		return 0, fmt.Errorf("%w: need at least two points", ErrUnderdetermined)
	}

	if m.fitTBreak {
		lo, hi := t[1], t[len(t)-1]
		if m.bounds != nil {
			lo, hi = m.bounds[0], m.bounds[1]
		}

		objective := func(tBreak float64) float64 {
			m.tBreak = tBreak
			ssr, err := m.trySolve(t, y)
			if err != nil {
				return math.Inf(1)
			}
			return ssr
		}

		res, err := optimize.Anneal(objective, lo, hi,
			optimize.WithMaxIter(m.maxIter),
			optimize.WithSeed(m.optSeed),
		)
		if err != nil {
			return 0, fmt.Errorf("models: break location search: %w", err)
		}
		if math.IsInf(res.F, 1) {
			return 0, fmt.Errorf("%w: no feasible break location in [%v, %v]", ErrUnderdetermined, lo, hi)
		}

		m.tBreak = res.X
	}

	ssr, err := m.fitOLS(t, y)
	if err != nil {
		if errors.Is(err, ErrUnderdetermined) {
			return 0, fmt.Errorf("models: final solve at break %v: %w", m.tBreak, err)
		}
		return 0, err
	}

	return ssr, nil
}

// TBreak returns the break location and whether it has been set (either a
// priori or by a completed fit).
func (m *BrokenTrendFourier) TBreak() (float64, bool) {
	if !m.fitTBreak {
		return m.tBreak, true
	}
	if m.fitted {
		return m.tBreak, true
	}
	return 0, false
}

// Clone returns a fresh unfitted model with the same configuration. A clone
// of a model with an estimated break re-estimates the break on its own data.
func (m *BrokenTrendFourier) Clone() Estimator {
	c := &BrokenTrendFourier{
		fitTBreak: m.fitTBreak,
		maxIter:   m.maxIter,
		optSeed:   m.optSeed,
	}
	c.fOrder = m.fOrder
	c.withTrend = true
	c.withBreak = true
	if !m.fitTBreak {
		c.tBreak = m.tBreak
	}
	if m.bounds != nil {
		b := *m.bounds
		c.bounds = &b
	}
	return c
}
