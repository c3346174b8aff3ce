package models

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// brokenSeries generates y = intercept + slope*t + change*max(t-tBreak, 0)
// plus optional gaussian noise.
func brokenSeries(tt []float64, intercept, slope, change, tBreak, sigma float64, seed uint64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	y := make([]float64, len(tt))
	for i, tv := range tt {
		y[i] = intercept + slope*tv
		if tv > tBreak {
			y[i] += change * (tv - tBreak)
		}
		if sigma > 0 {
			y[i] += sigma * rng.NormFloat64()
		}
	}
	return y
}

func TestBrokenTrendAPrioriBreak(t *testing.T) {
	tt := unitGrid(100)
	y := brokenSeries(tt, 1, 0.3, -0.5, 50, 0.2, 7)

	m, err := NewBrokenTrendFourier(0, WithTBreak(50))
	require.NoError(t, err)

	_, err = m.Fit(tt, y)
	require.NoError(t, err)

	params := m.Parameters()
	trend, _ := params.Scalar(ParamTrend)
	change, _ := params.Scalar(ParamTrendChange)
	breakAt, _ := params.Scalar(ParamTBreak)

	assert.InDelta(t, 0.3, trend, 0.05)
	assert.InDelta(t, -0.5, change, 0.1)
	assert.Equal(t, 50.0, breakAt)
}

func TestBrokenTrendEstimatesBreakLocation(t *testing.T) {
	tt := unitGrid(100)
	y := brokenSeries(tt, 0, 0.2, 0.8, 42.5, 0, 0)

	m, err := NewBrokenTrendFourier(0)
	require.NoError(t, err)

	ssr, err := m.Fit(tt, y)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, ssr, 1e-8)

	breakAt, ok := m.TBreak()
	require.True(t, ok)
	assert.InDelta(t, 42.5, breakAt, 0.1)

	change, _ := m.Parameters().Scalar(ParamTrendChange)
	assert.InDelta(t, 0.8, change, 1e-3)
}

func TestBrokenTrendEstimatedBreakWithNoise(t *testing.T) {
	tt := unitGrid(200)
	y := brokenSeries(tt, 2, 0.1, 0.6, 120, 0.3, 13)

	m, err := NewBrokenTrendFourier(0)
	require.NoError(t, err)

	_, err = m.Fit(tt, y)
	require.NoError(t, err)

	breakAt, ok := m.TBreak()
	require.True(t, ok)
	assert.InDelta(t, 120, breakAt, 5)
}

func TestBrokenTrendCustomBounds(t *testing.T) {
	tt := unitGrid(100)
	y := brokenSeries(tt, 0, 0.2, 0.8, 42.5, 0, 0)

	m, err := NewBrokenTrendFourier(0, WithBounds(30, 60))
	require.NoError(t, err)

	_, err = m.Fit(tt, y)
	require.NoError(t, err)

	breakAt, _ := m.TBreak()
	assert.GreaterOrEqual(t, breakAt, 30.0)
	assert.LessOrEqual(t, breakAt, 60.0)
	assert.InDelta(t, 42.5, breakAt, 0.1)
}

func TestBrokenTrendPredictAtBreak(t *testing.T) {
	tt := unitGrid(100)
	y := brokenSeries(tt, 1, 0.3, -0.5, 50, 0, 0)

	m, err := NewBrokenTrendFourier(0, WithTBreak(50))
	require.NoError(t, err)
	_, err = m.Fit(tt, y)
	require.NoError(t, err)

	pred, err := m.Predict([]float64{49, 50, 51})
	require.NoError(t, err)

	// Continuity at the break: the break term is zero at t = tBreak.
	assert.InDelta(t, 1+0.3*50, pred[1], 1e-8)
	assert.InDelta(t, 1+0.3*49, pred[0], 1e-8)
	assert.InDelta(t, 1+0.3*51-0.5, pred[2], 1e-8)
}

func TestBrokenTrendUnderdeterminedFinalSolve(t *testing.T) {
	// Break location beyond the data makes the break column all zeros, so
	// the final solve is rank-deficient and must surface an error.
	tt := unitGrid(5)
	y := []float64{0, 1, 2, 3, 4}

	m, err := NewBrokenTrendFourier(0, WithTBreak(100))
	require.NoError(t, err)

	_, err = m.Fit(tt, y)
	assert.True(t, errors.Is(err, ErrUnderdetermined))
	assert.False(t, m.IsFitted())
}

func TestBrokenTrendInvalidConfig(t *testing.T) {
	_, err := NewBrokenTrendFourier(-1)
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	_, err = NewBrokenTrendFourier(0, WithMaxIter(0))
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	_, err = NewBrokenTrendFourier(0, WithBounds(5, 5))
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	_, err = NewBrokenTrendFourier(0, WithBounds(10, 2))
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestBrokenTrendTBreakAccessor(t *testing.T) {
	m, err := NewBrokenTrendFourier(0)
	require.NoError(t, err)
	_, ok := m.TBreak()
	assert.False(t, ok)

	fixed, err := NewBrokenTrendFourier(0, WithTBreak(12))
	require.NoError(t, err)
	v, ok := fixed.TBreak()
	assert.True(t, ok)
	assert.Equal(t, 12.0, v)
}

func TestBrokenTrendCloneConfig(t *testing.T) {
	fixed, err := NewBrokenTrendFourier(1, WithTBreak(25))
	require.NoError(t, err)

	c, okType := fixed.Clone().(*BrokenTrendFourier)
	require.True(t, okType)

	v, ok := c.TBreak()
	assert.True(t, ok)
	assert.Equal(t, 25.0, v)
	assert.False(t, c.IsFitted())

	// A clone of an estimating model re-estimates on its own data.
	est, err := NewBrokenTrendFourier(0, WithMaxIter(200), WithOptimizerSeed(9))
	require.NoError(t, err)

	tt := unitGrid(100)
	y := brokenSeries(tt, 0, 0.2, 0.8, 42.5, 0, 0)
	_, err = est.Fit(tt, y)
	require.NoError(t, err)

	ec := est.Clone().(*BrokenTrendFourier)
	_, ok = ec.TBreak()
	assert.False(t, ok)

	_, err = ec.Fit(tt, y)
	require.NoError(t, err)
	breakAt, _ := ec.TBreak()
	assert.InDelta(t, 42.5, breakAt, 0.1)
}

func TestBrokenTrendWithSeasonality(t *testing.T) {
	// Monthly sampling over ~16 years with seasonality on top of a break.
	tt := make([]float64, 200)
	for i := range tt {
		tt[i] = float64(i) / 12
	}
	y := brokenSeries(tt, 1, 0.3, -0.4, 9, 0, 0)
	for i, tv := range tt {
		y[i] += 0.5*math.Cos(2*math.Pi*tv) + 0.2*math.Sin(2*math.Pi*tv)
	}

	m, err := NewBrokenTrendFourier(1)
	require.NoError(t, err)

	_, err = m.Fit(tt, y)
	require.NoError(t, err)

	breakAt, _ := m.TBreak()
	assert.InDelta(t, 9.0, breakAt, 0.1)

	change, _ := m.Parameters().Scalar(ParamTrendChange)
	assert.InDelta(t, -0.4, change, 1e-3)

	fourier := m.Parameters()[ParamFourier]
	require.Len(t, fourier, 2)
	assert.InDelta(t, 0.5, fourier[0], 1e-3)
	assert.InDelta(t, 0.2, fourier[1], 1e-3)
}
