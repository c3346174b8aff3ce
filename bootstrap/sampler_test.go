package bootstrap

import (
	"errors"
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/sartorproj/trendfit/models"
)

// fittedTestModel fits a plain trend model to a short noisy series.
func fittedTestModel(t *testing.T, seed uint64) models.Estimator {
	t.Helper()

	rng := rand.New(rand.NewSource(seed))
	tt := make([]float64, 60)
	y := make([]float64, 60)
	for i := range tt {
		tt[i] = float64(i)
		y[i] = 1 + 0.25*tt[i] + 0.5*rng.NormFloat64()
	}

	m, err := models.NewLinearTrendFourier(0)
	require.NoError(t, err)
	_, err = m.Fit(tt, y)
	require.NoError(t, err)
	return m
}

func TestResidualResamplingPermutesResiduals(t *testing.T) {
	m := fittedTestModel(t, 1)
	sampler := NewResidualResampling()

	pred := m.Predicted()
	origResid := m.Residuals()
	sort.Float64s(origResid)

	for trial := 0; trial < 20; trial++ {
		sample, err := sampler.Sample(m, rand.New(rand.NewSource(uint64(trial))))
		require.NoError(t, err)
		require.Len(t, sample, len(pred))

		// Sample minus predictions must be a permutation of the original
		// residual multiset.
		implied := make([]float64, len(sample))
		for i := range sample {
			implied[i] = sample[i] - pred[i]
		}
		sort.Float64s(implied)

		require.Len(t, implied, len(origResid))
		for i := range implied {
			assert.InDelta(t, origResid[i], implied[i], 1e-12)
		}
	}
}

func TestResidualResamplingUnfittedModel(t *testing.T) {
	m, err := models.NewLinearTrendFourier(0)
	require.NoError(t, err)

	_, err = NewResidualResampling().Sample(m, rand.New(rand.NewSource(1)))
	assert.True(t, errors.Is(err, models.ErrNotFitted))
}

func TestResidualResamplingDoesNotMutateModel(t *testing.T) {
	m := fittedTestModel(t, 2)
	before := m.Residuals()

	_, err := NewResidualResampling().Sample(m, rand.New(rand.NewSource(9)))
	require.NoError(t, err)

	assert.Equal(t, before, m.Residuals())
}

func TestBlockARWildDefaults(t *testing.T) {
	s, err := NewBlockARWild()
	require.NoError(t, err)
	assert.Equal(t, defaultBlockSize, s.blockSize)
	assert.True(t, math.IsNaN(s.arCoef))
}

func TestBlockARWildInvalidConfig(t *testing.T) {
	_, err := NewBlockARWild(WithBlockSize(0))
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	_, err = NewBlockARWild(WithARCoef(0))
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	_, err = NewBlockARWild(WithARCoef(1))
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	_, err = NewBlockARWild(WithARCoef(-0.5))
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestBlockARWildSample(t *testing.T) {
	m := fittedTestModel(t, 3)

	s, err := NewBlockARWild(WithBlockSize(16), WithARCoef(0.5))
	require.NoError(t, err)

	sample, err := s.Sample(m, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	require.Len(t, sample, 60)

	// Sample differs from the pure predictions (errors were added).
	pred := m.Predicted()
	diffs := 0
	for i := range sample {
		if sample[i] != pred[i] {
			diffs++
		}
	}
	assert.Greater(t, diffs, 50)
}

func TestBlockARWildUnfittedModel(t *testing.T) {
	m, err := models.NewLinearTrendFourier(0)
	require.NoError(t, err)

	s, err := NewBlockARWild()
	require.NoError(t, err)

	_, err = s.Sample(m, rand.New(rand.NewSource(1)))
	assert.True(t, errors.Is(err, models.ErrNotFitted))
}

func TestBlockARWildDeterministicForSeed(t *testing.T) {
	m := fittedTestModel(t, 4)

	s, err := NewBlockARWild(WithBlockSize(20), WithARCoef(0.3))
	require.NoError(t, err)

	a, err := s.Sample(m, rand.New(rand.NewSource(21)))
	require.NoError(t, err)
	b, err := s.Sample(m, rand.New(rand.NewSource(21)))
	require.NoError(t, err)

	assert.Equal(t, a, b)
}
