package timeseries

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	s, err := New([]float64{0, 1.5, 3}, []float64{10, 20, 30})
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 1.5, s.Times[1])
}

func TestNewLengthMismatch(t *testing.T) {
	_, err := New([]float64{0, 1}, []float64{10})
	assert.Error(t, err)
}

func TestNewNonIncreasingTimes(t *testing.T) {
	_, err := New([]float64{0, 2, 2}, []float64{1, 2, 3})
	assert.Error(t, err)

	_, err = New([]float64{0, 2, 1}, []float64{1, 2, 3})
	assert.Error(t, err)
}

func TestFromValues(t *testing.T) {
	s := FromValues([]float64{5, 6, 7, 8})
	assert.Equal(t, []float64{0, 1, 2, 3}, s.Times)
	assert.Equal(t, 4, s.Len())
}

func TestStatistics(t *testing.T) {
	s := FromValues([]float64{2, 4, 6, 8})

	assert.InDelta(t, 5.0, s.Mean(), 1e-12)
	assert.InDelta(t, 20.0/3.0, s.Variance(), 1e-12)
	assert.InDelta(t, math.Sqrt(20.0/3.0), s.Std(), 1e-12)
	assert.Equal(t, 2.0, s.Min())
	assert.Equal(t, 8.0, s.Max())
}

func TestEmptySeriesStatistics(t *testing.T) {
	s := FromValues(nil)

	assert.Equal(t, 0.0, s.Mean())
	assert.Equal(t, 0.0, s.Variance())
	assert.True(t, math.IsNaN(s.Min()))
	assert.True(t, math.IsNaN(s.Max()))
}

func TestSlice(t *testing.T) {
	s := FromValues([]float64{1, 2, 3, 4, 5})

	sub := s.Slice(1, 4)
	assert.Equal(t, []float64{2, 3, 4}, sub.Values)
	assert.Equal(t, []float64{1, 2, 3}, sub.Times)

	// Out-of-range bounds are clamped.
	sub = s.Slice(-2, 100)
	assert.Equal(t, 5, sub.Len())

	// Degenerate range yields empty series.
	sub = s.Slice(3, 3)
	assert.Equal(t, 0, sub.Len())
}

func TestCopyIsIndependent(t *testing.T) {
	s := FromValues([]float64{1, 2, 3})
	c := s.Copy()

	c.Values[0] = 99
	c.Times[0] = -1

	assert.Equal(t, 1.0, s.Values[0])
	assert.Equal(t, 0.0, s.Times[0])
}

func TestTimeSpan(t *testing.T) {
	s, err := New([]float64{2, 3, 7.5}, []float64{0, 0, 0})
	require.NoError(t, err)
	assert.InDelta(t, 5.5, s.TimeSpan(), 1e-12)

	assert.Equal(t, 0.0, FromValues([]float64{1}).TimeSpan())
}
