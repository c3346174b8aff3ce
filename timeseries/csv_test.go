package timeseries

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCSVFromReader(t *testing.T) {
	data := "t,y\n0,1.5\n0.5,2.5\n2,3.5\n"

	s, err := LoadCSVFromReader(strings.NewReader(data), nil)
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 0.5, 2}, s.Times)
	assert.Equal(t, []float64{1.5, 2.5, 3.5}, s.Values)
}

func TestLoadCSVCustomColumns(t *testing.T) {
	data := "epoch,ozone,station\n1.0,310.2,a\n2.5,305.9,a\n"
	opts := DefaultCSVOptions()
	opts.TimeColumn = "epoch"
	opts.ValueColumn = "ozone"

	s, err := LoadCSVFromReader(strings.NewReader(data), opts)
	require.NoError(t, err)

	assert.Equal(t, []float64{1.0, 2.5}, s.Times)
	assert.Equal(t, []float64{310.2, 305.9}, s.Values)
}

func TestLoadCSVSkipsInvalidRows(t *testing.T) {
	data := "t,y\n0,1\n1,NaN\n2,NA\n3,4\n4,\n"

	s, err := LoadCSVFromReader(strings.NewReader(data), nil)
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 3}, s.Times)
	assert.Equal(t, []float64{1, 4}, s.Values)
}

func TestLoadCSVNoHeader(t *testing.T) {
	data := "0,10\n1,11\n2,12\n"
	opts := DefaultCSVOptions()
	opts.HasHeader = false

	s, err := LoadCSVFromReader(strings.NewReader(data), opts)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())
}

func TestLoadCSVMissingColumn(t *testing.T) {
	data := "a,b\n1,2\n"

	_, err := LoadCSVFromReader(strings.NewReader(data), nil)
	assert.Error(t, err)
}

func TestLoadCSVEmpty(t *testing.T) {
	_, err := LoadCSVFromReader(strings.NewReader("t,y\n"), nil)
	assert.Error(t, err)
}

func TestSaveAndLoadCSV(t *testing.T) {
	s, err := New([]float64{0, 1.25, 4}, []float64{-1, 0.5, 3})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "series.csv")
	require.NoError(t, SaveCSV(s, path))

	loaded, err := LoadCSV(path, nil)
	require.NoError(t, err)

	assert.Equal(t, s.Times, loaded.Times)
	assert.Equal(t, s.Values, loaded.Values)
}
