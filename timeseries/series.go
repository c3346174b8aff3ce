package timeseries

import (
	"errors"
	"math"
)

// Series represents a time series over a real-valued time grid. The grid is
// strictly increasing but not necessarily evenly spaced.
type Series struct {
	Times  []float64
	Values []float64
	Name   string
}

// New creates a time series from an explicit time grid and values.
func New(times, values []float64) (*Series, error) {
	if len(times) != len(values) {
		return nil, errors.New("times and values must have the same length")
	}
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			return nil, errors.New("times must be strictly increasing")
		}
	}
	return &Series{
		Times:  times,
		Values: values,
	}, nil
}

// FromValues creates a time series on a unit-spaced grid 0, 1, ..., n-1.
func FromValues(values []float64) *Series {
	times := make([]float64, len(values))
	for i := range times {
		times[i] = float64(i)
	}
	return &Series{
		Times:  times,
		Values: values,
	}
}

// Len returns the length of the series.
func (s *Series) Len() int {
	return len(s.Values)
}

// Mean calculates the arithmetic mean of the series values.
func (s *Series) Mean() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range s.Values {
		sum += v
	}
	return sum / float64(len(s.Values))
}

// Variance calculates the sample variance of the series values.
func (s *Series) Variance() float64 {
	if len(s.Values) < 2 {
		return 0
	}
	mean := s.Mean()
	sumSq := 0.0
	for _, v := range s.Values {
		diff := v - mean
		sumSq += diff * diff
	}
	return sumSq / float64(len(s.Values)-1)
}

// Std calculates the standard deviation of the series values.
func (s *Series) Std() float64 {
	return math.Sqrt(s.Variance())
}

// Min returns the minimum value in the series.
func (s *Series) Min() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	min := s.Values[0]
	for _, v := range s.Values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// Max returns the maximum value in the series.
func (s *Series) Max() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	max := s.Values[0]
	for _, v := range s.Values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// Slice returns a copy of the series from start to end (exclusive).
func (s *Series) Slice(start, end int) *Series {
	if start < 0 {
		start = 0
	}
	if end > len(s.Values) {
		end = len(s.Values)
	}
	if start >= end {
		return &Series{Name: s.Name}
	}

	times := make([]float64, end-start)
	values := make([]float64, end-start)
	copy(times, s.Times[start:end])
	copy(values, s.Values[start:end])

	return &Series{
		Times:  times,
		Values: values,
		Name:   s.Name,
	}
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	times := make([]float64, len(s.Times))
	values := make([]float64, len(s.Values))
	copy(times, s.Times)
	copy(values, s.Values)

	return &Series{
		Times:  times,
		Values: values,
		Name:   s.Name,
	}
}

// TimeSpan returns the distance between the first and last time points.
func (s *Series) TimeSpan() float64 {
	if len(s.Times) < 2 {
		return 0
	}
	return s.Times[len(s.Times)-1] - s.Times[0]
}
