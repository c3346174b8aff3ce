// Package timeseries provides data structures and utilities for unevenly
// spaced time series.
//
// A Series pairs a strictly increasing real-valued time grid with observed
// values. Unlike fixed-frequency containers, no spacing assumption is made:
// the grid may have gaps or irregular sampling, which is the common case for
// observational records the trend models in this library are designed for.
//
// # Creating Series
//
// From explicit (t, y) pairs:
//
//	s, err := timeseries.New(times, values)
//
// From values on a unit-spaced grid:
//
//	s := timeseries.FromValues(values)
//
// # CSV Input/Output
//
// Load a series from a CSV file with numeric "t" and "y" columns:
//
//	s, err := timeseries.LoadCSV("data.csv", nil)
//
// Column names and delimiters are configurable via CSVOptions.
package timeseries
