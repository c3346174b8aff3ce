// Package models provides trend models for unevenly spaced time series.
//
// All models implement the Estimator contract consumed by the bootstrap
// package: Fit populates parameters, predicted values and residuals in one
// atomic step, Predict is a pure function of the fitted parameters, and
// Clone produces an independent unfitted model with the same configuration.
//
// # Parametric models
//
// Three linear regression variants share a "build regressor set, then solve"
// skeleton and differ only in which terms enter the design matrix:
//
//   - LinearFourier: intercept + truncated Fourier basis (periodic
//     variability, no trend),
//   - LinearTrendFourier: adds a linear trend term,
//   - BrokenTrendFourier: adds a trend-break term max(t-T1, 0); an unknown
//     break location T1 is estimated by bounded simulated annealing over the
//     sum of squared residuals.
//
// The Fourier basis has 2M columns (cos/sin pairs at harmonics 1..M of
// 2*pi*t), so t is expected in units where the seasonal period is 1 (e.g.
// decimal years for annual seasonality).
//
//	m, _ := models.NewBrokenTrendFourier(3)
//	ssr, err := m.Fit(t, y)
//	tBreak, _ := m.Parameters().Scalar("t_break")
//
// # Non-parametric models
//
// KernelTrend is a local-constant kernel regression (Epanechnikov kernel by
// default) whose "trend" parameter is the smoothed series itself.
package models
