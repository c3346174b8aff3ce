// Package trendfit provides trend model fitting and bootstrap confidence
// intervals for unevenly spaced time series.
//
// Trendfit fits parametric (piecewise-linear with Fourier seasonality) and
// non-parametric (kernel regression) trend models, and quantifies parameter
// uncertainty via bootstrap resampling. It is aimed at analysts who need
// statistically defensible confidence intervals on trend parameters (slope,
// trend-break location) when classical i.i.d.-residual assumptions are
// violated by autocorrelated noise.
//
// # Features
//
//   - Linear regression with truncated Fourier seasonal terms, with or
//     without a linear trend
//   - Broken-trend model with a known or estimated change-point location
//     (bounded simulated annealing over the least-squares objective)
//   - Non-parametric local-constant kernel trend estimation
//   - Residual resampling bootstrap
//   - Block autoregressive wild bootstrap with Cholesky-based correlated
//     noise for autocorrelated, unevenly spaced residuals
//   - Empirical-quantile confidence intervals at any confidence level
//   - Sequential or parallel bootstrap draws with reproducible seeding
//
// # Quick Start
//
// Fit a broken-trend model and bootstrap a confidence interval on the
// change in slope:
//
//	m, _ := models.NewBrokenTrendFourier(3)
//	sampler, _ := bootstrap.NewBlockARWild()
//	eng, _ := bootstrap.New(m, sampler, bootstrap.WithNSamples(1000), bootstrap.WithSeed(42))
//	if err := eng.Fit(t, y); err != nil {
//	    log.Fatal(err)
//	}
//	ci, _ := eng.CIBounds(0.95)
//	lo, hi := ci["trend_change"].Lower[0], ci["trend_change"].Upper[0]
//
// # Packages
//
// The library is organized into the following packages:
//
//   - models: trend model estimators (linear/Fourier, broken trend, kernel)
//   - bootstrap: resampling engine, sampling variants, confidence intervals
//   - optimize: bounded scalar global optimization (simulated annealing)
//   - stats: residual diagnostics and empirical quantiles
//   - timeseries: series container and CSV input/output
//
// # References
//
//   - Friedrich, M., et al. (2019). "Nonparametric estimation and bootstrap
//     inference on trends in atmospheric time series: an application to
//     ethane." arXiv:1903.05403
package trendfit
