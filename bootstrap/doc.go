// Package bootstrap quantifies trend-parameter uncertainty by bootstrap
// resampling, for time series whose residuals violate the classical i.i.d.
// assumption.
//
// The Engine wraps any models.Estimator: it fits the base model once, draws
// N synthetic response vectors from a Sampler, refits an independent model
// clone on each, and exposes the per-parameter empirical distributions and
// their quantile confidence intervals.
//
// # Sampling variants
//
// Two Sampler variants are provided:
//
//   - ResidualResampling: predicted values plus a random permutation of the
//     fitted residuals. Appropriate when residuals are exchangeable.
//   - BlockARWild: predicted values plus synthetic errors with an
//     exponential-decay autocorrelation structure, generated via the
//     Cholesky factor of the target correlation matrix and scaled by the
//     local residual magnitude. Errors are generated independently per
//     contiguous block (autocorrelation resets at block boundaries), which
//     bounds the factorization cost; a block size at least the series
//     length recovers the full autoregressive wild bootstrap.
//
// # Usage
//
//	m, _ := models.NewBrokenTrendFourier(3)
//	sampler, _ := bootstrap.NewBlockARWild()
//	eng, _ := bootstrap.New(m, sampler,
//	    bootstrap.WithNSamples(1000),
//	    bootstrap.WithSeed(42),
//	    bootstrap.WithWorkers(0), // all CPUs
//	)
//	if err := eng.Fit(t, y); err != nil { ... }
//	ci, _ := eng.CIBounds(0.95)
//
// # Concurrency
//
// Draws are embarrassingly parallel: each runs on its own model clone with
// its own RNG, seeded from the engine's master RNG before execution starts.
// Results are therefore reproducible for a fixed seed regardless of the
// worker count, and no draw ever writes through to the shared base model.
// A single failed draw aborts the whole batch; partially completed draws
// are never recorded.
package bootstrap
