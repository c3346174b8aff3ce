// Package stats provides statistical helpers shared by the trend models and
// the bootstrap engine.
//
// # Residual diagnostics
//
// Check whether a fitted model's residuals are autocorrelated, which guides
// the choice between residual resampling and the autoregressive wild
// bootstrap:
//
//	lb := stats.LjungBox(residuals, 10, nParams)
//	if lb.PValue < 0.05 {
//	    // residuals are autocorrelated; prefer bootstrap.BlockARWild
//	}
//
// The autocorrelation function itself is available via ACF, with the usual
// 1.96/sqrt(n) white-noise bound from ACFConfidenceBound.
//
// # Empirical quantiles
//
// Quantile and QuantilePair compute empirical quantiles with linear
// interpolation between order statistics; the bootstrap engine derives its
// confidence intervals from them.
package stats
