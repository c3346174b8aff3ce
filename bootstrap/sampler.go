package bootstrap

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"github.com/sartorproj/trendfit/models"
)

// Sentinel errors for the bootstrap package.
var (
	// ErrNotFitted indicates the engine (or the sampled model) has not been
	// fitted yet.
	ErrNotFitted = errors.New("bootstrap: run Fit first")

	// ErrNotPositiveDefinite indicates the correlated-error correlation
	// matrix could not be Cholesky-factorized.
	ErrNotPositiveDefinite = errors.New("bootstrap: correlation matrix is not positive definite")

	// ErrInvalidConfig indicates an invalid sampler or engine configuration,
	// detected at construction time.
	ErrInvalidConfig = errors.New("bootstrap: invalid configuration")
)

// Sampler produces one synthetic response vector per call from a fitted
// model's residuals and predictions. Implementations must not mutate the
// model and must draw randomness only from the supplied source, so that
// concurrent calls with independent sources are safe.
type Sampler interface {
	Sample(m models.Estimator, rng *rand.Rand) ([]float64, error)
}

// ResidualResampling generates samples by adding a uniform random
// permutation of the fitted residuals to the predicted values. The multiset
// of residual values is invariant under generation.
type ResidualResampling struct{}

// NewResidualResampling creates the residual resampling variant.
func NewResidualResampling() ResidualResampling {
	return ResidualResampling{}
}

// Sample implements Sampler.
func (ResidualResampling) Sample(m models.Estimator, rng *rand.Rand) ([]float64, error) {
	if !m.IsFitted() {
		return nil, models.ErrNotFitted
	}

	errs := m.Residuals()
	rng.Shuffle(len(errs), func(i, j int) {
		errs[i], errs[j] = errs[j], errs[i]
	})

	pred := m.Predicted()
	out := make([]float64, len(pred))
	for i := range out {
		out[i] = pred[i] + errs[i]
	}
	return out, nil
}

const defaultBlockSize = 500

// BlockARWild generates samples with autocorrelated errors (autoregressive
// wild bootstrap), computed independently within contiguous time blocks to
// bound the cost of the per-block Cholesky factorization. The
// autocorrelation resets at block boundaries; a block size at least the
// series length degenerates to the full, non-blocked method.
type BlockARWild struct {
	blockSize int
	arCoef    float64 // NaN selects the per-block default decay
}

// ARWildOption customizes a BlockARWild sampler.
type ARWildOption func(*BlockARWild)

// WithBlockSize sets the block length (default 500).
func WithBlockSize(n int) ARWildOption {
	return func(s *BlockARWild) {
		s.blockSize = n
	}
}

// WithARCoef overrides the per-block default autoregressive decay
// coefficient with a fixed gamma in (0, 1).
func WithARCoef(gamma float64) ARWildOption {
	return func(s *BlockARWild) {
		s.arCoef = gamma
	}
}

// NewBlockARWild creates the block autoregressive wild bootstrap variant.
func NewBlockARWild(opts ...ARWildOption) (*BlockARWild, error) {
	s := &BlockARWild{
		blockSize: defaultBlockSize,
		arCoef:    math.NaN(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.blockSize < 1 {
		return nil, fmt.Errorf("%w: block size %d must be positive", ErrInvalidConfig, s.blockSize)
	}
	if !math.IsNaN(s.arCoef) && (s.arCoef <= 0 || s.arCoef >= 1) {
		return nil, fmt.Errorf("%w: ar coefficient %v outside (0, 1)", ErrInvalidConfig, s.arCoef)
	}

	return s, nil
}

// Sample implements Sampler.
func (s *BlockARWild) Sample(m models.Estimator, rng *rand.Rand) ([]float64, error) {
	if !m.IsFitted() {
		return nil, models.ErrNotFitted
	}

	errs, err := blockErrors(m.TimeGrid(), m.Residuals(), s.blockSize, s.arCoef, rng)
	if err != nil {
		return nil, err
	}

	pred := m.Predicted()
	out := make([]float64, len(pred))
	for i := range out {
		out[i] = pred[i] + errs[i]
	}
	return out, nil
}
