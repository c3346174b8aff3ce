package bootstrap

import (
	"fmt"
	"runtime"
	"time"

	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"

	"github.com/sartorproj/trendfit/models"
	"github.com/sartorproj/trendfit/stats"
)

const defaultNSamples = 1000

// Interval is an empirical confidence interval per parameter element. Lower
// and Upper have the parameter's own shape (length 1 for scalars).
type Interval struct {
	Lower []float64
	Upper []float64
}

// Engine estimates trend parameter uncertainty by bootstrap resampling: it
// fits a base model once, draws independent synthetic samples from the
// configured Sampler, refits a fresh model clone on each, and collects the
// per-parameter empirical distributions.
//
// Each draw uses its own RNG, seeded from the engine's master RNG before the
// draws start, so results are reproducible for a fixed seed regardless of
// the worker count.
type Engine struct {
	model      models.Estimator
	sampler    Sampler
	nSamples   int
	saveModels bool
	workers    int
	rng        *rand.Rand

	fitted bool
	dists  map[string][][]float64
	saved  []models.Estimator
}

// Option customizes an Engine.
type Option func(*Engine)

// WithNSamples sets the number of bootstrap draws (default 1000).
func WithNSamples(n int) Option {
	return func(e *Engine) {
		e.nSamples = n
	}
}

// WithSeed seeds the engine's master RNG, making draws reproducible.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand provides a pre-built master RNG.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = r
	}
}

// WithSaveModels retains every fitted bootstrap sub-model. Memory cost
// scales linearly with the number of draws; off by default.
func WithSaveModels(save bool) Option {
	return func(e *Engine) {
		e.saveModels = save
	}
}

// WithWorkers sets the number of concurrent draw workers. 1 (the default)
// runs draws sequentially; 0 selects runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.workers = n
	}
}

// New creates a bootstrap engine around a model and a sampling variant.
func New(model models.Estimator, sampler Sampler, opts ...Option) (*Engine, error) {
	if model == nil {
		return nil, fmt.Errorf("%w: nil model", ErrInvalidConfig)
	}
	if sampler == nil {
		return nil, fmt.Errorf("%w: nil sampler", ErrInvalidConfig)
	}

	e := &Engine{
		model:    model,
		sampler:  sampler,
		nSamples: defaultNSamples,
		workers:  1,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.nSamples < 1 {
		return nil, fmt.Errorf("%w: n_samples %d must be positive", ErrInvalidConfig, e.nSamples)
	}
	if e.workers < 0 {
		return nil, fmt.Errorf("%w: workers %d must be non-negative", ErrInvalidConfig, e.workers)
	}
	if e.workers == 0 {
		e.workers = runtime.NumCPU()
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}

	return e, nil
}

// Fit fits the base model on (t, y), then runs the configured number of
// bootstrap draws. Each draw samples a synthetic response from the fitted
// base model, refits an independent clone on it, and records the clone's
// parameters. A failed draw aborts the whole batch: silently dropping draws
// would bias the empirical distributions.
//
// Calling Fit again fully resets previously collected distributions and
// retained sub-models before refitting.
func (e *Engine) Fit(t, y []float64) error {
	e.fitted = false
	e.dists = nil
	e.saved = nil

	if _, err := e.model.Fit(t, y); err != nil {
		return fmt.Errorf("bootstrap: base model fit: %w", err)
	}

	// Per-draw seeds come off the master RNG up front, so the draw sequence
	// is fixed before any parallel execution starts.
	seeds := make([]uint64, e.nSamples)
	for i := range seeds {
		seeds[i] = e.rng.Uint64()
	}

	type draw struct {
		params models.Params
		model  models.Estimator
	}
	results := make([]draw, e.nSamples)

	var g errgroup.Group
	g.SetLimit(e.workers)
	for i := 0; i < e.nSamples; i++ {
		i := i
		g.Go(func() error {
			rng := rand.New(rand.NewSource(seeds[i]))

			yb, err := e.sampler.Sample(e.model, rng)
			if err != nil {
				return err
			}

			mb := e.model.Clone()
			if _, err := mb.Fit(t, yb); err != nil {
				return err
			}

			results[i] = draw{params: mb.Parameters()}
			if e.saveModels {
				results[i].model = mb
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("bootstrap: draw failed: %w", err)
	}

	// Single-threaded merge, in draw order.
	e.dists = make(map[string][][]float64)
	for _, d := range results {
		if e.saveModels {
			e.saved = append(e.saved, d.model)
		}
		for k, v := range d.params {
			e.dists[k] = append(e.dists[k], v)
		}
	}

	e.fitted = true
	return nil
}

// Sample draws one synthetic response vector from the fitted base model
// using the engine's sampler. With a nil rng the engine's master RNG is
// used.
func (e *Engine) Sample(rng *rand.Rand) ([]float64, error) {
	if rng == nil {
		rng = e.rng
	}
	return e.sampler.Sample(e.model, rng)
}

// CIBounds derives per-parameter confidence intervals from the collected
// empirical distributions: the alpha/2 and 1-alpha/2 quantiles with
// alpha = 1 - confidenceLevel, computed independently per element for
// vector-valued parameters. Intervals are recomputable at any level without
// refitting.
func (e *Engine) CIBounds(confidenceLevel float64) (map[string]Interval, error) {
	if !e.fitted {
		return nil, ErrNotFitted
	}
	if confidenceLevel <= 0 || confidenceLevel >= 1 {
		return nil, fmt.Errorf("%w: confidence level %v outside (0, 1)", ErrInvalidConfig, confidenceLevel)
	}

	alpha := 1 - confidenceLevel
	out := make(map[string]Interval, len(e.dists))

	for name, draws := range e.dists {
		width := len(draws[0])
		lower := make([]float64, width)
		upper := make([]float64, width)
		column := make([]float64, len(draws))

		for j := 0; j < width; j++ {
			for i, d := range draws {
				column[i] = d[j]
			}
			lower[j], upper[j] = stats.QuantilePair(alpha/2, column)
		}

		out[name] = Interval{Lower: lower, Upper: upper}
	}

	return out, nil
}

// ParameterDists returns the collected per-parameter draw sequences, one
// entry per successful draw in draw order.
func (e *Engine) ParameterDists() map[string][][]float64 {
	out := make(map[string][][]float64, len(e.dists))
	for k, v := range e.dists {
		out[k] = v
	}
	return out
}

// Models returns the retained fitted sub-models. Empty unless the engine
// was built with WithSaveModels(true).
func (e *Engine) Models() []models.Estimator {
	return e.saved
}

// Model returns the wrapped base model.
func (e *Engine) Model() models.Estimator {
	return e.model
}

// Parameters returns the base model's fitted parameters.
func (e *Engine) Parameters() models.Params {
	return e.model.Parameters()
}

// Residuals returns the base model's fitted residuals.
func (e *Engine) Residuals() []float64 {
	return e.model.Residuals()
}

// Predict evaluates the fitted base model on t.
func (e *Engine) Predict(t []float64) ([]float64, error) {
	return e.model.Predict(t)
}
