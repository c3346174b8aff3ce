// Package optimize provides bounded scalar global optimization.
package optimize

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/rand"
)

// Sentinel errors returned by Anneal.
var (
	// ErrInvalidBounds indicates the search interval is empty or reversed.
	ErrInvalidBounds = errors.New("optimize: invalid bounds")

	// ErrNilObjective indicates a nil objective function.
	ErrNilObjective = errors.New("optimize: nil objective")
)

const (
	defaultMaxIter = 500
	defaultSeed    = 1

	// Temperature schedule endpoints for the annealing loop.
	initialTemp = 1.0
	floorTemp   = 1e-4

	// Coarse scan density used to seed the annealing walk.
	scanPoints = 50

	// Half-width of the local refinement bracket, as a fraction of the
	// search interval.
	refineFrac = 0.02
)

// Result holds the outcome of a minimization run.
type Result struct {
	X     float64 // location of the best objective value found
	F     float64 // best objective value found
	Evals int     // number of objective evaluations
}

type config struct {
	maxIter int
	rng     *rand.Rand
}

// Option customizes an Anneal run.
type Option func(*config)

// WithMaxIter caps the number of annealing iterations (default 500).
func WithMaxIter(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxIter = n
		}
	}
}

// WithSeed seeds the annealing random walk, making the run deterministic.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand provides an explicit RNG for the annealing walk.
func WithRand(r *rand.Rand) Option {
	return func(c *config) {
		if r != nil {
			c.rng = r
		}
	}
}

// Anneal minimizes f over the closed interval [lo, hi] using a
// simulated-annealing random walk seeded by a coarse uniform scan, followed
// by a golden-section refinement around the best point found.
//
// The objective may return +Inf to mark infeasible candidates; such points
// are never accepted, so the search routes around infeasible regions instead
// of failing. The walk is deterministic for a fixed seed.
func Anneal(f func(float64) float64, lo, hi float64, opts ...Option) (Result, error) {
	if f == nil {
		return Result{}, ErrNilObjective
	}
	if !(lo < hi) || math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return Result{}, fmt.Errorf("%w: [%v, %v]", ErrInvalidBounds, lo, hi)
	}

	cfg := config{
		maxIter: defaultMaxIter,
		rng:     rand.New(rand.NewSource(defaultSeed)),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	evals := 0
	eval := func(x float64) float64 {
		evals++
		v := f(x)
		if math.IsNaN(v) {
			return math.Inf(1)
		}
		return v
	}

	width := hi - lo

	// Coarse scan locates a promising basin before the stochastic walk.
	x := lo
	fx := eval(x)
	for i := 1; i <= scanPoints; i++ {
		cand := lo + width*float64(i)/float64(scanPoints)
		if fc := eval(cand); fc < fx {
			x, fx = cand, fc
		}
	}
	bestX, bestF := x, fx

	cooling := math.Pow(floorTemp/initialTemp, 1/float64(cfg.maxIter))
	temp := initialTemp

	for i := 0; i < cfg.maxIter; i++ {
		cand := reflect(x+cfg.rng.NormFloat64()*temp*width, lo, hi)
		fc := eval(cand)

		if accept(fx, fc, temp, bestF, cfg.rng) {
			x, fx = cand, fc
			if fc < bestF {
				bestX, bestF = cand, fc
			}
		}

		temp *= cooling
	}

	// Local refinement around the best point.
	rLo := math.Max(lo, bestX-refineFrac*width)
	rHi := math.Min(hi, bestX+refineFrac*width)
	rx, rf := goldenSection(eval, rLo, rHi)
	if rf < bestF {
		bestX, bestF = rx, rf
	}

	return Result{X: bestX, F: bestF, Evals: evals}, nil
}

// accept implements the Metropolis criterion with the objective scale
// normalized by the best value seen so far.
func accept(fx, fc, temp, bestF float64, rng *rand.Rand) bool {
	if fc <= fx {
		return true
	}
	if math.IsInf(fc, 1) {
		return false
	}
	scale := math.Max(math.Abs(bestF), 1e-12)
	return rng.Float64() < math.Exp(-(fc-fx)/(temp*scale))
}

// reflect folds a candidate back into [lo, hi].
func reflect(x, lo, hi float64) float64 {
	width := hi - lo
	if width <= 0 {
		return lo
	}
	for x < lo || x > hi {
		if x < lo {
			x = 2*lo - x
		}
		if x > hi {
			x = 2*hi - x
		}
	}
	return x
}

// goldenSection performs a bounded golden-section search. It assumes local
// unimodality inside the bracket; outside that assumption it still returns
// the best point evaluated.
func goldenSection(eval func(float64) float64, lo, hi float64) (float64, float64) {
	const invPhi = 0.6180339887498949

	a, b := lo, hi
	c := b - invPhi*(b-a)
	d := a + invPhi*(b-a)
	fc := eval(c)
	fd := eval(d)

	for i := 0; i < 100 && (b-a) > 1e-12*(hi-lo+1); i++ {
		if fc < fd {
			b, d, fd = d, c, fc
			c = b - invPhi*(b-a)
			fc = eval(c)
		} else {
			a, c, fc = c, d, fd
			d = a + invPhi*(b-a)
			fd = eval(d)
		}
	}

	if fc < fd {
		return c, fc
	}
	return d, fd
}
