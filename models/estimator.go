package models

import (
	"errors"
)

// Sentinel errors returned by model constructors and fit/predict calls.
// Callers branch with errors.Is.
var (
	// ErrNotFitted indicates an operation that requires a fitted model was
	// invoked before Fit.
	ErrNotFitted = errors.New("models: model not fitted, run Fit first")

	// ErrDimensionMismatch indicates t and y differ in length.
	ErrDimensionMismatch = errors.New("models: t and y must have the same length")

	// ErrUnderdetermined indicates the least-squares system has fewer
	// independent equations than unknowns.
	ErrUnderdetermined = errors.New("models: least-squares system is underdetermined")

	// ErrInvalidConfig indicates an invalid model configuration, detected at
	// construction time.
	ErrInvalidConfig = errors.New("models: invalid configuration")
)

// Params maps a parameter name to its fitted value. Scalar parameters are
// stored as length-1 slices so that scalar and vector parameters share one
// representation; entries for a given key always keep the same length across
// refits of the same model configuration.
type Params map[string][]float64

// Copy returns a deep copy of the parameter mapping.
func (p Params) Copy() Params {
	out := make(Params, len(p))
	for k, v := range p {
		cv := make([]float64, len(v))
		copy(cv, v)
		out[k] = cv
	}
	return out
}

// Scalar returns the single value of a scalar parameter, or NaN-free zero
// value semantics: it returns 0 and false when the parameter is absent or not
// scalar-shaped.
func (p Params) Scalar(name string) (float64, bool) {
	v, ok := p[name]
	if !ok || len(v) != 1 {
		return 0, false
	}
	return v[0], true
}

// Estimator is the contract between trend models and the bootstrap engine.
// A model is created unfitted, populated by one successful Fit call, and
// read-only thereafter. Fit either fully succeeds or leaves the model
// unfitted; no partial state is ever published.
type Estimator interface {
	// Fit estimates the model on (t, y) and returns the sum of squared
	// residuals as a fit-quality scalar. t must be strictly increasing.
	Fit(t, y []float64) (float64, error)

	// Predict evaluates the fitted model on an arbitrary time grid.
	Predict(t []float64) ([]float64, error)

	// Residuals returns a copy of the fitted residuals (y - predicted),
	// aligned 1:1 with the fitting grid. Nil before Fit.
	Residuals() []float64

	// Predicted returns a copy of the fitted values on the fitting grid.
	// Nil before Fit.
	Predicted() []float64

	// TimeGrid returns a copy of the time grid the model was fitted on.
	// Nil before Fit.
	TimeGrid() []float64

	// Parameters returns a copy of the fitted parameter mapping.
	Parameters() Params

	// IsFitted reports whether Fit has completed successfully.
	IsFitted() bool

	// Clone returns a fresh unfitted model with the same configuration.
	// Clones share no mutable state with the receiver, so independent
	// fits on clones never interfere.
	Clone() Estimator
}

// fitState holds the data captured by a successful fit. Embedded by every
// model in this package.
type fitState struct {
	fitted bool
	t      []float64
	y      []float64
	pred   []float64
	resid  []float64
}

// setFitted publishes the fit results. Called once, at the very end of a
// successful Fit.
func (s *fitState) setFitted(t, y, pred []float64) {
	n := len(t)
	s.t = make([]float64, n)
	s.y = make([]float64, n)
	s.pred = make([]float64, n)
	s.resid = make([]float64, n)
	copy(s.t, t)
	copy(s.y, y)
	copy(s.pred, pred)
	for i := range s.resid {
		s.resid[i] = y[i] - pred[i]
	}
	s.fitted = true
}

// IsFitted reports whether the model has been fitted.
func (s *fitState) IsFitted() bool {
	return s.fitted
}

// Residuals returns a copy of the fitted residuals, or nil before Fit.
func (s *fitState) Residuals() []float64 {
	if !s.fitted {
		return nil
	}
	out := make([]float64, len(s.resid))
	copy(out, s.resid)
	return out
}

// Predicted returns a copy of the fitted values, or nil before Fit.
func (s *fitState) Predicted() []float64 {
	if !s.fitted {
		return nil
	}
	out := make([]float64, len(s.pred))
	copy(out, s.pred)
	return out
}

// TimeGrid returns a copy of the fitting time grid, or nil before Fit.
func (s *fitState) TimeGrid() []float64 {
	if !s.fitted {
		return nil
	}
	out := make([]float64, len(s.t))
	copy(out, s.t)
	return out
}

// checkInput validates the (t, y) pair passed to Fit.
func checkInput(t, y []float64) error {
	if len(t) != len(y) {
		return ErrDimensionMismatch
	}
	if len(t) == 0 {
		return errors.New("models: empty input")
	}
	for i := 1; i < len(t); i++ {
		if t[i] <= t[i-1] {
			return errors.New("models: t must be strictly increasing")
		}
	}
	return nil
}
