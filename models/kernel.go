package models

import (
	"fmt"
	"math"
)

// Parameter names used by KernelTrend.
const (
	ParamBandwidth = "bandwidth"
)

// KernelFunc weighs a scaled distance u; it must be non-negative and vanish
// for |u| > 1 for compactly supported kernels.
type KernelFunc func(u float64) float64

// Epanechnikov is the default smoothing kernel, 3/4*(1-u^2) on [-1, 1].
func Epanechnikov(u float64) float64 {
	if math.Abs(u) > 1 {
		return 0
	}
	return 0.75 * (1 - u*u)
}

// KernelByName resolves a kernel by its registered name.
func KernelByName(name string) (KernelFunc, error) {
	switch name {
	case "epanechnikov":
		return Epanechnikov, nil
	default:
		return nil, fmt.Errorf("%w: unknown kernel %q", ErrInvalidConfig, name)
	}
}

// KernelTrend is a non-parametric local-constant (Nadaraya-Watson) kernel
// regression estimator. The fitted "trend" parameter is the smoothed value
// at every input time point, so it is vector-valued with one entry per
// observation.
type KernelTrend struct {
	fitState

	kernel    KernelFunc
	bandwidth float64

	// Time grid scaled to [0, 1]; kept for prediction on new grids.
	tScaled []float64

	params Params
}

// KernelOption customizes a KernelTrend model.
type KernelOption func(*KernelTrend)

// WithKernel replaces the default Epanechnikov kernel.
func WithKernel(k KernelFunc) KernelOption {
	return func(m *KernelTrend) {
		m.kernel = k
	}
}

// NewKernelTrend creates the estimator with the given bandwidth, expressed
// on the [0, 1] scaled time axis.
func NewKernelTrend(bandwidth float64, opts ...KernelOption) (*KernelTrend, error) {
	if bandwidth <= 0 || math.IsNaN(bandwidth) {
		return nil, fmt.Errorf("%w: bandwidth %v must be positive", ErrInvalidConfig, bandwidth)
	}

	m := &KernelTrend{
		kernel:    Epanechnikov,
		bandwidth: bandwidth,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.kernel == nil {
		return nil, fmt.Errorf("%w: nil kernel", ErrInvalidConfig)
	}

	return m, nil
}

// localConstant computes the kernel-weighted local average of y at each
// target point tau over source points ts (both on the scaled time axis).
func (m *KernelTrend) localConstant(ts, y, tau []float64) []float64 {
	out := make([]float64, len(tau))
	for i, u := range tau {
		num, den := 0.0, 0.0
		for j, tv := range ts {
			w := m.kernel((u - tv) / m.bandwidth)
			num += w * y[j]
			den += w
		}
		out[i] = num / den
	}
	return out
}

// Fit estimates the smoothed trend on (t, y) and returns the sum of squared
// residuals.
func (m *KernelTrend) Fit(t, y []float64) (float64, error) {
	if err := checkInput(t, y); err != nil {
		return 0, err
	}
	if len(t) < 2 {
		return 0, fmt.Errorf("%w: need at least two points", ErrUnderdetermined)
	}

	span := t[len(t)-1] - t[0]
	tScaled := make([]float64, len(t))
	for i, tv := range t {
		tScaled[i] = (tv - t[0]) / span
	}

	trend := m.localConstant(tScaled, y, tScaled)

	m.tScaled = tScaled
	m.params = Params{
		ParamTrend:     append([]float64(nil), trend...),
		ParamBandwidth: []float64{m.bandwidth},
	}
	m.setFitted(t, y, trend)

	ssr := 0.0
	for i := range y {
		d := y[i] - trend[i]
		ssr += d * d
	}
	return ssr, nil
}

// Predict evaluates the smoothed trend on an arbitrary grid, scaled with the
// fitting grid's endpoints.
func (m *KernelTrend) Predict(t []float64) ([]float64, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}

	span := m.t[len(m.t)-1] - m.t[0]
	tau := make([]float64, len(t))
	for i, tv := range t {
		tau[i] = (tv - m.t[0]) / span
	}

	return m.localConstant(m.tScaled, m.y, tau), nil
}

// Parameters returns a copy of the fitted parameter mapping.
func (m *KernelTrend) Parameters() Params {
	return m.params.Copy()
}

// Clone returns a fresh unfitted model with the same configuration.
func (m *KernelTrend) Clone() Estimator {
	c, _ := NewKernelTrend(m.bandwidth, WithKernel(m.kernel))
	return c
}
