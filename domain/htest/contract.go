package htest

import (
	"fmt"
	"math"

	"hypotest/domain/core"
)

// OneSampleTest is the uniform contract for tests over a single sample
// (Shapiro-Wilk). Fit runs the numeric procedure, stores the outcome in the
// owned Result, and optionally delegates to the configured renderer.
type OneSampleTest interface {
	Fit(x []float64, opts ...FitOption) error
	Params() Result
	Kind() Kind
}

// TwoSampleTest is the uniform contract for tests comparing two independent
// samples (Student, Mann-Whitney U, Levene, Bartlett, Kolmogorov-Smirnov).
type TwoSampleTest interface {
	Fit(x, y []float64, opts ...FitOption) error
	Params() Result
	Kind() Kind
}

// Renderer is the visualization delegate. It receives the raw samples plus
// the fitted result and draws a diagnostic chart; nothing it does feeds back
// into the statistic. Each test variant calls exactly one method.
type Renderer interface {
	// CriticalRegion draws the t-distribution with the observed statistic
	// marked (Student).
	CriticalRegion(x, y []float64, res Result) error
	// DistributionOverlay draws both sample distributions side by side
	// (Mann-Whitney U, Levene, Bartlett).
	DistributionOverlay(x, y []float64, res Result) error
	// ECDFOverlay draws both empirical CDFs (Kolmogorov-Smirnov).
	ECDFOverlay(x, y []float64, res Result) error
	// NormalFit draws the sample against a fitted normal (Shapiro-Wilk).
	NormalFit(x []float64, res Result) error
}

// Option configures a test at construction time.
type Option func(*config)

type config struct {
	renderer      Renderer
	equalVariance bool
}

// WithRenderer sets the visualization delegate invoked when a fit requests
// plotting. Without one, fitting with WithPlot fails after the compute step.
func WithRenderer(r Renderer) Option {
	return func(c *config) { c.renderer = r }
}

// WithEqualVariance switches Student's t-test to the pooled-variance
// estimator. The default is Welch's unequal-variance form. Other test kinds
// ignore this option.
func WithEqualVariance() Option {
	return func(c *config) { c.equalVariance = true }
}

func applyOptions(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// FitOption configures a single Fit call.
type FitOption func(*fitConfig)

type fitConfig struct {
	plot bool
}

// WithPlot requests that the renderer be invoked after a successful compute.
// Rendering has no effect on the stored statistic or p-value.
func WithPlot() FitOption {
	return func(c *fitConfig) { c.plot = true }
}

func applyFitOptions(opts []FitOption) fitConfig {
	var c fitConfig
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// checkSample validates one input sample before any computation runs.
func checkSample(label string, x []float64, min int) error {
	if len(x) < min {
		return core.NewSampleSizeError(label, len(x), min)
	}
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return core.NewNonFiniteError(label, i)
		}
	}
	return nil
}

// twoSampleProcedure computes (statistic, p-value) for a pair of samples.
type twoSampleProcedure func(x, y []float64) (float64, float64, error)

// oneSampleProcedure computes (statistic, p-value) for a single sample.
type oneSampleProcedure func(x []float64) (float64, float64, error)

// renderFunc is the deferred visualization step; nil means no renderer is
// configured for the owning test.
type renderFunc func() error

// fitTwoSample is the shared lifecycle for every two-sample variant:
// validate, compute, store atomically, then optionally render. A compute
// failure leaves the previous result untouched; a render failure surfaces as
// an error but the freshly fitted result stands.
func fitTwoSample(res *Result, x, y []float64, minN int, proc twoSampleProcedure, render renderFunc, opts []FitOption) error {
	if err := checkSample("x", x, minN); err != nil {
		return err
	}
	if err := checkSample("y", y, minN); err != nil {
		return err
	}

	statistic, pValue, err := proc(x, y)
	if err != nil {
		return fmt.Errorf("%s: %w", res.Name, err)
	}
	res.setFitted(statistic, pValue)

	if applyFitOptions(opts).plot {
		if render == nil {
			return fmt.Errorf("%s: %w", res.Name, core.ErrNoRenderer)
		}
		if err := render(); err != nil {
			return fmt.Errorf("plot %s: %w", res.Name, err)
		}
	}
	return nil
}

// fitOneSample mirrors fitTwoSample for one-sample variants.
func fitOneSample(res *Result, x []float64, minN int, proc oneSampleProcedure, render renderFunc, opts []FitOption) error {
	if err := checkSample("x", x, minN); err != nil {
		return err
	}

	statistic, pValue, err := proc(x)
	if err != nil {
		return fmt.Errorf("%s: %w", res.Name, err)
	}
	res.setFitted(statistic, pValue)

	if applyFitOptions(opts).plot {
		if render == nil {
			return fmt.Errorf("%s: %w", res.Name, core.ErrNoRenderer)
		}
		if err := render(); err != nil {
			return fmt.Errorf("plot %s: %w", res.Name, err)
		}
	}
	return nil
}
