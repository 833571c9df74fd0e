package htest

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"hypotest/domain/core"
)

// LeveneTest checks whether two samples have equal variances. Group
// deviations are centered on the median (the robust Brown-Forsythe form);
// the centering method is fixed, not a caller option.
type LeveneTest struct {
	params   Result
	renderer Renderer
}

// NewLeveneTest creates an unfitted Levene test.
func NewLeveneTest(opts ...Option) *LeveneTest {
	cfg := applyOptions(opts)
	return &LeveneTest{
		params:   newResult(KindLevene),
		renderer: cfg.renderer,
	}
}

// Kind returns KindLevene.
func (t *LeveneTest) Kind() Kind { return KindLevene }

// Params returns the owned result record.
func (t *LeveneTest) Params() Result { return t.params }

// Fit runs the test on x and y.
func (t *LeveneTest) Fit(x, y []float64, opts ...FitOption) error {
	return fitTwoSample(&t.params, x, y, 2, t.compute, t.renderTask(x, y), opts)
}

func (t *LeveneTest) compute(x, y []float64) (float64, float64, error) {
	zx, err := absMedianDeviations(x)
	if err != nil {
		return 0, 0, err
	}
	zy, err := absMedianDeviations(y)
	if err != nil {
		return 0, 0, err
	}

	n1 := float64(len(zx))
	n2 := float64(len(zy))
	n := n1 + n2
	const k = 2

	meanX := mean(zx)
	meanY := mean(zy)
	grand := (n1*meanX + n2*meanY) / n

	between := n1*(meanX-grand)*(meanX-grand) + n2*(meanY-grand)*(meanY-grand)
	within := 0.0
	for _, z := range zx {
		within += (z - meanX) * (z - meanX)
	}
	for _, z := range zy {
		within += (z - meanY) * (z - meanY)
	}
	if within == 0 {
		return 0, 0, fmt.Errorf("%w: no spread around the group medians", core.ErrZeroVariance)
	}

	statistic := (n - k) / (k - 1) * between / within
	return statistic, fSurvival(statistic, k-1, n-k), nil
}

func (t *LeveneTest) renderTask(x, y []float64) renderFunc {
	if t.renderer == nil {
		return nil
	}
	return func() error { return t.renderer.DistributionOverlay(x, y, t.params) }
}

// absMedianDeviations returns |x_i - median(x)| for each observation.
func absMedianDeviations(x []float64) ([]float64, error) {
	median, err := stats.Median(x)
	if err != nil {
		return nil, fmt.Errorf("median: %w", err)
	}
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = math.Abs(v - median)
	}
	return out, nil
}

func mean(x []float64) float64 {
	sum := 0.0
	for _, v := range x {
		sum += v
	}
	return sum / float64(len(x))
}
