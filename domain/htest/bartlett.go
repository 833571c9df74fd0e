package htest

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"hypotest/domain/core"
)

// BartlettTest checks whether two samples have equal variances under an
// approximate-normality assumption. More powerful than Levene when that
// assumption holds, fragile otherwise.
type BartlettTest struct {
	params   Result
	renderer Renderer
}

// NewBartlettTest creates an unfitted Bartlett test.
func NewBartlettTest(opts ...Option) *BartlettTest {
	cfg := applyOptions(opts)
	return &BartlettTest{
		params:   newResult(KindBartlett),
		renderer: cfg.renderer,
	}
}

// Kind returns KindBartlett.
func (t *BartlettTest) Kind() Kind { return KindBartlett }

// Params returns the owned result record.
func (t *BartlettTest) Params() Result { return t.params }

// Fit runs the test on x and y.
func (t *BartlettTest) Fit(x, y []float64, opts ...FitOption) error {
	return fitTwoSample(&t.params, x, y, 2, t.compute, t.renderTask(x, y), opts)
}

func (t *BartlettTest) compute(x, y []float64) (float64, float64, error) {
	n1 := float64(len(x))
	n2 := float64(len(y))
	v1 := stat.Variance(x, nil)
	v2 := stat.Variance(y, nil)
	if v1 <= 0 || v2 <= 0 {
		return 0, 0, fmt.Errorf("%w: Bartlett's statistic needs strictly positive variances", core.ErrZeroVariance)
	}

	const k = 2
	dfTotal := n1 + n2 - k
	pooledVar := ((n1-1)*v1 + (n2-1)*v2) / dfTotal

	numerator := dfTotal*math.Log(pooledVar) - ((n1-1)*math.Log(v1) + (n2-1)*math.Log(v2))
	correction := 1 + (1/(n1-1)+1/(n2-1)-1/dfTotal)/(3*(k-1))

	statistic := numerator / correction
	return statistic, chiSquaredSurvival(statistic, k-1), nil
}

func (t *BartlettTest) renderTask(x, y []float64) renderFunc {
	if t.renderer == nil {
		return nil
	}
	return func() error { return t.renderer.DistributionOverlay(x, y, t.params) }
}
